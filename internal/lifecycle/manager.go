// Package lifecycle машина состояний бронирования: pending -> booked | rejected,
// booked -> cancelled | booked (переназначение), rejected -> pending.
// Все операции работают над переданным Store и либо применяются целиком, либо не меняют его.
package lifecycle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-HallBooking/internal/domain"
	"github.com/m04kA/SMC-HallBooking/internal/store"
	"github.com/m04kA/SMC-HallBooking/pkg/types"
)

// Manager применяет переходы к бронированиям в хранилище
type Manager struct {
	capacity     CapacityValidator
	catalog      *domain.Catalog
	timeProvider TimeProvider
	logger       Logger
}

// NewManager создает новый экземпляр менеджера жизненного цикла
func NewManager(
	capacity CapacityValidator,
	catalog *domain.Catalog,
	logger Logger,
) *Manager {
	return &Manager{
		capacity:     capacity,
		catalog:      catalog,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (m *Manager) WithTimeProvider(tp TimeProvider) *Manager {
	m.timeProvider = tp
	return m
}

// Submit создает новую заявку в статусе pending
func (m *Manager) Submit(s *store.Store, b domain.Booking) (Event, error) {
	// Поля, которыми управляет только машина состояний, у новой заявки сбрасываются
	b.ID = 0
	b.Status = domain.StatusPending
	b.RejectionReason = ""
	b.OriginalFacility = ""

	if err := validateSubmission(&b); err != nil {
		m.logger.Warn("Submit: validation failed: %v", err)
		return Event{}, err
	}
	if m.catalog != nil && !m.catalog.Has(b.Facility) {
		m.logger.Warn("Submit: unknown facility %s", b.Facility)
		return Event{}, fmt.Errorf("%w: %s", ErrUnknownFacility, b.Facility)
	}
	if err := m.capacity.Validate(b.ExpectedAttendees, b.Facility); err != nil {
		m.logger.Warn("Submit: capacity validation failed: %v", err)
		return Event{}, err
	}

	now := m.timeProvider.Now()
	b.CreatedAt = now
	b.UpdatedAt = now

	created, err := s.Insert(b)
	if err != nil {
		m.logger.Error("Submit: failed to insert booking: %v", err)
		return Event{}, fmt.Errorf("%w: Submit - insert: %v", ErrInternal, err)
	}

	m.logger.Info("Submit: booking id=%d created for %s on %s %s-%s by %s",
		created.ID, created.Facility, created.Date, created.StartTime, created.EndTime, created.RequestedBy)
	return Event{Kind: EventSubmitted, After: created, At: now}, nil
}

// Apply применяет переход к бронированию (date, id)
func (m *Manager) Apply(s *store.Store, date types.DateKey, id int64, t Transition) (Event, error) {
	before, err := m.get(s, date, id)
	if err != nil {
		return Event{}, err
	}

	if before.Status != t.From() {
		m.logger.Warn("Apply: booking id=%d cannot go %s -> %s via %s", id, before.Status, t.To(), t.Kind())
		return Event{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, before.Status, t.To())
	}

	now := m.timeProvider.Now()
	after := before
	env := &applyEnv{
		now:      now,
		bookings: s.All(),
		catalog:  m.catalog,
	}
	if err := t.apply(&after, env); err != nil {
		m.logger.Warn("Apply: %s rejected for booking id=%d: %v", t.Kind(), id, err)
		return Event{}, err
	}
	after.UpdatedAt = now

	if err := s.Replace(after); err != nil {
		m.logger.Error("Apply: failed to replace booking id=%d: %v", id, err)
		return Event{}, fmt.Errorf("%w: Apply - replace: %v", ErrInternal, err)
	}

	m.logger.Info("Apply: booking id=%d %s (%s -> %s, facility=%s)", id, t.Kind(), before.Status, after.Status, after.Facility)
	return Event{Kind: t.Kind(), Before: &before, After: after, At: now}, nil
}

// ApplyStatus применяет переход, выбранный по запрошенному статусу
func (m *Manager) ApplyStatus(s *store.Store, date types.DateKey, id int64, newStatus domain.BookingStatus, opts Options) (Event, error) {
	current, err := m.get(s, date, id)
	if err != nil {
		return Event{}, err
	}

	t, err := TransitionFor(current.Status, newStatus, opts)
	if err != nil {
		m.logger.Warn("ApplyStatus: booking id=%d: %v", id, err)
		return Event{}, err
	}

	return m.Apply(s, date, id, t)
}

// EditDetails меняет содержательные поля заявки. Разрешено только в статусе pending,
// количество участников перепроверяется по вместимости текущего зала.
func (m *Manager) EditDetails(s *store.Store, date types.DateKey, id int64, edit domain.ContentEdit) (Event, error) {
	before, err := m.get(s, date, id)
	if err != nil {
		return Event{}, err
	}

	if !before.IsEditable() {
		m.logger.Warn("EditDetails: booking id=%d is %s, only pending bookings are editable", id, before.Status)
		return Event{}, fmt.Errorf("%w: cannot edit a %s booking", ErrInvalidTransition, before.Status)
	}
	if err := validateEdit(edit); err != nil {
		return Event{}, err
	}

	after := before
	edit.Apply(&after)
	if err := m.capacity.Validate(after.ExpectedAttendees, after.Facility); err != nil {
		m.logger.Warn("EditDetails: capacity validation failed for booking id=%d: %v", id, err)
		return Event{}, err
	}

	now := m.timeProvider.Now()
	after.UpdatedAt = now
	if err := s.Replace(after); err != nil {
		return Event{}, fmt.Errorf("%w: EditDetails - replace: %v", ErrInternal, err)
	}

	m.logger.Info("EditDetails: booking id=%d updated", id)
	return Event{Kind: EventEdited, Before: &before, After: after, At: now}, nil
}

// UpdateAdminNote заменяет заметку администратора. Допустимо в любом статусе
func (m *Manager) UpdateAdminNote(s *store.Store, date types.DateKey, id int64, note string) (Event, error) {
	before, err := m.get(s, date, id)
	if err != nil {
		return Event{}, err
	}

	if len(note) > domain.MaxNotesLength {
		return Event{}, fmt.Errorf("%w: note longer than %d characters", ErrInvalidBooking, domain.MaxNotesLength)
	}

	now := m.timeProvider.Now()
	after := before
	after.AdminNotes = strings.TrimSpace(note)
	after.UpdatedAt = now
	if err := s.Replace(after); err != nil {
		return Event{}, fmt.Errorf("%w: UpdateAdminNote - replace: %v", ErrInternal, err)
	}

	m.logger.Info("UpdateAdminNote: booking id=%d note updated", id)
	return Event{Kind: EventNoteUpdated, Before: &before, After: after, At: now}, nil
}

func (m *Manager) get(s *store.Store, date types.DateKey, id int64) (domain.Booking, error) {
	b, err := s.Get(date, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			m.logger.Warn("booking id=%d on %s not found", id, date)
			return domain.Booking{}, fmt.Errorf("%w: date=%s id=%d", ErrNotFound, date, id)
		}
		return domain.Booking{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return b, nil
}
