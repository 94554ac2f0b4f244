package lifecycle

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-HallBooking/internal/conflict"
	"github.com/m04kA/SMC-HallBooking/internal/domain"
)

// Transition одно ребро машины состояний. Каждая реализация сама объявляет,
// какие поля бронирования она выставляет и какие очищает.
type Transition interface {
	Kind() EventKind
	From() domain.BookingStatus
	To() domain.BookingStatus
	apply(b *domain.Booking, env *applyEnv) error
}

type applyEnv struct {
	now      time.Time
	bookings []domain.Booking
	catalog  *domain.Catalog
}

// Approve pending -> booked, с необязательным переназначением зала.
// Падает с ErrSlotClash, если на целевом зале слот уже занят.
type Approve struct {
	NewFacility domain.FacilityID
}

func (Approve) Kind() EventKind            { return EventApproved }
func (Approve) From() domain.BookingStatus { return domain.StatusPending }
func (Approve) To() domain.BookingStatus   { return domain.StatusBooked }

func (t Approve) apply(b *domain.Booking, env *applyEnv) error {
	target := *b
	if t.NewFacility != "" {
		if err := env.checkFacility(t.NewFacility); err != nil {
			return err
		}
		target.Facility = t.NewFacility
	}

	if clash := conflict.FindClash(target, env.bookings); clash != nil {
		return fmt.Errorf("%w: booking id=%d on %s %s %s-%s",
			ErrSlotClash, clash.ID, clash.Facility, clash.Date, clash.StartTime, clash.EndTime)
	}

	b.Status = domain.StatusBooked
	b.RejectionReason = ""
	if t.NewFacility != "" {
		moveFacility(b, t.NewFacility)
	}
	return nil
}

// Reject pending -> rejected, причина обязательна
type Reject struct {
	Reason string
}

func (Reject) Kind() EventKind            { return EventRejected }
func (Reject) From() domain.BookingStatus { return domain.StatusPending }
func (Reject) To() domain.BookingStatus   { return domain.StatusRejected }

func (t Reject) apply(b *domain.Booking, _ *applyEnv) error {
	if strings.TrimSpace(t.Reason) == "" {
		return ErrMissingReason
	}

	// Причина сохраняется в том виде, в котором ее передали
	b.Status = domain.StatusRejected
	b.RejectionReason = t.Reason
	return nil
}

// Cancel booked -> cancelled. Отмена самим заявителем дописывает системную заметку
// в AdminNotes, отмена администратором заметку не добавляет.
type Cancel struct {
	ByRequester bool
}

func (Cancel) Kind() EventKind            { return EventCancelled }
func (Cancel) From() domain.BookingStatus { return domain.StatusBooked }
func (Cancel) To() domain.BookingStatus   { return domain.StatusCancelled }

func (t Cancel) apply(b *domain.Booking, env *applyEnv) error {
	b.Status = domain.StatusCancelled
	b.RejectionReason = ""
	if t.ByRequester {
		note := fmt.Sprintf(domain.CancelledByUserFormat, env.now.Format(domain.DateFormat))
		b.AdminNotes = appendNote(b.AdminNotes, note)
	}
	return nil
}

// Reopen rejected -> pending, причина отклонения очищается
type Reopen struct{}

func (Reopen) Kind() EventKind            { return EventReopened }
func (Reopen) From() domain.BookingStatus { return domain.StatusRejected }
func (Reopen) To() domain.BookingStatus   { return domain.StatusPending }

func (Reopen) apply(b *domain.Booking, _ *applyEnv) error {
	b.Status = domain.StatusPending
	b.RejectionReason = ""
	return nil
}

// Reassign booked -> booked со сменой зала. Пересечения на новом зале не проверяются:
// администратор проверяет их сам до коммита и может сознательно их игнорировать.
type Reassign struct {
	NewFacility domain.FacilityID
}

func (Reassign) Kind() EventKind            { return EventReassigned }
func (Reassign) From() domain.BookingStatus { return domain.StatusBooked }
func (Reassign) To() domain.BookingStatus   { return domain.StatusBooked }

func (t Reassign) apply(b *domain.Booking, env *applyEnv) error {
	if t.NewFacility == "" {
		return ErrMissingFacility
	}
	if err := env.checkFacility(t.NewFacility); err != nil {
		return err
	}
	moveFacility(b, t.NewFacility)
	return nil
}

// Options параметры для TransitionFor
type Options struct {
	NewFacility domain.FacilityID
	Reason      string
	ByRequester bool
}

// TransitionFor выбирает ребро по паре (текущий статус, запрошенный статус).
// Любая пара вне машины состояний дает ErrInvalidTransition.
func TransitionFor(current, requested domain.BookingStatus, opts Options) (Transition, error) {
	switch {
	case current == domain.StatusPending && requested == domain.StatusBooked:
		return Approve{NewFacility: opts.NewFacility}, nil
	case current == domain.StatusPending && requested == domain.StatusRejected:
		return Reject{Reason: opts.Reason}, nil
	case current == domain.StatusBooked && requested == domain.StatusCancelled:
		return Cancel{ByRequester: opts.ByRequester}, nil
	case current == domain.StatusRejected && requested == domain.StatusPending:
		return Reopen{}, nil
	case current == domain.StatusBooked && requested == domain.StatusBooked:
		return Reassign{NewFacility: opts.NewFacility}, nil
	default:
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, requested)
	}
}

// moveFacility меняет зал; OriginalFacility фиксируется только при первом переназначении
func moveFacility(b *domain.Booking, newFacility domain.FacilityID) {
	if newFacility == b.Facility {
		return
	}
	if b.OriginalFacility == "" {
		b.OriginalFacility = b.Facility
	}
	b.Facility = newFacility
}

func appendNote(notes, note string) string {
	if strings.TrimSpace(notes) == "" {
		return note
	}
	return notes + "\n" + note
}

func (env *applyEnv) checkFacility(id domain.FacilityID) error {
	if env.catalog == nil {
		return nil
	}
	if !env.catalog.Has(id) {
		return fmt.Errorf("%w: %s", ErrUnknownFacility, id)
	}
	return nil
}
