package bookings

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/m04kA/SMC-HallBooking/internal/capacity"
	"github.com/m04kA/SMC-HallBooking/internal/domain"
	"github.com/m04kA/SMC-HallBooking/internal/lifecycle"
	"github.com/m04kA/SMC-HallBooking/internal/store"
)

// Config параметры сервиса
type Config struct {
	PageSize          int
	DashboardCacheTTL time.Duration
}

// Service сервис для работы с бронированиями.
// Владеет хранилищем: чтения идут под RLock, мутации выполняются по одной
// над копией хранилища, сохраняются в БД и только после этого подменяют оригинал.
type Service struct {
	mu    sync.RWMutex
	store *store.Store

	catalog     *domain.Catalog
	validator   *capacity.Validator
	manager     *lifecycle.Manager
	bookingRepo BookingRepository
	userRepo    UserRepository
	notifier    Notifier
	metrics     Metrics
	cache       *gocache.Cache
	pageSize    int
	timeNow     func() time.Time
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	catalog *domain.Catalog,
	validator *capacity.Validator,
	manager *lifecycle.Manager,
	bookingRepo BookingRepository,
	userRepo UserRepository,
	notifier Notifier,
	metrics Metrics,
	cfg Config,
	logger Logger,
) *Service {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = domain.DefaultPageSize
	}
	ttl := cfg.DashboardCacheTTL
	if ttl <= 0 {
		ttl = time.Minute
	}

	return &Service{
		store:       store.New(),
		catalog:     catalog,
		validator:   validator,
		manager:     manager,
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		metrics:     metrics,
		cache:       gocache.New(ttl, 2*ttl),
		pageSize:    pageSize,
		timeNow:     time.Now,
		logger:      logger,
	}
}

// Load загружает хранилище из репозитория. Вызывается один раз при старте
func (s *Service) Load(ctx context.Context) error {
	s.logger.Info("Load: loading bookings from repository")

	bookings, err := s.bookingRepo.LoadAll(ctx)
	if err != nil {
		s.logger.Error("Load: repository error: %v", err)
		return fmt.Errorf("%w: Load - repository error: %v", ErrInternal, err)
	}

	st, err := store.Load(bookings)
	if err != nil {
		s.logger.Error("Load: failed to build store: %v", err)
		return fmt.Errorf("%w: Load - %v", ErrInternal, err)
	}

	s.mu.Lock()
	s.store = st
	s.cache.Flush()
	s.updateGauges(st)
	s.mu.Unlock()

	s.logger.Info("Load: loaded %d bookings", st.Len())
	return nil
}

// commit выполняет мутацию над копией хранилища.
// При ошибке fn или сохранения оригинал не меняется.
func (s *Service) commit(ctx context.Context, op string, fn func(draft *store.Store) (lifecycle.Event, error)) (lifecycle.Event, error) {
	s.mu.Lock()

	draft := s.store.Clone()
	event, err := fn(draft)
	if err != nil {
		s.mu.Unlock()
		s.metrics.ObserveTransition(op, err)
		return lifecycle.Event{}, translateError(op, err)
	}

	if err := s.bookingRepo.Save(ctx, &event.After); err != nil {
		s.mu.Unlock()
		s.logger.Error("%s: failed to save booking id=%d: %v", op, event.After.ID, err)
		s.metrics.ObserveTransition(op, err)
		return lifecycle.Event{}, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	s.store = draft
	s.updateGauges(draft)
	s.mu.Unlock()

	s.metrics.ObserveTransition(op, nil)
	s.publish(ctx, event)
	return event, nil
}

// snapshot возвращает плоский список бронирований и версию хранилища
func (s *Service) snapshot() ([]domain.Booking, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.All(), s.store.Version()
}

// find ищет бронирование по id в переданном хранилище
func find(st *store.Store, id int64) (domain.Booking, error) {
	b, err := st.Find(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Booking{}, fmt.Errorf("%w: id=%d", ErrBookingNotFound, id)
		}
		return domain.Booking{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return b, nil
}

// publish отправляет событие. Ошибка доставки не откатывает уже сохраненную мутацию
func (s *Service) publish(ctx context.Context, event lifecycle.Event) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Publish(ctx, event); err != nil {
		s.logger.Warn("publish: failed to publish %s for booking id=%d: %v", event.Kind, event.After.ID, err)
	}
}

func (s *Service) updateGauges(st *store.Store) {
	counts := make(map[string]int, len(domain.AllStatuses))
	for _, status := range domain.AllStatuses {
		counts[string(status)] = 0
	}
	for _, b := range st.All() {
		counts[string(b.Status)]++
	}
	s.metrics.SetStatusCounts(counts)
}

func requireAdmin(actor domain.Actor) error {
	if !actor.IsAdmin() {
		return fmt.Errorf("%w: admin role required", ErrAccessDenied)
	}
	return nil
}

func requireOwnerOrAdmin(actor domain.Actor, b *domain.Booking) error {
	if actor.IsAdmin() || actor.Owns(b) {
		return nil
	}
	return fmt.Errorf("%w: booking id=%d belongs to another user", ErrAccessDenied, b.ID)
}
