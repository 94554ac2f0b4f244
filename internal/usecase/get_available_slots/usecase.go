package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-HallBooking/internal/domain"
)

// UseCase use case для получения сетки слотов зала на дату
type UseCase struct {
	bookings     BookingsReader
	catalog      *domain.Catalog
	config       Config
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookings BookingsReader,
	catalog *domain.Catalog,
	config Config,
	logger Logger,
) *UseCase {
	if config.SlotDurationMinutes <= 0 {
		config.SlotDurationMinutes = 60
	}
	if config.DayStart == "" {
		config.DayStart = "08:00"
	}
	if config.DayEnd == "" {
		config.DayEnd = "20:00"
	}

	return &UseCase{
		bookings:     bookings,
		catalog:      catalog,
		config:       config,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: facility=%s, date=%s", req.Facility, req.Date)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем зал
	if !uc.catalog.Has(req.Facility) {
		uc.logger.Warn("GetAvailableSlots: facility %s not found", req.Facility)
		return nil, ErrFacilityNotFound
	}

	// 3. Валидация даты
	now := uc.timeProvider.Now()
	date, err := req.Date.Time()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := validateDate(date, now, uc.config.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 4. Генерируем сетку
	timeSlots, err := generateTimeSlots(
		uc.config.DayStart,
		uc.config.DayEnd,
		uc.config.SlotDurationMinutes,
		date,
		now,
		uc.config.MinBookingNoticeMinutes,
	)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate time slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate time slots: %v", ErrInternal, err)
	}

	// 5. Помечаем занятые слоты
	bookings := uc.bookings.BookingsOn(ctx, req.Date)
	slots := markAvailability(timeSlots, uc.config.SlotDurationMinutes, req.Facility, req.Date, bookings)

	uc.logger.Info("GetAvailableSlots: generated %d slots for facility=%s, date=%s", len(slots), req.Facility, req.Date)

	return &Response{
		Date:     req.Date,
		Facility: req.Facility,
		Slots:    slots,
	}, nil
}
