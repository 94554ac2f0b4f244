package create_booking

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-HallBooking/internal/domain"
	"github.com/m04kA/SMC-HallBooking/internal/service/bookings/models"
)

// UseCase use case для подачи заявки на бронирование зала
type UseCase struct {
	submitter    BookingSubmitter
	catalog      *domain.Catalog
	config       Config
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	submitter BookingSubmitter,
	catalog *domain.Catalog,
	config Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		submitter:    submitter,
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

// Execute выполняет use case создания заявки.
// Проверки формы и календаря здесь, остальные (обязательные поля, вместимость,
// пересечение с booked-бронированиями) выполняет сервис бронирований.
func (uc *UseCase) Execute(ctx context.Context, actor domain.Actor, req *Request) (*models.BookingResponse, error) {
	uc.logger.Info("CreateBooking: user=%s, facility=%s, date=%s, time=%s-%s",
		actor.Name, req.Facility, req.Date, req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем зал
	if !uc.catalog.Has(req.Facility) {
		uc.logger.Warn("CreateBooking: facility %s not found", req.Facility)
		return nil, ErrFacilityNotFound
	}

	// 3. Валидация даты и времени относительно текущего момента
	now := uc.timeProvider.Now()
	date, err := req.Date.Time()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := validateDate(date, now, uc.config.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}
	if err := validateBookingTime(date, req.StartTime, now, uc.config.MinBookingNoticeMinutes); err != nil {
		uc.logger.Warn("CreateBooking: booking time validation failed: %v", err)
		return nil, err
	}

	// 4. Создаем заявку
	created, err := uc.submitter.Submit(ctx, actor, req.toDomain())
	if err != nil {
		uc.logger.Warn("CreateBooking: submit failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", created.ID)
	return created, nil
}
