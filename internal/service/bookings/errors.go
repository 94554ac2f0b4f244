package bookings

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HallBooking/internal/capacity"
	"github.com/m04kA/SMC-HallBooking/internal/lifecycle"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidCount возвращается, когда количество участников не положительное
	ErrInvalidCount = errors.New("expected attendees must be positive")

	// ErrOverCapacity возвращается, когда участников больше вместимости зала
	ErrOverCapacity = errors.New("expected attendees exceed facility capacity")

	// ErrSlotClash возвращается, когда слот уже занят другим бронированием
	ErrSlotClash = errors.New("slot clashes with an existing booking")

	// ErrInvalidTransition возвращается при недопустимой смене статуса
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrMissingReason возвращается при отклонении без причины
	ErrMissingReason = errors.New("rejection reason is required")

	// ErrFacilityNotFound возвращается для зала, которого нет в каталоге
	ErrFacilityNotFound = errors.New("facility not found")

	// ErrUserNotFound возвращается, когда пользователь не найден в каталоге
	ErrUserNotFound = errors.New("user not found")

	// ErrUserExists возвращается при добавлении пользователя с занятым именем
	ErrUserExists = errors.New("user already exists")

	// ErrAdminUndeletable возвращается при попытке удалить администратора
	ErrAdminUndeletable = errors.New("admins cannot be deleted")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

// translateError переводит ошибки движка в ошибки сервиса, сохраняя детали
func translateError(op string, err error) error {
	switch {
	case errors.Is(err, lifecycle.ErrNotFound):
		return fmt.Errorf("%w: %s - %v", ErrBookingNotFound, op, err)
	case errors.Is(err, lifecycle.ErrSlotClash):
		return fmt.Errorf("%w: %s - %v", ErrSlotClash, op, err)
	case errors.Is(err, lifecycle.ErrInvalidTransition):
		return fmt.Errorf("%w: %s - %v", ErrInvalidTransition, op, err)
	case errors.Is(err, lifecycle.ErrMissingReason):
		return fmt.Errorf("%w: %s", ErrMissingReason, op)
	case errors.Is(err, lifecycle.ErrUnknownFacility):
		return fmt.Errorf("%w: %s - %v", ErrFacilityNotFound, op, err)
	case errors.Is(err, lifecycle.ErrMissingFacility), errors.Is(err, lifecycle.ErrInvalidBooking):
		return fmt.Errorf("%w: %s - %v", ErrInvalidInput, op, err)
	case errors.Is(err, capacity.ErrInvalidCount):
		return fmt.Errorf("%w: %s - %v", ErrInvalidCount, op, err)
	case errors.Is(err, capacity.ErrOverCapacity):
		return fmt.Errorf("%w: %s - %v", ErrOverCapacity, op, err)
	case isServiceError(err):
		return err
	default:
		return fmt.Errorf("%w: %s - %v", ErrInternal, op, err)
	}
}

func isServiceError(err error) bool {
	for _, target := range []error{
		ErrBookingNotFound, ErrAccessDenied, ErrInvalidInput, ErrInvalidCount, ErrOverCapacity,
		ErrSlotClash, ErrInvalidTransition, ErrMissingReason, ErrFacilityNotFound,
		ErrUserNotFound, ErrUserExists, ErrAdminUndeletable, ErrInternal,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
