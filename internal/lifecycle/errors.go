package lifecycle

import "errors"

var (
	// ErrInvalidTransition возвращается для недопустимой пары (текущий статус, новый статус)
	ErrInvalidTransition = errors.New("lifecycle: invalid status transition")

	// ErrMissingReason возвращается при отклонении без причины
	ErrMissingReason = errors.New("lifecycle: rejection reason is required")

	// ErrSlotClash возвращается, когда одобрение создало бы пересечение с booked-бронированием
	ErrSlotClash = errors.New("lifecycle: slot clashes with an existing booking")

	// ErrNotFound возвращается, когда бронирование (date, id) отсутствует в хранилище
	ErrNotFound = errors.New("lifecycle: booking not found")

	// ErrMissingFacility возвращается при переназначении без указания зала
	ErrMissingFacility = errors.New("lifecycle: new facility is required")

	// ErrUnknownFacility возвращается, когда зал отсутствует в каталоге
	ErrUnknownFacility = errors.New("lifecycle: unknown facility")

	// ErrInvalidBooking возвращается при некорректных данных новой заявки
	ErrInvalidBooking = errors.New("lifecycle: invalid booking")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("lifecycle: internal error")
)
