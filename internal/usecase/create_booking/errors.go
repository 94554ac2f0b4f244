package create_booking

import "errors"

var (
	// ErrFacilityNotFound возвращается, когда зал отсутствует в каталоге
	ErrFacilityNotFound = errors.New("create_booking: facility not found")

	// ErrInvalidDate возвращается при некорректной или прошедшей дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrTooLateToBook возвращается, когда попытка забронировать слот нарушает minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")
)
