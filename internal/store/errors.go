package store

import "errors"

var (
	// ErrNotFound возвращается, когда бронирование с указанными (date, id) отсутствует
	ErrNotFound = errors.New("store: booking not found")

	// ErrDuplicateID возвращается при вставке бронирования с уже занятым ID
	ErrDuplicateID = errors.New("store: duplicate booking id")

	// ErrInvalidBooking возвращается при попытке сохранить бронирование без даты
	ErrInvalidBooking = errors.New("store: invalid booking")
)
