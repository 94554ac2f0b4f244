package capacity

import "errors"

var (
	// ErrInvalidCount возвращается, когда количество участников не положительное
	ErrInvalidCount = errors.New("capacity: expected attendees must be a positive integer")

	// ErrOverCapacity возвращается, когда участников больше вместимости зала
	ErrOverCapacity = errors.New("capacity: expected attendees exceed facility capacity")
)
