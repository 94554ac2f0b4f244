package domain

// Default configuration values
const (
	DefaultFacilityCapacity = 200 // when a facility has no declared capacity
	DefaultPageSize         = 8
	UnknownDepartment       = "Unknown"
)

// Business validation constants
const (
	MaxTitleLength        = 200
	MaxNameLength         = 100
	MaxNotesLength        = 2000
	MaxPageSize           = 100
	CancelledByUserFormat = "Cancelled by user on %s."
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// AllStatuses список всех статусов бронирования
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusBooked,
	StatusRejected,
	StatusCancelled,
}

// ParseStatus конвертирует строку в BookingStatus
func ParseStatus(s string) (BookingStatus, bool) {
	for _, st := range AllStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}
