package domain

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HallBooking/pkg/types"
)

// ErrInvalidSlot is returned when a slot has a malformed date or time range
var ErrInvalidSlot = errors.New("invalid slot")

// Slot represents a (facility, date, start, end) reservation window
type Slot struct {
	Facility  FacilityID
	Date      types.DateKey
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Validate checks the date and time formats and that StartTime < EndTime.
// Overnight windows are not supported.
func (s Slot) Validate() error {
	if s.Facility == "" {
		return fmt.Errorf("%w: facility is required", ErrInvalidSlot)
	}
	if err := s.Date.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSlot, err)
	}
	if err := s.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start: %v", ErrInvalidSlot, err)
	}
	if err := s.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: end: %v", ErrInvalidSlot, err)
	}
	if !s.StartTime.IsBefore(s.EndTime) {
		return fmt.Errorf("%w: start %s must be before end %s", ErrInvalidSlot, s.StartTime, s.EndTime)
	}
	return nil
}

// Overlaps reports whether two slots on the same facility and date intersect.
// Intervals are half-open: a slot ending at 10:00 does not overlap one starting at 10:00.
func (s Slot) Overlaps(other Slot) bool {
	if s.Facility != other.Facility || s.Date != other.Date {
		return false
	}
	return s.StartTime.IsBefore(other.EndTime) && s.EndTime.IsAfter(other.StartTime)
}
