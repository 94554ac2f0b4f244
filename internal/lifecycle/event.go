package lifecycle

import (
	"time"

	"github.com/m04kA/SMC-HallBooking/internal/domain"
)

// EventKind тип события жизненного цикла
type EventKind string

const (
	EventSubmitted   EventKind = "submitted"
	EventApproved    EventKind = "approved"
	EventRejected    EventKind = "rejected"
	EventCancelled   EventKind = "cancelled"
	EventReopened    EventKind = "reopened"
	EventReassigned  EventKind = "reassigned"
	EventEdited      EventKind = "edited"
	EventNoteUpdated EventKind = "note_updated"
)

// Event описывает примененный переход: состояние до и после
type Event struct {
	Kind   EventKind
	Before *domain.Booking // nil для EventSubmitted
	After  domain.Booking
	At     time.Time
}

// FacilityChanged returns true if the transition moved the booking to another facility
func (e Event) FacilityChanged() bool {
	return e.Before != nil && e.Before.Facility != e.After.Facility
}

// IsStatusChange returns true for events that change the booking status
func (e Event) IsStatusChange() bool {
	return e.Before != nil && e.Before.Status != e.After.Status
}
