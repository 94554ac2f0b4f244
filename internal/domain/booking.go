package domain

import (
	"time"

	"github.com/m04kA/SMC-HallBooking/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusBooked    BookingStatus = "booked"
	StatusRejected  BookingStatus = "rejected"
	StatusCancelled BookingStatus = "cancelled"
)

// FacilityID identifies a bookable facility from the catalog (e.g. "VIP Lounge")
type FacilityID string

// Booking represents a request to use a facility for a fixed time window
type Booking struct {
	ID        int64
	Facility  FacilityID
	Date      types.DateKey
	StartTime types.TimeString
	EndTime   types.TimeString
	Status    BookingStatus

	// Requester metadata. RequestedBy is the join key for per-user views
	RequestedBy string
	Email       string
	Phone       string
	Designation string
	Department  string

	// Content fields, editable only while pending
	Title                  string
	Purpose                string
	ExpectedAttendees      int
	AdditionalRequirements string

	ThumbnailURL string
	IsInviteOnly bool
	GuestName    string
	GuestDetails string

	AdminNotes       string
	RejectionReason  string
	OriginalFacility FacilityID // first facility before any admin reassignment

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Slot returns the reservation window held by the booking
func (b *Booking) Slot() Slot {
	return Slot{
		Facility:  b.Facility,
		Date:      b.Date,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
	}
}

// HoldsSlot returns true if the booking blocks its slot for other bookings.
// Only booked bookings do; pending, rejected and cancelled ones do not.
func (b *Booking) HoldsSlot() bool {
	return b.Status == StatusBooked
}

// IsEditable returns true if content fields may be changed
func (b *Booking) IsEditable() bool {
	return b.Status == StatusPending
}

// WasReassigned returns true if an admin moved the booking to another facility
func (b *Booking) WasReassigned() bool {
	return b.OriginalFacility != "" && b.OriginalFacility != b.Facility
}

// IsGuestLecture returns true if the booking carries guest lecture details
func (b *Booking) IsGuestLecture() bool {
	return b.GuestName != "" || b.GuestDetails != ""
}

// ContentEdit набор полей, которые пользователь может менять у заявки в статусе pending
type ContentEdit struct {
	Title                  *string
	Purpose                *string
	ExpectedAttendees      *int
	AdditionalRequirements *string
}

// IsEmpty returns true if the edit changes nothing
func (e ContentEdit) IsEmpty() bool {
	return e.Title == nil && e.Purpose == nil && e.ExpectedAttendees == nil && e.AdditionalRequirements == nil
}

// Apply writes the non-nil fields of the edit into the booking
func (e ContentEdit) Apply(b *Booking) {
	if e.Title != nil {
		b.Title = *e.Title
	}
	if e.Purpose != nil {
		b.Purpose = *e.Purpose
	}
	if e.ExpectedAttendees != nil {
		b.ExpectedAttendees = *e.ExpectedAttendees
	}
	if e.AdditionalRequirements != nil {
		b.AdditionalRequirements = *e.AdditionalRequirements
	}
}

// BookingsFilter фильтр для списка бронирований в админке
type BookingsFilter struct {
	Status *BookingStatus // nil = все статусы
	Page   int            // с единицы
	Limit  int
}
