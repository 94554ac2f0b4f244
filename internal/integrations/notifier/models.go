package notifier

import (
	"time"

	"github.com/m04kA/SMC-HallBooking/internal/lifecycle"
)

// Message тело сообщения о событии бронирования
type Message struct {
	ID               string    `json:"id"`
	Kind             string    `json:"kind"`
	BookingID        int64     `json:"bookingId"`
	Facility         string    `json:"facility"`
	Date             string    `json:"date"`
	StartTime        string    `json:"startTime"`
	EndTime          string    `json:"endTime"`
	Status           string    `json:"status"`
	RequestedBy      string    `json:"requestedBy"`
	Email            string    `json:"email"`
	Title            string    `json:"title"`
	PreviousStatus   string    `json:"previousStatus,omitempty"`
	PreviousFacility string    `json:"previousFacility,omitempty"`
	RejectionReason  string    `json:"rejectionReason,omitempty"`
	OccurredAt       time.Time `json:"occurredAt"`
}

func fromEvent(id string, e lifecycle.Event) Message {
	msg := Message{
		ID:              id,
		Kind:            string(e.Kind),
		BookingID:       e.After.ID,
		Facility:        string(e.After.Facility),
		Date:            e.After.Date.String(),
		StartTime:       e.After.StartTime.String(),
		EndTime:         e.After.EndTime.String(),
		Status:          string(e.After.Status),
		RequestedBy:     e.After.RequestedBy,
		Email:           e.After.Email,
		Title:           e.After.Title,
		RejectionReason: e.After.RejectionReason,
		OccurredAt:      e.At,
	}
	if e.Before != nil {
		msg.PreviousStatus = string(e.Before.Status)
		if e.FacilityChanged() {
			msg.PreviousFacility = string(e.Before.Facility)
		}
	}
	return msg
}
