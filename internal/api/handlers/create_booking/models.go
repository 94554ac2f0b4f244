package create_booking

import (
	"github.com/m04kA/SMC-HallBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-HallBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-HallBooking/pkg/types"
)

// CreateBookingRequest HTTP request model (форма бронирования зала)
type CreateBookingRequest struct {
	Facility  string `json:"facility"`
	Date      string `json:"date"`      // "2025-03-01" или RFC3339
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "12:00"

	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	Designation string `json:"designation"`
	Department  string `json:"department"`

	Title                  string `json:"title"`
	Purpose                string `json:"purpose"`
	ExpectedAttendees      int    `json:"expectedAttendees"`
	AdditionalRequirements string `json:"additionalRequirements,omitempty"`
	ThumbnailURL           string `json:"thumbnailUrl,omitempty"`
	IsInviteOnly           bool   `json:"isInviteOnly"`

	IsGuestLecture bool   `json:"isGuestLecture"`
	GuestName      string `json:"guestName,omitempty"`
	GuestDetails   string `json:"guestDetails,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	date, err := types.ParseDateKey(r.Date)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		Facility:               domain.FacilityID(r.Facility),
		Date:                   date,
		StartTime:              types.TimeString(r.StartTime),
		EndTime:                types.TimeString(r.EndTime),
		Email:                  r.Email,
		Phone:                  r.Phone,
		Designation:            r.Designation,
		Department:             r.Department,
		Title:                  r.Title,
		Purpose:                r.Purpose,
		ExpectedAttendees:      r.ExpectedAttendees,
		AdditionalRequirements: r.AdditionalRequirements,
		ThumbnailURL:           r.ThumbnailURL,
		IsInviteOnly:           r.IsInviteOnly,
		IsGuestLecture:         r.IsGuestLecture,
		GuestName:              r.GuestName,
		GuestDetails:           r.GuestDetails,
	}, nil
}
