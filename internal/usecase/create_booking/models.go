package create_booking

import (
	"github.com/m04kA/SMC-HallBooking/internal/domain"
	"github.com/m04kA/SMC-HallBooking/pkg/types"
)

// Config ограничения на дату и время заявки
type Config struct {
	AdvanceBookingDays      int // 0 = без ограничений
	MinBookingNoticeMinutes int
}

// Request модель запроса на создание заявки (форма бронирования)
type Request struct {
	Facility  domain.FacilityID
	Date      types.DateKey
	StartTime types.TimeString
	EndTime   types.TimeString

	Email       string
	Phone       string // опционально
	Designation string
	Department  string

	Title                  string
	Purpose                string
	ExpectedAttendees      int
	AdditionalRequirements string
	ThumbnailURL           string
	IsInviteOnly           bool

	IsGuestLecture bool
	GuestName      string
	GuestDetails   string
}

// toDomain конвертирует запрос в domain модель
func (r *Request) toDomain() domain.Booking {
	b := domain.Booking{
		Facility:               r.Facility,
		Date:                   r.Date,
		StartTime:              r.StartTime,
		EndTime:                r.EndTime,
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
	}

	// Сведения о госте сохраняются только для гостевой лекции
	if r.IsGuestLecture {
		b.GuestName = r.GuestName
		b.GuestDetails = r.GuestDetails
	}

	return b
}
