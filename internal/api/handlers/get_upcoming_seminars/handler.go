package get_upcoming_seminars

import (
	"net/http"

	"github.com/m04kA/SMC-HallBooking/internal/api/handlers"
	"github.com/m04kA/SMC-HallBooking/internal/service/bookings/models"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/seminars/upcoming
// Публичный список: контакты организатора и заметки администратора не отдаются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result := h.service.UpcomingPublic(r.Context())

	seminars := make([]SeminarResponse, 0, len(result.Bookings))
	for _, b := range result.Bookings {
		seminars = append(seminars, FromBookingResponse(b))
	}

	h.logger.Info("GET /seminars/upcoming - Seminars retrieved: count=%d", len(seminars))
	handlers.RespondJSON(w, http.StatusOK, SeminarListResponse{Seminars: seminars})
}

// SeminarResponse публичная карточка семинара
type SeminarResponse struct {
	ID           int64   `json:"id"`
	Facility     string  `json:"facility"`
	Date         string  `json:"date"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	Title        string  `json:"title"`
	Purpose      string  `json:"purpose"`
	Department   string  `json:"department"`
	ThumbnailURL *string `json:"thumbnailUrl,omitempty"`
	GuestName    *string `json:"guestName,omitempty"`
	GuestDetails *string `json:"guestDetails,omitempty"`
}

// SeminarListResponse список семинаров
type SeminarListResponse struct {
	Seminars []SeminarResponse `json:"seminars"`
}

// FromBookingResponse оставляет только публичные поля
func FromBookingResponse(b models.BookingResponse) SeminarResponse {
	return SeminarResponse{
		ID:           b.ID,
		Facility:     b.Facility,
		Date:         b.Date,
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
		Title:        b.Title,
		Purpose:      b.Purpose,
		Department:   b.Department,
		ThumbnailURL: b.ThumbnailURL,
		GuestName:    b.GuestName,
		GuestDetails: b.GuestDetails,
	}
}
