package check_clash

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-HallBooking/internal/api/handlers"
	"github.com/m04kA/SMC-HallBooking/internal/api/middleware"
	"github.com/m04kA/SMC-HallBooking/internal/domain"
	"github.com/m04kA/SMC-HallBooking/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMissingFacility  = "зал обязателен"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNotFound         = "бронирование не найдено"
	msgFacilityNotFound = "зал не найден"
	msgForbidden        = "доступ запрещен"
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

// Handle GET /api/v1/bookings/{bookingId}/clash?facility=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.BookingID(r)
	if err != nil {
		h.logger.Warn("GET /bookings/{id}/clash - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	facility := r.URL.Query().Get("facility")
	if facility == "" {
		handlers.RespondBadRequest(w, msgMissingFacility)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.CheckClash(r.Context(), actor, bookingID, domain.FacilityID(facility))
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrFacilityNotFound):
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /bookings/{id}/clash - Access denied: user=%s", actor.Name)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /bookings/{id}/clash - Failed to check clash: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{id}/clash - booking_id=%d, facility=%s, clash=%t", bookingID, facility, result.HasClash)
	handlers.RespondJSON(w, http.StatusOK, result)
}
