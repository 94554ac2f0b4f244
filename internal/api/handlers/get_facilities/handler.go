package get_facilities

import (
	"net/http"

	"github.com/m04kA/SMC-HallBooking/internal/api/handlers"
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

// Handle GET /api/v1/facilities
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result := h.service.Facilities(r.Context())

	h.logger.Info("GET /facilities - Facilities retrieved: count=%d", len(result.Facilities))
	handlers.RespondJSON(w, http.StatusOK, result)
}
