package get_facilities

import (
	"context"

	"github.com/m04kA/SMC-HallBooking/internal/service/bookings/models"
)

type BookingService interface {
	Facilities(ctx context.Context) *models.FacilityListResponse
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
