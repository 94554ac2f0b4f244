package check_clash

import (
	"context"

	"github.com/m04kA/SMC-HallBooking/internal/domain"
	"github.com/m04kA/SMC-HallBooking/internal/service/bookings/models"
)

type BookingService interface {
	CheckClash(ctx context.Context, actor domain.Actor, id int64, facility domain.FacilityID) (*models.ClashResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
