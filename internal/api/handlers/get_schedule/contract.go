package get_schedule

import (
	"context"

	"github.com/m04kA/SMC-HallBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-HallBooking/pkg/types"
)

type BookingService interface {
	DailySchedule(ctx context.Context, date types.DateKey) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
