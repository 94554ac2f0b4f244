package create_user

import (
	"context"

	"github.com/m04kA/SMC-HallBooking/internal/domain"
	"github.com/m04kA/SMC-HallBooking/internal/service/bookings/models"
)

type UserService interface {
	CreateUser(ctx context.Context, actor domain.Actor, req *models.CreateUserRequest) (*models.UserResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
