package delete_user

import (
	"context"

	"github.com/m04kA/SMC-HallBooking/internal/domain"
)

type UserService interface {
	DeleteUser(ctx context.Context, actor domain.Actor, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
