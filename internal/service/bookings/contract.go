package bookings

import (
	"context"

	"github.com/m04kA/SMC-HallBooking/internal/domain"
	"github.com/m04kA/SMC-HallBooking/internal/lifecycle"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	LoadAll(ctx context.Context) ([]domain.Booking, error)
	Save(ctx context.Context, booking *domain.Booking) error
}

// UserRepository интерфейс каталога пользователей
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, u *domain.User) (int64, error)
	Delete(ctx context.Context, id int64) error
	UpdateRole(ctx context.Context, id int64, role domain.Role) error
	UpdateProfile(ctx context.Context, u *domain.User) error
}

// Notifier публикует события жизненного цикла
type Notifier interface {
	Publish(ctx context.Context, event lifecycle.Event) error
}

// Metrics счетчики операций
type Metrics interface {
	ObserveTransition(transition string, err error)
	SetStatusCounts(counts map[string]int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
