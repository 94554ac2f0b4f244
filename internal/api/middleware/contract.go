package middleware

import (
	"context"
	"time"

	"github.com/m04kA/SMC-HallBooking/internal/domain"
)

// UserProvider источник пользователей для аутентификации
type UserProvider interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// HTTPMetrics приемник метрик HTTP запросов
type HTTPMetrics interface {
	ObserveHTTP(method, route string, status int, duration time.Duration)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
