package lifecycle

import (
	"time"

	"github.com/m04kA/SMC-HallBooking/internal/domain"
)

// CapacityValidator проверка вместимости зала
type CapacityValidator interface {
	Validate(expectedAttendees int, facility domain.FacilityID) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
