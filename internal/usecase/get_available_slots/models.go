package get_available_slots

import (
	"github.com/m04kA/SMC-HallBooking/internal/domain"
	"github.com/m04kA/SMC-HallBooking/pkg/types"
)

// Config параметры сетки слотов
type Config struct {
	DayStart                types.TimeString // начало рабочего дня залов, "08:00"
	DayEnd                  types.TimeString // конец рабочего дня залов, "20:00"
	SlotDurationMinutes     int
	AdvanceBookingDays      int // 0 = без ограничений
	MinBookingNoticeMinutes int
}

// Request модель запроса на получение слотов зала
type Request struct {
	Facility domain.FacilityID
	Date     types.DateKey
}

// Response модель ответа со списком слотов
type Response struct {
	Date     types.DateKey
	Facility domain.FacilityID
	Slots    []Slot
}

// Slot модель временного слота
type Slot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Available bool
	HeldBy    *int64 // ID booked-бронирования, занимающего слот
}
