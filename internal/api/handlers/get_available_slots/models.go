package get_available_slots

import (
	"github.com/m04kA/SMC-HallBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-HallBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-HallBooking/pkg/types"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date     string          `json:"date"`
	Facility string          `json:"facility"`
	Slots    []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Available bool   `json:"available"`
	HeldBy    *int64 `json:"heldBy,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
			Available: slot.Available,
			HeldBy:    slot.HeldBy,
		}
	}

	return &AvailableSlotsResponse{
		Date:     resp.Date.String(),
		Facility: string(resp.Facility),
		Slots:    slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(facility, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := types.ParseDateKey(dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		Facility: domain.FacilityID(facility),
		Date:     date,
	}, nil
}
