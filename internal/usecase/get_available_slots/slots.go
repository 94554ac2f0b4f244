package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-HallBooking/internal/conflict"
	"github.com/m04kA/SMC-HallBooking/internal/domain"
	"github.com/m04kA/SMC-HallBooking/pkg/types"
)

// generateTimeSlots генерирует сетку слотов на день с шагом slotDuration.
// Для сегодняшней даты отбрасывает слоты, начинающиеся раньше now + minBookingNoticeMinutes.
func generateTimeSlots(
	dayStart types.TimeString,
	dayEnd types.TimeString,
	slotDuration int,
	requestDate time.Time,
	now time.Time,
	minBookingNoticeMinutes int,
) ([]types.TimeString, error) {
	if isDateInPast(requestDate, now) {
		return []types.TimeString{}, nil
	}

	// Шаг 1: Генерируем ВСЕ слоты от начала дня до конца
	allSlots := make([]types.TimeString, 0)
	currentSlot := dayStart

	for currentSlot.IsBefore(dayEnd) {
		slotEnd, err := currentSlot.AddMinutes(slotDuration)
		if err != nil {
			// Конец слота за пределами суток
			break
		}
		if slotEnd.IsAfter(dayEnd) {
			break
		}

		allSlots = append(allSlots, currentSlot)
		currentSlot = slotEnd
	}

	// Шаг 2: Если дата НЕ сегодня - возвращаем все слоты
	if !isSameDay(requestDate, now) {
		return allSlots, nil
	}

	// Шаг 3: Сегодня - оставляем только слоты не раньше now + minBookingNoticeMinutes
	minAllowedTime, err := types.NewTimeString(now).AddMinutes(minBookingNoticeMinutes)
	if err != nil {
		// Уведомление переходит через полночь: на сегодня слотов нет
		return []types.TimeString{}, nil
	}

	availableSlots := make([]types.TimeString, 0)
	for _, slot := range allSlots {
		if !slot.IsBefore(minAllowedTime) {
			availableSlots = append(availableSlots, slot)
		}
	}

	return availableSlots, nil
}

// markAvailability помечает слоты, пересекающиеся с booked-бронированиями зала.
// Граничащие интервалы (конец бронирования = начало слота) не пересекаются.
func markAvailability(
	slots []types.TimeString,
	slotDuration int,
	facility domain.FacilityID,
	date types.DateKey,
	bookings []domain.Booking,
) []Slot {
	result := make([]Slot, 0, len(slots))

	for _, start := range slots {
		end, err := start.AddMinutes(slotDuration)
		if err != nil {
			continue
		}

		candidate := domain.Booking{
			Facility:  facility,
			Date:      date,
			StartTime: start,
			EndTime:   end,
		}

		slot := Slot{StartTime: start, EndTime: end, Available: true}
		if clash := conflict.FindClash(candidate, bookings); clash != nil {
			id := clash.ID
			slot.Available = false
			slot.HeldBy = &id
		}
		result = append(result, slot)
	}

	return result
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}
