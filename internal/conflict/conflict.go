// Package conflict определяет пересечения бронирований на одном зале в один день.
// Функции чистые: не меняют входные данные и могут вызываться сколько угодно раз.
package conflict

import (
	"github.com/m04kA/SMC-HallBooking/internal/domain"
)

// FindClash возвращает первое booked-бронирование на том же зале и дате,
// чей слот пересекается со слотом candidate, либо nil.
// Сам candidate (по ID) при проверке пропускается, чтобы проверять редактирование.
func FindClash(candidate domain.Booking, bookings []domain.Booking) *domain.Booking {
	slot := candidate.Slot()

	for i := range bookings {
		existing := bookings[i]

		// Неактивные бронирования слот не держат
		if !existing.HoldsSlot() {
			continue
		}
		if candidate.ID != 0 && existing.ID == candidate.ID {
			continue
		}

		// Строгие неравенства: граничащие интервалы не пересекаются
		if slot.Overlaps(existing.Slot()) {
			clash := existing
			return &clash
		}
	}

	return nil
}

// HasClash сокращение для FindClash(...) != nil
func HasClash(candidate domain.Booking, bookings []domain.Booking) bool {
	return FindClash(candidate, bookings) != nil
}

// FreeFacilities возвращает залы каталога, на которые можно перенести candidate
// без пересечений. Текущий зал candidate в результат не включается.
func FreeFacilities(candidate domain.Booking, bookings []domain.Booking, catalog *domain.Catalog) []domain.Facility {
	free := make([]domain.Facility, 0)

	for _, facility := range catalog.All() {
		if facility.ID == candidate.Facility {
			continue
		}

		moved := candidate
		moved.Facility = facility.ID
		if !HasClash(moved, bookings) {
			free = append(free, facility)
		}
	}

	return free
}
