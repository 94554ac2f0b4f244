// Package aggregate строит производные представления над плоским списком бронирований.
// Все функции чистые: входной срез не меняется, результат всегда новый.
package aggregate

import (
	"sort"
	"strings"

	"github.com/m04kA/SMC-HallBooking/internal/domain"
	"github.com/m04kA/SMC-HallBooking/pkg/types"
)

// Snapshot источник бронирований для Flatten
type Snapshot interface {
	All() []domain.Booking
}

// Flatten возвращает все бронирования, каждое помечено своей датой.
// Порядок совпадает с порядком обхода хранилища.
func Flatten(s Snapshot) []domain.Booking {
	return s.All()
}

// ByUser фильтрует бронирования по точному совпадению requestedBy
func ByUser(bookings []domain.Booking, userName string) []domain.Booking {
	out := make([]domain.Booking, 0)
	for _, b := range bookings {
		if b.RequestedBy == userName {
			out = append(out, b)
		}
	}
	return out
}

// FilterByStatus возвращает бронирования с указанным статусом
func FilterByStatus(bookings []domain.Booking, status domain.BookingStatus) []domain.Booking {
	out := make([]domain.Booking, 0)
	for _, b := range bookings {
		if b.Status == status {
			out = append(out, b)
		}
	}
	return out
}

// StatusCounts считает бронирования по статусам. Все статусы присутствуют в результате
func StatusCounts(bookings []domain.Booking) map[domain.BookingStatus]int {
	counts := make(map[domain.BookingStatus]int, len(domain.AllStatuses))
	for _, st := range domain.AllStatuses {
		counts[st] = 0
	}
	for _, b := range bookings {
		counts[b.Status]++
	}
	return counts
}

// ByFacilityPerDay расписание дня: booked-бронирования по залам, отсортированные по началу
func ByFacilityPerDay(bookings []domain.Booking, date types.DateKey) map[domain.FacilityID][]domain.Booking {
	out := make(map[domain.FacilityID][]domain.Booking)
	for _, b := range bookings {
		if b.Date != date || !b.HoldsSlot() {
			continue
		}
		out[b.Facility] = append(out[b.Facility], b)
	}
	for facility := range out {
		sortByStart(out[facility])
	}
	return out
}

// BookedPerFacility число booked-бронирований на зал. Залы без бронирований не попадают в результат
func BookedPerFacility(bookings []domain.Booking) map[domain.FacilityID]int {
	out := make(map[domain.FacilityID]int)
	for _, b := range bookings {
		if b.HoldsSlot() {
			out[b.Facility]++
		}
	}
	return out
}

// GroupByMonth число бронирований по месяцу даты (ключ "YYYY-MM")
func GroupByMonth(bookings []domain.Booking) map[string]int {
	out := make(map[string]int)
	for _, b := range bookings {
		month := b.Date.Month()
		if month == "" {
			continue
		}
		out[month]++
	}
	return out
}

// GroupByDepartment число бронирований по кафедре, пустая кафедра считается как "Unknown"
func GroupByDepartment(bookings []domain.Booking) map[string]int {
	out := make(map[string]int)
	for _, b := range bookings {
		dept := strings.TrimSpace(b.Department)
		if dept == "" {
			dept = domain.UnknownDepartment
		}
		out[dept]++
	}
	return out
}

// UpcomingPublic публичные семинары: booked, не только по приглашениям, с датой не раньше today.
// Отсортированы по дате, затем по времени начала.
func UpcomingPublic(bookings []domain.Booking, today types.DateKey) []domain.Booking {
	out := make([]domain.Booking, 0)
	for _, b := range bookings {
		if !b.HoldsSlot() || b.IsInviteOnly {
			continue
		}
		// DateKey в формате YYYY-MM-DD сравнивается лексикографически
		if b.Date < today {
			continue
		}
		out = append(out, b)
	}
	SortChronologically(out)
	return out
}

// SortChronologically сортирует по дате, времени начала и id
func SortChronologically(bookings []domain.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		if bookings[i].Date != bookings[j].Date {
			return bookings[i].Date < bookings[j].Date
		}
		if bookings[i].StartTime != bookings[j].StartTime {
			return bookings[i].StartTime.IsBefore(bookings[j].StartTime)
		}
		return bookings[i].ID < bookings[j].ID
	})
}

// Paginate возвращает страницу page (с единицы) размера limit и общее число элементов
func Paginate(bookings []domain.Booking, page, limit int) ([]domain.Booking, int) {
	total := len(bookings)
	if limit <= 0 {
		limit = domain.DefaultPageSize
	}
	if page <= 0 {
		page = 1
	}

	// Сравнение до умножения: (page-1)*limit переполняется на больших page
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	if page-1 >= pages {
		return []domain.Booking{}, total
	}

	start := (page - 1) * limit
	end := total
	if limit < total-start {
		end = start + limit
	}

	out := make([]domain.Booking, end-start)
	copy(out, bookings[start:end])
	return out, total
}

func sortByStart(bookings []domain.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].StartTime.IsBefore(bookings[j].StartTime)
	})
}
