package bookings

import (
	"context"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-HallBooking/internal/aggregate"
	"github.com/m04kA/SMC-HallBooking/internal/domain"
	"github.com/m04kA/SMC-HallBooking/internal/service/bookings/models"
)

// Dashboard сводка для администратора.
// Агрегаты по бронированиям кэшируются по версии хранилища: любая мутация дает новый ключ.
// Число пользователей берется из каталога при каждом запросе.
func (s *Service) Dashboard(ctx context.Context, actor domain.Actor) (*models.DashboardResponse, error) {
	if err := requireAdmin(actor); err != nil {
		s.logger.Warn("Dashboard: access denied for user=%s", actor.Name)
		return nil, err
	}

	totalUsers, err := s.userRepo.Count(ctx)
	if err != nil {
		s.logger.Error("Dashboard: failed to count users: %v", err)
		return nil, fmt.Errorf("%w: Dashboard - user repository error: %v", ErrInternal, err)
	}

	resp := *s.bookingStats()
	resp.TotalUsers = totalUsers
	return &resp, nil
}

func (s *Service) bookingStats() *models.DashboardResponse {
	all, version := s.snapshot()
	key := fmt.Sprintf("dashboard:%d", version)

	if cached, ok := s.cache.Get(key); ok {
		return cached.(*models.DashboardResponse)
	}

	counts := aggregate.StatusCounts(all)
	stats := &models.DashboardResponse{
		TotalBookings: len(all),
		Pending:       counts[domain.StatusPending],
		Booked:        counts[domain.StatusBooked],
		Rejected:      counts[domain.StatusRejected],
		Cancelled:     counts[domain.StatusCancelled],
		ByFacility:    s.facilityUsage(aggregate.BookedPerFacility(all)),
		ByMonth:       sortedEntries(aggregate.GroupByMonth(all), byKey),
		ByDepartment:  sortedEntries(aggregate.GroupByDepartment(all), byCountDesc),
		Version:       version,
	}

	s.cache.SetDefault(key, stats)
	s.logger.Info("Dashboard: computed for version=%d", version)
	return stats
}

// facilityUsage порядок залов как в каталоге, залы без бронирований опускаются
func (s *Service) facilityUsage(booked map[domain.FacilityID]int) []models.FacilityUsage {
	out := make([]models.FacilityUsage, 0, len(booked))
	seen := make(map[domain.FacilityID]bool, len(booked))

	for _, f := range s.catalog.All() {
		seen[f.ID] = true
		if booked[f.ID] == 0 {
			continue
		}
		out = append(out, models.FacilityUsage{
			Facility:    string(f.ID),
			DisplayName: displayName(f),
			Booked:      booked[f.ID],
		})
	}

	rest := make([]string, 0)
	for id := range booked {
		if !seen[id] {
			rest = append(rest, string(id))
		}
	}
	sort.Strings(rest)
	for _, id := range rest {
		out = append(out, models.FacilityUsage{Facility: id, DisplayName: id, Booked: booked[domain.FacilityID(id)]})
	}

	return out
}

type entryOrder func(a, b models.CountEntry) bool

func byKey(a, b models.CountEntry) bool { return a.Key < b.Key }

func byCountDesc(a, b models.CountEntry) bool {
	if a.Count != b.Count {
		return a.Count > b.Count
	}
	return a.Key < b.Key
}

func sortedEntries(counts map[string]int, less entryOrder) []models.CountEntry {
	out := make([]models.CountEntry, 0, len(counts))
	for k, v := range counts {
		out = append(out, models.CountEntry{Key: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
