package bookings

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/m04kA/SMC-HallBooking/internal/aggregate"
	"github.com/m04kA/SMC-HallBooking/internal/conflict"
	"github.com/m04kA/SMC-HallBooking/internal/domain"
	"github.com/m04kA/SMC-HallBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-HallBooking/pkg/types"
)

// GetByID получает бронирование по ID.
// Пользователь видит только свои бронирования, администратор любые.
func (s *Service) GetByID(ctx context.Context, actor domain.Actor, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%s", id, actor.Name)

	s.mu.RLock()
	booking, err := find(s.store, id)
	s.mu.RUnlock()
	if err != nil {
		s.logger.Warn("GetByID: booking id=%d not found", id)
		return nil, err
	}

	if err := requireOwnerOrAdmin(actor, &booking); err != nil {
		s.logger.Warn("GetByID: access denied for user=%s to booking id=%d", actor.Name, id)
		return nil, err
	}

	return models.FromDomainBooking(&booking), nil
}

// UserBookings возвращает бронирования actor, в хронологическом порядке
func (s *Service) UserBookings(ctx context.Context, actor domain.Actor) (*models.BookingListResponse, error) {
	s.logger.Info("UserBookings: fetching bookings for user=%s", actor.Name)

	if strings.TrimSpace(actor.Name) == "" {
		return nil, fmt.Errorf("%w: UserBookings - anonymous actor", ErrAccessDenied)
	}

	all, _ := s.snapshot()
	mine := aggregate.ByUser(all, actor.Name)
	aggregate.SortChronologically(mine)

	s.logger.Info("UserBookings: successfully fetched %d bookings for user=%s", len(mine), actor.Name)
	return models.FromDomainBookingList(mine), nil
}

// ListBookings список бронирований для администратора с фильтром по статусу и пагинацией
func (s *Service) ListBookings(ctx context.Context, actor domain.Actor, req *models.ListBookingsRequest) (*models.BookingPageResponse, error) {
	s.logger.Info("ListBookings: user=%s, status=%v, page=%d", actor.Name, req.Status, req.Page)

	if err := requireAdmin(actor); err != nil {
		s.logger.Warn("ListBookings: access denied for user=%s", actor.Name)
		return nil, err
	}

	filter, err := s.toFilter(req)
	if err != nil {
		s.logger.Warn("ListBookings: invalid filter: %v", err)
		return nil, err
	}

	all, _ := s.snapshot()
	if filter.Status != nil {
		all = aggregate.FilterByStatus(all, *filter.Status)
	}
	aggregate.SortChronologically(all)

	page, total := aggregate.Paginate(all, filter.Page, filter.Limit)
	totalPages := (total + filter.Limit - 1) / filter.Limit

	s.logger.Info("ListBookings: returning %d of %d bookings", len(page), total)
	return &models.BookingPageResponse{
		Bookings:   models.FromDomainBookings(page),
		Page:       filter.Page,
		Limit:      filter.Limit,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// CheckClash проверяет, есть ли пересечение, если перенести бронирование в facility.
// Пустой facility означает текущий зал бронирования.
func (s *Service) CheckClash(ctx context.Context, actor domain.Actor, id int64, facility domain.FacilityID) (*models.ClashResponse, error) {
	s.logger.Info("CheckClash: booking id=%d, facility=%s", id, facility)

	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	s.mu.RLock()
	candidate, err := find(s.store, id)
	all := s.store.All()
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	if facility != "" {
		if !s.catalog.Has(facility) {
			return nil, fmt.Errorf("%w: %s", ErrFacilityNotFound, facility)
		}
		candidate.Facility = facility
	}

	resp := &models.ClashResponse{Facility: string(candidate.Facility)}
	if clash := conflict.FindClash(candidate, all); clash != nil {
		resp.HasClash = true
		resp.Clash = models.FromDomainBooking(clash)
	}
	return resp, nil
}

// SuggestFacilities залы, куда бронирование можно перенести без пересечений
func (s *Service) SuggestFacilities(ctx context.Context, actor domain.Actor, id int64) (*models.FacilityListResponse, error) {
	s.logger.Info("SuggestFacilities: booking id=%d", id)

	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	s.mu.RLock()
	candidate, err := find(s.store, id)
	all := s.store.All()
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	free := conflict.FreeFacilities(candidate, all, s.catalog)
	s.logger.Info("SuggestFacilities: %d free facilities for booking id=%d", len(free), id)
	return s.facilityList(free), nil
}

// Facilities каталог залов
func (s *Service) Facilities(ctx context.Context) *models.FacilityListResponse {
	return s.facilityList(s.catalog.All())
}

// DailySchedule расписание booked-бронирований по залам на дату
func (s *Service) DailySchedule(ctx context.Context, date types.DateKey) (*models.ScheduleResponse, error) {
	s.logger.Info("DailySchedule: date=%s", date)

	if err := date.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	all, _ := s.snapshot()
	byFacility := aggregate.ByFacilityPerDay(all, date)

	resp := &models.ScheduleResponse{
		Date:       date.String(),
		Facilities: make([]models.FacilitySchedule, 0, len(byFacility)),
	}
	// Залы в порядке каталога, затем залы вне каталога по имени
	seen := make(map[domain.FacilityID]bool, len(byFacility))
	for _, f := range s.catalog.All() {
		seen[f.ID] = true
		resp.Facilities = append(resp.Facilities, models.FacilitySchedule{
			Facility:    string(f.ID),
			DisplayName: displayName(f),
			Bookings:    models.FromDomainBookings(byFacility[f.ID]),
		})
	}
	rest := make([]string, 0)
	for id := range byFacility {
		if !seen[id] {
			rest = append(rest, string(id))
		}
	}
	sort.Strings(rest)
	for _, id := range rest {
		resp.Facilities = append(resp.Facilities, models.FacilitySchedule{
			Facility:    id,
			DisplayName: id,
			Bookings:    models.FromDomainBookings(byFacility[domain.FacilityID(id)]),
		})
	}

	return resp, nil
}

// UpcomingPublic публичные семинары с сегодняшнего дня
func (s *Service) UpcomingPublic(ctx context.Context) *models.BookingListResponse {
	today := types.NewDateKey(s.timeNow())
	all, _ := s.snapshot()
	return models.FromDomainBookingList(aggregate.UpcomingPublic(all, today))
}

// BookingsOn бронирования на дату в любом статусе
func (s *Service) BookingsOn(ctx context.Context, date types.DateKey) []domain.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.OnDate(date)
}

func (s *Service) toFilter(req *models.ListBookingsRequest) (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		Page:  req.Page,
		Limit: req.Limit,
	}

	if req.Status != nil && *req.Status != "" && *req.Status != "all" {
		status, ok := domain.ParseStatus(*req.Status)
		if !ok {
			return filter, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
		}
		filter.Status = &status
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = s.pageSize
	}
	if filter.Limit > domain.MaxPageSize {
		filter.Limit = domain.MaxPageSize
	}

	return filter, nil
}

func (s *Service) facilityList(facilities []domain.Facility) *models.FacilityListResponse {
	resp := &models.FacilityListResponse{Facilities: make([]models.FacilityResponse, 0, len(facilities))}
	for _, f := range facilities {
		item := models.FromDomainFacility(f)
		item.Capacity = s.validator.CapacityOf(f.ID)
		item.DisplayName = displayName(f)
		resp.Facilities = append(resp.Facilities, item)
	}
	return resp
}

func displayName(f domain.Facility) string {
	if f.DisplayName != "" {
		return f.DisplayName
	}
	return string(f.ID)
}
