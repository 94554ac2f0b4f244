package models

import (
	"time"

	"github.com/m04kA/SMC-HallBooking/internal/domain"
)

// Request модели

// UpdateStatusRequest запрос на смену статуса бронирования
type UpdateStatusRequest struct {
	Status   string `json:"status"`
	Facility string `json:"facility,omitempty"` // новый зал для approve/reassign
	Reason   string `json:"reason,omitempty"`   // причина отклонения
}

// EditBookingRequest запрос на изменение заявки (только pending)
type EditBookingRequest struct {
	Title                  *string `json:"title,omitempty"`
	Purpose                *string `json:"purpose,omitempty"`
	ExpectedAttendees      *int    `json:"expectedAttendees,omitempty"`
	AdditionalRequirements *string `json:"additionalRequirements,omitempty"`
}

// ToDomainEdit конвертирует request в domain модель
func (r *EditBookingRequest) ToDomainEdit() domain.ContentEdit {
	return domain.ContentEdit{
		Title:                  r.Title,
		Purpose:                r.Purpose,
		ExpectedAttendees:      r.ExpectedAttendees,
		AdditionalRequirements: r.AdditionalRequirements,
	}
}

// UpdateNotesRequest запрос на изменение заметки администратора
type UpdateNotesRequest struct {
	AdminNotes string `json:"adminNotes"`
}

// ListBookingsRequest запрос списка бронирований для админки
type ListBookingsRequest struct {
	Status *string `json:"status,omitempty"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID        int64  `json:"id"`
	Facility  string `json:"facility"`
	Date      string `json:"date"`      // "2025-03-01"
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "11:00"
	Status    string `json:"status"`

	RequestedBy string  `json:"requestedBy"`
	Email       string  `json:"email"`
	Phone       *string `json:"phone,omitempty"`
	Designation string  `json:"designation"`
	Department  string  `json:"department"`

	Title                  string  `json:"title"`
	Purpose                string  `json:"purpose"`
	ExpectedAttendees      int     `json:"expectedAttendees"`
	AdditionalRequirements *string `json:"additionalRequirements,omitempty"`
	ThumbnailURL           *string `json:"thumbnailUrl,omitempty"`
	IsInviteOnly           bool    `json:"isInviteOnly"`
	GuestName              *string `json:"guestName,omitempty"`
	GuestDetails           *string `json:"guestDetails,omitempty"`

	AdminNotes       *string `json:"adminNotes,omitempty"`
	RejectionReason  *string `json:"rejectionReason,omitempty"`
	OriginalFacility *string `json:"originalFacility,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// BookingPageResponse страница списка бронирований
type BookingPageResponse struct {
	Bookings   []BookingResponse `json:"bookings"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	Total      int               `json:"total"`
	TotalPages int               `json:"totalPages"`
}

// ClashResponse результат проверки пересечения
type ClashResponse struct {
	Facility string           `json:"facility"`
	HasClash bool             `json:"hasClash"`
	Clash    *BookingResponse `json:"clash,omitempty"`
}

// FacilityResponse зал из каталога
type FacilityResponse struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"displayName"`
	Capacity    int      `json:"capacity"`
	Features    []string `json:"features"`
	Restriction *string  `json:"restriction,omitempty"`
}

// FacilityListResponse список залов
type FacilityListResponse struct {
	Facilities []FacilityResponse `json:"facilities"`
}

// FacilitySchedule расписание одного зала на день
type FacilitySchedule struct {
	Facility    string            `json:"facility"`
	DisplayName string            `json:"displayName"`
	Bookings    []BookingResponse `json:"bookings"`
}

// ScheduleResponse расписание всех залов на день
type ScheduleResponse struct {
	Date       string             `json:"date"`
	Facilities []FacilitySchedule `json:"facilities"`
}

// FacilityUsage число booked-бронирований зала
type FacilityUsage struct {
	Facility    string `json:"facility"`
	DisplayName string `json:"displayName"`
	Booked      int    `json:"booked"`
}

// CountEntry пара ключ-число для графиков
type CountEntry struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// DashboardResponse сводка для администратора
type DashboardResponse struct {
	TotalBookings int             `json:"totalBookings"`
	Pending       int             `json:"pending"`
	Booked        int             `json:"booked"`
	Rejected      int             `json:"rejected"`
	Cancelled     int             `json:"cancelled"`
	TotalUsers    int             `json:"totalUsers"`
	ByFacility    []FacilityUsage `json:"byFacility"`
	ByMonth       []CountEntry    `json:"byMonth"`
	ByDepartment  []CountEntry    `json:"byDepartment"`
	Version       uint64          `json:"version"`
}

// UserResponse пользователь из каталога
type UserResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

// CreateUserRequest запрос на добавление пользователя
type CreateUserRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role,omitempty"` // по умолчанию user
	Department string `json:"department"`
}

// UpdateRoleRequest запрос на смену роли
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// UpdateProfileRequest запрос на изменение своего профиля
type UpdateProfileRequest struct {
	Email      string `json:"email"`
	Department string `json:"department"`
}

// UserListResponse список пользователей
type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:                     b.ID,
		Facility:               string(b.Facility),
		Date:                   b.Date.String(),
		StartTime:              b.StartTime.String(),
		EndTime:                b.EndTime.String(),
		Status:                 string(b.Status),
		RequestedBy:            b.RequestedBy,
		Email:                  b.Email,
		Phone:                  optional(b.Phone),
		Designation:            b.Designation,
		Department:             b.Department,
		Title:                  b.Title,
		Purpose:                b.Purpose,
		ExpectedAttendees:      b.ExpectedAttendees,
		AdditionalRequirements: optional(b.AdditionalRequirements),
		ThumbnailURL:           optional(b.ThumbnailURL),
		IsInviteOnly:           b.IsInviteOnly,
		GuestName:              optional(b.GuestName),
		GuestDetails:           optional(b.GuestDetails),
		AdminNotes:             optional(b.AdminNotes),
		RejectionReason:        optional(b.RejectionReason),
		OriginalFacility:       optional(string(b.OriginalFacility)),
		CreatedAt:              b.CreatedAt,
		UpdatedAt:              b.UpdatedAt,
	}
}

// FromDomainBookings конвертирует список domain моделей в DTO
func FromDomainBookings(bookings []domain.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, *FromDomainBooking(&bookings[i]))
	}
	return out
}

// FromDomainBookingList конвертирует список domain моделей в ответ
func FromDomainBookingList(bookings []domain.Booking) *BookingListResponse {
	return &BookingListResponse{Bookings: FromDomainBookings(bookings)}
}

// FromDomainFacility конвертирует зал каталога в DTO
func FromDomainFacility(f domain.Facility) FacilityResponse {
	features := f.Features
	if features == nil {
		features = []string{}
	}
	return FacilityResponse{
		ID:          string(f.ID),
		DisplayName: f.DisplayName,
		Capacity:    f.Capacity,
		Features:    features,
		Restriction: optional(f.Restriction),
	}
}

// FromDomainUser конвертирует пользователя в DTO
func FromDomainUser(u *domain.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       string(u.Role),
		Department: u.Department,
	}
}

// FromDomainUsers конвертирует каталог пользователей в DTO
func FromDomainUsers(users []domain.User) *UserListResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, *FromDomainUser(&users[i]))
	}
	return &UserListResponse{Users: out}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
