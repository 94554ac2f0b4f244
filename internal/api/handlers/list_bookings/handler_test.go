package list_bookings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HallBooking/internal/api/middleware"
	"github.com/m04kA/SMC-HallBooking/internal/domain"
	"github.com/m04kA/SMC-HallBooking/internal/service/bookings"
	"github.com/m04kA/SMC-HallBooking/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	got *models.ListBookingsRequest
}

func (s *fakeService) ListBookings(ctx context.Context, actor domain.Actor, req *models.ListBookingsRequest) (*models.BookingPageResponse, error) {
	s.got = req
	if !actor.IsAdmin() {
		return nil, bookings.ErrAccessDenied
	}
	return &models.BookingPageResponse{Page: req.Page, Limit: 8, Total: 0, Bookings: []models.BookingResponse{}}, nil
}

func list(svc BookingService, query string, role domain.Role) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/bookings"+query, nil)
	req = req.WithContext(middleware.WithActor(req.Context(), domain.Actor{UserID: 1, Name: "X", Role: role}))
	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandler(t *testing.T) {
	svc := &fakeService{}
	rec := list(svc, "?status=pending&page=2", domain.RoleAdmin)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got.Status)
	assert.Equal(t, "pending", *svc.got.Status)
	assert.Equal(t, 2, svc.got.Page)

	assert.Equal(t, http.StatusForbidden, list(svc, "", domain.RoleUser).Code)
	assert.Equal(t, http.StatusBadRequest, list(svc, "?page=two", domain.RoleAdmin).Code)
}

func TestToServiceRequest(t *testing.T) {
	req, err := ToServiceRequest("", "", "20")
	require.NoError(t, err)
	assert.Nil(t, req.Status)
	assert.Equal(t, 20, req.Limit)

	_, err = ToServiceRequest("", "", "many")
	assert.Error(t, err)
}
