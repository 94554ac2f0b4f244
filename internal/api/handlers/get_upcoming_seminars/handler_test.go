package get_upcoming_seminars

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-HallBooking/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct{}

func (fakeService) UpcomingPublic(ctx context.Context) *models.BookingListResponse {
	notes := "VIP guests"
	return &models.BookingListResponse{Bookings: []models.BookingResponse{{
		ID: 3, Facility: "Seminar Hall", Date: "2025-03-10", StartTime: "10:00", EndTime: "11:00",
		Title: "AI ethics", Email: "alice@uni.edu", AdminNotes: &notes,
	}}}
}

func TestHandler_HidesPrivateFields(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(fakeService{}, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/seminars/upcoming", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title":"AI ethics"`)
	assert.NotContains(t, rec.Body.String(), "alice@uni.edu")
	assert.NotContains(t, rec.Body.String(), "VIP guests")
}
