package update_booking_status

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

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
	err     error
	gotID   int64
	gotReq  *models.UpdateStatusRequest
	gotUser string
}

func (s *fakeService) UpdateStatus(ctx context.Context, actor domain.Actor, id int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.gotID, s.gotReq, s.gotUser = id, req, actor.Name
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingResponse{ID: id, Status: req.Status}, nil
}

func serve(svc BookingService, id, body string, withActor bool) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/bookings/{bookingId}/status", NewHandler(svc, nopLogger{}).Handle)

	req := httptest.NewRequest(http.MethodPatch, "/bookings/"+id+"/status", strings.NewReader(body))
	if withActor {
		req = req.WithContext(middleware.WithActor(req.Context(), domain.Actor{UserID: 1, Name: "Registrar", Role: domain.RoleAdmin}))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Success(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "12", `{"status":"booked","facility":"Seminar Hall"}`, true)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(12), svc.gotID)
	assert.Equal(t, "Seminar Hall", svc.gotReq.Facility)
	assert.Equal(t, "Registrar", svc.gotUser)
	assert.Contains(t, rec.Body.String(), `"status":"booked"`)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		body     string
		actor    bool
		err      error
		wantCode int
	}{
		{name: "bad id", id: "x", body: `{}`, actor: true, wantCode: http.StatusBadRequest},
		{name: "no actor", id: "1", body: `{}`, wantCode: http.StatusUnauthorized},
		{name: "bad body", id: "1", body: `{`, actor: true, wantCode: http.StatusBadRequest},
		{name: "not found", id: "1", body: `{"status":"booked"}`, actor: true, err: bookings.ErrBookingNotFound, wantCode: http.StatusNotFound},
		{name: "forbidden", id: "1", body: `{"status":"booked"}`, actor: true, err: bookings.ErrAccessDenied, wantCode: http.StatusForbidden},
		{name: "invalid transition", id: "1", body: `{"status":"pending"}`, actor: true, err: bookings.ErrInvalidTransition, wantCode: http.StatusConflict},
		{name: "clash", id: "1", body: `{"status":"booked"}`, actor: true, err: fmt.Errorf("%w: Approve", bookings.ErrSlotClash), wantCode: http.StatusConflict},
		{name: "missing reason", id: "1", body: `{"status":"rejected"}`, actor: true, err: bookings.ErrMissingReason, wantCode: http.StatusBadRequest},
		{name: "unknown facility", id: "1", body: `{"status":"booked","facility":"Moon"}`, actor: true, err: bookings.ErrFacilityNotFound, wantCode: http.StatusNotFound},
		{name: "internal", id: "1", body: `{"status":"booked"}`, actor: true, err: bookings.ErrInternal, wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, tt.id, tt.body, tt.actor)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestHandler_InvalidInputHidesDetails(t *testing.T) {
	err := fmt.Errorf("%w: UpdateStatus - lifecycle: facility is required", bookings.ErrInvalidInput)
	rec := serve(&fakeService{err: err}, "1", `{"status":"booked"}`, true)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"`+msgInvalidInput+`"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "lifecycle")
}
