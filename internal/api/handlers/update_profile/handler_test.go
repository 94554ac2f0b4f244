package update_profile

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

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
	err      error
	gotActor domain.Actor
}

func (s *fakeService) UpdateProfile(ctx context.Context, actor domain.Actor, req *models.UpdateProfileRequest) (*models.UserResponse, error) {
	s.gotActor = actor
	if s.err != nil {
		return nil, s.err
	}
	return &models.UserResponse{ID: actor.UserID, Name: actor.Name, Email: req.Email, Department: req.Department}, nil
}

func serve(svc UserService, body string, withActor bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/users/me", strings.NewReader(body))
	if withActor {
		req = req.WithContext(middleware.WithActor(req.Context(), domain.Actor{UserID: 2, Name: "Alice", Role: domain.RoleUser}))
	}
	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandler_Handle(t *testing.T) {
	valid := `{"email":"alice@physics.uni.edu","department":"Physics"}`

	tests := []struct {
		name     string
		body     string
		actor    bool
		err      error
		wantCode int
	}{
		{name: "updated", body: valid, actor: true, wantCode: http.StatusOK},
		{name: "no actor", body: valid, wantCode: http.StatusUnauthorized},
		{name: "name is not editable", body: `{"name":"Alicia"}`, actor: true, wantCode: http.StatusBadRequest},
		{name: "invalid email", body: `{"email":"nope"}`, actor: true, err: bookings.ErrInvalidInput, wantCode: http.StatusBadRequest},
		{name: "not found", body: valid, actor: true, err: bookings.ErrUserNotFound, wantCode: http.StatusNotFound},
		{name: "internal", body: valid, actor: true, err: bookings.ErrInternal, wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{err: tt.err}
			rec := serve(svc, tt.body, tt.actor)
			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusOK {
				assert.Equal(t, int64(2), svc.gotActor.UserID)
				assert.Contains(t, rec.Body.String(), `"email":"alice@physics.uni.edu"`)
			}
		})
	}
}
