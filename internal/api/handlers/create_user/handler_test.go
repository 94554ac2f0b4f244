package create_user

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
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
	err    error
	gotReq *models.CreateUserRequest
}

func (s *fakeService) CreateUser(ctx context.Context, actor domain.Actor, req *models.CreateUserRequest) (*models.UserResponse, error) {
	s.gotReq = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.UserResponse{ID: 3, Name: req.Name, Email: req.Email, Role: "user", Department: req.Department}, nil
}

func serve(svc UserService, body string, withActor bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	if withActor {
		req = req.WithContext(middleware.WithActor(req.Context(), domain.Actor{UserID: 1, Name: "Admin", Role: domain.RoleAdmin}))
	}
	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandler_Created(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, `{"name":"Carol","email":"carol@uni.edu","department":"Chemistry"}`, true)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.gotReq)
	assert.Equal(t, "Carol", svc.gotReq.Name)
	assert.Contains(t, rec.Body.String(), `"id":3`)
}

func TestHandler_Errors(t *testing.T) {
	valid := `{"name":"Carol","email":"carol@uni.edu"}`

	tests := []struct {
		name     string
		body     string
		actor    bool
		err      error
		wantCode int
	}{
		{name: "no actor", body: valid, wantCode: http.StatusUnauthorized},
		{name: "bad body", body: `{"name":`, actor: true, wantCode: http.StatusBadRequest},
		{name: "unknown field", body: `{"name":"Carol","password":"x"}`, actor: true, wantCode: http.StatusBadRequest},
		{name: "forbidden", body: valid, actor: true, err: bookings.ErrAccessDenied, wantCode: http.StatusForbidden},
		{name: "invalid input", body: valid, actor: true, err: bookings.ErrInvalidInput, wantCode: http.StatusBadRequest},
		{name: "exists", body: valid, actor: true, err: bookings.ErrUserExists, wantCode: http.StatusConflict},
		{name: "internal", body: valid, actor: true, err: bookings.ErrInternal, wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, tt.body, tt.actor)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
