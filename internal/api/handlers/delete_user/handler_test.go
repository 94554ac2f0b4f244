package delete_user

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-HallBooking/internal/api/middleware"
	"github.com/m04kA/SMC-HallBooking/internal/domain"
	"github.com/m04kA/SMC-HallBooking/internal/service/bookings"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	err   error
	gotID int64
}

func (s *fakeService) DeleteUser(ctx context.Context, actor domain.Actor, id int64) error {
	s.gotID = id
	return s.err
}

func serve(svc UserService, id string, withActor bool) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/users/{userId}", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodDelete)

	req := httptest.NewRequest(http.MethodDelete, "/users/"+id, nil)
	if withActor {
		req = req.WithContext(middleware.WithActor(req.Context(), domain.Actor{UserID: 1, Name: "Admin", Role: domain.RoleAdmin}))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Handle(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		actor    bool
		err      error
		wantCode int
	}{
		{name: "deleted", id: "5", actor: true, wantCode: http.StatusNoContent},
		{name: "bad id", id: "abc", actor: true, wantCode: http.StatusBadRequest},
		{name: "zero id", id: "0", actor: true, wantCode: http.StatusBadRequest},
		{name: "no actor", id: "5", wantCode: http.StatusUnauthorized},
		{name: "forbidden", id: "5", actor: true, err: bookings.ErrAccessDenied, wantCode: http.StatusForbidden},
		{name: "not found", id: "5", actor: true, err: bookings.ErrUserNotFound, wantCode: http.StatusNotFound},
		{name: "admin", id: "1", actor: true, err: fmt.Errorf("%w: user id=1", bookings.ErrAdminUndeletable), wantCode: http.StatusConflict},
		{name: "internal", id: "5", actor: true, err: bookings.ErrInternal, wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{err: tt.err}
			rec := serve(svc, tt.id, tt.actor)
			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusNoContent {
				assert.Equal(t, int64(5), svc.gotID)
			}
		})
	}
}
