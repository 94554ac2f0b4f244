package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-HallBooking/internal/domain"
	userRepo "github.com/m04kA/SMC-HallBooking/internal/infra/storage/user"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUsers map[int64]domain.User

func (f fakeUsers) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if id == 500 {
		return nil, errors.New("db down")
	}
	u, ok := f[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return &u, nil
}

func TestAuth(t *testing.T) {
	users := fakeUsers{
		1: {ID: 1, Name: "Admin", Role: domain.RoleAdmin},
		2: {ID: 2, Name: "Alice", Role: domain.RoleUser},
	}

	var got domain.Actor
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := GetActor(r.Context())
		require.True(t, ok)
		got = actor
		w.WriteHeader(http.StatusNoContent)
	})
	h := Auth(users, nopLogger{})(next)

	tests := []struct {
		name     string
		header   string
		wantCode int
		wantName string
	}{
		{name: "admin", header: "1", wantCode: http.StatusNoContent, wantName: "Admin"},
		{name: "user", header: "2", wantCode: http.StatusNoContent, wantName: "Alice"},
		{name: "missing", header: "", wantCode: http.StatusUnauthorized},
		{name: "malformed", header: "abc", wantCode: http.StatusUnauthorized},
		{name: "unknown", header: "99", wantCode: http.StatusUnauthorized},
		{name: "repository failure", header: "500", wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got = domain.Actor{}
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(UserIDHeader, tt.header)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantName, got.Name)
		})
	}
}

func TestGetActor_Missing(t *testing.T) {
	_, ok := GetActor(context.Background())
	assert.False(t, ok)
}

type observed struct {
	method string
	route  string
	status int
}

type fakeHTTPMetrics struct {
	calls []observed
}

func (m *fakeHTTPMetrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	m.calls = append(m.calls, observed{method: method, route: route, status: status})
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := &fakeHTTPMetrics{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/api/v1/bookings/{bookingId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/bookings/17", nil))

	require.Len(t, m.calls, 1)
	assert.Equal(t, observed{method: "GET", route: "/api/v1/bookings/{bookingId}", status: http.StatusNotFound}, m.calls[0])
}

func TestRateLimit(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Every(time.Hour), 2)
	h := RateLimit(limiter, nopLogger{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	other := httptest.NewRequest(http.MethodGet, "/", nil)
	other.RemoteAddr = "10.0.0.2:5000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, other)
	assert.Equal(t, http.StatusOK, rec.Code)
}
