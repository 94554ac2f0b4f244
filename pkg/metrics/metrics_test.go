package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveTransition(t *testing.T) {
	m := NewWithRegistry("hall-booking", prometheus.NewRegistry())

	m.ObserveTransition("approve", nil)
	m.ObserveTransition("approve", nil)
	m.ObserveTransition("approve", errors.New("clash"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.TransitionsTotal.WithLabelValues("approve", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TransitionsTotal.WithLabelValues("approve", "error")))
}

func TestSetStatusCounts(t *testing.T) {
	m := NewWithRegistry("hall-booking", prometheus.NewRegistry())

	m.SetStatusCounts(map[string]int{"pending": 3, "booked": 1})

	assert.Equal(t, 3.0, testutil.ToFloat64(m.StoredBookings.WithLabelValues("pending")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoredBookings.WithLabelValues("booked")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveTransition("reject", nil)
		m.SetStatusCounts(map[string]int{"booked": 1})
		m.ObserveHTTP("GET", "/x", 200, time.Millisecond)
		m.ObserveDBQuery("select", nil, time.Millisecond)
		m.SetDBConnections(1, 1, 0)
	})
}

func TestObserveHTTP(t *testing.T) {
	m := NewWithRegistry("hall-booking", prometheus.NewRegistry())

	m.ObserveHTTP("GET", "/api/v1/facilities", 200, 5*time.Millisecond)
	m.ObserveHTTP("GET", "/api/v1/facilities", 200, 5*time.Millisecond)
	m.ObserveHTTP("POST", "/api/v1/bookings", 409, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/facilities", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/bookings", "409")))
}

func TestSetDBConnections(t *testing.T) {
	m := NewWithRegistry("hall-booking", prometheus.NewRegistry())

	m.SetDBConnections(5, 2, 3)

	assert.Equal(t, 5.0, testutil.ToFloat64(m.DBConnections.WithLabelValues("open")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.DBConnections.WithLabelValues("in_use")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.DBConnections.WithLabelValues("idle")))
}
