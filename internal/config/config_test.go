package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HallBooking/internal/domain"
)

const minimal = `
[[facilities]]
name = "Seminar Hall"
capacity = 120

[[facilities]]
name = "VIP Lounge"
display_name = "VIP Lounge (2nd wing)"
capacity = 10
features = ["Premium Audio"]
restriction = "Reserved for external guests only."
`

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(minimal)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "hall.bookings", cfg.Notifier.Exchange)
	assert.Equal(t, domain.DefaultFacilityCapacity, cfg.Booking.DefaultCapacity)
	assert.Equal(t, domain.DefaultPageSize, cfg.Booking.PageSize)
	assert.Equal(t, time.Minute, cfg.Booking.CacheTTL())
	assert.Equal(t, "08:00", cfg.Booking.DayStart)
	assert.Equal(t, 60, cfg.Booking.SlotMinutes)
}

func TestConfig_Catalog(t *testing.T) {
	cfg, err := Parse(minimal)
	require.NoError(t, err)

	catalog := cfg.Catalog()
	assert.Equal(t, []domain.FacilityID{"Seminar Hall", "VIP Lounge"}, catalog.IDs())

	vip, ok := catalog.Get("VIP Lounge")
	require.True(t, ok)
	assert.Equal(t, "VIP Lounge (2nd wing)", vip.DisplayName)
	assert.Equal(t, 10, vip.Capacity)
	assert.True(t, vip.HasRestriction())

	hall, _ := catalog.Get("Seminar Hall")
	assert.Equal(t, "Seminar Hall", hall.DisplayName)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "no facilities", data: `[server]
http_port = 9000`},
		{name: "duplicate facility", data: `
[[facilities]]
name = "A"
[[facilities]]
name = " A "`},
		{name: "empty name", data: `
[[facilities]]
name = "  "`},
		{name: "negative capacity", data: `
[[facilities]]
name = "A"
capacity = -1`},
		{name: "bad day window", data: `
[booking]
day_start = "18:00"
day_end = "09:00"
[[facilities]]
name = "A"`},
		{name: "notifier without url", data: `
[notifier]
enabled = true
[[facilities]]
name = "A"`},
		{name: "page size too large", data: `
[booking]
page_size = 1000
[[facilities]]
name = "A"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse("[server\nhttp_port = ")
	require.ErrorIs(t, err, ErrReadConfig)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(minimal), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Facilities, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.ErrorIs(t, err, ErrReadConfig)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "halls", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=halls sslmode=disable", d.DSN())
}

func TestLoad_RepositoryConfig(t *testing.T) {
	cfg, err := Load("../../config.toml")
	require.NoError(t, err)
	assert.Len(t, cfg.Catalog().IDs(), 9)
	assert.Equal(t, 10, cfg.Catalog().All()[8].Capacity)
}
