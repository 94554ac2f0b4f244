package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-HallBooking/internal/domain"
	"github.com/m04kA/SMC-HallBooking/pkg/types"
)

var (
	// ErrReadConfig возвращается, когда файл конфигурации не удалось прочитать
	ErrReadConfig = errors.New("config: failed to read config")

	// ErrInvalidConfig возвращается, когда конфигурация не проходит проверку
	ErrInvalidConfig = errors.New("config: invalid config")
)

// Config конфигурация сервиса
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Notifier   NotifierConfig   `toml:"notifier"`
	RateLimit  RateLimitConfig  `toml:"rate_limit"`
	Booking    BookingConfig    `toml:"booking"`
	Facilities []FacilityConfig `toml:"facilities"`
}

// ServerConfig настройки HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логгера
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// NotifierConfig настройки публикации событий в RabbitMQ
type NotifierConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

// RateLimitConfig ограничение запросов на один IP
type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// BookingConfig параметры бронирования
type BookingConfig struct {
	DefaultCapacity   int    `toml:"default_capacity"`
	PageSize          int    `toml:"page_size"`
	DashboardCacheTTL int    `toml:"dashboard_cache_ttl"` // секунды
	DayStart          string `toml:"day_start"`
	DayEnd            string `toml:"day_end"`
	SlotMinutes       int    `toml:"slot_minutes"`
	AdvanceDays       int    `toml:"advance_booking_days"`
	MinNoticeMinutes  int    `toml:"min_notice_minutes"`
}

// CacheTTL время жизни кэша дашборда
func (b BookingConfig) CacheTTL() time.Duration {
	return time.Duration(b.DashboardCacheTTL) * time.Second
}

// FacilityConfig зал из каталога
type FacilityConfig struct {
	Name        string   `toml:"name"`
	DisplayName string   `toml:"display_name"`
	Capacity    int      `toml:"capacity"` // 0 = вместимость по умолчанию
	Features    []string `toml:"features"`
	Restriction string   `toml:"restriction"`
}

// Load читает конфигурацию из TOML файла, применяет значения по умолчанию и проверяет ее
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}
	return Parse(string(data))
}

// Parse разбирает конфигурацию из строки
func Parse(data string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrReadConfig, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	setDefault(&c.Server.HTTPPort, 8080)
	setDefault(&c.Server.ReadTimeout, 10)
	setDefault(&c.Server.WriteTimeout, 10)
	setDefault(&c.Server.IdleTimeout, 60)
	setDefault(&c.Server.ShutdownTimeout, 15)

	if c.Database.Host == "" {
		c.Database.Host = "localhost"
	}
	setDefault(&c.Database.Port, 5432)
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	setDefault(&c.Database.MaxOpenConns, 25)
	setDefault(&c.Database.MaxIdleConns, 5)
	setDefault(&c.Database.ConnMaxLifetime, 300)

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "hall-booking"
	}

	if c.Notifier.Exchange == "" {
		c.Notifier.Exchange = "hall.bookings"
	}

	if c.RateLimit.RequestsPerSecond <= 0 {
		c.RateLimit.RequestsPerSecond = 10
	}
	setDefault(&c.RateLimit.Burst, 20)

	setDefault(&c.Booking.DefaultCapacity, domain.DefaultFacilityCapacity)
	setDefault(&c.Booking.PageSize, domain.DefaultPageSize)
	setDefault(&c.Booking.DashboardCacheTTL, 60)
	if c.Booking.DayStart == "" {
		c.Booking.DayStart = "08:00"
	}
	if c.Booking.DayEnd == "" {
		c.Booking.DayEnd = "20:00"
	}
	setDefault(&c.Booking.SlotMinutes, 60)
}

func setDefault(v *int, def int) {
	if *v <= 0 {
		*v = def
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Booking.PageSize > domain.MaxPageSize {
		return fmt.Errorf("%w: booking.page_size must not exceed %d", ErrInvalidConfig, domain.MaxPageSize)
	}

	start, err := types.NewTimeStringFromString(c.Booking.DayStart)
	if err != nil {
		return fmt.Errorf("%w: booking.day_start: %v", ErrInvalidConfig, err)
	}
	end, err := types.NewTimeStringFromString(c.Booking.DayEnd)
	if err != nil {
		return fmt.Errorf("%w: booking.day_end: %v", ErrInvalidConfig, err)
	}
	if !start.IsBefore(end) {
		return fmt.Errorf("%w: booking.day_start must be before booking.day_end", ErrInvalidConfig)
	}

	if c.Notifier.Enabled && c.Notifier.URL == "" {
		return fmt.Errorf("%w: notifier.url is required when notifier is enabled", ErrInvalidConfig)
	}

	if len(c.Facilities) == 0 {
		return fmt.Errorf("%w: at least one facility is required", ErrInvalidConfig)
	}
	seen := make(map[string]bool, len(c.Facilities))
	for i, f := range c.Facilities {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			return fmt.Errorf("%w: facilities[%d]: name is required", ErrInvalidConfig, i)
		}
		if seen[name] {
			return fmt.Errorf("%w: facilities[%d]: duplicate name %q", ErrInvalidConfig, i, name)
		}
		if f.Capacity < 0 {
			return fmt.Errorf("%w: facilities[%d]: capacity must not be negative", ErrInvalidConfig, i)
		}
		seen[name] = true
	}

	return nil
}

// Catalog строит каталог залов в порядке конфигурации
func (c *Config) Catalog() *domain.Catalog {
	facilities := make([]domain.Facility, 0, len(c.Facilities))
	for _, f := range c.Facilities {
		name := strings.TrimSpace(f.Name)
		display := f.DisplayName
		if display == "" {
			display = name
		}
		facilities = append(facilities, domain.Facility{
			ID:          domain.FacilityID(name),
			DisplayName: display,
			Capacity:    f.Capacity,
			Features:    f.Features,
			Restriction: f.Restriction,
		})
	}
	return domain.NewCatalog(facilities)
}
