package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	checkClashHandler "github.com/m04kA/SMC-HallBooking/internal/api/handlers/check_clash"
	createBookingHandler "github.com/m04kA/SMC-HallBooking/internal/api/handlers/create_booking"
	createUserHandler "github.com/m04kA/SMC-HallBooking/internal/api/handlers/create_user"
	deleteUserHandler "github.com/m04kA/SMC-HallBooking/internal/api/handlers/delete_user"
	getAvailableSlotsHandler "github.com/m04kA/SMC-HallBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-HallBooking/internal/api/handlers/get_booking"
	getDashboardHandler "github.com/m04kA/SMC-HallBooking/internal/api/handlers/get_dashboard"
	getFacilitiesHandler "github.com/m04kA/SMC-HallBooking/internal/api/handlers/get_facilities"
	getScheduleHandler "github.com/m04kA/SMC-HallBooking/internal/api/handlers/get_schedule"
	getSuggestionsHandler "github.com/m04kA/SMC-HallBooking/internal/api/handlers/get_suggestions"
	getUpcomingSeminarsHandler "github.com/m04kA/SMC-HallBooking/internal/api/handlers/get_upcoming_seminars"
	getUserBookingsHandler "github.com/m04kA/SMC-HallBooking/internal/api/handlers/get_user_bookings"
	listBookingsHandler "github.com/m04kA/SMC-HallBooking/internal/api/handlers/list_bookings"
	listUsersHandler "github.com/m04kA/SMC-HallBooking/internal/api/handlers/list_users"
	updateAdminNotesHandler "github.com/m04kA/SMC-HallBooking/internal/api/handlers/update_admin_notes"
	updateBookingHandler "github.com/m04kA/SMC-HallBooking/internal/api/handlers/update_booking"
	updateBookingStatusHandler "github.com/m04kA/SMC-HallBooking/internal/api/handlers/update_booking_status"
	updateProfileHandler "github.com/m04kA/SMC-HallBooking/internal/api/handlers/update_profile"
	updateUserRoleHandler "github.com/m04kA/SMC-HallBooking/internal/api/handlers/update_user_role"
	"github.com/m04kA/SMC-HallBooking/internal/api/middleware"
	"github.com/m04kA/SMC-HallBooking/internal/capacity"
	"github.com/m04kA/SMC-HallBooking/internal/config"
	bookingRepo "github.com/m04kA/SMC-HallBooking/internal/infra/storage/booking"
	userRepo "github.com/m04kA/SMC-HallBooking/internal/infra/storage/user"
	"github.com/m04kA/SMC-HallBooking/internal/integrations/notifier"
	"github.com/m04kA/SMC-HallBooking/internal/lifecycle"
	bookingsService "github.com/m04kA/SMC-HallBooking/internal/service/bookings"
	createBookingUC "github.com/m04kA/SMC-HallBooking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-HallBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-HallBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-HallBooking/pkg/logger"
	"github.com/m04kA/SMC-HallBooking/pkg/metrics"
	"github.com/m04kA/SMC-HallBooking/pkg/types"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-HallBooking...")
	log.Info("Configuration loaded from config.toml (facilities=%d)", len(cfg.Facilities))

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Репозитории (с метриками или без)
	var executor dbmetrics.DBExecutor = db
	if cfg.Metrics.Enabled {
		executor = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	}
	bookingRepository := bookingRepo.NewRepository(executor)
	userRepository := userRepo.NewRepository(executor)

	// Публикация событий
	var eventNotifier bookingsService.Notifier = notifier.Nop{}
	if cfg.Notifier.Enabled {
		publisher, err := notifier.Dial(cfg.Notifier.URL, cfg.Notifier.Exchange, log)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
		eventNotifier = publisher
		log.Info("Notifier connected (exchange=%s)", cfg.Notifier.Exchange)
	}

	// Движок бронирований
	catalog := cfg.Catalog()
	capacityValidator := capacity.NewValidator(catalog, cfg.Booking.DefaultCapacity)
	lifecycleManager := lifecycle.NewManager(capacityValidator, catalog, log)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		catalog,
		capacityValidator,
		lifecycleManager,
		bookingRepository,
		userRepository,
		eventNotifier,
		metricsCollector,
		bookingsService.Config{
			PageSize:          cfg.Booking.PageSize,
			DashboardCacheTTL: cfg.Booking.CacheTTL(),
		},
		log,
	)

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	if err := bookingSvc.Load(loadCtx); err != nil {
		cancelLoad()
		log.Fatal("Failed to load bookings: %v", err)
	}
	cancelLoad()

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingSvc,
		catalog,
		createBookingUC.Config{
			AdvanceBookingDays:      cfg.Booking.AdvanceDays,
			MinBookingNoticeMinutes: cfg.Booking.MinNoticeMinutes,
		},
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingSvc,
		catalog,
		getAvailableSlotsUC.Config{
			DayStart:                types.TimeString(cfg.Booking.DayStart),
			DayEnd:                  types.TimeString(cfg.Booking.DayEnd),
			SlotDurationMinutes:     cfg.Booking.SlotMinutes,
			AdvanceBookingDays:      cfg.Booking.AdvanceDays,
			MinBookingNoticeMinutes: cfg.Booking.MinNoticeMinutes,
		},
		log,
	)

	// Инициализируем handlers
	getFacilities := getFacilitiesHandler.NewHandler(bookingSvc, log)
	getUpcomingSeminars := getUpcomingSeminarsHandler.NewHandler(bookingSvc, log)
	getSchedule := getScheduleHandler.NewHandler(bookingSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	updateAdminNotes := updateAdminNotesHandler.NewHandler(bookingSvc, log)
	checkClash := checkClashHandler.NewHandler(bookingSvc, log)
	getSuggestions := getSuggestionsHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getDashboard := getDashboardHandler.NewHandler(bookingSvc, log)
	listUsers := listUsersHandler.NewHandler(bookingSvc, log)
	createUser := createUserHandler.NewHandler(bookingSvc, log)
	deleteUser := deleteUserHandler.NewHandler(bookingSvc, log)
	updateUserRole := updateUserRoleHandler.NewHandler(bookingSvc, log)
	updateProfile := updateProfileHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
		api.Use(middleware.RateLimit(limiter, log))
		log.Info("Rate limit enabled: %.1f rps, burst %d", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/facilities", getFacilities.Handle).Methods(http.MethodGet)
	api.HandleFunc("/seminars/upcoming", getUpcomingSeminars.Handle).Methods(http.MethodGet)
	api.HandleFunc("/schedule", getSchedule.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(userRepository, log))

	// --- Заявки пользователя ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/me/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/me", updateProfile.Handle).Methods(http.MethodPut)

	// --- Администрирование ---
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/notes", updateAdminNotes.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{bookingId}/clash", checkClash.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/suggestions", getSuggestions.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/dashboard", getDashboard.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users", listUsers.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users", createUser.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/users/{userId}", deleteUser.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/users/{userId}/role", updateUserRole.Handle).Methods(http.MethodPatch)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
