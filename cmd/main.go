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

	cancelBookingHandler "github.com/vitahub/VH-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/vitahub/VH-BookingService/internal/api/handlers/create_booking"
	createRuleHandler "github.com/vitahub/VH-BookingService/internal/api/handlers/create_availability_rule"
	deleteRuleHandler "github.com/vitahub/VH-BookingService/internal/api/handlers/delete_availability_rule"
	getAvailableSlotsHandler "github.com/vitahub/VH-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/vitahub/VH-BookingService/internal/api/handlers/get_booking"
	getBookingByReferenceHandler "github.com/vitahub/VH-BookingService/internal/api/handlers/get_booking_by_reference"
	getHolidaysHandler "github.com/vitahub/VH-BookingService/internal/api/handlers/get_holidays"
	getOwnerBookingsHandler "github.com/vitahub/VH-BookingService/internal/api/handlers/get_owner_bookings"
	listRulesHandler "github.com/vitahub/VH-BookingService/internal/api/handlers/list_availability_rules"
	updateRuleHandler "github.com/vitahub/VH-BookingService/internal/api/handlers/update_availability_rule"
	updateStatusHandler "github.com/vitahub/VH-BookingService/internal/api/handlers/update_booking_status"
	"github.com/vitahub/VH-BookingService/internal/api/middleware"
	"github.com/vitahub/VH-BookingService/internal/calendar"
	"github.com/vitahub/VH-BookingService/internal/config"
	availabilityRepo "github.com/vitahub/VH-BookingService/internal/infra/storage/availability"
	bookingRepo "github.com/vitahub/VH-BookingService/internal/infra/storage/booking"
	outboxRepo "github.com/vitahub/VH-BookingService/internal/infra/storage/outbox"
	practitionerRepo "github.com/vitahub/VH-BookingService/internal/infra/storage/practitioner"
	notifierClient "github.com/vitahub/VH-BookingService/internal/integrations/notifier"
	availabilityService "github.com/vitahub/VH-BookingService/internal/service/availability"
	bookingsService "github.com/vitahub/VH-BookingService/internal/service/bookings"
	createBookingUC "github.com/vitahub/VH-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/vitahub/VH-BookingService/internal/usecase/get_available_slots"
	outboxWorker "github.com/vitahub/VH-BookingService/internal/worker/outbox"
	"github.com/vitahub/VH-BookingService/pkg/dbmetrics"
	"github.com/vitahub/VH-BookingService/pkg/logger"
	"github.com/vitahub/VH-BookingService/pkg/metrics"
	"github.com/vitahub/VH-BookingService/pkg/simpletxmanager"
	"github.com/vitahub/VH-BookingService/pkg/txmanager"
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

	log.Info("Starting VH-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Инициализируем клиента шлюза уведомлений
	notifier := notifierClient.NewClient(
		cfg.Notifier.URL,
		cfg.Notifier.APIKey,
		time.Duration(cfg.Notifier.Timeout)*time.Second,
		log,
	)
	log.Info("Notifier client initialized (url=%s, timeout=%ds)", cfg.Notifier.URL, cfg.Notifier.Timeout)

	// Производственный календарь
	workCalendar := calendar.New(cfg.Calendar.Country)
	log.Info("Work calendar initialized (country=%s)", workCalendar.Country())

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		bookingRepository      *bookingRepo.Repository
		availabilityRepository *availabilityRepo.Repository
		practitionerRepository *practitionerRepo.Repository
		outboxRepository       *outboxRepo.Repository
	)

	// Интерфейс для transaction manager (используется в сервисах, usecases и воркере)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		practitionerRepository = practitionerRepo.NewRepository(wrappedDB)
		outboxRepository = outboxRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		bookingRepository = bookingRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		practitionerRepository = practitionerRepo.NewRepository(db)
		outboxRepository = outboxRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		practitionerRepository,
		outboxRepository,
		txMgr,
		log,
	)
	availabilitySvc := availabilityService.NewService(
		availabilityRepository,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		practitionerRepository,
		outboxRepository,
		workCalendar,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		practitionerRepository,
		workCalendar,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getHolidays := getHolidaysHandler.NewHandler(workCalendar, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getBookingByReference := getBookingByReferenceHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateStatus := updateStatusHandler.NewHandler(bookingSvc, log)
	getOwnerBookings := getOwnerBookingsHandler.NewHandler(bookingSvc, log)
	createRule := createRuleHandler.NewHandler(availabilitySvc, log)
	listRules := listRulesHandler.NewHandler(availabilitySvc, log)
	updateRule := updateRuleHandler.NewHandler(availabilitySvc, log)
	deleteRule := deleteRuleHandler.NewHandler(availabilitySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Производственный календарь
	api.HandleFunc("/holidays", getHolidays.Handle).Methods(http.MethodGet)

	// Слоты практиционера по публичному коду
	api.HandleFunc("/booking-links/{code}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Создание бронирования клиентом по публичному коду
	api.HandleFunc("/booking-links/{code}/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Просмотр бронирования по коду из письма клиенту
	api.HandleFunc("/bookings/by-reference/{reference}", getBookingByReference.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Обновление статуса бронирования
	protected.HandleFunc("/bookings/{bookingId}/status", updateStatus.Handle).Methods(http.MethodPatch)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Календарь бронирований практиционера
	protected.HandleFunc("/owners/{ownerId}/bookings", getOwnerBookings.Handle).Methods(http.MethodGet)

	// --- Правила доступности ---
	// Создание правила
	protected.HandleFunc("/owners/{ownerId}/availability", createRule.Handle).Methods(http.MethodPost)

	// Список правил практиционера
	protected.HandleFunc("/owners/{ownerId}/availability", listRules.Handle).Methods(http.MethodGet)

	// Обновление правила
	protected.HandleFunc("/availability/{ruleId}", updateRule.Handle).Methods(http.MethodPut)

	// Удаление правила
	protected.HandleFunc("/availability/{ruleId}", deleteRule.Handle).Methods(http.MethodDelete)

	// Запускаем воркер доставки уведомлений
	workerCtx, stopWorker := context.WithCancel(context.Background())
	worker := outboxWorker.NewWorker(
		outboxRepository,
		notifier,
		txMgr,
		time.Duration(cfg.Outbox.PollInterval)*time.Second,
		cfg.Outbox.BatchSize,
		cfg.Outbox.MaxAttempts,
		log,
	)
	go worker.Run(workerCtx)

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

	// Останавливаем воркер доставки уведомлений
	stopWorker()

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
