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

	createBookingHandler "github.com/m04kA/TLS-ScheduleService/internal/api/handlers/create_booking"
	createRuleHandler "github.com/m04kA/TLS-ScheduleService/internal/api/handlers/create_rule"
	deleteRuleHandler "github.com/m04kA/TLS-ScheduleService/internal/api/handlers/delete_rule"
	expireSweepHandler "github.com/m04kA/TLS-ScheduleService/internal/api/handlers/expire_sweep"
	getBookingsHandler "github.com/m04kA/TLS-ScheduleService/internal/api/handlers/get_bookings"
	getRulesHandler "github.com/m04kA/TLS-ScheduleService/internal/api/handlers/get_rules"
	getTimeSlotsHandler "github.com/m04kA/TLS-ScheduleService/internal/api/handlers/get_time_slots"
	regenerateSlotsHandler "github.com/m04kA/TLS-ScheduleService/internal/api/handlers/regenerate_slots"
	resolveBookingHandler "github.com/m04kA/TLS-ScheduleService/internal/api/handlers/resolve_booking"
	"github.com/m04kA/TLS-ScheduleService/internal/api/middleware"
	"github.com/m04kA/TLS-ScheduleService/internal/config"
	"github.com/m04kA/TLS-ScheduleService/internal/infra/migrator"
	requestRepo "github.com/m04kA/TLS-ScheduleService/internal/infra/storage/request"
	ruleRepo "github.com/m04kA/TLS-ScheduleService/internal/infra/storage/rule"
	slotRepo "github.com/m04kA/TLS-ScheduleService/internal/infra/storage/slot"
	notifyClient "github.com/m04kA/TLS-ScheduleService/internal/integrations/notifyservice"
	bookingsService "github.com/m04kA/TLS-ScheduleService/internal/service/bookings"
	notifierService "github.com/m04kA/TLS-ScheduleService/internal/service/notifier"
	rulesService "github.com/m04kA/TLS-ScheduleService/internal/service/rules"
	slotsService "github.com/m04kA/TLS-ScheduleService/internal/service/slots"
	createRequestUC "github.com/m04kA/TLS-ScheduleService/internal/usecase/create_request"
	expireRequestsUC "github.com/m04kA/TLS-ScheduleService/internal/usecase/expire_requests"
	generateSlotsUC "github.com/m04kA/TLS-ScheduleService/internal/usecase/generate_slots"
	resolveRequestUC "github.com/m04kA/TLS-ScheduleService/internal/usecase/resolve_request"
	"github.com/m04kA/TLS-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/TLS-ScheduleService/pkg/logger"
	"github.com/m04kA/TLS-ScheduleService/pkg/metrics"
	"github.com/m04kA/TLS-ScheduleService/pkg/simpletxmanager"
	"github.com/m04kA/TLS-ScheduleService/pkg/txmanager"
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

	log.Info("Starting TLS-ScheduleService...")
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

	// Применяем миграции схемы
	mg, err := migrator.New(db)
	if err != nil {
		log.Fatal("Failed to initialize migrator: %v", err)
	}
	if err := mg.Run(context.Background()); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	if version, err := mg.Version(context.Background()); err == nil {
		log.Info("Database schema at version %d", version)
	}

	// Инициализируем клиента сервиса уведомлений
	publisher := notifyClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Notification client initialized (NotifyService=%s timeout=%ds)",
		cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		ruleRepository    *ruleRepo.Repository
		slotRepository    *slotRepo.Repository
		requestRepository *requestRepo.Repository
	)

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		ruleRepository = ruleRepo.NewRepository(wrappedDB)
		slotRepository = slotRepo.NewRepository(wrappedDB)
		requestRepository = requestRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		ruleRepository = ruleRepo.NewRepository(db)
		slotRepository = slotRepo.NewRepository(db)
		requestRepository = requestRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	var notifierMetrics notifierService.MetricsRecorder
	if metricsCollector != nil {
		notifierMetrics = metricsCollector
	}
	notifier := notifierService.NewService(publisher, notifierMetrics, log)
	slotInventory := slotsService.NewService(slotRepository, requestRepository, txMgr, log)
	bookingSvc := bookingsService.NewService(requestRepository, log)
	rulesSvc := rulesService.NewService(ruleRepository, log)

	// Инициализируем use cases
	generateSlotsUseCase := generateSlotsUC.NewUseCase(
		ruleRepository,
		slotInventory,
		&generateSlotsUC.RealTimeProvider{},
		log,
	)
	createRequestUseCase := createRequestUC.NewUseCase(
		slotRepository,
		requestRepository,
		txMgr,
		notifier,
		log,
	)
	resolveRequestUseCase := resolveRequestUC.NewUseCase(
		slotRepository,
		requestRepository,
		txMgr,
		log,
	)
	var sweepMetrics expireRequestsUC.MetricsRecorder
	if metricsCollector != nil {
		sweepMetrics = metricsCollector
	}
	expireRequestsUseCase := expireRequestsUC.NewUseCase(
		requestRepository,
		notifier,
		sweepMetrics,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createRequestUseCase, log)
	getBookings := getBookingsHandler.NewHandler(bookingSvc, log)
	resolveBooking := resolveBookingHandler.NewHandler(resolveRequestUseCase, log)
	getTimeSlots := getTimeSlotsHandler.NewHandler(slotInventory, log)
	regenerateSlots := regenerateSlotsHandler.NewHandler(generateSlotsUseCase, log)
	expireSweep := expireSweepHandler.NewHandler(expireRequestsUseCase, log)
	createRule := createRuleHandler.NewHandler(rulesSvc, log)
	getRules := getRulesHandler.NewHandler(rulesSvc, log)
	deleteRule := deleteRuleHandler.NewHandler(rulesSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// --- Запросы на бронирование ---
	r.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	r.HandleFunc("/bookings", getBookings.Handle).Methods(http.MethodGet)
	r.HandleFunc("/bookings", resolveBooking.Handle).Methods(http.MethodPatch)
	r.HandleFunc("/bookings/{bookingId}", getBookings.HandleByID).Methods(http.MethodGet)

	// --- Слоты ---
	r.HandleFunc("/time-slots", getTimeSlots.Handle).Methods(http.MethodGet)
	r.HandleFunc("/time-slots/regenerate", regenerateSlots.Handle).Methods(http.MethodPost)

	// --- Правила доступности ---
	r.HandleFunc("/availability-rules", createRule.Handle).Methods(http.MethodPost)
	r.HandleFunc("/availability-rules", getRules.Handle).Methods(http.MethodGet)
	r.HandleFunc("/availability-rules/{ruleId}", deleteRule.Handle).Methods(http.MethodDelete)

	// --- Служебные эндпоинты (требуют Bearer секрет) ---
	internal := r.PathPrefix("/internal").Subrouter()
	internal.Use(middleware.InternalAuth(cfg.Internal.SweepSecret))
	internal.HandleFunc("/expire-sweep", expireSweep.Handle).Methods(http.MethodPost)

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
