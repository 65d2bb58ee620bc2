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
	circuit "github.com/rubyist/circuitbreaker"

	cancelBookingHandler "github.com/guidely/GuideBookingService/internal/api/handlers/cancel_booking"
	checkInHandler "github.com/guidely/GuideBookingService/internal/api/handlers/check_in"
	completeBookingHandler "github.com/guidely/GuideBookingService/internal/api/handlers/complete_booking"
	confirmBookingHandler "github.com/guidely/GuideBookingService/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/guidely/GuideBookingService/internal/api/handlers/create_booking"
	disputeBookingHandler "github.com/guidely/GuideBookingService/internal/api/handlers/dispute_booking"
	getAvailableSlotsHandler "github.com/guidely/GuideBookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/guidely/GuideBookingService/internal/api/handlers/get_booking"
	getGuideBookingsHandler "github.com/guidely/GuideBookingService/internal/api/handlers/get_guide_bookings"
	getUserBookingsHandler "github.com/guidely/GuideBookingService/internal/api/handlers/get_user_bookings"
	updateAvailabilityHandler "github.com/guidely/GuideBookingService/internal/api/handlers/update_availability"
	"github.com/guidely/GuideBookingService/internal/api/middleware"
	"github.com/guidely/GuideBookingService/internal/checkin"
	"github.com/guidely/GuideBookingService/internal/config"
	availabilityRepo "github.com/guidely/GuideBookingService/internal/infra/storage/availability"
	bookingRepo "github.com/guidely/GuideBookingService/internal/infra/storage/booking"
	paymentRepo "github.com/guidely/GuideBookingService/internal/infra/storage/payment"
	policyRepo "github.com/guidely/GuideBookingService/internal/infra/storage/policy"
	guideServiceClient "github.com/guidely/GuideBookingService/internal/integrations/guideservice"
	processorClient "github.com/guidely/GuideBookingService/internal/integrations/processor"
	availabilityService "github.com/guidely/GuideBookingService/internal/service/availability"
	bookingsService "github.com/guidely/GuideBookingService/internal/service/bookings"
	paymentsService "github.com/guidely/GuideBookingService/internal/service/payments"
	cancelBookingUC "github.com/guidely/GuideBookingService/internal/usecase/cancel_booking"
	checkInUC "github.com/guidely/GuideBookingService/internal/usecase/check_in"
	createBookingUC "github.com/guidely/GuideBookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/guidely/GuideBookingService/internal/usecase/get_available_slots"
	"github.com/guidely/GuideBookingService/pkg/dbmetrics"
	"github.com/guidely/GuideBookingService/pkg/logger"
	"github.com/guidely/GuideBookingService/pkg/metrics"
	"github.com/guidely/GuideBookingService/pkg/simpletxmanager"
	"github.com/guidely/GuideBookingService/pkg/txmanager"
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

	log.Info("Starting GuideBookingService...")
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

	// Инициализируем интеграционных клиентов
	guideClient := guideServiceClient.NewClient(
		cfg.GuideService.URL,
		time.Duration(cfg.GuideService.Timeout)*time.Second,
		log,
	)

	// Платежный процессор ходит через circuit breaker: после threshold
	// подряд неуспешных запросов новые вызовы отклоняются сразу
	breakerClient := circuit.NewHTTPClient(
		time.Duration(cfg.Processor.Timeout)*time.Second,
		cfg.Processor.Threshold,
		nil,
	)
	procClient := processorClient.NewClient(cfg.Processor.URL, breakerClient, log)

	log.Info("Integration clients initialized (GuideService=%s timeout=%ds, Processor=%s timeout=%ds threshold=%d)",
		cfg.GuideService.URL, cfg.GuideService.Timeout,
		cfg.Processor.URL, cfg.Processor.Timeout, cfg.Processor.Threshold)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository      *bookingRepo.Repository
		availabilityRepository *availabilityRepo.Repository
		paymentRepository      *paymentRepo.Repository
		policyRepository       *policyRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		paymentRepository = paymentRepo.NewRepository(wrappedDB)
		policyRepository = policyRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		paymentRepository = paymentRepo.NewRepository(db)
		policyRepository = policyRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Верификатор кодов check-in
	checkInVerifier := checkin.NewVerifier(cfg.CheckIn.Secret)

	// Инициализируем сервисы
	paymentSvc := paymentsService.NewService(
		paymentRepository,
		bookingRepository,
		procClient,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		checkInVerifier,
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
		guideClient,
		paymentSvc,
		txMgr,
		log,
	)

	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		policyRepository,
		guideClient,
		paymentSvc,
		txMgr,
		log,
	)

	checkInUseCase := checkInUC.NewUseCase(
		bookingRepository,
		checkInVerifier,
		paymentSvc,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		availabilityRepository,
		guideClient,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	checkIn := checkInHandler.NewHandler(checkInUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	completeBooking := completeBookingHandler.NewHandler(bookingSvc, log)
	disputeBooking := disputeBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getGuideBookings := getGuideBookingsHandler.NewHandler(bookingSvc, log)
	updateAvailability := updateAvailabilityHandler.NewHandler(availabilitySvc, log)

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

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Календарь доступности услуги гида
	api.HandleFunc("/guides/{guideId}/services/{serviceId}/availability",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Подтверждение бронирования гидом
	protected.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPatch)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Check-in клиента в начале услуги
	protected.HandleFunc("/bookings/{bookingId}/check-in", checkIn.Handle).Methods(http.MethodPost)

	// Завершение услуги гидом
	protected.HandleFunc("/bookings/{bookingId}/complete", completeBooking.Handle).Methods(http.MethodPatch)

	// Открытие спора по бронированию
	protected.HandleFunc("/bookings/{bookingId}/dispute", disputeBooking.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление гидом ---
	// Ростер бронирований гида
	protected.HandleFunc("/guides/{guideId}/bookings", getGuideBookings.Handle).Methods(http.MethodGet)

	// Настройка доступности даты
	protected.HandleFunc("/guides/{guideId}/services/{serviceId}/availability/{date}",
		updateAvailability.Handle).Methods(http.MethodPut)

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
