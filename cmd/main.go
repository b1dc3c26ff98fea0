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
	"github.com/redis/go-redis/v9"

	cancelBookingHandler "github.com/m04kA/SMC-BikeService/internal/api/handlers/cancel_booking"
	createBikeHandler "github.com/m04kA/SMC-BikeService/internal/api/handlers/create_bike"
	createBookingHandler "github.com/m04kA/SMC-BikeService/internal/api/handlers/create_booking"
	createServiceHandler "github.com/m04kA/SMC-BikeService/internal/api/handlers/create_service"
	getAllBookingsHandler "github.com/m04kA/SMC-BikeService/internal/api/handlers/get_all_bookings"
	getAvailableSlotsHandler "github.com/m04kA/SMC-BikeService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-BikeService/internal/api/handlers/get_booking"
	getServiceHandler "github.com/m04kA/SMC-BikeService/internal/api/handlers/get_service"
	getUserBikesHandler "github.com/m04kA/SMC-BikeService/internal/api/handlers/get_user_bikes"
	getUserBookingsHandler "github.com/m04kA/SMC-BikeService/internal/api/handlers/get_user_bookings"
	listServicesHandler "github.com/m04kA/SMC-BikeService/internal/api/handlers/list_services"
	updateBookingStatusHandler "github.com/m04kA/SMC-BikeService/internal/api/handlers/update_booking_status"
	updateServiceHandler "github.com/m04kA/SMC-BikeService/internal/api/handlers/update_service"
	"github.com/m04kA/SMC-BikeService/internal/api/middleware"
	"github.com/m04kA/SMC-BikeService/internal/config"
	"github.com/m04kA/SMC-BikeService/internal/domain"
	"github.com/m04kA/SMC-BikeService/internal/infra/cache/slotcache"
	bikeRepo "github.com/m04kA/SMC-BikeService/internal/infra/storage/bike"
	bookingRepo "github.com/m04kA/SMC-BikeService/internal/infra/storage/booking"
	serviceRepo "github.com/m04kA/SMC-BikeService/internal/infra/storage/service"
	bikesService "github.com/m04kA/SMC-BikeService/internal/service/bikes"
	bookingsService "github.com/m04kA/SMC-BikeService/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-BikeService/internal/service/catalog"
	createBookingUC "github.com/m04kA/SMC-BikeService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-BikeService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-BikeService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BikeService/pkg/logger"
	"github.com/m04kA/SMC-BikeService/pkg/metrics"
	"github.com/m04kA/SMC-BikeService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-BikeService/pkg/txmanager"
	"github.com/m04kA/SMC-BikeService/pkg/types"
)

func main() {
	// Загружаем конфигурацию (невалидные рабочие часы роняют старт)
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

	log.Info("Starting SMC-BikeService...")
	log.Info("Business hours: %02d:00-%02d:00, slot granularity %d min",
		cfg.BusinessHours.OpenHour, cfg.BusinessHours.CloseHour, cfg.BusinessHours.SlotGranularityMinutes)

	hours := domain.BusinessHours{
		OpenHour:               cfg.BusinessHours.OpenHour,
		CloseHour:              cfg.BusinessHours.CloseHour,
		SlotGranularityMinutes: cfg.BusinessHours.SlotGranularityMinutes,
	}

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

	// Кэш слотов: Redis или no-op, если кэширование выключено
	var slotCache interface {
		Get(ctx context.Context, date time.Time) ([]types.TimeString, bool)
		Set(ctx context.Context, date time.Time, slots []types.TimeString) error
		InvalidateDate(ctx context.Context, date time.Time) error
	}

	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		defer redisClient.Close()

		slotCache = slotcache.New(redisClient, time.Duration(cfg.Redis.SlotsTTLSeconds)*time.Second)
		log.Info("Slot cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.SlotsTTLSeconds)
	} else {
		slotCache = slotcache.NewNoop()
		log.Info("Slot cache disabled")
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		serviceRepository *serviceRepo.Repository
		bikeRepository    *bikeRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		serviceRepository = serviceRepo.NewRepository(wrappedDB)
		bikeRepository = bikeRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		serviceRepository = serviceRepo.NewRepository(db)
		bikeRepository = bikeRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, slotCache, log)
	catalogSvc := catalogService.NewService(serviceRepository, log)
	bikeSvc := bikesService.NewService(bikeRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		serviceRepository,
		bikeRepository,
		txMgr,
		slotCache,
		hours,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		serviceRepository,
		slotCache,
		hours,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getAllBookings := getAllBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	getService := getServiceHandler.NewHandler(catalogSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)
	createBike := createBikeHandler.NewHandler(bikeSvc, log)
	getUserBikes := getUserBikesHandler.NewHandler(bikeSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог услуг
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}", getService.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Доступные слоты на дату
	protected.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// --- Велосипеды ---
	protected.HandleFunc("/bikes", createBike.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bikes", getUserBikes.Handle).Methods(http.MethodGet)

	// ============================================================
	// STAFF ROUTES (механик и админ)
	// ============================================================

	staff := protected.PathPrefix("").Subrouter()
	staff.Use(middleware.RequireRoles(domain.RoleMechanic, domain.RoleAdmin))

	staff.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	staff.HandleFunc("/admin/bookings", getAllBookings.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (управление каталогом)
	// ============================================================

	admin := protected.PathPrefix("").Subrouter()
	admin.Use(middleware.RequireRoles(domain.RoleAdmin))

	admin.HandleFunc("/services", createService.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/services/{serviceId}", updateService.Handle).Methods(http.MethodPut)

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
