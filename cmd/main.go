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

	bulkCreateTimeslotsHandler "github.com/AryanshKukreja/court-status-service/internal/api/handlers/bulk_create_timeslots"
	bulkUpdateBookingHandler "github.com/AryanshKukreja/court-status-service/internal/api/handlers/bulk_update_booking"
	createSportHandler "github.com/AryanshKukreja/court-status-service/internal/api/handlers/create_sport"
	createTimeslotHandler "github.com/AryanshKukreja/court-status-service/internal/api/handlers/create_timeslot"
	deleteSportHandler "github.com/AryanshKukreja/court-status-service/internal/api/handlers/delete_sport"
	deleteTimeslotHandler "github.com/AryanshKukreja/court-status-service/internal/api/handlers/delete_timeslot"
	getApprovalPhotoHandler "github.com/AryanshKukreja/court-status-service/internal/api/handlers/get_approval_photo"
	getCourtStatusHandler "github.com/AryanshKukreja/court-status-service/internal/api/handlers/get_court_status"
	getSportCourtsHandler "github.com/AryanshKukreja/court-status-service/internal/api/handlers/get_sport_courts"
	getSportsHandler "github.com/AryanshKukreja/court-status-service/internal/api/handlers/get_sports"
	getTimeslotsHandler "github.com/AryanshKukreja/court-status-service/internal/api/handlers/get_timeslots"
	listApprovalPhotosHandler "github.com/AryanshKukreja/court-status-service/internal/api/handlers/list_approval_photos"
	updateBookingHandler "github.com/AryanshKukreja/court-status-service/internal/api/handlers/update_booking"
	updateCourtCountHandler "github.com/AryanshKukreja/court-status-service/internal/api/handlers/update_court_count"
	updateTimeslotHandler "github.com/AryanshKukreja/court-status-service/internal/api/handlers/update_timeslot"
	"github.com/AryanshKukreja/court-status-service/internal/api/middleware"
	"github.com/AryanshKukreja/court-status-service/internal/config"
	"github.com/AryanshKukreja/court-status-service/internal/infra/cache/courtstatus"
	bookingRepo "github.com/AryanshKukreja/court-status-service/internal/infra/storage/booking"
	courtRepo "github.com/AryanshKukreja/court-status-service/internal/infra/storage/court"
	"github.com/AryanshKukreja/court-status-service/internal/infra/storage/migrator"
	sportRepo "github.com/AryanshKukreja/court-status-service/internal/infra/storage/sport"
	timeslotRepo "github.com/AryanshKukreja/court-status-service/internal/infra/storage/timeslot"
	"github.com/AryanshKukreja/court-status-service/internal/integrations/objectstorage"
	approvalPhotosService "github.com/AryanshKukreja/court-status-service/internal/service/approvalphotos"
	catalogService "github.com/AryanshKukreja/court-status-service/internal/service/catalog"
	timeslotsService "github.com/AryanshKukreja/court-status-service/internal/service/timeslots"
	getCourtStatusUC "github.com/AryanshKukreja/court-status-service/internal/usecase/get_court_status"
	reconcileBookingUC "github.com/AryanshKukreja/court-status-service/internal/usecase/reconcile_booking"
	"github.com/AryanshKukreja/court-status-service/pkg/dbmetrics"
	"github.com/AryanshKukreja/court-status-service/pkg/logger"
	"github.com/AryanshKukreja/court-status-service/pkg/metrics"
	"github.com/AryanshKukreja/court-status-service/pkg/txmanager"
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

	log.Info("Starting court-status-service...")

	// Метрики; nil коллектор допустим, все методы у него no-op
	var metricsCollector *metrics.Metrics
	stopBackgroundCh := make(chan struct{})

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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.AutoMigrate {
		if err := migrator.Up(db, cfg.Database.MigrationsPath, log); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopBackgroundCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	sportRepository := sportRepo.NewRepository(wrappedDB)
	courtRepository := courtRepo.NewRepository(wrappedDB)
	timeslotRepository := timeslotRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)

	// Хранилище фото
	storageCfg := objectstorage.Config{
		Region:          cfg.Storage.Region,
		Bucket:          cfg.Storage.Bucket,
		Endpoint:        cfg.Storage.Endpoint,
		AccessKeyID:     cfg.Storage.AccessKeyID,
		SecretAccessKey: cfg.Storage.SecretAccessKey,
		UsePathStyle:    cfg.Storage.UsePathStyle,
		PublicBaseURL:   cfg.Storage.PublicBaseURL,
		PresignTTL:      cfg.Storage.PresignDuration(),
	}
	s3Client, err := objectstorage.NewS3Client(context.Background(), storageCfg)
	if err != nil {
		log.Fatal("Failed to initialize object storage: %v", err)
	}
	photoStore := objectstorage.NewClient(s3Client, storageCfg, log)
	log.Info("Object storage initialized (bucket=%s, endpoint=%s)", cfg.Storage.Bucket, cfg.Storage.Endpoint)

	// Кеш сетки статусов; при выключенном Redis интерфейсы остаются nil
	var (
		gridCache      getCourtStatusUC.GridCache
		reconcileCache reconcileBookingUC.StatusCache
		catalogCache   catalogService.StatusCache
		timeslotCache  timeslotsService.StatusCache
	)
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		statusCache := courtstatus.New(redisClient, cfg.Redis.CacheTTL())
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := statusCache.Ping(pingCtx); err != nil {
			// Кеш не обязателен: сетка строится из БД
			log.Warn("Redis is unavailable at %s, continuing without warm cache: %v", cfg.Redis.Addr, err)
		}
		cancel()

		gridCache, reconcileCache, catalogCache, timeslotCache = statusCache, statusCache, statusCache, statusCache
		log.Info("Court status cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTL)
	}

	// Сервисы
	catalogSvc := catalogService.NewService(
		sportRepository,
		courtRepository,
		bookingRepository,
		catalogCache,
		txMgr,
		log,
	)
	timeslotSvc := timeslotsService.NewService(
		timeslotRepository,
		bookingRepository,
		timeslotCache,
		log,
	)
	approvalPhotoSvc := approvalPhotosService.NewService(
		photoStore,
		bookingRepository,
		log,
	)

	if cfg.Booking.SeedDefaultSlots {
		if err := timeslotSvc.EnsureDefaults(context.Background()); err != nil {
			log.Fatal("Failed to seed default time slots: %v", err)
		}
	}

	// Use cases
	getCourtStatusUseCase := getCourtStatusUC.NewUseCase(
		sportRepository,
		courtRepository,
		timeslotRepository,
		bookingRepository,
		gridCache,
		metricsCollector,
		log,
	)
	reconcileBookingUseCase := reconcileBookingUC.NewUseCase(
		bookingRepository,
		timeslotRepository,
		courtRepository,
		photoStore,
		reconcileCache,
		txMgr,
		metricsCollector,
		log,
		reconcileBookingUC.Config{RequirePhoto: cfg.Booking.RequirePhoto},
	)

	// Handlers
	getCourtStatus := getCourtStatusHandler.NewHandler(getCourtStatusUseCase, log)
	updateBooking := updateBookingHandler.NewHandler(reconcileBookingUseCase, photoStore, log)
	bulkUpdateBooking := bulkUpdateBookingHandler.NewHandler(reconcileBookingUseCase, photoStore, log)
	getApprovalPhoto := getApprovalPhotoHandler.NewHandler(approvalPhotoSvc, log)
	listApprovalPhotos := listApprovalPhotosHandler.NewHandler(approvalPhotoSvc, log)
	getSports := getSportsHandler.NewHandler(catalogSvc, log)
	getSportCourts := getSportCourtsHandler.NewHandler(catalogSvc, log)
	createSport := createSportHandler.NewHandler(catalogSvc, log)
	updateCourtCount := updateCourtCountHandler.NewHandler(catalogSvc, log)
	deleteSport := deleteSportHandler.NewHandler(catalogSvc, log)
	getTimeslots := getTimeslotsHandler.NewHandler(timeslotSvc, log)
	createTimeslot := createTimeslotHandler.NewHandler(timeslotSvc, log)
	updateTimeslot := updateTimeslotHandler.NewHandler(timeslotSvc, log)
	deleteTimeslot := deleteTimeslotHandler.NewHandler(timeslotSvc, log)
	bulkCreateTimeslots := bulkCreateTimeslotsHandler.NewHandler(timeslotSvc, log)

	auth := middleware.NewAuthenticator(cfg.Auth.JWTSecret)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/bookings/court-status", getCourtStatus.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/approval-photo/{filename}", getApprovalPhoto.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/approval-photo-direct/{filename}", getApprovalPhoto.HandleRedirect).Methods(http.MethodGet)
	api.HandleFunc("/sports", getSports.Handle).Methods(http.MethodGet)
	api.HandleFunc("/sports/with-courts", getSports.HandleWithCourts).Methods(http.MethodGet)

	// ============================================================
	// STAFF ROUTES (Bearer токен)
	// ============================================================

	staff := api.PathPrefix("/bookings").Subrouter()
	staff.Use(auth.Auth)
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, 3*time.Minute)
		go limiter.RunCleanup(time.Minute, stopBackgroundCh)
		staff.Use(limiter.Middleware)
		log.Info("Rate limit enabled for booking updates (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	staff.HandleFunc("/update", updateBooking.Handle).Methods(http.MethodPost)
	staff.HandleFunc("/bulk-update", bulkUpdateBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (Bearer токен с ролью admin)
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(auth.Auth, middleware.RequireAdmin)

	admin.HandleFunc("/bookings/admin/approval-photos", listApprovalPhotos.Handle).Methods(http.MethodGet)

	admin.HandleFunc("/sports/create", createSport.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/sports/{id}/courts", getSportCourts.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/sports/{id}/courts", updateCourtCount.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/sports/{id}", deleteSport.Handle).Methods(http.MethodDelete)

	admin.HandleFunc("/admin/timeslots", getTimeslots.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/admin/timeslots", createTimeslot.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/admin/timeslots/bulk", bulkCreateTimeslots.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/admin/timeslots/{id:[0-9]+}", updateTimeslot.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/admin/timeslots/{id:[0-9]+}", deleteTimeslot.Handle).Methods(http.MethodDelete)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор статистики пула и очистку лимитера
	close(stopBackgroundCh)

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
