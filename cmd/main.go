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

	approveExtensionHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/approve_extension"
	attachExtensionPaymentHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/attach_extension_payment"
	checkAvailabilityHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/check_extension_availability"
	checkEligibilityHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/check_extension_eligibility"
	confirmRentalHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/confirm_rental"
	createAdminExtensionHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/create_admin_extension"
	createRentalHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/create_rental"
	getCamerasHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_cameras"
	getConfirmationPlanHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_confirmation_plan"
	getExtensionHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_extension"
	getExtensionsHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_extensions"
	getRentalHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_rental"
	getRentalPaymentsHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_rental_payments"
	getRentalsHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_rentals"
	getUserExtensionsHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_user_extensions"
	getUserRentalsHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_user_rentals"
	rejectExtensionHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/reject_extension"
	rejectPaymentHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/reject_payment"
	requestExtensionHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/request_extension"
	updateRentalStatusHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/update_rental_status"
	updateShippingStatusHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/update_shipping_status"
	verifyPaymentHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/verify_payment"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/api/ws"
	"github.com/m04kA/SMC-RentalService/internal/config"
	"github.com/m04kA/SMC-RentalService/internal/infra/realtime"
	cameraRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/camera"
	extensionRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/extension"
	paymentRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/payment"
	rentalRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/rental"
	"github.com/m04kA/SMC-RentalService/internal/integrations/filestorage"
	"github.com/m04kA/SMC-RentalService/internal/integrations/mailer"
	"github.com/m04kA/SMC-RentalService/internal/integrations/pushnotify"
	userServiceClient "github.com/m04kA/SMC-RentalService/internal/integrations/userservice"
	"github.com/m04kA/SMC-RentalService/internal/jobs"
	camerasService "github.com/m04kA/SMC-RentalService/internal/service/cameras"
	extensionsService "github.com/m04kA/SMC-RentalService/internal/service/extensions"
	notificationsService "github.com/m04kA/SMC-RentalService/internal/service/notifications"
	paymentsService "github.com/m04kA/SMC-RentalService/internal/service/payments"
	rentalsService "github.com/m04kA/SMC-RentalService/internal/service/rentals"
	approveExtensionUC "github.com/m04kA/SMC-RentalService/internal/usecase/approve_extension"
	checkAvailabilityUC "github.com/m04kA/SMC-RentalService/internal/usecase/check_availability"
	checkEligibilityUC "github.com/m04kA/SMC-RentalService/internal/usecase/check_eligibility"
	confirmRentalUC "github.com/m04kA/SMC-RentalService/internal/usecase/confirm_rental"
	createAdminExtensionUC "github.com/m04kA/SMC-RentalService/internal/usecase/create_admin_extension"
	createRentalUC "github.com/m04kA/SMC-RentalService/internal/usecase/create_rental"
	getConfirmationPlanUC "github.com/m04kA/SMC-RentalService/internal/usecase/get_confirmation_plan"
	rejectExtensionUC "github.com/m04kA/SMC-RentalService/internal/usecase/reject_extension"
	requestExtensionUC "github.com/m04kA/SMC-RentalService/internal/usecase/request_extension"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
	"github.com/m04kA/SMC-RentalService/pkg/metrics"
	"github.com/m04kA/SMC-RentalService/pkg/txmanager"
)

// eventPublisher публикация изменений для админки (Redis или noop)
type eventPublisher interface {
	Publish(ctx context.Context, events ...realtime.Event)
}

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-RentalService...")
	log.Info("Configuration loaded from %s", configPath)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

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

	if err := db.PingContext(ctx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Без метрик обёртка работает как прозрачный прокси
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db)
	}

	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	rentalRepository := rentalRepo.NewRepository(wrappedDB)
	extensionRepository := extensionRepo.NewRepository(wrappedDB)
	paymentRepository := paymentRepo.NewRepository(wrappedDB)
	cameraRepository := cameraRepo.NewRepository(wrappedDB)

	// Realtime: публикация изменений через Redis pub/sub
	var (
		publisher   eventPublisher = realtime.NoopPublisher{}
		redisClient *redis.Client
	)
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}
		publisher = realtime.NewPublisher(redisClient, cfg.Redis.Channel, metricsCollector, log)
		log.Info("Realtime publisher enabled (redis=%s, channel=%s)", cfg.Redis.Addr, cfg.Redis.Channel)
	} else {
		log.Warn("Redis disabled: admin dashboard will not receive realtime updates")
	}

	// Интеграции
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	log.Info("UserService client initialized (url=%s, timeout=%ds)", cfg.UserService.URL, cfg.UserService.Timeout)

	maxProofSize := int64(cfg.Storage.MaxSizeMB) << 20

	// nil в интерфейсе означает выключенный канал, поэтому переменные интерфейсного типа
	var proofStorage paymentsService.FileStorage
	if cfg.Storage.Enabled {
		storageClient, err := filestorage.NewClient(filestorage.Config{
			Endpoint:  cfg.Storage.Endpoint,
			Region:    cfg.Storage.Region,
			Bucket:    cfg.Storage.Bucket,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			PublicURL: cfg.Storage.PublicURL,
			MaxSize:   maxProofSize,
		}, log)
		if err != nil {
			log.Fatal("Failed to initialize file storage: %v", err)
		}
		proofStorage = storageClient
		log.Info("Payment proof storage enabled (bucket=%s)", cfg.Storage.Bucket)
	} else {
		log.Warn("Storage disabled: payment proofs cannot be uploaded")
	}

	var emailSender notificationsService.Mailer
	if cfg.Email.Enabled {
		emailSender = mailer.NewClient(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName, log)
		log.Info("Email notifications enabled (from=%s)", cfg.Email.FromEmail)
	}

	var pushSender notificationsService.Pusher
	if cfg.Push.Enabled {
		pushClient, err := pushnotify.NewClient(ctx, cfg.Push.CredentialsFile, log)
		if err != nil {
			log.Fatal("Failed to initialize push notifications: %v", err)
		}
		pushSender = pushClient
		log.Info("Push notifications enabled")
	}

	// Сервисы
	notifier := notificationsService.NewService(userClient, emailSender, pushSender, log)
	rentalSvc := rentalsService.NewService(rentalRepository, publisher, log)
	cameraSvc := camerasService.NewService(cameraRepository, log)
	extensionSvc := extensionsService.NewService(extensionRepository, paymentRepository, log)
	paymentSvc := paymentsService.NewService(
		paymentRepository,
		extensionRepository,
		rentalRepository,
		proofStorage,
		publisher,
		log,
	)

	// Use cases
	createRentalUseCase := createRentalUC.NewUseCase(rentalRepository, cameraRepository, txMgr, publisher, log)

	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(rentalRepository, log)
	checkEligibilityUseCase := checkEligibilityUC.NewUseCase(rentalRepository, extensionRepository, log)

	requestExtensionUseCase := requestExtensionUC.NewUseCase(
		rentalRepository,
		extensionRepository,
		checkAvailabilityUseCase,
		paymentSvc,
		txMgr,
		publisher,
		log,
	)

	createAdminExtensionUseCase := createAdminExtensionUC.NewUseCase(
		rentalRepository,
		extensionRepository,
		checkEligibilityUseCase,
		checkAvailabilityUseCase,
		paymentSvc,
		txMgr,
		publisher,
		log,
	)

	approveExtensionUseCase := approveExtensionUC.NewUseCase(
		extensionRepository,
		rentalRepository,
		notifier,
		txMgr,
		publisher,
		log,
	)

	rejectExtensionUseCase := rejectExtensionUC.NewUseCase(extensionRepository, notifier, publisher, log)

	getConfirmationPlanUseCase := getConfirmationPlanUC.NewUseCase(rentalRepository, cameraRepository, txMgr, log)

	confirmRentalUseCase := confirmRentalUC.NewUseCase(
		rentalRepository,
		getConfirmationPlanUseCase,
		notifier,
		txMgr,
		publisher,
		log,
	)

	// Handlers
	getCameras := getCamerasHandler.NewHandler(cameraSvc, log)
	createRental := createRentalHandler.NewHandler(createRentalUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	checkEligibility := checkEligibilityHandler.NewHandler(checkEligibilityUseCase, log)
	requestExtension := requestExtensionHandler.NewHandler(requestExtensionUseCase, log)
	createAdminExtension := createAdminExtensionHandler.NewHandler(createAdminExtensionUseCase, maxProofSize, log)
	approveExtension := approveExtensionHandler.NewHandler(approveExtensionUseCase, log)
	rejectExtension := rejectExtensionHandler.NewHandler(rejectExtensionUseCase, log)
	getExtension := getExtensionHandler.NewHandler(extensionSvc, log)
	getExtensions := getExtensionsHandler.NewHandler(extensionSvc, log)
	getUserExtensions := getUserExtensionsHandler.NewHandler(extensionSvc, log)
	attachExtensionPayment := attachExtensionPaymentHandler.NewHandler(paymentSvc, maxProofSize, log)
	verifyPayment := verifyPaymentHandler.NewHandler(paymentSvc, log)
	rejectPayment := rejectPaymentHandler.NewHandler(paymentSvc, log)
	getRentalPayments := getRentalPaymentsHandler.NewHandler(paymentSvc, log)
	getConfirmationPlan := getConfirmationPlanHandler.NewHandler(getConfirmationPlanUseCase, log)
	confirmRental := confirmRentalHandler.NewHandler(confirmRentalUseCase, log)
	getRental := getRentalHandler.NewHandler(rentalSvc, log)
	getUserRentals := getUserRentalsHandler.NewHandler(rentalSvc, log)
	getRentals := getRentalsHandler.NewHandler(rentalSvc, log)
	updateRentalStatus := updateRentalStatusHandler.NewHandler(rentalSvc, log)
	updateShippingStatus := updateShippingStatusHandler.NewHandler(rentalSvc, log)

	hub := ws.NewHub(rentalSvc, extensionSvc, paymentSvc, cfg.CORS.AllowedOrigins, log.With("component", "ws"))

	// Подписчик раздаёт события из Redis всем подключённым админкам,
	// в том числе события других инстансов сервиса
	if redisClient != nil {
		subscriber := realtime.NewSubscriber(redisClient, cfg.Redis.Channel, log)
		go func() {
			if err := subscriber.Run(ctx, hub.HandleEvent); err != nil {
				log.Error("Realtime subscriber stopped with error: %v", err)
			}
		}()
	}

	// Фоновые задачи
	var scheduler *jobs.Scheduler
	if cfg.Jobs.Enabled {
		jobsLog := log.With("component", "jobs")
		reconciler := jobs.NewReconciler(
			extensionRepository,
			rentalRepository,
			paymentSvc,
			txMgr,
			publisher,
			cfg.Jobs.ReconcileBatchSize,
			jobsLog,
		)
		scheduler = jobs.NewScheduler(time.Duration(cfg.Jobs.Timeout)*time.Second, metricsCollector, jobsLog)
		if err := scheduler.RegisterReconcile(cfg.Jobs.ReconcileSchedule, reconciler); err != nil {
			log.Fatal("Failed to register jobs: %v", err)
		}
		scheduler.Start()
		log.Info("Jobs scheduler started (reconcile=%q)", cfg.Jobs.ReconcileSchedule)
	}

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// ROUTES АРЕНДАТОРА (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Каталог ---
	protected.HandleFunc("/cameras", getCameras.Handle).Methods(http.MethodGet)

	// --- Аренды ---
	protected.HandleFunc("/rentals", createRental.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/rentals/{rentalId}", getRental.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}/rentals", getUserRentals.Handle).Methods(http.MethodGet)

	// --- Продления ---
	protected.HandleFunc("/rentals/{rentalId}/extension-availability", checkAvailability.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/rentals/{rentalId}/extension-eligibility", checkEligibility.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/rentals/{rentalId}/extensions", requestExtension.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/users/{userId}/extensions", getUserExtensions.Handle).Methods(http.MethodGet)

	// --- Платежи ---
	protected.HandleFunc("/extensions/{extensionId}/payment", attachExtensionPayment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/rentals/{rentalId}/payments", getRentalPayments.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (X-User-Role: admin)
	// ============================================================

	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin)

	// --- Календарь и статусы аренд ---
	admin.HandleFunc("/rentals", getRentals.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/rentals/{rentalId}/status", updateRentalStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/rentals/{rentalId}/shipping", updateShippingStatus.Handle).Methods(http.MethodPatch)

	// --- Подтверждение с разрешением конфликтов ---
	admin.HandleFunc("/rentals/{rentalId}/confirmation-plan", getConfirmationPlan.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/rentals/{rentalId}/confirm", confirmRental.Handle).Methods(http.MethodPost)

	// --- Продления ---
	admin.HandleFunc("/rentals/{rentalId}/extensions", createAdminExtension.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/extensions", getExtensions.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/extensions/{extensionId}", getExtension.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/extensions/{extensionId}/approve", approveExtension.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/extensions/{extensionId}/reject", rejectExtension.Handle).Methods(http.MethodPatch)

	// --- Платежи ---
	admin.HandleFunc("/payments/{paymentId}/verify", verifyPayment.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/payments/{paymentId}/reject", rejectPayment.Handle).Methods(http.MethodPatch)

	// --- Realtime ---
	admin.Handle("/ws", hub).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      middleware.Chain(log, cfg.CORS.AllowedOrigins).Then(r),
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

	if scheduler != nil {
		scheduler.Stop()
		log.Info("Jobs scheduler stopped")
	}

	// Останавливаем подписчика и закрываем websocket соединения
	cancel()
	hub.Close()

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
