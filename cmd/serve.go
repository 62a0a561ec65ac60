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
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	approvePaymentHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/approve_payment"
	backSessionHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/back_session"
	cancelPaymentHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/cancel_payment"
	cancelSessionHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/cancel_session"
	disposeSessionHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/dispose_session"
	getSessionHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/get_session"
	listReconciliationsHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/list_reconciliations"
	listToursHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/list_tours"
	mountSessionHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/mount_session"
	proceedSessionHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/proceed_session"
	renderPaymentHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/render_payment"
	resolveReconciliationHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/resolve_reconciliation"
	suspendSessionHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/suspend_session"
	updateDraftHandler "github.com/m04kA/SMC-TourBookingService/internal/api/handlers/update_draft"
	"github.com/m04kA/SMC-TourBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-TourBookingService/internal/config"
	"github.com/m04kA/SMC-TourBookingService/internal/infra/storage/kv"
	reconciliationRepo "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/reconciliation"
	sessionRepo "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/session"
	bookingAPIClient "github.com/m04kA/SMC-TourBookingService/internal/integrations/bookingapi"
	"github.com/m04kA/SMC-TourBookingService/internal/integrations/notifier"
	tourCatalogClient "github.com/m04kA/SMC-TourBookingService/internal/integrations/tourcatalog"
	"github.com/m04kA/SMC-TourBookingService/internal/payment"
	reconciliationsService "github.com/m04kA/SMC-TourBookingService/internal/service/reconciliations"
	sessionService "github.com/m04kA/SMC-TourBookingService/internal/service/session"
	completePaymentUC "github.com/m04kA/SMC-TourBookingService/internal/usecase/complete_payment"
	renderPaymentUC "github.com/m04kA/SMC-TourBookingService/internal/usecase/render_payment"
	"github.com/m04kA/SMC-TourBookingService/pkg/logger"
	"github.com/m04kA/SMC-TourBookingService/pkg/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Failed to load config: %v\n", err)
			os.Exit(1)
		}

		log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
		if err != nil {
			fmt.Printf("Failed to initialize logger: %v\n", err)
			os.Exit(1)
		}
		defer log.Close()

		if err := serve(cfg, log); err != nil {
			log.Fatal("Server stopped with error: %v", err)
		}
	},
}

func serve(cfg *config.Config, log *logger.Logger) error {
	log.Info("Starting tour booking service...")

	// Метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище черновиков
	var store sessionRepo.Store
	switch cfg.Session.Storage {
	case config.StorageMemory:
		store = kv.NewMemoryStore()
		log.Warn("Session storage is in-memory, drafts are lost on restart")
	default:
		client := kv.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer client.Close()

		redisStore := kv.NewRedisStore(client, time.Duration(cfg.Session.TTL)*time.Second)
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisStore.Ping(pingCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		store = redisStore
		log.Info("Connected to redis at %s (db=%d)", cfg.Redis.Addr, cfg.Redis.DB)
	}

	// Журнал сверки в PostgreSQL (опционально)
	var (
		db        *sql.DB
		ledger    completePaymentUC.ReconciliationRepository
		reconRepo *reconciliationRepo.Repository
	)
	if cfg.Database.Enabled {
		conn, executor, err := openDatabase(cfg, cfg.Metrics.Enabled)
		if err != nil {
			return err
		}
		db = conn
		defer db.Close()

		reconRepo = reconciliationRepo.NewRepository(executor)
		ledger = reconRepo
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	} else {
		log.Warn("Database disabled: captured payments without a booking are only logged and published")
	}

	// События об оплате
	var publisher interface {
		completePaymentUC.EventPublisher
		Close() error
	} = notifier.NopPublisher{}
	if cfg.Broker.Enabled {
		p, err := notifier.Dial(cfg.Broker.URL, cfg.Broker.Exchange, log)
		if err != nil {
			return err
		}
		publisher = p
		log.Info("Publishing payment events to exchange %s", cfg.Broker.Exchange)
	}
	defer publisher.Close()

	// Интеграционные клиенты
	catalog := tourCatalogClient.NewClient(cfg.TourCatalog.URL, time.Duration(cfg.TourCatalog.Timeout)*time.Second, log)
	bookings := bookingAPIClient.NewClient(cfg.BookingAPI.URL, time.Duration(cfg.BookingAPI.Timeout)*time.Second, log)
	loaders := buildLoaders(cfg, metricsCollector, log)
	defer loaders.TeardownAll()
	log.Info("Integration clients initialized (catalog=%s, bookings=%s, payment methods=%v)",
		cfg.TourCatalog.URL, cfg.BookingAPI.URL, loaders.Methods())

	// Сервисы и use cases
	clock := &sessionService.RealTimeProvider{}
	mounts := payment.NewMountRegistry(log)
	sessions := sessionService.NewService(
		sessionRepo.NewRepository(store, cfg.Session.KeyPrefix),
		catalog,
		mounts,
		clock,
		metricsCollector,
		log,
		sessionService.Options{
			TaxRate:           cfg.Payment.TaxRate,
			Currency:          cfg.Payment.Currency,
			RecoveryNoticeTTL: time.Duration(cfg.Session.RecoveryNoticeSeconds) * time.Second,
			SuspendGrace:      time.Duration(cfg.Session.SuspendGraceMs) * time.Millisecond,
		},
	)

	renderPaymentUseCase := renderPaymentUC.NewUseCase(sessions, loaders, mounts, log)
	completePaymentUseCase := completePaymentUC.NewUseCase(
		sessions,
		mounts,
		loaders,
		bookings,
		ledger,
		publisher,
		metricsCollector,
		clock,
		log,
		completePaymentUC.Options{SupportContact: cfg.Payment.SupportContact},
	)

	// Handlers
	listTours := listToursHandler.NewHandler(catalog, log)
	mountSession := mountSessionHandler.NewHandler(sessions, log)
	getSession := getSessionHandler.NewHandler(sessions, log)
	updateDraft := updateDraftHandler.NewHandler(sessions, log)
	proceedSession := proceedSessionHandler.NewHandler(sessions, log)
	backSession := backSessionHandler.NewHandler(sessions, log)
	cancelSession := cancelSessionHandler.NewHandler(sessions, log)
	suspendSession := suspendSessionHandler.NewHandler(sessions, log)
	disposeSession := disposeSessionHandler.NewHandler(sessions, log)
	renderPayment := renderPaymentHandler.NewHandler(renderPaymentUseCase, log)
	approvePayment := approvePaymentHandler.NewHandler(completePaymentUseCase, log)
	cancelPayment := cancelPaymentHandler.NewHandler(completePaymentUseCase, log)

	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// СТРАНИЦА БРОНИРОВАНИЯ
	// ============================================================

	api.HandleFunc("/tours", listTours.Handle).Methods(http.MethodGet)

	// --- Сессия вкладки ---
	api.HandleFunc("/sessions/{sessionId}", mountSession.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionId}", getSession.Handle).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{sessionId}", disposeSession.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/sessions/{sessionId}/draft", updateDraft.Handle).Methods(http.MethodPut)
	api.HandleFunc("/sessions/{sessionId}/proceed", proceedSession.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionId}/back", backSession.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionId}/cancel", cancelSession.Handle).Methods(http.MethodPost)

	// sendBeacon умеет только POST
	api.HandleFunc("/sessions/{sessionId}/suspend", suspendSession.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionId}/dispose", disposeSession.Handle).Methods(http.MethodPost)

	// --- Оплата ---
	api.HandleFunc("/sessions/{sessionId}/payment", renderPayment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionId}/payment/retry", renderPayment.HandleRetry).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionId}/payment/approve", approvePayment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionId}/payment/cancel", cancelPayment.Handle).Methods(http.MethodPost)

	// ============================================================
	// ПОДДЕРЖКА (требуют X-Support-Token)
	// ============================================================

	if reconRepo != nil {
		reconSvc := reconciliationsService.NewService(reconRepo, log)

		support := api.PathPrefix("/reconciliations").Subrouter()
		support.Use(middleware.SupportAuth(cfg.Support.Token))
		support.HandleFunc("", listReconciliationsHandler.NewHandler(reconSvc, log).Handle).Methods(http.MethodGet)
		support.HandleFunc("/{id}/resolve", resolveReconciliationHandler.NewHandler(reconSvc, log).Handle).Methods(http.MethodPatch)

		if cfg.Support.Token == "" {
			log.Warn("SUPPORT_TOKEN is not set, reconciliation routes are closed")
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		serverErrors <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-quit:
		log.Info("Shutting down server (signal=%v)...", sig)
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
	return nil
}
