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

	cancelReservationHandler "github.com/MaximoMartin/celebrae-booking-engine/internal/api/handlers/cancel_reservation"
	createBookingHandler "github.com/MaximoMartin/celebrae-booking-engine/internal/api/handlers/create_booking"
	evaluateAvailabilityHandler "github.com/MaximoMartin/celebrae-booking-engine/internal/api/handlers/evaluate_availability"
	getAvailableSlotsHandler "github.com/MaximoMartin/celebrae-booking-engine/internal/api/handlers/get_available_slots"
	getOrganizationReservationsHandler "github.com/MaximoMartin/celebrae-booking-engine/internal/api/handlers/get_organization_reservations"
	getReservationHandler "github.com/MaximoMartin/celebrae-booking-engine/internal/api/handlers/get_reservation"
	modifyReservationHandler "github.com/MaximoMartin/celebrae-booking-engine/internal/api/handlers/modify_reservation"
	validateBookingHandler "github.com/MaximoMartin/celebrae-booking-engine/internal/api/handlers/validate_booking"
	"github.com/MaximoMartin/celebrae-booking-engine/internal/api/middleware"
	"github.com/MaximoMartin/celebrae-booking-engine/internal/config"
	"github.com/MaximoMartin/celebrae-booking-engine/internal/domain"
	availcache "github.com/MaximoMartin/celebrae-booking-engine/internal/infra/cache/availability"
	catalogRepo "github.com/MaximoMartin/celebrae-booking-engine/internal/infra/storage/catalog"
	reservationRepo "github.com/MaximoMartin/celebrae-booking-engine/internal/infra/storage/reservation"
	"github.com/MaximoMartin/celebrae-booking-engine/internal/service/availability"
	reservationsService "github.com/MaximoMartin/celebrae-booking-engine/internal/service/reservations"
	createBookingUC "github.com/MaximoMartin/celebrae-booking-engine/internal/usecase/create_booking"
	evaluateAvailabilityUC "github.com/MaximoMartin/celebrae-booking-engine/internal/usecase/evaluate_availability"
	getAvailableSlotsUC "github.com/MaximoMartin/celebrae-booking-engine/internal/usecase/get_available_slots"
	validateBookingUC "github.com/MaximoMartin/celebrae-booking-engine/internal/usecase/validate_booking"
	"github.com/MaximoMartin/celebrae-booking-engine/pkg/dbmetrics"
	"github.com/MaximoMartin/celebrae-booking-engine/pkg/logger"
	"github.com/MaximoMartin/celebrae-booking-engine/pkg/metrics"
	"github.com/MaximoMartin/celebrae-booking-engine/pkg/simpletxmanager"
	"github.com/MaximoMartin/celebrae-booking-engine/pkg/txmanager"
)

const holdExpirySweepInterval = time.Minute

// cacheMetrics adapts the prometheus collectors to the cache's recorder.
type cacheMetrics struct {
	m *metrics.Metrics
}

func (c cacheMetrics) ObserveCacheHit()  { c.m.ObserveCacheHit("availability") }
func (c cacheMetrics) ObserveCacheMiss() { c.m.ObserveCacheMiss("availability") }

// noopCache is used when the availability cache is disabled in config.
type noopCache struct{}

func (noopCache) Get(string) (domain.AvailabilityResult, bool) {
	return domain.AvailabilityResult{}, false
}
func (noopCache) Put(string, time.Time, string, domain.AvailabilityResult) {}
func (noopCache) InvalidateUnitDate(string, time.Time)                     {}

func main() {
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting celebrae-booking-engine...")
	log.Info("Configuration loaded from config.toml")

	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

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

	// Repositories and transaction manager, with or without query metrics.
	var (
		catalogRepository     *catalogRepo.Repository
		reservationRepository *reservationRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		catalogRepository = catalogRepo.NewRepository(db)
		reservationRepository = reservationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Availability verdict cache.
	var (
		resultCache      evaluateAvailabilityUC.ResultCache
		cacheInvalidator createBookingUC.CacheInvalidator
	)
	if cfg.Cache.Enabled {
		var recorder availcache.MetricsRecorder
		if cfg.Metrics.Enabled {
			recorder = cacheMetrics{m: metricsCollector}
		}
		cache := availcache.New(
			time.Duration(cfg.Cache.TTLSeconds)*time.Second,
			cfg.Cache.MaxEntries,
			recorder,
		)
		resultCache = cache
		cacheInvalidator = cache
		log.Info("Availability cache enabled (ttl=%ds, max_entries=%d)",
			cfg.Cache.TTLSeconds, cfg.Cache.MaxEntries)
	} else {
		resultCache = noopCache{}
		cacheInvalidator = noopCache{}
	}

	// Services.
	evaluator := availability.NewEvaluator(catalogRepository, reservationRepository, log)

	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		catalogRepository,
		evaluator,
		txMgr,
		&reservationsService.RealTimeProvider{},
		&reservationsService.UUIDGenerator{},
		log,
	).WithCacheInvalidator(cacheInvalidator)

	// Use cases.
	validateBookingUseCase := validateBookingUC.NewUseCase(
		catalogRepository,
		reservationRepository,
		evaluator,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		validateBookingUseCase,
		catalogRepository,
		reservationRepository,
		cacheInvalidator,
		txMgr,
		&createBookingUC.UUIDGenerator{},
		log,
	)

	evaluateAvailabilityUseCase := evaluateAvailabilityUC.NewUseCase(evaluator, resultCache, log)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(catalogRepository, evaluator, log)

	// Handlers.
	evaluateAvailabilityH := evaluateAvailabilityHandler.NewHandler(evaluateAvailabilityUseCase, log)
	getAvailableSlotsH := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	validateBookingH := validateBookingHandler.NewHandler(validateBookingUseCase, log)
	createBookingH := createBookingHandler.NewHandler(createBookingUseCase, log)
	getReservationH := getReservationHandler.NewHandler(reservationsSvc, log)
	modifyReservationH := modifyReservationHandler.NewHandler(reservationsSvc, log)
	cancelReservationH := cancelReservationHandler.NewHandler(reservationsSvc, log)
	getOrganizationReservationsH := getOrganizationReservationsHandler.NewHandler(reservationsSvc, log)

	// Background sweep releasing expired temporary holds.
	stopSweepCh := make(chan struct{})
	go func() {
		ticker := time.NewTicker(holdExpirySweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				count, err := reservationsSvc.ExpireTemporaryHolds(context.Background())
				if err != nil {
					log.Error("Hold expiry sweep failed: %v", err)
					continue
				}
				if count > 0 {
					log.Info("Hold expiry sweep released %d reservation(s)", count)
				}
			case <-stopSweepCh:
				return
			}
		}
	}()

	// Router.
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes: availability lookups and dry-run validation.
	api.HandleFunc("/units/{unitId}/availability", evaluateAvailabilityH.Handle).Methods(http.MethodGet)
	api.HandleFunc("/units/{unitId}/slots", getAvailableSlotsH.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/validate", validateBookingH.Handle).Methods(http.MethodPost)

	// Protected routes: anything that creates or mutates reservations.
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/bookings", createBookingH.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}", getReservationH.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}", modifyReservationH.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservationH.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/organizations/{organizationId}/reservations",
		getOrganizationReservationsH.Handle).Methods(http.MethodGet)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

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

	close(stopSweepCh)
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
