package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"fleetops/internal/app"
	"fleetops/internal/auth"
	"fleetops/internal/config"
	"fleetops/internal/datastore"
	"fleetops/internal/handler"
	"fleetops/internal/localstore"
	internalRedis "fleetops/internal/redis"
	"fleetops/internal/repository/memory"
	"fleetops/internal/sample"
	"fleetops/internal/service"
)

func main() {
	cfg := config.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// New Relic first, so the database and redis clients can be
	// instrumented.
	var nrApp *newrelic.Application
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		var err error
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.WithError(err).Warn("failed to initialize New Relic")
		} else {
			log.WithField("app", cfg.NewRelic.AppName).Info("New Relic enabled")
		}
	}

	// An unreachable or unconfigured database is not fatal: the
	// datastore facade decides between remote and sample mode itself.
	var db *sql.DB
	if cfg.Database.Configured() && !cfg.Datastore.ForceSampleData {
		var err error
		db, err = app.NewDatabase(cfg.Database, nrApp)
		if err != nil {
			log.WithError(err).Warn("could not open database; running on sample data")
			db = nil
		}
	}
	if db != nil {
		defer db.Close()
	}

	// Redis is optional too. Without it, sessions and account locks use
	// in-process fallbacks.
	var redisClient *redis.Client
	if cfg.Redis.Configured() {
		var err error
		redisClient, err = app.NewRedisClient(ctx, cfg.Redis, nrApp)
		if err != nil {
			log.WithError(err).Warn("could not connect to redis; using in-process sessions and locks")
			redisClient = nil
		}
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	// Sample-data machinery: seed dataset plus local JSON persistence
	// so demo records survive a restart.
	local := localstore.Open(cfg.Datastore.LocalDir, log)
	fallback := memory.NewBackend(local, sample.Data())

	store := datastore.New(db, fallback, datastore.Options{
		ForceSampleData: cfg.Datastore.ForceSampleData,
		ResilientWrites: cfg.Datastore.ResilientWrites,
		ProbeTimeout:    cfg.Datastore.ProbeTimeout,
	}, log)

	go store.Initialize(context.Background())
	if !store.WaitForInitialization(ctx) {
		log.Warn("backend mode not decided before timeout; requests will wait")
	}
	log.WithField("using_sample_data", store.UsingSampleData()).Info("backend mode decided")

	server := wireServer(store, redisClient, nrApp, cfg, log)

	go func() {
		log.WithField("port", cfg.Server.Port).Info("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(store *datastore.Store, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config, log *logrus.Logger) *http.Server {
	vehicleRepo := store.Vehicles()
	driverRepo := store.Drivers()
	ticketRepo := store.Tickets()
	fuelRepo := store.Fuel()
	accountRepo := store.Accounts()
	maintenanceRepo := store.Maintenance()

	var sessions internalRedis.SessionStore
	var locks internalRedis.AccountLocker
	if redisClient != nil {
		sessions = internalRedis.NewSessionStore(redisClient)
		locks = internalRedis.NewLockStore(redisClient)
	} else {
		sessions = internalRedis.NewLocalSessionStore()
	}

	adminHash := cfg.Auth.AdminPasswordHash
	if adminHash == "" {
		// Demo convenience only. A deployment that cares sets
		// ADMIN_PASSWORD_HASH.
		hash, err := auth.HashPassword("admin123")
		if err != nil {
			log.WithError(err).Fatal("could not hash default admin password")
		}
		adminHash = hash
		log.Warn("ADMIN_PASSWORD_HASH not set; using default demo credentials")
	}

	authService := auth.NewService(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry, driverRepo, auth.AdminCredentials{
		Username:     cfg.Auth.AdminUsername,
		Email:        cfg.Auth.AdminEmail,
		Name:         cfg.Auth.AdminName,
		PasswordHash: adminHash,
	}, sessions, log)

	vehicleService := service.NewVehicleService(vehicleRepo)
	driverService := service.NewDriverService(driverRepo)
	ticketService := service.NewTicketService(ticketRepo, driverRepo, vehicleRepo, log)
	fuelService := service.NewFuelService(fuelRepo, vehicleRepo, accountRepo, locks, log)
	maintenanceService := service.NewMaintenanceService(maintenanceRepo, vehicleRepo)
	dashboardService := service.NewDashboardService(vehicleRepo, driverRepo, ticketRepo, fuelRepo, accountRepo, maintenanceRepo, log)

	router := app.NewRouter(app.RouterDeps{
		AuthService:        authService,
		AuthHandler:        handler.NewAuthHandler(authService),
		VehicleHandler:     handler.NewVehicleHandler(vehicleService),
		DriverHandler:      handler.NewDriverHandler(driverService),
		TicketHandler:      handler.NewTicketHandler(ticketService),
		FuelHandler:        handler.NewFuelHandler(fuelService),
		MaintenanceHandler: handler.NewMaintenanceHandler(maintenanceService),
		DashboardHandler:   handler.NewDashboardHandler(dashboardService),
		SystemHandler:      handler.NewSystemHandler(store),
		RedisClient:        redisClient,
		NewRelicApp:        nrApp,
	})

	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
