package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"

	"github.com/merodoctor/merodoctor-backend/api/controllers"
	"github.com/merodoctor/merodoctor-backend/api/routes"
	"github.com/merodoctor/merodoctor-backend/internal/appointments"
	"github.com/merodoctor/merodoctor-backend/internal/cart"
	"github.com/merodoctor/merodoctor-backend/internal/catalog"
	"github.com/merodoctor/merodoctor-backend/internal/orders"
	"github.com/merodoctor/merodoctor-backend/internal/session"
	"github.com/merodoctor/merodoctor-backend/internal/subscriptions"
	"github.com/merodoctor/merodoctor-backend/internal/triage"
	"github.com/merodoctor/merodoctor-backend/pkg/config"
	"github.com/merodoctor/merodoctor-backend/pkg/db"
	"github.com/merodoctor/merodoctor-backend/pkg/logger"
	"github.com/merodoctor/merodoctor-backend/pkg/metrics"
	"github.com/merodoctor/merodoctor-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = "sqlite"
	}
	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if cfg.FeatureFlags.AutoMigrate {
		if err := catalog.Migrate(dbClient.DB()); err != nil {
			logg.Error(context.Background(), "failed to migrate catalog", err)
			os.Exit(1)
		}
	}
	if cfg.FeatureFlags.SeedCatalog {
		err := dbClient.WithTx(context.Background(), func(tx *gorm.DB) error {
			return catalog.Seed(context.Background(), tx)
		})
		if err != nil {
			logg.Error(context.Background(), "failed to seed catalog", err)
			os.Exit(1)
		}
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionStore, err := session.NewRedisStore(redisClient, cfg.Session)
	if err != nil {
		logg.Error(context.Background(), "failed to create session store", err)
		os.Exit(1)
	}
	sessionManager, err := session.NewManager(sessionStore, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalog.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	triageService, err := triage.NewService(catalogService, sessionManager, metrics.NewTriageMetrics(registry))
	if err != nil {
		logg.Error(context.Background(), "failed to create triage service", err)
		os.Exit(1)
	}
	cartService, err := cart.NewService(catalogService, sessionManager)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}
	orderService, err := orders.NewService(catalogService, sessionManager)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}
	subscriptionService, err := subscriptions.NewService(catalogService, sessionManager)
	if err != nil {
		logg.Error(context.Background(), "failed to create subscriptions service", err)
		os.Exit(1)
	}
	appointmentService, err := appointments.NewService(catalogService, sessionManager)
	if err != nil {
		logg.Error(context.Background(), "failed to create appointments service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config: cfg,
			Logger: logg,
			Pingers: map[string]controllers.Pinger{
				"db":    dbClient,
				"redis": redisClient,
			},
			Registry:      registry,
			HTTPMetrics:   metrics.NewHTTPMetrics(registry),
			Sessions:      sessionManager,
			Catalog:       catalogService,
			Triage:        triageService,
			Cart:          cartService,
			Orders:        orderService,
			Subscriptions: subscriptionService,
			Appointments:  appointmentService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
