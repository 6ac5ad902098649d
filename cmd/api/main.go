package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/opencourier/client-provider/api/routes"
	"github.com/opencourier/client-provider/internal/clients"
	"github.com/opencourier/client-provider/internal/counterparty"
	"github.com/opencourier/client-provider/internal/tf"
	"github.com/opencourier/client-provider/pkg/config"
	"github.com/opencourier/client-provider/pkg/db"
	"github.com/opencourier/client-provider/pkg/db/models"
	"github.com/opencourier/client-provider/pkg/instance"
	"github.com/opencourier/client-provider/pkg/logger"
	"github.com/opencourier/client-provider/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "client-provider"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "client-provider",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	// sqlite in dev always migrates; anything else opts in via the flag
	if cfg.FeatureFlags.AutoMigrate || (cfg.App.IsDev() && cfg.FeatureFlags.UseSQLite) {
		if err := dbClient.AutoMigrate(models.All()...); err != nil {
			logg.Error(context.Background(), "failed to run auto migration", err)
			os.Exit(1)
		}
	}

	var (
		redisClient *redis.Client
		cache       clients.Cache
		cachePinger redis.Pinger
	)
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		cache = redisClient
		cachePinger = redisClient
	}

	clientService, err := clients.NewService(clients.ServiceParams{
		Repo:          clients.NewRepository(dbClient.DB()),
		Cache:         cache,
		ClientListTTL: cfg.Cache.ClientListTTL,
		ClientDataTTL: cfg.Cache.ClientDataTTL,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create client service", err)
		os.Exit(1)
	}

	counterpartyService, err := counterparty.NewService(dbClient.DB())
	if err != nil {
		logg.Error(context.Background(), "failed to create counterparty service", err)
		os.Exit(1)
	}

	tfService, err := tf.NewService(dbClient.DB())
	if err != nil {
		logg.Error(context.Background(), "failed to create tf service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.GetID(),
	})
	logg.Info(ctx, "starting client provider server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, cachePinger, clientService, counterpartyService, tfService),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "server stopped unexpectedly", err)
		os.Exit(1)
	}
}
