package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/SyN415/local-marketplace-lister-sub000/api/routes"
	"github.com/SyN415/local-marketplace-lister-sub000/internal/profit"
	"github.com/SyN415/local-marketplace-lister-sub000/internal/resale"
	"github.com/SyN415/local-marketplace-lister-sub000/internal/search"
	"github.com/SyN415/local-marketplace-lister-sub000/internal/valuation"
	"github.com/SyN415/local-marketplace-lister-sub000/pkg/config"
	"github.com/SyN415/local-marketplace-lister-sub000/pkg/db"
	"github.com/SyN415/local-marketplace-lister-sub000/pkg/logger"
	"github.com/SyN415/local-marketplace-lister-sub000/pkg/metrics"
	"github.com/SyN415/local-marketplace-lister-sub000/pkg/migrate"
	"github.com/SyN415/local-marketplace-lister-sub000/pkg/redis"
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

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	searchClient, err := search.NewHTTPClient(cfg.Search)
	if err != nil {
		logg.Error(context.Background(), "failed to build search client", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	valuationMetrics := metrics.NewValuationMetrics(registry)

	valuer := valuation.NewValuer(searchClient, redisClient, valuationMetrics, cfg.Valuation, logg)
	calculator := profit.NewCalculator(cfg.Profit)
	repository := resale.NewRepository(dbClient.DB())
	resaleService := resale.NewService(valuer, calculator, repository, valuationMetrics, cfg.Valuation, logg)

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
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, resaleService, registry),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
