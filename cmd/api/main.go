package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/rafaelmoret/comissoes-backend/api/routes"
	"github.com/rafaelmoret/comissoes-backend/internal/installments"
	"github.com/rafaelmoret/comissoes-backend/internal/pricing"
	"github.com/rafaelmoret/comissoes-backend/internal/reconciliation"
	"github.com/rafaelmoret/comissoes-backend/internal/sellers"
	"github.com/rafaelmoret/comissoes-backend/pkg/config"
	"github.com/rafaelmoret/comissoes-backend/pkg/db"
	"github.com/rafaelmoret/comissoes-backend/pkg/logger"
	"github.com/rafaelmoret/comissoes-backend/pkg/migrate"
	"github.com/rafaelmoret/comissoes-backend/pkg/redis"
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

	installmentsRepo := installments.NewRepository(dbClient.DB())
	installmentsService, err := installments.NewService(installmentsRepo, logg, nil)
	if err != nil {
		logg.Error(context.Background(), "failed to create installments service", err)
		os.Exit(1)
	}

	sellersService, err := sellers.NewService(sellers.NewRepository(dbClient.DB()), logg, cfg.Commission.DefaultPercentDecimal())
	if err != nil {
		logg.Error(context.Background(), "failed to create sellers service", err)
		os.Exit(1)
	}

	reconciliationService, err := reconciliation.NewService(reconciliation.Params{
		Sources:      reconciliation.NewSourceRepository(dbClient.DB()),
		Installments: installmentsRepo,
		Sellers:      sellersService,
		Planner:      installments.NewPlanner(nil),
		Tx:           dbClient,
		Logger:       logg,
		BatchLimit:   cfg.Reconciliation.BatchLimit,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create reconciliation service", err)
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
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			pricing.DefaultCatalog(),
			installmentsService,
			reconciliationService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
