package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rafaelmoret/comissoes-backend/internal/cron"
	"github.com/rafaelmoret/comissoes-backend/internal/installments"
	"github.com/rafaelmoret/comissoes-backend/internal/reconciliation"
	"github.com/rafaelmoret/comissoes-backend/internal/sellers"
	"github.com/rafaelmoret/comissoes-backend/pkg/config"
	"github.com/rafaelmoret/comissoes-backend/pkg/db"
	"github.com/rafaelmoret/comissoes-backend/pkg/logger"
	"github.com/rafaelmoret/comissoes-backend/pkg/metrics"
	"github.com/rafaelmoret/comissoes-backend/pkg/migrate"
	"github.com/rafaelmoret/comissoes-backend/pkg/redis"
)

const lockKeyFormat = "comissoes:cron-worker:lock:%s"

func main() {
	logg := logger.New(logger.Options{ServiceName: "cron-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	cfg.Service.Kind = "cron-worker"

	logg = logger.New(logger.Options{
		ServiceName: "cron-worker",
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
		Metrics:      metrics.NewReconciliationMetrics(prometheus.DefaultRegisterer),
		BatchLimit:   cfg.Reconciliation.BatchLimit,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create reconciliation service", err)
		os.Exit(1)
	}

	reconciliationJob, err := cron.NewReconciliationJob(cron.ReconciliationJobParams{
		Logger:     logg,
		Service:    reconciliationService,
		RunTimeout: cfg.Reconciliation.FetchTimeout,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create reconciliation job", err)
		os.Exit(1)
	}

	overdueJob, err := cron.NewOverdueSweepJob(cron.OverdueSweepJobParams{
		Logger: logg,
		Repo:   installmentsRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create overdue sweep job", err)
		os.Exit(1)
	}

	lock, err := cron.NewRedisLock(redisClient, lockKey(cfg.App.Env), cfg.Cron.LockTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cron lock", err)
		os.Exit(1)
	}

	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(overdueJob, reconciliationJob),
		Lock:     lock,
		Metrics:  metrics.NewCronJobMetrics(prometheus.DefaultRegisterer),
		Interval: cfg.Cron.Interval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cron service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"serviceKind": cfg.Service.Kind,
	})
	logg.Info(ctx, "starting cron worker")

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "cron worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "cron worker shutting down gracefully")
}

func lockKey(env string) string {
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf(lockKeyFormat, env)
}
