package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/finboard-erp/finboard/internal/analysis"
	"github.com/finboard-erp/finboard/internal/app"
	"github.com/finboard-erp/finboard/internal/ledger"
	"github.com/finboard-erp/finboard/internal/observability"
	"github.com/finboard-erp/finboard/internal/platform/cache"
	"github.com/finboard-erp/finboard/internal/platform/db"
	"github.com/finboard-erp/finboard/internal/reporting"
	"github.com/finboard-erp/finboard/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	var repo ledger.Repository
	switch cfg.RepoDriver {
	case app.RepoDriverFake:
		logger.Warn("using in-memory ledger repository")
		repo = ledger.NewFakeRepository()
	default:
		pool, err := db.New(ctx, cfg.PGDSN)
		if err != nil {
			logger.Error("connect postgres", slog.Any("error", err))
			os.Exit(1)
		}
		defer pool.Close()
		repo = ledger.NewPostgresRepository(pool)
	}

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	var reportCache *analysis.Cache
	if redisClient != nil {
		reportCache = analysis.NewCache(redisClient, cfg.ReportCacheTTL)
	}

	service := reporting.NewService(repo, reportCache, logger)
	appMetrics := observability.NewMetrics()
	jobMetrics := jobs.NewMetrics(appMetrics.Registerer())

	warmupJob := jobs.NewTrendWarmupJob(service, logger, jobMetrics)
	scanJob := jobs.NewIntegrityScanJob(service, logger, jobMetrics, appMetrics)

	warmupIDs := parseCompanyIDs(cfg.WarmupCompanyIDs, logger)
	thisMonth := time.Now().UTC().Format("2006-01")
	warmupTask, err := jobs.NewTrendWarmupTask(jobs.TrendWarmupPayload{CompanyIDs: warmupIDs})
	if err != nil {
		logger.Error("build warmup task", slog.Any("error", err))
		os.Exit(1)
	}
	scanTask, err := jobs.NewIntegrityScanTask(jobs.IntegrityScanPayload{
		CompanyIDs: warmupIDs,
		FromMonth:  thisMonth,
		ToMonth:    thisMonth,
	})
	if err != nil {
		logger.Error("build integrity task", slog.Any("error", err))
		os.Exit(1)
	}

	var cron []jobs.CronRegistration
	if len(warmupIDs) > 0 {
		cron = []jobs.CronRegistration{
			{Spec: "15 1 * * *", Task: warmupTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: "45 1 * * *", Task: scanTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		}
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskTrendWarmup, Handler: warmupJob.Handle},
			{Type: jobs.TaskIntegrityScan, Handler: scanJob.Handle},
		},
		Cron: cron,
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}

func parseCompanyIDs(raw []string, logger *slog.Logger) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			logger.Warn("skipping malformed company id", slog.String("value", s))
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
