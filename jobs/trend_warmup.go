package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/finboard-erp/finboard/internal/reporting"
)

// TrendWarmupJob pre-computes 12-month comparison reports so the first
// dashboard hit of the day lands on a warm cache.
type TrendWarmupJob struct {
	service *reporting.Service
	logger  *slog.Logger
	metrics *Metrics
}

// NewTrendWarmupJob wires the reporting service into the warmup handler.
func NewTrendWarmupJob(service *reporting.Service, logger *slog.Logger, metrics *Metrics) *TrendWarmupJob {
	return &TrendWarmupJob{service: service, logger: logger, metrics: metrics}
}

// Handle processes TaskTrendWarmup tasks.
func (j *TrendWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload TrendWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	from, err := time.Parse("2006-01", payload.FromMonth)
	if err != nil {
		// default window: trailing twelve months ending this month
		from = time.Now().UTC().AddDate(0, -11, 0)
	}

	tracker := j.metrics.Track("trend_warmup")
	var failed int
	for _, companyID := range payload.CompanyIDs {
		if _, err := j.service.MonthlyComparison(ctx, reporting.TrendFilter{CompanyID: companyID, From: from}); err != nil {
			failed++
			j.logger.Warn("trend warmup",
				slog.String("company_id", companyID.String()),
				slog.Any("error", err))
		}
	}
	j.logger.Info("trend warmup complete",
		slog.Int("companies", len(payload.CompanyIDs)),
		slog.Int("failed", failed))
	return tracker.End(nil)
}
