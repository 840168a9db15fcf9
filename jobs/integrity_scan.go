package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/finboard-erp/finboard/internal/ledger"
	"github.com/finboard-erp/finboard/internal/observability"
	"github.com/finboard-erp/finboard/internal/reporting"
)

// IntegrityScanJob recomputes the balance-sheet equation per company and
// raises a metric for every out-of-tolerance difference. Violations are
// reported, never corrected.
type IntegrityScanJob struct {
	service *reporting.Service
	logger  *slog.Logger
	metrics *Metrics
	appMet  *observability.Metrics
}

// NewIntegrityScanJob wires the reporting service into the scan handler.
func NewIntegrityScanJob(service *reporting.Service, logger *slog.Logger, metrics *Metrics, appMetrics *observability.Metrics) *IntegrityScanJob {
	return &IntegrityScanJob{service: service, logger: logger, metrics: metrics, appMet: appMetrics}
}

// Handle processes TaskIntegrityScan tasks.
func (j *IntegrityScanJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload IntegrityScanPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	period, err := scanPeriod(payload)
	if err != nil {
		return asynq.SkipRetry
	}

	tracker := j.metrics.Track("integrity_scan")
	var violations int
	for _, companyID := range payload.CompanyIDs {
		report, err := j.service.BalanceSheet(ctx, reporting.ReportFilter{
			CompanyID: companyID,
			Period:    period,
			Grouping:  reporting.GroupingSummary,
		})
		if err != nil {
			j.logger.Warn("integrity scan",
				slog.String("company_id", companyID.String()),
				slog.Any("error", err))
			continue
		}
		if !report.Statement.BalanceCheck {
			violations++
			j.appMet.BalanceCheckFailed()
			j.logger.Error("accounting equation out of tolerance",
				slog.String("company_id", companyID.String()),
				slog.Float64("difference", report.Statement.BalanceDifference))
		}
	}
	j.logger.Info("integrity scan complete",
		slog.Int("companies", len(payload.CompanyIDs)),
		slog.Int("violations", violations))
	return tracker.End(nil)
}

func scanPeriod(payload IntegrityScanPayload) (ledger.Period, error) {
	from, err := time.Parse("2006-01", payload.FromMonth)
	if err != nil {
		return ledger.Period{}, err
	}
	to, err := time.Parse("2006-01", payload.ToMonth)
	if err != nil {
		return ledger.Period{}, err
	}
	period := ledger.Period{Start: from, End: to.AddDate(0, 1, -1)}
	if err := period.Validate(); err != nil {
		return ledger.Period{}, err
	}
	return period, nil
}
