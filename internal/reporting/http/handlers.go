package reportinghttp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/finboard-erp/finboard/internal/ledger"
	"github.com/finboard-erp/finboard/internal/observability"
	"github.com/finboard-erp/finboard/internal/platform/httpx"
	"github.com/finboard-erp/finboard/internal/reporting"
)

const requestTimeout = 10 * time.Second

// ReportService is the reporting pipeline contract the handler depends on.
type ReportService interface {
	BalanceSheet(ctx context.Context, f reporting.ReportFilter) (reporting.BalanceSheetReport, error)
	IncomeStatement(ctx context.Context, f reporting.ReportFilter) (reporting.IncomeStatementReport, error)
	MonthlyComparison(ctx context.Context, f reporting.TrendFilter) (reporting.TrendReport, error)
	PayrollSummary(ctx context.Context, f reporting.ReportFilter) (reporting.PayrollReport, error)
}

// Handler serves the report endpoints.
type Handler struct {
	logger   *slog.Logger
	service  ReportService
	metrics  *observability.Metrics
	validate *validator.Validate
}

// NewHandler constructs the reporting HTTP handler. Metrics may be nil.
func NewHandler(logger *slog.Logger, service ReportService, metrics *observability.Metrics) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		metrics:  metrics,
		validate: validator.New(),
	}
}

type reportQuery struct {
	CompanyID   string `validate:"required,uuid"`
	StoreID     string `validate:"omitempty,uuid"`
	From        string `validate:"required,datetime=2006-01-02"`
	To          string `validate:"required,datetime=2006-01-02"`
	IncludeZero string `validate:"omitempty,oneof=true false"`
	Grouping    string `validate:"omitempty,oneof=detailed summary"`
}

type trendQuery struct {
	CompanyID string `validate:"required,uuid"`
	StoreID   string `validate:"omitempty,uuid"`
	From      string `validate:"required,datetime=2006-01"`
}

func (h *Handler) parseReportFilter(r *http.Request) (reporting.ReportFilter, error) {
	q := r.URL.Query()
	raw := reportQuery{
		CompanyID:   q.Get("company_id"),
		StoreID:     q.Get("store_id"),
		From:        q.Get("from"),
		To:          q.Get("to"),
		IncludeZero: q.Get("include_zero"),
		Grouping:    q.Get("grouping"),
	}
	if err := h.validate.Struct(raw); err != nil {
		return reporting.ReportFilter{}, fmt.Errorf("%w: %s", reporting.ErrValidation, validationDetail(err))
	}

	filter := reporting.ReportFilter{
		CompanyID:   uuid.MustParse(raw.CompanyID),
		IncludeZero: raw.IncludeZero == "true",
		Grouping:    reporting.GroupingDetailed,
	}
	if raw.Grouping == string(reporting.GroupingSummary) {
		filter.Grouping = reporting.GroupingSummary
	}
	if raw.StoreID != "" {
		id := uuid.MustParse(raw.StoreID)
		filter.StoreID = &id
	}
	from, _ := time.Parse("2006-01-02", raw.From)
	to, _ := time.Parse("2006-01-02", raw.To)
	filter.Period = ledger.Period{Start: from, End: to}
	if err := filter.Period.Validate(); err != nil {
		return reporting.ReportFilter{}, fmt.Errorf("%w: %v", reporting.ErrValidation, err)
	}
	return filter, nil
}

func (h *Handler) parseTrendFilter(r *http.Request) (reporting.TrendFilter, error) {
	q := r.URL.Query()
	raw := trendQuery{
		CompanyID: q.Get("company_id"),
		StoreID:   q.Get("store_id"),
		From:      q.Get("from"),
	}
	if err := h.validate.Struct(raw); err != nil {
		return reporting.TrendFilter{}, fmt.Errorf("%w: %s", reporting.ErrValidation, validationDetail(err))
	}
	filter := reporting.TrendFilter{CompanyID: uuid.MustParse(raw.CompanyID)}
	if raw.StoreID != "" {
		id := uuid.MustParse(raw.StoreID)
		filter.StoreID = &id
	}
	filter.From, _ = time.Parse("2006-01", raw.From)
	return filter, nil
}

func (h *Handler) handleBalanceSheet(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseReportFilter(r)
	if err != nil {
		h.respondError(w, "balance sheet", err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	report, err := h.service.BalanceSheet(ctx, filter)
	if err != nil {
		h.respondError(w, "balance sheet", err)
		return
	}
	h.metrics.ReportBuilt("balance_sheet")
	httpx.JSON(w, http.StatusOK, toBalanceSheetVM(report))
}

func (h *Handler) handleIncomeStatement(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseReportFilter(r)
	if err != nil {
		h.respondError(w, "income statement", err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	report, err := h.service.IncomeStatement(ctx, filter)
	if err != nil {
		h.respondError(w, "income statement", err)
		return
	}
	h.metrics.ReportBuilt("income_statement")
	httpx.JSON(w, http.StatusOK, toIncomeStatementVM(report))
}

func (h *Handler) handleMonthlyComparison(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseTrendFilter(r)
	if err != nil {
		h.respondError(w, "monthly comparison", err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	report, err := h.service.MonthlyComparison(ctx, filter)
	if err != nil {
		h.respondError(w, "monthly comparison", err)
		return
	}
	h.metrics.ReportBuilt("monthly_comparison")
	httpx.JSON(w, http.StatusOK, toTrendVM(report))
}

func (h *Handler) handlePayrollSummary(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseReportFilter(r)
	if err != nil {
		h.respondError(w, "payroll summary", err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	report, err := h.service.PayrollSummary(ctx, filter)
	if err != nil {
		h.respondError(w, "payroll summary", err)
		return
	}
	h.metrics.ReportBuilt("payroll")
	httpx.JSON(w, http.StatusOK, toPayrollVM(report))
}

// respondError maps pipeline errors onto problem responses. Validation is
// the caller's fault; an unavailable ledger is retryable; everything else
// stays opaque.
func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, reporting.ErrValidation):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, ledger.ErrUnavailable):
		h.logger.Error(op, slog.Any("error", err))
		httpx.Problem(w, http.StatusBadGateway, "Ledger Unavailable", "the ledger store could not be reached; retry later")
	default:
		h.logger.Error(op, slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}

func validationDetail(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return fmt.Sprintf("field %s failed on %s", fieldErrs[0].Field(), fieldErrs[0].Tag())
	}
	return "invalid parameters"
}
