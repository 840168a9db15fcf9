package reporting

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/finboard-erp/finboard/internal/analysis"
	"github.com/finboard-erp/finboard/internal/ledger"
	"github.com/finboard-erp/finboard/internal/statement"
)

// ErrValidation indicates a caller-supplied filter is invalid. Never
// retried; surfaced straight to the caller.
var ErrValidation = errors.New("reporting: invalid filter")

// GroupingLevel selects detailed (per-account rows) or summary
// (subcategory totals only) report output.
type GroupingLevel string

const (
	GroupingDetailed GroupingLevel = "detailed"
	GroupingSummary  GroupingLevel = "summary"
)

// ReportFilter scopes a single-period statement request.
type ReportFilter struct {
	CompanyID   uuid.UUID
	StoreID     *uuid.UUID
	Period      ledger.Period
	IncludeZero bool
	Grouping    GroupingLevel
}

// TrendFilter scopes a 12-month comparison, anchored at the month
// containing From.
type TrendFilter struct {
	CompanyID uuid.UUID
	StoreID   *uuid.UUID
	From      time.Time
}

// BalanceSheetReport is the balance sheet plus its request scope.
type BalanceSheetReport struct {
	CompanyID uuid.UUID
	StoreID   *uuid.UUID
	Period    ledger.Period
	Statement statement.BalanceSheet
}

// IncomeStatementReport is the income statement, its ratio summary and the
// request scope.
type IncomeStatementReport struct {
	CompanyID uuid.UUID
	StoreID   *uuid.UUID
	Period    ledger.Period
	Statement statement.IncomeStatement
	Ratios    analysis.RatioSummary
}

// TrendReport is the 12-month comparison plus its request scope.
type TrendReport struct {
	CompanyID uuid.UUID
	StoreID   *uuid.UUID
	Trend     analysis.TrendReport
}

// PayrollLine is one payroll account's period total.
type PayrollLine struct {
	AccountID        uuid.UUID
	Name             string
	Amount           float64
	TransactionCount int
}

// PayrollReport summarises payroll expense accounts for a period.
type PayrollReport struct {
	CompanyID     uuid.UUID
	StoreID       *uuid.UUID
	Period        ledger.Period
	Lines         []PayrollLine
	Total         float64
	FixedTotal    float64
	VariableTotal float64
}

// Service runs the report pipeline: validate, fetch from the ledger once,
// then compute synchronously. It holds no per-request state and never
// fabricates data when the repository fails.
type Service struct {
	repo   ledger.Repository
	cache  *analysis.Cache
	logger *slog.Logger
}

// NewService wires the ledger repository with an optional report cache.
func NewService(repo ledger.Repository, cache *analysis.Cache, logger *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, logger: logger}
}

func (s *Service) validate(f ReportFilter) error {
	if f.CompanyID == uuid.Nil {
		return fmt.Errorf("%w: company id required", ErrValidation)
	}
	if err := f.Period.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

// load fetches accounts and journal lines concurrently. Repository errors
// propagate unchanged so ledger.ErrUnavailable stays recognisable.
func (s *Service) load(ctx context.Context, companyID uuid.UUID, storeID *uuid.UUID, period ledger.Period) ([]ledger.Account, []ledger.JournalLine, error) {
	var (
		accounts []ledger.Account
		lines    []ledger.JournalLine
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		accounts, err = s.repo.ListAccounts(ctx, companyID)
		return err
	})
	g.Go(func() error {
		var err error
		lines, err = s.repo.ListJournalLines(ctx, companyID, storeID, period.Start, period.End)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return accounts, lines, nil
}

func (s *Service) balances(ctx context.Context, f ReportFilter) ([]statement.AccountBalance, error) {
	accounts, lines, err := s.load(ctx, f.CompanyID, f.StoreID, f.Period)
	if err != nil {
		return nil, err
	}
	return statement.ComputeBalances(accounts, lines, statement.BalanceOptions{
		Period:      f.Period,
		StoreID:     f.StoreID,
		IncludeZero: f.IncludeZero,
	}), nil
}

// BalanceSheet builds the balance sheet for the filter scope. An empty
// period yields a full zero-shaped report, not an error.
func (s *Service) BalanceSheet(ctx context.Context, f ReportFilter) (BalanceSheetReport, error) {
	if err := s.validate(f); err != nil {
		return BalanceSheetReport{}, err
	}
	loader := func(ctx context.Context) (interface{}, error) {
		balances, err := s.balances(ctx, f)
		if err != nil {
			return nil, err
		}
		bs := statement.BuildBalanceSheet(balances)
		if !bs.BalanceCheck && s.logger != nil {
			s.logger.Warn("balance equation violated",
				slog.String("company_id", f.CompanyID.String()),
				slog.Float64("difference", bs.BalanceDifference))
		}
		return bs, nil
	}

	var bs statement.BalanceSheet
	if err := s.cached(ctx, analysis.KeyBalanceSheet(f.CompanyID, f.StoreID, dateToken(f.Period.Start), dateToken(f.Period.End)), f, &bs, loader); err != nil {
		return BalanceSheetReport{}, err
	}
	if f.Grouping == GroupingSummary {
		bs = bs.Summarize()
	}
	return BalanceSheetReport{CompanyID: f.CompanyID, StoreID: f.StoreID, Period: f.Period, Statement: bs}, nil
}

// IncomeStatement builds the income statement and its ratio summary.
func (s *Service) IncomeStatement(ctx context.Context, f ReportFilter) (IncomeStatementReport, error) {
	if err := s.validate(f); err != nil {
		return IncomeStatementReport{}, err
	}
	loader := func(ctx context.Context) (interface{}, error) {
		balances, err := s.balances(ctx, f)
		if err != nil {
			return nil, err
		}
		return statement.BuildIncomeStatement(balances), nil
	}

	var is statement.IncomeStatement
	if err := s.cached(ctx, analysis.KeyIncomeStatement(f.CompanyID, f.StoreID, dateToken(f.Period.Start), dateToken(f.Period.End)), f, &is, loader); err != nil {
		return IncomeStatementReport{}, err
	}
	ratios := analysis.Summarize(analysis.Totals{
		Revenue:         is.Revenue.Total,
		COGS:            is.COGS.Total,
		GrossProfit:     is.GrossProfit,
		Opex:            is.OperatingExpenses.Total,
		OperatingIncome: is.OperatingIncome,
		NetIncome:       is.NetIncome,
		FixedCosts:      is.FixedTotal,
		VariableCosts:   is.VariableTotal,
	})
	if f.Grouping == GroupingSummary {
		is = is.Summarize()
	}
	return IncomeStatementReport{CompanyID: f.CompanyID, StoreID: f.StoreID, Period: f.Period, Statement: is, Ratios: ratios}, nil
}

// MonthlyComparison builds the 12-month trend report anchored at the month
// containing the filter's From date.
func (s *Service) MonthlyComparison(ctx context.Context, f TrendFilter) (TrendReport, error) {
	if f.CompanyID == uuid.Nil {
		return TrendReport{}, fmt.Errorf("%w: company id required", ErrValidation)
	}
	if f.From.IsZero() {
		return TrendReport{}, fmt.Errorf("%w: trend anchor month required", ErrValidation)
	}
	periods := ledger.MonthlyPeriods(f.From, analysis.TrendMonths)
	window := ledger.Period{Start: periods[0].Start, End: periods[len(periods)-1].End}

	loader := func(ctx context.Context) (interface{}, error) {
		accounts, lines, err := s.load(ctx, f.CompanyID, f.StoreID, window)
		if err != nil {
			return nil, err
		}
		return analysis.BuildTrend(periods, observations(accounts, lines, f.StoreID)), nil
	}

	var trend analysis.TrendReport
	key := analysis.KeyTrend(f.CompanyID, f.StoreID, periods[0].Label())
	if err := s.cachedTrend(ctx, key, &trend, loader); err != nil {
		return TrendReport{}, err
	}
	return TrendReport{CompanyID: f.CompanyID, StoreID: f.StoreID, Trend: trend}, nil
}

// PayrollSummary totals payroll expense accounts for the period.
func (s *Service) PayrollSummary(ctx context.Context, f ReportFilter) (PayrollReport, error) {
	if err := s.validate(f); err != nil {
		return PayrollReport{}, err
	}
	accounts, lines, err := s.load(ctx, f.CompanyID, f.StoreID, f.Period)
	if err != nil {
		return PayrollReport{}, err
	}
	payroll := accounts[:0:0]
	for _, a := range accounts {
		if a.Type == ledger.AccountTypeExpense && a.DetailCategory == ledger.DetailPayrollExpense {
			payroll = append(payroll, a)
		}
	}
	balances := statement.ComputeBalances(payroll, lines, statement.BalanceOptions{
		Period:      f.Period,
		StoreID:     f.StoreID,
		IncludeZero: f.IncludeZero,
	})

	report := PayrollReport{CompanyID: f.CompanyID, StoreID: f.StoreID, Period: f.Period, Lines: []PayrollLine{}}
	for _, b := range balances {
		report.Lines = append(report.Lines, PayrollLine{
			AccountID:        b.Account.ID,
			Name:             b.Account.Name,
			Amount:           b.Balance,
			TransactionCount: b.TransactionCount,
		})
		report.Total += b.Balance
		if b.Account.ExpenseNature != nil {
			switch *b.Account.ExpenseNature {
			case ledger.ExpenseNatureFixed:
				report.FixedTotal += b.Balance
			case ledger.ExpenseNatureVariable:
				report.VariableTotal += b.Balance
			}
		}
	}
	return report, nil
}

// cached runs loader behind the versioned cache. Requests that include zero
// balances bypass the cache so cached entries keep one canonical shape; a
// nil cache degrades to loader-only behaviour inside FetchJSON.
func (s *Service) cached(ctx context.Context, keyParts []string, f ReportFilter, dest interface{}, loader func(context.Context) (interface{}, error)) error {
	if f.IncludeZero {
		return loadInto(ctx, dest, loader)
	}
	key, err := s.cache.BuildKey(ctx, keyParts...)
	if err != nil {
		return err
	}
	return s.cache.FetchJSON(ctx, key, dest, loader)
}

func (s *Service) cachedTrend(ctx context.Context, keyParts []string, dest *analysis.TrendReport, loader func(context.Context) (interface{}, error)) error {
	key, err := s.cache.BuildKey(ctx, keyParts...)
	if err != nil {
		return err
	}
	return s.cache.FetchJSON(ctx, key, dest, loader)
}

// observations maps journal lines to per-month signed amounts keyed by the
// owning account.
func observations(accounts []ledger.Account, lines []ledger.JournalLine, storeID *uuid.UUID) []analysis.Observation {
	byID := make(map[uuid.UUID]ledger.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}
	obs := make([]analysis.Observation, 0, len(lines))
	for _, l := range lines {
		a, ok := byID[l.AccountID]
		if !ok {
			continue
		}
		if storeID != nil && (l.StoreID == nil || *l.StoreID != *storeID) {
			continue
		}
		amount := l.Credit - l.Debit
		if a.Type == ledger.AccountTypeAsset || a.Type == ledger.AccountTypeExpense {
			amount = l.Debit - l.Credit
		}
		obs = append(obs, analysis.Observation{
			AccountName: a.Name,
			AccountType: a.Type,
			Month:       l.EntryDate.Format("2006-01"),
			Amount:      amount,
		})
	}
	return obs
}

// loadInto mirrors the cache's decode path so cached and uncached results
// share one shape.
func loadInto(ctx context.Context, dest interface{}, loader func(context.Context) (interface{}, error)) error {
	value, err := loader(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

func dateToken(t time.Time) string {
	return t.Format("2006-01-02")
}
