package reporting

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/finboard-erp/finboard/internal/analysis"
	"github.com/finboard-erp/finboard/internal/ledger"
)

var (
	companyID   = uuid.New()
	marchPeriod = ledger.Period{
		Start: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	}
)

func seedScenario(t *testing.T, repo *ledger.FakeRepository) {
	t.Helper()
	fixed := ledger.ExpenseNatureFixed
	variable := ledger.ExpenseNatureVariable

	sales := ledger.Account{ID: uuid.New(), CompanyID: companyID, Name: "Product sales", Type: ledger.AccountTypeIncome, IsActive: true}
	materials := ledger.Account{ID: uuid.New(), CompanyID: companyID, Name: "Materials", Type: ledger.AccountTypeExpense, DetailCategory: ledger.DetailCostOfSales, IsActive: true}
	rent := ledger.Account{ID: uuid.New(), CompanyID: companyID, Name: "Rent", Type: ledger.AccountTypeExpense, DetailCategory: ledger.DetailOperatingExpense, ExpenseNature: &fixed, IsActive: true}
	commissions := ledger.Account{ID: uuid.New(), CompanyID: companyID, Name: "Commissions", Type: ledger.AccountTypeExpense, DetailCategory: ledger.DetailOperatingExpense, ExpenseNature: &variable, IsActive: true}
	cash := ledger.Account{ID: uuid.New(), CompanyID: companyID, Name: "Cash", Type: ledger.AccountTypeAsset, DetailCategory: ledger.DetailCurrentAsset, IsActive: true}
	capital := ledger.Account{ID: uuid.New(), CompanyID: companyID, Name: "Capital", Type: ledger.AccountTypeEquity, DetailCategory: ledger.DetailEquity, IsActive: true}
	wages := ledger.Account{ID: uuid.New(), CompanyID: companyID, Name: "Wages", Type: ledger.AccountTypeExpense, DetailCategory: ledger.DetailPayrollExpense, ExpenseNature: &fixed, IsActive: true}

	repo.SeedAccounts(companyID, sales, materials, rent, commissions, cash, capital, wages)

	day := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	repo.SeedLines(companyID,
		ledger.JournalLine{ID: uuid.New(), AccountID: sales.ID, Credit: 2300000, EntryDate: day},
		ledger.JournalLine{ID: uuid.New(), AccountID: materials.ID, Debit: 600000, EntryDate: day},
		ledger.JournalLine{ID: uuid.New(), AccountID: rent.ID, Debit: 800000, EntryDate: day},
		ledger.JournalLine{ID: uuid.New(), AccountID: commissions.ID, Debit: 150000, EntryDate: day},
		ledger.JournalLine{ID: uuid.New(), AccountID: wages.ID, Debit: 200000, EntryDate: day},
		ledger.JournalLine{ID: uuid.New(), AccountID: cash.ID, Debit: 1000, EntryDate: day},
		ledger.JournalLine{ID: uuid.New(), AccountID: capital.ID, Credit: 1000, EntryDate: day},
	)
}

func newTestService(t *testing.T) (*Service, *ledger.FakeRepository) {
	t.Helper()
	repo := ledger.NewFakeRepository()
	return NewService(repo, nil, slog.Default()), repo
}

func TestBalanceSheetBalancedBooks(t *testing.T) {
	svc, repo := newTestService(t)
	seedScenario(t, repo)

	report, err := svc.BalanceSheet(context.Background(), ReportFilter{CompanyID: companyID, Period: marchPeriod})
	if err != nil {
		t.Fatalf("balance sheet: %v", err)
	}
	if report.Statement.TotalAssets != 1000 || report.Statement.TotalEquity != 1000 {
		t.Fatalf("totals %v/%v", report.Statement.TotalAssets, report.Statement.TotalEquity)
	}
	if !report.Statement.BalanceCheck {
		t.Fatalf("expected balanced sheet, diff %.2f", report.Statement.BalanceDifference)
	}
}

func TestIncomeStatementScenario(t *testing.T) {
	svc, repo := newTestService(t)
	seedScenario(t, repo)

	report, err := svc.IncomeStatement(context.Background(), ReportFilter{CompanyID: companyID, Period: marchPeriod})
	if err != nil {
		t.Fatalf("income statement: %v", err)
	}
	st := report.Statement
	if st.GrossProfit != 1700000 {
		t.Fatalf("gross profit = %.2f", st.GrossProfit)
	}
	if st.OperatingExpenses.Total != 1150000 {
		t.Fatalf("opex total = %.2f", st.OperatingExpenses.Total)
	}
	if st.OperatingIncome != 550000 {
		t.Fatalf("operating income = %.2f", st.OperatingIncome)
	}
	if report.Ratios.GrossProfitMargin != 73.91 {
		t.Fatalf("gross margin = %v", report.Ratios.GrossProfitMargin)
	}
	if report.Ratios.GrossMarginHealth != analysis.HealthExcellent {
		t.Fatalf("margin health = %s", report.Ratios.GrossMarginHealth)
	}
}

func TestSummaryGroupingDropsAccountRows(t *testing.T) {
	svc, repo := newTestService(t)
	seedScenario(t, repo)

	report, err := svc.IncomeStatement(context.Background(), ReportFilter{
		CompanyID: companyID,
		Period:    marchPeriod,
		Grouping:  GroupingSummary,
	})
	if err != nil {
		t.Fatalf("income statement: %v", err)
	}
	for _, sub := range report.Statement.Revenue.Subcategories {
		if len(sub.Accounts) != 0 {
			t.Fatalf("summary grouping kept account rows")
		}
	}
	if report.Statement.Revenue.Total != 2300000 {
		t.Fatalf("summary lost the totals")
	}
}

func TestReportsAreIdempotent(t *testing.T) {
	svc, repo := newTestService(t)
	seedScenario(t, repo)
	filter := ReportFilter{CompanyID: companyID, Period: marchPeriod}

	first, err := svc.IncomeStatement(context.Background(), filter)
	if err != nil {
		t.Fatalf("first build: %v", err)
	}
	second, err := svc.IncomeStatement(context.Background(), filter)
	if err != nil {
		t.Fatalf("second build: %v", err)
	}
	if first.Statement.NetIncome != second.Statement.NetIncome ||
		first.Ratios != second.Ratios {
		t.Fatalf("repeated builds diverged")
	}
}

func TestValidationErrors(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.BalanceSheet(ctx, ReportFilter{Period: marchPeriod})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("missing company id: %v", err)
	}

	_, err = svc.IncomeStatement(ctx, ReportFilter{
		CompanyID: companyID,
		Period:    ledger.Period{Start: marchPeriod.End, End: marchPeriod.Start},
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("inverted period: %v", err)
	}

	_, err = svc.MonthlyComparison(ctx, TrendFilter{CompanyID: companyID})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("missing trend anchor: %v", err)
	}
}

func TestRepositoryOutagePropagates(t *testing.T) {
	svc, repo := newTestService(t)
	repo.FailWith(ledger.ErrUnavailable)

	_, err := svc.BalanceSheet(context.Background(), ReportFilter{CompanyID: companyID, Period: marchPeriod})
	if !errors.Is(err, ledger.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestEmptyLedgerYieldsZeroShapedReport(t *testing.T) {
	svc, _ := newTestService(t)

	report, err := svc.BalanceSheet(context.Background(), ReportFilter{CompanyID: companyID, Period: marchPeriod})
	if err != nil {
		t.Fatalf("empty ledger must not error: %v", err)
	}
	if len(report.Statement.Assets.Subcategories) != 2 {
		t.Fatalf("empty report lost its section shape")
	}
	if report.Statement.TotalAssets != 0 || !report.Statement.BalanceCheck {
		t.Fatalf("empty report should be zero and balanced")
	}

	is, err := svc.IncomeStatement(context.Background(), ReportFilter{CompanyID: companyID, Period: marchPeriod})
	if err != nil {
		t.Fatalf("empty income statement: %v", err)
	}
	if is.Ratios.GrossProfitMargin != 0 || is.Ratios.OverallPerformance != analysis.PerformanceBreakeven {
		t.Fatalf("empty ratios %+v", is.Ratios)
	}
}

func TestIncludeZeroKeepsDormantAccounts(t *testing.T) {
	svc, repo := newTestService(t)
	seedScenario(t, repo)
	repo.SeedAccounts(companyID, ledger.Account{
		ID: uuid.New(), CompanyID: companyID, Name: "Dormant deposit",
		Type: ledger.AccountTypeAsset, DetailCategory: ledger.DetailCurrentAsset, IsActive: true,
	})

	filter := ReportFilter{CompanyID: companyID, Period: marchPeriod}
	without, err := svc.BalanceSheet(context.Background(), filter)
	if err != nil {
		t.Fatalf("default filter: %v", err)
	}
	filter.IncludeZero = true
	with, err := svc.BalanceSheet(context.Background(), filter)
	if err != nil {
		t.Fatalf("include zero: %v", err)
	}

	count := func(r BalanceSheetReport) int {
		n := 0
		for _, sub := range r.Statement.Assets.Subcategories {
			n += len(sub.Accounts)
		}
		return n
	}
	if count(with) != count(without)+1 {
		t.Fatalf("include zero rows %d vs %d", count(with), count(without))
	}
}

func TestMonthlyComparisonAccumulates(t *testing.T) {
	svc, repo := newTestService(t)
	sales := ledger.Account{ID: uuid.New(), CompanyID: companyID, Name: "Sales", Type: ledger.AccountTypeIncome, IsActive: true}
	repo.SeedAccounts(companyID, sales)
	repo.SeedLines(companyID,
		ledger.JournalLine{ID: uuid.New(), AccountID: sales.ID, Credit: 500000, EntryDate: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)},
		ledger.JournalLine{ID: uuid.New(), AccountID: sales.ID, Credit: 300000, EntryDate: time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)},
	)

	report, err := svc.MonthlyComparison(context.Background(), TrendFilter{
		CompanyID: companyID,
		From:      time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("monthly comparison: %v", err)
	}
	if len(report.Trend.Months) != analysis.TrendMonths {
		t.Fatalf("months = %d", len(report.Trend.Months))
	}
	var march float64
	for i, m := range report.Trend.Months {
		if m == "2025-03" {
			march = report.Trend.Summary.TotalRevenue[i]
		}
	}
	if march != 800000 {
		t.Fatalf("march revenue = %.2f, want 800000", march)
	}
}

func TestPayrollSummary(t *testing.T) {
	svc, repo := newTestService(t)
	seedScenario(t, repo)

	report, err := svc.PayrollSummary(context.Background(), ReportFilter{CompanyID: companyID, Period: marchPeriod})
	if err != nil {
		t.Fatalf("payroll: %v", err)
	}
	if len(report.Lines) != 1 || report.Lines[0].Name != "Wages" {
		t.Fatalf("payroll lines %+v", report.Lines)
	}
	if report.Total != 200000 || report.FixedTotal != 200000 || report.VariableTotal != 0 {
		t.Fatalf("payroll totals %v/%v/%v", report.Total, report.FixedTotal, report.VariableTotal)
	}
}

func TestCachedReportsSkipRepeatLoads(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()

	repo := ledger.NewFakeRepository()
	seedScenario(t, repo)
	svc := NewService(repo, analysis.NewCache(client, time.Minute), slog.Default())
	filter := ReportFilter{CompanyID: companyID, Period: marchPeriod}

	first, err := svc.IncomeStatement(context.Background(), filter)
	if err != nil {
		t.Fatalf("first build: %v", err)
	}

	// New data behind an unchanged cache generation stays invisible.
	repo.SeedLines(companyID, ledger.JournalLine{
		ID:        uuid.New(),
		AccountID: first.Statement.Revenue.Subcategories[0].Accounts[0].AccountID,
		Credit:    999999,
		EntryDate: time.Date(2025, 3, 25, 0, 0, 0, 0, time.UTC),
	})
	cached, err := svc.IncomeStatement(context.Background(), filter)
	if err != nil {
		t.Fatalf("cached build: %v", err)
	}
	if cached.Statement.Revenue.Total != first.Statement.Revenue.Total {
		t.Fatalf("expected cached totals, got %.2f", cached.Statement.Revenue.Total)
	}
}
