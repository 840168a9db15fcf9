package analysis

import (
	"testing"
	"time"

	"github.com/finboard-erp/finboard/internal/ledger"
)

func window(from time.Time) []ledger.Period {
	return ledger.MonthlyPeriods(from, TrendMonths)
}

func TestBuildTrendAccumulatesAdditively(t *testing.T) {
	periods := window(time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC))
	report := BuildTrend(periods, []Observation{
		{AccountName: "Sales", AccountType: ledger.AccountTypeIncome, Month: "2025-03", Amount: 500000},
		{AccountName: "Sales", AccountType: ledger.AccountTypeIncome, Month: "2025-03", Amount: 300000},
	})

	if len(report.Months) != TrendMonths {
		t.Fatalf("months = %d, want %d", len(report.Months), TrendMonths)
	}
	if report.Months[0] != "2024-09" || report.Months[11] != "2025-08" {
		t.Fatalf("unexpected window %s..%s", report.Months[0], report.Months[11])
	}
	if len(report.Accounts) != 1 {
		t.Fatalf("accounts = %d, want 1", len(report.Accounts))
	}
	idx := 6 // 2025-03
	if report.Accounts[0].Amounts[idx] != 800000 {
		t.Fatalf("march amount = %.2f, want 800000", report.Accounts[0].Amounts[idx])
	}
	if report.Summary.TotalRevenue[idx] != 800000 {
		t.Fatalf("summary revenue = %.2f", report.Summary.TotalRevenue[idx])
	}
}

func TestBuildTrendZeroFillsMissingMonths(t *testing.T) {
	periods := window(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	report := BuildTrend(periods, []Observation{
		{AccountName: "Rent", AccountType: ledger.AccountTypeExpense, Month: "2025-02", Amount: 1000},
	})

	acc := report.Accounts[0]
	if len(acc.Amounts) != TrendMonths {
		t.Fatalf("amounts length = %d", len(acc.Amounts))
	}
	for i, amount := range acc.Amounts {
		want := 0.0
		if report.Months[i] == "2025-02" {
			want = 1000
		}
		if amount != want {
			t.Fatalf("month %s amount = %.2f, want %.2f", report.Months[i], amount, want)
		}
	}
}

func TestBuildTrendDropsOutOfWindowObservations(t *testing.T) {
	periods := window(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	report := BuildTrend(periods, []Observation{
		{AccountName: "Sales", AccountType: ledger.AccountTypeIncome, Month: "2024-12", Amount: 999},
	})
	if len(report.Accounts) != 0 {
		t.Fatalf("out-of-window observation created an account row")
	}
}

func TestBuildTrendSummaryAndOrdering(t *testing.T) {
	periods := window(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	report := BuildTrend(periods, []Observation{
		{AccountName: "Wages", AccountType: ledger.AccountTypeExpense, Month: "2025-01", Amount: 400},
		{AccountName: "Sales", AccountType: ledger.AccountTypeIncome, Month: "2025-01", Amount: 1000},
		{AccountName: "Cash", AccountType: ledger.AccountTypeAsset, Month: "2025-01", Amount: 50},
	})

	if report.Accounts[0].Name != "Cash" || report.Accounts[2].Name != "Wages" {
		t.Fatalf("accounts not sorted by name: %s, %s, %s",
			report.Accounts[0].Name, report.Accounts[1].Name, report.Accounts[2].Name)
	}
	if report.Summary.TotalRevenue[0] != 1000 {
		t.Fatalf("revenue = %.2f", report.Summary.TotalRevenue[0])
	}
	if report.Summary.TotalExpenses[0] != 400 {
		t.Fatalf("expenses = %.2f", report.Summary.TotalExpenses[0])
	}
	// Balance-sheet accounts appear in rows but never in the summary series.
	if report.Summary.NetIncome[0] != 600 {
		t.Fatalf("net income = %.2f", report.Summary.NetIncome[0])
	}
}
