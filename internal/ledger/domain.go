package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// AccountType enumerates the five fundamental account categories.
type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeLiability AccountType = "LIABILITY"
	AccountTypeEquity    AccountType = "EQUITY"
	AccountTypeIncome    AccountType = "INCOME"
	AccountTypeExpense   AccountType = "EXPENSE"
)

// DetailCategory refines an account type for statement grouping.
type DetailCategory string

const (
	DetailCurrentAsset        DetailCategory = "CURRENT_ASSET"
	DetailNonCurrentAsset     DetailCategory = "NON_CURRENT_ASSET"
	DetailCurrentLiability    DetailCategory = "CURRENT_LIABILITY"
	DetailNonCurrentLiability DetailCategory = "NON_CURRENT_LIABILITY"
	DetailEquity              DetailCategory = "EQUITY"
	DetailCostOfSales         DetailCategory = "COST_OF_SALES"
	DetailOperatingExpense    DetailCategory = "OPERATING_EXPENSE"
	DetailPayrollExpense      DetailCategory = "PAYROLL_EXPENSE"
	DetailNonOperating        DetailCategory = "NON_OPERATING"
	DetailTax                 DetailCategory = "TAX"
	DetailComprehensiveIncome DetailCategory = "COMPREHENSIVE_INCOME"
)

// ExpenseNature splits operating expenses for cost-structure analysis.
type ExpenseNature string

const (
	ExpenseNatureFixed    ExpenseNature = "FIXED"
	ExpenseNatureVariable ExpenseNature = "VARIABLE"
)

// Account models a chart of accounts node. Reference data owned by the
// ledger; read-only to the reporting engine.
type Account struct {
	ID             uuid.UUID
	CompanyID      uuid.UUID
	Name           string
	Type           AccountType
	DetailCategory DetailCategory
	ExpenseNature  *ExpenseNature
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// JournalLine stores one debit-or-credit leg of a posted transaction. Both
// sides are accepted and netted during balance computation.
type JournalLine struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	CompanyID uuid.UUID
	StoreID   *uuid.UUID
	Debit     float64
	Credit    float64
	EntryDate time.Time
	CreatedAt time.Time
}

// ErrInvalidPeriod indicates a degenerate date interval.
var ErrInvalidPeriod = errors.New("ledger: period end before start")

// Period is a closed date interval, inclusive on both ends.
type Period struct {
	Start time.Time
	End   time.Time
}

// Validate rejects intervals whose end precedes the start.
func (p Period) Validate() error {
	if p.End.Before(p.Start) {
		return ErrInvalidPeriod
	}
	return nil
}

// Contains reports whether t falls inside the interval.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// Label renders the period as YYYY-MM, the token used for month buckets.
func (p Period) Label() string {
	return p.Start.Format("2006-01")
}

// MonthlyPeriods produces n consecutive calendar months starting at the
// month containing from, ascending. Trend reports use n=12.
func MonthlyPeriods(from time.Time, n int) []Period {
	periods := make([]Period, 0, n)
	cursor := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		next := cursor.AddDate(0, 1, 0)
		periods = append(periods, Period{Start: cursor, End: next.AddDate(0, 0, -1)})
		cursor = next
	}
	return periods
}
