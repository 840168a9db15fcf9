package statement

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/finboard-erp/finboard/internal/ledger"
)

// AccountLine is one account row inside a statement subcategory.
type AccountLine struct {
	AccountID           uuid.UUID
	Name                string
	Balance             float64
	TransactionCount    int
	LastTransactionDate *time.Time
	Unclassified        bool
	OriginalCategory    ledger.DetailCategory
}

// SubcategoryGroup groups account rows beneath a section.
type SubcategoryGroup struct {
	Name     Subcategory
	Accounts []AccountLine
	Subtotal float64
}

// SectionGroup is a statement section with its subcategories and total.
// Sections are always present in the report, empty or not; consumers depend
// on the shape being stable regardless of data.
type SectionGroup struct {
	Name          Section
	Subcategories []SubcategoryGroup
	Total         float64
}

// BalanceSheet is the structured balance sheet report.
type BalanceSheet struct {
	Assets      SectionGroup
	Liabilities SectionGroup
	Equity      SectionGroup

	TotalAssets      float64
	TotalLiabilities float64
	TotalEquity      float64

	// BalanceDifference = TotalAssets - (TotalLiabilities + TotalEquity).
	// Both the flag and the number are surfaced; a mismatch is reported,
	// never corrected.
	BalanceDifference float64
	BalanceCheck      bool
}

// IncomeStatement is the structured income statement report.
type IncomeStatement struct {
	Revenue           SectionGroup
	COGS              SectionGroup
	OperatingExpenses SectionGroup
	NonOperating      SectionGroup
	Tax               SectionGroup
	Comprehensive     SectionGroup

	// NonOperatingNet is non-operating income minus non-operating expenses.
	NonOperatingNet float64
	// ComprehensiveNet nets income- against expense-type comprehensive items.
	ComprehensiveNet float64

	FixedTotal    float64
	VariableTotal float64

	GrossProfit              float64
	OperatingIncome          float64
	IncomeBeforeTax          float64
	NetIncome                float64
	TotalComprehensiveIncome float64
}

var sectionLayout = map[Section][]Subcategory{
	SectionAssets:            {SubcatCurrentAssets, SubcatNonCurrentAssets},
	SectionLiabilities:       {SubcatCurrentLiabilities, SubcatNonCurrentLiabilities},
	SectionEquity:            {SubcatEquity},
	SectionRevenue:           {SubcatRevenue},
	SectionCOGS:              {SubcatCostOfSales},
	SectionOperatingExpenses: {SubcatFixedExpenses, SubcatVariableExpenses, SubcatGeneral},
	SectionNonOperating:      {SubcatNonOperatingIncome, SubcatNonOperatingExpenses},
	SectionTax:               {SubcatTax},
	SectionComprehensive:     {SubcatComprehensive},
}

func newSection(name Section) SectionGroup {
	layout := sectionLayout[name]
	subs := make([]SubcategoryGroup, len(layout))
	for i, sc := range layout {
		subs[i] = SubcategoryGroup{Name: sc, Accounts: []AccountLine{}}
	}
	return SectionGroup{Name: name, Subcategories: subs}
}

func (s *SectionGroup) add(sub Subcategory, line AccountLine) {
	for i := range s.Subcategories {
		if s.Subcategories[i].Name == sub {
			s.Subcategories[i].Accounts = append(s.Subcategories[i].Accounts, line)
			s.Subcategories[i].Subtotal += line.Balance
			return
		}
	}
	s.Subcategories = append(s.Subcategories, SubcategoryGroup{
		Name:     sub,
		Accounts: []AccountLine{line},
		Subtotal: line.Balance,
	})
}

func (s *SectionGroup) finalize() {
	s.Total = 0
	for i := range s.Subcategories {
		sort.SliceStable(s.Subcategories[i].Accounts, func(a, b int) bool {
			return s.Subcategories[i].Accounts[a].Name < s.Subcategories[i].Accounts[b].Name
		})
		s.Total += s.Subcategories[i].Subtotal
	}
}

func (s *SectionGroup) subtotal(sub Subcategory) float64 {
	for i := range s.Subcategories {
		if s.Subcategories[i].Name == sub {
			return s.Subcategories[i].Subtotal
		}
	}
	return 0
}

// stripAccounts keeps subtotals only, for summary-level grouping. It
// rebuilds the subcategory slice so summarized copies never alias the
// detailed report.
func (s *SectionGroup) stripAccounts() {
	subs := make([]SubcategoryGroup, len(s.Subcategories))
	for i, sc := range s.Subcategories {
		sc.Accounts = []AccountLine{}
		subs[i] = sc
	}
	s.Subcategories = subs
}

func accountLine(ab AccountBalance, c Classification) AccountLine {
	return AccountLine{
		AccountID:           ab.Account.ID,
		Name:                ab.Account.Name,
		Balance:             ab.Balance,
		TransactionCount:    ab.TransactionCount,
		LastTransactionDate: ab.LastTransactionDate,
		Unclassified:        c.Unclassified,
		OriginalCategory:    c.OriginalCategory,
	}
}

// BuildBalanceSheet groups classified balances into the balance sheet tree
// and runs the equation check. Income-statement accounts are ignored.
func BuildBalanceSheet(balances []AccountBalance) BalanceSheet {
	bs := BalanceSheet{
		Assets:      newSection(SectionAssets),
		Liabilities: newSection(SectionLiabilities),
		Equity:      newSection(SectionEquity),
	}
	for _, ab := range balances {
		c := Classify(ab.Account)
		if c.Kind != KindBalanceSheet {
			continue
		}
		line := accountLine(ab, c)
		switch c.Section {
		case SectionAssets:
			bs.Assets.add(c.Subcategory, line)
		case SectionLiabilities:
			bs.Liabilities.add(c.Subcategory, line)
		case SectionEquity:
			bs.Equity.add(c.Subcategory, line)
		}
	}
	bs.Assets.finalize()
	bs.Liabilities.finalize()
	bs.Equity.finalize()
	DeriveBalanceSheet(&bs)
	return bs
}

// BuildIncomeStatement groups classified balances into the income statement
// tree and computes the derived profit chain. Balance-sheet accounts are
// ignored.
func BuildIncomeStatement(balances []AccountBalance) IncomeStatement {
	is := IncomeStatement{
		Revenue:           newSection(SectionRevenue),
		COGS:              newSection(SectionCOGS),
		OperatingExpenses: newSection(SectionOperatingExpenses),
		NonOperating:      newSection(SectionNonOperating),
		Tax:               newSection(SectionTax),
		Comprehensive:     newSection(SectionComprehensive),
	}
	for _, ab := range balances {
		c := Classify(ab.Account)
		if c.Kind != KindIncomeStatement {
			continue
		}
		line := accountLine(ab, c)
		switch c.Section {
		case SectionRevenue:
			is.Revenue.add(c.Subcategory, line)
		case SectionCOGS:
			is.COGS.add(c.Subcategory, line)
		case SectionOperatingExpenses:
			is.OperatingExpenses.add(c.Subcategory, line)
		case SectionNonOperating:
			is.NonOperating.add(c.Subcategory, line)
		case SectionTax:
			is.Tax.add(c.Subcategory, line)
		case SectionComprehensive:
			is.Comprehensive.add(c.Subcategory, line)
			// income items raise, expense items lower total comprehensive income
			if ab.Account.Type == ledger.AccountTypeExpense {
				is.ComprehensiveNet -= ab.Balance
			} else {
				is.ComprehensiveNet += ab.Balance
			}
		}
	}
	is.Revenue.finalize()
	is.COGS.finalize()
	is.OperatingExpenses.finalize()
	is.NonOperating.finalize()
	is.Tax.finalize()
	is.Comprehensive.finalize()

	is.FixedTotal = is.OperatingExpenses.subtotal(SubcatFixedExpenses)
	is.VariableTotal = is.OperatingExpenses.subtotal(SubcatVariableExpenses)
	is.NonOperatingNet = is.NonOperating.subtotal(SubcatNonOperatingIncome) -
		is.NonOperating.subtotal(SubcatNonOperatingExpenses)

	DeriveIncomeStatement(&is)
	return is
}

// Summarize returns a copy with per-account rows removed, keeping subtotals
// and totals intact.
func (bs BalanceSheet) Summarize() BalanceSheet {
	bs.Assets.stripAccounts()
	bs.Liabilities.stripAccounts()
	bs.Equity.stripAccounts()
	return bs
}

// Summarize returns a copy with per-account rows removed.
func (is IncomeStatement) Summarize() IncomeStatement {
	is.Revenue.stripAccounts()
	is.COGS.stripAccounts()
	is.OperatingExpenses.stripAccounts()
	is.NonOperating.stripAccounts()
	is.Tax.stripAccounts()
	is.Comprehensive.stripAccounts()
	return is
}
