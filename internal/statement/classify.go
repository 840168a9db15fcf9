package statement

import (
	"strings"

	"github.com/finboard-erp/finboard/internal/ledger"
)

// Kind identifies which financial statement a classified account feeds.
type Kind string

const (
	KindBalanceSheet    Kind = "BALANCE_SHEET"
	KindIncomeStatement Kind = "INCOME_STATEMENT"
)

// Section names the top-level statement groupings.
type Section string

const (
	SectionAssets            Section = "assets"
	SectionLiabilities       Section = "liabilities"
	SectionEquity            Section = "equity"
	SectionRevenue           Section = "revenue"
	SectionCOGS              Section = "cogs"
	SectionOperatingExpenses Section = "operating_expenses"
	SectionNonOperating      Section = "non_operating"
	SectionTax               Section = "tax"
	SectionComprehensive     Section = "comprehensive_income"
)

// Subcategory names the second-level groupings inside a section.
type Subcategory string

const (
	SubcatCurrentAssets         Subcategory = "current_assets"
	SubcatNonCurrentAssets      Subcategory = "non_current_assets"
	SubcatCurrentLiabilities    Subcategory = "current_liabilities"
	SubcatNonCurrentLiabilities Subcategory = "non_current_liabilities"
	SubcatEquity                Subcategory = "equity"
	SubcatRevenue               Subcategory = "revenue"
	SubcatCostOfSales           Subcategory = "cost_of_sales"
	SubcatFixedExpenses         Subcategory = "fixed_expenses"
	SubcatVariableExpenses      Subcategory = "variable_expenses"
	SubcatNonOperatingIncome    Subcategory = "non_operating_income"
	SubcatNonOperatingExpenses  Subcategory = "non_operating_expenses"
	SubcatTax                   Subcategory = "tax"
	SubcatComprehensive         Subcategory = "comprehensive_income"
	SubcatGeneral               Subcategory = "general"
)

// Classification records where an account lands in a statement. Unknown
// inputs are bucketed, never rejected; Unclassified keeps the data-quality
// signal visible instead of silently absorbing it.
type Classification struct {
	Kind             Kind
	Section          Section
	Subcategory      Subcategory
	Unclassified     bool
	OriginalCategory ledger.DetailCategory
}

// legacy charts of accounts encode COGS in the display name only
var cogsNameTokens = []string{"cogs", "cost of goods"}

// Classify maps an account to its statement section and subcategory. Pure
// and total: every input yields a placement.
func Classify(a ledger.Account) Classification {
	c := Classification{OriginalCategory: a.DetailCategory}
	switch a.Type {
	case ledger.AccountTypeAsset:
		c.Kind = KindBalanceSheet
		c.Section = SectionAssets
		switch a.DetailCategory {
		case ledger.DetailCurrentAsset:
			c.Subcategory = SubcatCurrentAssets
		case ledger.DetailNonCurrentAsset:
			c.Subcategory = SubcatNonCurrentAssets
		default:
			c.Subcategory = SubcatNonCurrentAssets
			c.Unclassified = true
		}
	case ledger.AccountTypeLiability:
		c.Kind = KindBalanceSheet
		c.Section = SectionLiabilities
		switch a.DetailCategory {
		case ledger.DetailCurrentLiability:
			c.Subcategory = SubcatCurrentLiabilities
		case ledger.DetailNonCurrentLiability:
			c.Subcategory = SubcatNonCurrentLiabilities
		default:
			c.Subcategory = SubcatNonCurrentLiabilities
			c.Unclassified = true
		}
	case ledger.AccountTypeEquity:
		c.Kind = KindBalanceSheet
		c.Section = SectionEquity
		c.Subcategory = SubcatEquity
		c.Unclassified = a.DetailCategory != ledger.DetailEquity && a.DetailCategory != ""
	case ledger.AccountTypeIncome:
		c.Kind = KindIncomeStatement
		switch a.DetailCategory {
		case ledger.DetailNonOperating:
			c.Section = SectionNonOperating
			c.Subcategory = SubcatNonOperatingIncome
		case ledger.DetailComprehensiveIncome:
			c.Section = SectionComprehensive
			c.Subcategory = SubcatComprehensive
		default:
			c.Section = SectionRevenue
			c.Subcategory = SubcatRevenue
		}
	case ledger.AccountTypeExpense:
		c.Kind = KindIncomeStatement
		classifyExpense(a, &c)
	default:
		// unknown account type: keep the row visible in opex rather than drop it
		c.Kind = KindIncomeStatement
		c.Section = SectionOperatingExpenses
		c.Subcategory = SubcatGeneral
		c.Unclassified = true
	}
	return c
}

func classifyExpense(a ledger.Account, c *Classification) {
	switch a.DetailCategory {
	case ledger.DetailCostOfSales:
		c.Section = SectionCOGS
		c.Subcategory = SubcatCostOfSales
		return
	case ledger.DetailNonOperating:
		c.Section = SectionNonOperating
		c.Subcategory = SubcatNonOperatingExpenses
		return
	case ledger.DetailTax:
		c.Section = SectionTax
		c.Subcategory = SubcatTax
		return
	case ledger.DetailComprehensiveIncome:
		c.Section = SectionComprehensive
		c.Subcategory = SubcatComprehensive
		return
	}
	if matchesCOGSName(a.Name) {
		// structured field wins when present; this path only catches charts
		// of accounts that never migrated off name-encoded COGS
		c.Section = SectionCOGS
		c.Subcategory = SubcatCostOfSales
		return
	}
	c.Section = SectionOperatingExpenses
	switch {
	case a.ExpenseNature != nil && *a.ExpenseNature == ledger.ExpenseNatureFixed:
		c.Subcategory = SubcatFixedExpenses
	case a.ExpenseNature != nil && *a.ExpenseNature == ledger.ExpenseNatureVariable:
		c.Subcategory = SubcatVariableExpenses
	default:
		c.Subcategory = SubcatGeneral
	}
	if a.DetailCategory != ledger.DetailOperatingExpense && a.DetailCategory != ledger.DetailPayrollExpense {
		c.Unclassified = true
	}
}

func matchesCOGSName(name string) bool {
	lower := strings.ToLower(name)
	for _, token := range cogsNameTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}
