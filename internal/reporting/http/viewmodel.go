package reportinghttp

import (
	"time"

	"github.com/google/uuid"

	"github.com/finboard-erp/finboard/internal/analysis"
	"github.com/finboard-erp/finboard/internal/ledger"
	"github.com/finboard-erp/finboard/internal/reporting"
	"github.com/finboard-erp/finboard/internal/statement"
)

// Wire view models. Field casing and shape belong to this presenter layer;
// the engine itself returns typed values only.

type accountLineVM struct {
	AccountID           uuid.UUID  `json:"account_id"`
	Name                string     `json:"name"`
	Balance             float64    `json:"balance"`
	TransactionCount    int        `json:"transaction_count"`
	LastTransactionDate *time.Time `json:"last_transaction_date"`
	Unclassified        bool       `json:"unclassified,omitempty"`
	OriginalCategory    string     `json:"original_category,omitempty"`
}

type subcategoryVM struct {
	Name     string          `json:"name"`
	Accounts []accountLineVM `json:"accounts"`
	Subtotal float64         `json:"subtotal"`
}

type sectionVM struct {
	Name          string          `json:"name"`
	Subcategories []subcategoryVM `json:"subcategories"`
	Total         float64         `json:"total"`
}

type periodVM struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type balanceSheetVM struct {
	CompanyID         uuid.UUID  `json:"company_id"`
	StoreID           *uuid.UUID `json:"store_id,omitempty"`
	Period            periodVM   `json:"period"`
	Assets            sectionVM  `json:"assets"`
	Liabilities       sectionVM  `json:"liabilities"`
	Equity            sectionVM  `json:"equity"`
	TotalAssets       float64    `json:"total_assets"`
	TotalLiabilities  float64    `json:"total_liabilities"`
	TotalEquity       float64    `json:"total_equity"`
	BalanceDifference float64    `json:"balance_difference"`
	BalanceCheck      bool       `json:"balance_check"`
}

type ratioSummaryVM struct {
	GrossProfitMargin   float64 `json:"gross_profit_margin"`
	OperatingMargin     float64 `json:"operating_margin"`
	NetMargin           float64 `json:"net_margin"`
	COGSRatio           float64 `json:"cogs_ratio"`
	OpexRatio           float64 `json:"opex_ratio"`
	FixedCostRatio      float64 `json:"fixed_cost_ratio"`
	VariableCostRatio   float64 `json:"variable_cost_ratio"`
	GrossMarginHealth   string  `json:"gross_margin_health"`
	OperatingEfficiency string  `json:"operating_efficiency"`
	OverallPerformance  string  `json:"overall_performance"`
}

type incomeStatementVM struct {
	CompanyID uuid.UUID  `json:"company_id"`
	StoreID   *uuid.UUID `json:"store_id,omitempty"`
	Period    periodVM   `json:"period"`

	Revenue           sectionVM `json:"revenue"`
	COGS              sectionVM `json:"cogs"`
	OperatingExpenses sectionVM `json:"operating_expenses"`
	NonOperating      sectionVM `json:"non_operating"`
	Tax               sectionVM `json:"tax"`
	Comprehensive     sectionVM `json:"comprehensive_income"`

	NonOperatingNet float64 `json:"non_operating_net"`
	FixedTotal      float64 `json:"fixed_total"`
	VariableTotal   float64 `json:"variable_total"`

	GrossProfit              float64 `json:"gross_profit"`
	OperatingIncome          float64 `json:"operating_income"`
	IncomeBeforeTax          float64 `json:"income_before_tax"`
	NetIncome                float64 `json:"net_income"`
	TotalComprehensiveIncome float64 `json:"total_comprehensive_income"`

	Ratios ratioSummaryVM `json:"ratios"`
}

type trendAccountVM struct {
	Name    string    `json:"name"`
	Type    string    `json:"type"`
	Amounts []float64 `json:"amounts"`
}

type trendVM struct {
	CompanyID uuid.UUID        `json:"company_id"`
	StoreID   *uuid.UUID       `json:"store_id,omitempty"`
	Months    []string         `json:"months"`
	Accounts  []trendAccountVM `json:"accounts"`
	Summary   struct {
		TotalRevenue  []float64 `json:"total_revenue"`
		TotalExpenses []float64 `json:"total_expenses"`
		NetIncome     []float64 `json:"net_income"`
	} `json:"summary_totals"`
}

type payrollLineVM struct {
	AccountID        uuid.UUID `json:"account_id"`
	Name             string    `json:"name"`
	Amount           float64   `json:"amount"`
	TransactionCount int       `json:"transaction_count"`
}

type payrollVM struct {
	CompanyID     uuid.UUID       `json:"company_id"`
	StoreID       *uuid.UUID      `json:"store_id,omitempty"`
	Period        periodVM        `json:"period"`
	Lines         []payrollLineVM `json:"lines"`
	Total         float64         `json:"total"`
	FixedTotal    float64         `json:"fixed_total"`
	VariableTotal float64         `json:"variable_total"`
}

func toPeriodVM(p ledger.Period) periodVM {
	return periodVM{From: p.Start.Format("2006-01-02"), To: p.End.Format("2006-01-02")}
}

func toSectionVM(s statement.SectionGroup) sectionVM {
	vm := sectionVM{Name: string(s.Name), Total: s.Total, Subcategories: make([]subcategoryVM, 0, len(s.Subcategories))}
	for _, sub := range s.Subcategories {
		subVM := subcategoryVM{Name: string(sub.Name), Subtotal: sub.Subtotal, Accounts: make([]accountLineVM, 0, len(sub.Accounts))}
		for _, a := range sub.Accounts {
			line := accountLineVM{
				AccountID:           a.AccountID,
				Name:                a.Name,
				Balance:             a.Balance,
				TransactionCount:    a.TransactionCount,
				LastTransactionDate: a.LastTransactionDate,
				Unclassified:        a.Unclassified,
			}
			if a.Unclassified {
				line.OriginalCategory = string(a.OriginalCategory)
			}
			subVM.Accounts = append(subVM.Accounts, line)
		}
		vm.Subcategories = append(vm.Subcategories, subVM)
	}
	return vm
}

func toBalanceSheetVM(r reporting.BalanceSheetReport) balanceSheetVM {
	return balanceSheetVM{
		CompanyID:         r.CompanyID,
		StoreID:           r.StoreID,
		Period:            toPeriodVM(r.Period),
		Assets:            toSectionVM(r.Statement.Assets),
		Liabilities:       toSectionVM(r.Statement.Liabilities),
		Equity:            toSectionVM(r.Statement.Equity),
		TotalAssets:       r.Statement.TotalAssets,
		TotalLiabilities:  r.Statement.TotalLiabilities,
		TotalEquity:       r.Statement.TotalEquity,
		BalanceDifference: r.Statement.BalanceDifference,
		BalanceCheck:      r.Statement.BalanceCheck,
	}
}

func toRatioVM(r analysis.RatioSummary) ratioSummaryVM {
	return ratioSummaryVM{
		GrossProfitMargin:   r.GrossProfitMargin,
		OperatingMargin:     r.OperatingMargin,
		NetMargin:           r.NetMargin,
		COGSRatio:           r.COGSRatio,
		OpexRatio:           r.OpexRatio,
		FixedCostRatio:      r.FixedCostRatio,
		VariableCostRatio:   r.VariableCostRatio,
		GrossMarginHealth:   r.GrossMarginHealth,
		OperatingEfficiency: r.OperatingEfficiency,
		OverallPerformance:  r.OverallPerformance,
	}
}

func toIncomeStatementVM(r reporting.IncomeStatementReport) incomeStatementVM {
	return incomeStatementVM{
		CompanyID:                r.CompanyID,
		StoreID:                  r.StoreID,
		Period:                   toPeriodVM(r.Period),
		Revenue:                  toSectionVM(r.Statement.Revenue),
		COGS:                     toSectionVM(r.Statement.COGS),
		OperatingExpenses:        toSectionVM(r.Statement.OperatingExpenses),
		NonOperating:             toSectionVM(r.Statement.NonOperating),
		Tax:                      toSectionVM(r.Statement.Tax),
		Comprehensive:            toSectionVM(r.Statement.Comprehensive),
		NonOperatingNet:          r.Statement.NonOperatingNet,
		FixedTotal:               r.Statement.FixedTotal,
		VariableTotal:            r.Statement.VariableTotal,
		GrossProfit:              r.Statement.GrossProfit,
		OperatingIncome:          r.Statement.OperatingIncome,
		IncomeBeforeTax:          r.Statement.IncomeBeforeTax,
		NetIncome:                r.Statement.NetIncome,
		TotalComprehensiveIncome: r.Statement.TotalComprehensiveIncome,
		Ratios:                   toRatioVM(r.Ratios),
	}
}

func toTrendVM(r reporting.TrendReport) trendVM {
	vm := trendVM{
		CompanyID: r.CompanyID,
		StoreID:   r.StoreID,
		Months:    r.Trend.Months,
		Accounts:  make([]trendAccountVM, 0, len(r.Trend.Accounts)),
	}
	for _, a := range r.Trend.Accounts {
		vm.Accounts = append(vm.Accounts, trendAccountVM{Name: a.Name, Type: string(a.Type), Amounts: a.Amounts})
	}
	vm.Summary.TotalRevenue = r.Trend.Summary.TotalRevenue
	vm.Summary.TotalExpenses = r.Trend.Summary.TotalExpenses
	vm.Summary.NetIncome = r.Trend.Summary.NetIncome
	return vm
}

func toPayrollVM(r reporting.PayrollReport) payrollVM {
	vm := payrollVM{
		CompanyID:     r.CompanyID,
		StoreID:       r.StoreID,
		Period:        toPeriodVM(r.Period),
		Lines:         make([]payrollLineVM, 0, len(r.Lines)),
		Total:         r.Total,
		FixedTotal:    r.FixedTotal,
		VariableTotal: r.VariableTotal,
	}
	for _, l := range r.Lines {
		vm.Lines = append(vm.Lines, payrollLineVM{AccountID: l.AccountID, Name: l.Name, Amount: l.Amount, TransactionCount: l.TransactionCount})
	}
	return vm
}
