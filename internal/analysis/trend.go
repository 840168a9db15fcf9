package analysis

import (
	"sort"

	"github.com/finboard-erp/finboard/internal/ledger"
)

// TrendMonths is the fixed window for monthly comparison reports.
const TrendMonths = 12

// Observation is one raw (account, month) balance data point. The same
// bucket may appear more than once; repeated observations accumulate
// additively, matching ledger semantics.
type Observation struct {
	AccountName string
	AccountType ledger.AccountType
	Month       string // YYYY-MM
	Amount      float64
}

// TrendAccount holds one account's amounts across the window, zero-filled
// for months with no data.
type TrendAccount struct {
	Name    string
	Type    ledger.AccountType
	Amounts []float64
}

// TrendSummary aggregates the window into revenue/expense/net series.
type TrendSummary struct {
	TotalRevenue  []float64
	TotalExpenses []float64
	NetIncome     []float64
}

// TrendReport is the month-indexed comparison structure.
type TrendReport struct {
	Months   []string
	Accounts []TrendAccount
	Summary  TrendSummary
}

// BuildTrend assembles a monthly comparison from raw observations. Months
// come from the period sequence in ascending chronological order;
// observations outside the window are dropped.
func BuildTrend(periods []ledger.Period, observations []Observation) TrendReport {
	months := make([]string, len(periods))
	index := make(map[string]int, len(periods))
	for i, p := range periods {
		months[i] = p.Label()
		index[months[i]] = i
	}

	type key struct {
		name string
		typ  ledger.AccountType
	}
	accounts := make(map[key]*TrendAccount)
	order := make([]key, 0)
	for _, obs := range observations {
		i, ok := index[obs.Month]
		if !ok {
			continue
		}
		k := key{name: obs.AccountName, typ: obs.AccountType}
		acc, ok := accounts[k]
		if !ok {
			acc = &TrendAccount{Name: obs.AccountName, Type: obs.AccountType, Amounts: make([]float64, len(periods))}
			accounts[k] = acc
			order = append(order, k)
		}
		acc.Amounts[i] += obs.Amount
	}

	sort.SliceStable(order, func(a, b int) bool {
		if order[a].name != order[b].name {
			return order[a].name < order[b].name
		}
		return order[a].typ < order[b].typ
	})

	report := TrendReport{
		Months:   months,
		Accounts: make([]TrendAccount, 0, len(order)),
		Summary: TrendSummary{
			TotalRevenue:  make([]float64, len(periods)),
			TotalExpenses: make([]float64, len(periods)),
			NetIncome:     make([]float64, len(periods)),
		},
	}
	for _, k := range order {
		acc := accounts[k]
		report.Accounts = append(report.Accounts, *acc)
		for i, amount := range acc.Amounts {
			switch acc.Type {
			case ledger.AccountTypeIncome:
				report.Summary.TotalRevenue[i] += amount
			case ledger.AccountTypeExpense:
				report.Summary.TotalExpenses[i] += amount
			}
		}
	}
	for i := range periods {
		report.Summary.NetIncome[i] = report.Summary.TotalRevenue[i] - report.Summary.TotalExpenses[i]
	}
	return report
}
