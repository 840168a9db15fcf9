package statement

import "math"

// DeriveBalanceSheet fills the balance sheet totals and the accounting
// equation check. The only place these numbers are computed, so every
// consumer agrees by construction.
func DeriveBalanceSheet(bs *BalanceSheet) {
	bs.TotalAssets = bs.Assets.Total
	bs.TotalLiabilities = bs.Liabilities.Total
	bs.TotalEquity = bs.Equity.Total
	bs.BalanceDifference = bs.TotalAssets - (bs.TotalLiabilities + bs.TotalEquity)
	bs.BalanceCheck = math.Abs(bs.BalanceDifference) < ZeroEpsilon
}

// DeriveIncomeStatement computes the profit chain from section totals.
// Each derived figure is a pure function of the figures above it; nothing is
// re-derived from raw journal data.
func DeriveIncomeStatement(is *IncomeStatement) {
	is.GrossProfit = is.Revenue.Total - is.COGS.Total
	is.OperatingIncome = is.GrossProfit - is.OperatingExpenses.Total
	is.IncomeBeforeTax = is.OperatingIncome + is.NonOperatingNet
	is.NetIncome = is.IncomeBeforeTax - is.Tax.Total
	is.TotalComprehensiveIncome = is.NetIncome + is.ComprehensiveNet
}
