package analysis

import "math"

// Qualitative rating thresholds, in percent of revenue. Named so auditors
// can trace every label back to a constant.
const (
	GrossMarginExcellentMin = 30.0
	GrossMarginGoodMin      = 20.0
	GrossMarginFairMin      = 10.0

	OperatingHighlyEfficientMin = 15.0
	OperatingEfficientMin       = 8.0
	OperatingModerateMin        = 3.0

	PerformanceStrongMin    = 10.0
	PerformanceHealthyMin   = 5.0
	PerformanceBreakevenMin = 0.0
)

// Qualitative labels emitted alongside the numeric ratios.
const (
	HealthExcellent = "excellent"
	HealthGood      = "good"
	HealthFair      = "fair"
	HealthPoor      = "poor"

	EfficiencyHigh     = "highly_efficient"
	EfficiencyStandard = "efficient"
	EfficiencyModerate = "moderate"
	EfficiencyLow      = "inefficient"

	PerformanceStrong    = "strong"
	PerformanceHealthy   = "healthy"
	PerformanceBreakeven = "breakeven"
	PerformanceLoss      = "loss"
)

// Totals are the income-statement summary figures the ratio calculator
// consumes. The reporting service maps them from a built statement.
type Totals struct {
	Revenue         float64
	COGS            float64
	GrossProfit     float64
	Opex            float64
	OperatingIncome float64
	NetIncome       float64
	FixedCosts      float64
	VariableCosts   float64
}

// RatioSummary carries margins, cost-structure ratios and health labels.
type RatioSummary struct {
	GrossProfitMargin float64
	OperatingMargin   float64
	NetMargin         float64

	COGSRatio         float64
	OpexRatio         float64
	FixedCostRatio    float64
	VariableCostRatio float64

	GrossMarginHealth   string
	OperatingEfficiency string
	OverallPerformance  string
}

// Percentage returns 100*part/whole rounded to two decimals. A zero whole
// yields a defined 0, never NaN or Inf.
func Percentage(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return math.Round(part/whole*100*100) / 100
}

// Summarize computes the full ratio summary for one period's totals.
func Summarize(t Totals) RatioSummary {
	s := RatioSummary{
		GrossProfitMargin: Percentage(t.GrossProfit, t.Revenue),
		OperatingMargin:   Percentage(t.OperatingIncome, t.Revenue),
		NetMargin:         Percentage(t.NetIncome, t.Revenue),
		COGSRatio:         Percentage(t.COGS, t.Revenue),
		OpexRatio:         Percentage(t.Opex, t.Revenue),
		FixedCostRatio:    Percentage(t.FixedCosts, t.Revenue),
		VariableCostRatio: Percentage(t.VariableCosts, t.Revenue),
	}
	s.GrossMarginHealth = grossMarginHealth(s.GrossProfitMargin)
	s.OperatingEfficiency = operatingEfficiency(s.OperatingMargin)
	s.OverallPerformance = overallPerformance(s.NetMargin)
	return s
}

func grossMarginHealth(margin float64) string {
	switch {
	case margin >= GrossMarginExcellentMin:
		return HealthExcellent
	case margin >= GrossMarginGoodMin:
		return HealthGood
	case margin >= GrossMarginFairMin:
		return HealthFair
	default:
		return HealthPoor
	}
}

func operatingEfficiency(margin float64) string {
	switch {
	case margin >= OperatingHighlyEfficientMin:
		return EfficiencyHigh
	case margin >= OperatingEfficientMin:
		return EfficiencyStandard
	case margin >= OperatingModerateMin:
		return EfficiencyModerate
	default:
		return EfficiencyLow
	}
}

func overallPerformance(margin float64) string {
	switch {
	case margin >= PerformanceStrongMin:
		return PerformanceStrong
	case margin >= PerformanceHealthyMin:
		return PerformanceHealthy
	case margin >= PerformanceBreakevenMin:
		return PerformanceBreakeven
	default:
		return PerformanceLoss
	}
}
