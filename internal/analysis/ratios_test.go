package analysis

import "testing"

func TestPercentage(t *testing.T) {
	if got := Percentage(1700000, 2300000); got != 73.91 {
		t.Fatalf("percentage = %v, want 73.91", got)
	}
	if got := Percentage(50, 0); got != 0 {
		t.Fatalf("zero denominator should yield 0, got %v", got)
	}
	if got := Percentage(0, 0); got != 0 {
		t.Fatalf("0/0 should yield 0, got %v", got)
	}
	if got := Percentage(-300, 1000); got != -30 {
		t.Fatalf("negative part = %v, want -30", got)
	}
}

func TestSummarizeScenario(t *testing.T) {
	s := Summarize(Totals{
		Revenue:         2300000,
		COGS:            600000,
		GrossProfit:     1700000,
		Opex:            950000,
		OperatingIncome: 750000,
		NetIncome:       750000,
		FixedCosts:      800000,
		VariableCosts:   150000,
	})

	if s.GrossProfitMargin != 73.91 {
		t.Fatalf("gross margin = %v", s.GrossProfitMargin)
	}
	if s.OperatingMargin != 32.61 {
		t.Fatalf("operating margin = %v", s.OperatingMargin)
	}
	if s.FixedCostRatio != 34.78 {
		t.Fatalf("fixed cost ratio = %v", s.FixedCostRatio)
	}
	if s.VariableCostRatio != 6.52 {
		t.Fatalf("variable cost ratio = %v", s.VariableCostRatio)
	}
	if s.COGSRatio != 26.09 {
		t.Fatalf("cogs ratio = %v", s.COGSRatio)
	}
	if s.GrossMarginHealth != HealthExcellent {
		t.Fatalf("gross margin health = %s", s.GrossMarginHealth)
	}
	if s.OperatingEfficiency != EfficiencyHigh {
		t.Fatalf("operating efficiency = %s", s.OperatingEfficiency)
	}
	if s.OverallPerformance != PerformanceStrong {
		t.Fatalf("overall performance = %s", s.OverallPerformance)
	}
}

func TestHealthLabelBoundaries(t *testing.T) {
	cases := []struct {
		margin float64
		want   string
	}{
		{30, HealthExcellent},
		{29.99, HealthGood},
		{20, HealthGood},
		{19.99, HealthFair},
		{10, HealthFair},
		{9.99, HealthPoor},
		{-5, HealthPoor},
	}
	for _, tc := range cases {
		if got := grossMarginHealth(tc.margin); got != tc.want {
			t.Fatalf("margin %.2f: got %s want %s", tc.margin, got, tc.want)
		}
	}
}

func TestPerformanceLabels(t *testing.T) {
	if got := overallPerformance(0); got != PerformanceBreakeven {
		t.Fatalf("zero margin = %s, want breakeven", got)
	}
	if got := overallPerformance(-0.01); got != PerformanceLoss {
		t.Fatalf("negative margin = %s, want loss", got)
	}
	if got := operatingEfficiency(8); got != EfficiencyStandard {
		t.Fatalf("8%% margin = %s, want efficient", got)
	}
	if got := operatingEfficiency(2.99); got != EfficiencyLow {
		t.Fatalf("2.99%% margin = %s, want inefficient", got)
	}
}

func TestSummarizeZeroRevenue(t *testing.T) {
	s := Summarize(Totals{Opex: 5000, NetIncome: -5000})
	if s.GrossProfitMargin != 0 || s.NetMargin != 0 || s.OpexRatio != 0 {
		t.Fatalf("zero revenue must produce zero ratios: %+v", s)
	}
	if s.OverallPerformance != PerformanceBreakeven {
		t.Fatalf("zero net margin labels breakeven, got %s", s.OverallPerformance)
	}
}
