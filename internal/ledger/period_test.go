package ledger

import (
	"errors"
	"testing"
	"time"
)

func TestPeriodValidate(t *testing.T) {
	ok := Period{
		Start: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid period rejected: %v", err)
	}

	same := Period{Start: ok.Start, End: ok.Start}
	if err := same.Validate(); err != nil {
		t.Fatalf("single-day period rejected: %v", err)
	}

	bad := Period{Start: ok.End, End: ok.Start}
	if err := bad.Validate(); !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
}

func TestPeriodContainsInclusiveBounds(t *testing.T) {
	p := Period{
		Start: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	if !p.Contains(p.Start) || !p.Contains(p.End) {
		t.Fatalf("bounds must be inclusive")
	}
	if p.Contains(p.Start.AddDate(0, 0, -1)) || p.Contains(p.End.AddDate(0, 0, 1)) {
		t.Fatalf("dates outside the interval must be excluded")
	}
}

func TestMonthlyPeriods(t *testing.T) {
	periods := MonthlyPeriods(time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC), 12)
	if len(periods) != 12 {
		t.Fatalf("got %d periods", len(periods))
	}
	if periods[0].Label() != "2025-03" {
		t.Fatalf("first month = %s, want 2025-03", periods[0].Label())
	}
	if periods[11].Label() != "2026-02" {
		t.Fatalf("last month = %s, want 2026-02", periods[11].Label())
	}
	// February 2026 ends on the 28th.
	if periods[11].End.Day() != 28 {
		t.Fatalf("feb end day = %d", periods[11].End.Day())
	}
	for i := 1; i < len(periods); i++ {
		if !periods[i].Start.After(periods[i-1].End) {
			t.Fatalf("months overlap at index %d", i)
		}
		if periods[i].Start.Sub(periods[i-1].End) != 24*time.Hour {
			t.Fatalf("gap between months at index %d", i)
		}
	}
}
