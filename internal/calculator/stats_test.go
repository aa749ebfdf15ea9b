package calculator

import (
	"math"
	"testing"

	"MarketCompare/internal/model"
)

func TestSummarize(t *testing.T) {
	a := monthly("AAA", jan2020, 13, 100, 10) // 100 .. 220 over 12 months
	table, err := Align([]model.PriceSeries{a}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stats, err := Summarize(table, model.Monthly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	st := stats["AAA"]
	if math.Abs(st.TotalReturn-1.2) > eps {
		t.Errorf("total return = %v, want 1.2", st.TotalReturn)
	}
	// 2020 is a leap year: 366 days in 12 months, so CAGR is slightly below total return.
	if st.CAGR <= 1.1 || st.CAGR >= 1.2 {
		t.Errorf("CAGR = %v, want just below 1.2", st.CAGR)
	}
	if st.MaxDrawdown != 0 {
		t.Errorf("max drawdown = %v, want 0 for a rising series", st.MaxDrawdown)
	}
	if st.High != 220 || st.Low != 100 {
		t.Errorf("high/low = %v/%v", st.High, st.Low)
	}
	if math.Abs(st.BestPeriod-0.1) > eps {
		t.Errorf("best period = %v, want 0.1", st.BestPeriod)
	}
	if st.Volatility <= 0 {
		t.Errorf("volatility = %v, want > 0", st.Volatility)
	}
}

func TestMaxDrawdown(t *testing.T) {
	tests := []struct {
		values []float64
		want   float64
	}{
		{nil, 0},
		{[]float64{1, 2, 3}, 0},
		{[]float64{100, 50, 150, 120}, 0.5},
		{[]float64{100, 120, 60, 130, 65}, 0.5},
	}
	for _, tt := range tests {
		if got := MaxDrawdown(tt.values); math.Abs(got-tt.want) > eps {
			t.Errorf("MaxDrawdown(%v) = %v, want %v", tt.values, got, tt.want)
		}
	}
}

func TestStdDev_NotEnoughData(t *testing.T) {
	if _, err := StdDev([]float64{1}); err == nil {
		t.Error("expected error for a single value")
	}
	sd, err := StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(sd-2.138089935) > 1e-6 {
		t.Errorf("stddev = %v", sd)
	}
}

func TestHighLow_Empty(t *testing.T) {
	if _, _, err := HighLow(nil); err == nil {
		t.Error("expected error for no values")
	}
}
