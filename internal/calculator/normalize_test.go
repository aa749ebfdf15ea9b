package calculator

import (
	"errors"
	"math"
	"testing"
	"time"

	"MarketCompare/internal/model"
)

const eps = 1e-9

// monthly builds a monthly series of n points starting at start, price p0 growing by step per month.
func monthly(ticker string, start time.Time, n int, p0, step float64) model.PriceSeries {
	s := model.PriceSeries{Ticker: ticker, Field: model.AdjClose, Interval: model.Monthly}
	for i := 0; i < n; i++ {
		s.Points = append(s.Points, model.Point{
			Time:  start.AddDate(0, i, 0),
			Value: p0 + float64(i)*step,
		})
	}
	return s
}

var jan2020 = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

func TestAlignAndNormalize_SingleSeriesStartsAtBase(t *testing.T) {
	for _, base := range []float64{0.5, 1, 100, 12345.678} {
		s := monthly("AAPL", jan2020, 20, 73.41, 1.7)
		out, err := AlignAndNormalize([]model.PriceSeries{s}, base, DefaultMinOverlap)
		if err != nil {
			t.Fatalf("base %v: unexpected error: %v", base, err)
		}
		if got := out.Columns["AAPL"][0]; math.Abs(got-base) > eps {
			t.Errorf("base %v: first value = %v", base, got)
		}
		if out.Rows() != 20 {
			t.Errorf("base %v: rows = %d, want 20", base, out.Rows())
		}
	}
}

func TestAlignAndNormalize_FullOverlapScenario(t *testing.T) {
	aapl := monthly("AAPL", jan2020, 60, 75, 2.5)
	msft := monthly("MSFT", jan2020, 60, 160, 3)

	out, err := AlignAndNormalize([]model.PriceSeries{aapl, msft}, 100, 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Rows() != 60 {
		t.Fatalf("rows = %d, want 60", out.Rows())
	}
	if out.Columns["AAPL"][0] != 100 || out.Columns["MSFT"][0] != 100 {
		t.Errorf("first row = %v / %v, want 100", out.Columns["AAPL"][0], out.Columns["MSFT"][0])
	}
	if len(out.Tickers) != 2 || out.Tickers[0] != "AAPL" || out.Tickers[1] != "MSFT" {
		t.Errorf("tickers = %v", out.Tickers)
	}
	want := (75 + 59*2.5) / 75 * 100
	if got := out.Columns["AAPL"][59]; math.Abs(got-want) > eps {
		t.Errorf("AAPL last = %v, want %v", got, want)
	}
}

func TestAlignAndNormalize_DisjointSeries(t *testing.T) {
	a := monthly("AAA", jan2020, 24, 10, 1)
	b := monthly("BBB", jan2020.AddDate(3, 0, 0), 24, 10, 1)

	_, err := AlignAndNormalize([]model.PriceSeries{a, b}, 1, 12)
	if !errors.Is(err, model.ErrNoOverlap) {
		t.Fatalf("expected ErrNoOverlap, got %v", err)
	}
	if errors.Is(err, model.ErrInsufficientOverlap) {
		t.Error("empty intersection must not report insufficient overlap")
	}
}

func TestAlignAndNormalize_InsufficientOverlap(t *testing.T) {
	a := monthly("AAA", jan2020, 20, 10, 1)
	b := monthly("BBB", jan2020.AddDate(0, 12, 0), 20, 10, 1) // 8 common months

	_, err := AlignAndNormalize([]model.PriceSeries{a, b}, 100, 12)
	if !errors.Is(err, model.ErrInsufficientOverlap) {
		t.Fatalf("expected ErrInsufficientOverlap, got %v", err)
	}

	out, err := AlignAndNormalize([]model.PriceSeries{a, b}, 100, 8)
	if err != nil {
		t.Fatalf("threshold 8: unexpected error: %v", err)
	}
	if out.Rows() != 8 {
		t.Errorf("rows = %d, want 8", out.Rows())
	}
	if !out.Times[0].Equal(jan2020.AddDate(1, 0, 0)) {
		t.Errorf("first aligned period = %v", out.Times[0])
	}
}

func TestAlign_IntersectionSkipsGaps(t *testing.T) {
	a := monthly("AAA", jan2020, 14, 10, 1)
	b := monthly("BBB", jan2020, 14, 20, 1)
	// drop March and July from b
	b.Points = append(append(b.Points[:2:2], b.Points[3:6]...), b.Points[7:]...)

	table, err := Align([]model.PriceSeries{a, b}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Rows() != 12 {
		t.Fatalf("rows = %d, want 12", table.Rows())
	}
	for i, ts := range table.Times {
		if ts.Month() == time.March && ts.Year() == 2020 || ts.Month() == time.July && ts.Year() == 2020 {
			t.Errorf("row %d: period %v should have been dropped", i, ts)
		}
		if i > 0 && !ts.After(table.Times[i-1]) {
			t.Errorf("row %d: times not increasing", i)
		}
		for _, ticker := range table.Tickers {
			if table.Columns[ticker][i] == 0 {
				t.Errorf("row %d: %s has no value", i, ticker)
			}
		}
	}
	// value at a row must come from the same period
	if got := table.Columns["AAA"][2]; got != 13 { // April 2020
		t.Errorf("AAA row 2 = %v, want 13", got)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	a := monthly("AAA", jan2020, 30, 42, -0.7)
	b := monthly("BBB", jan2020, 30, 5, 0.3)

	once, err := AlignAndNormalize([]model.PriceSeries{a, b}, 100, 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	twice, err := Normalize(once.Table, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, ticker := range once.Tickers {
		for i := range once.Columns[ticker] {
			if d := math.Abs(once.Columns[ticker][i] - twice.Columns[ticker][i]); d > 1e-9 {
				t.Errorf("%s row %d: %v != %v", ticker, i, once.Columns[ticker][i], twice.Columns[ticker][i])
			}
		}
	}
}

func TestAlignAndNormalize_InvalidInput(t *testing.T) {
	s := monthly("AAA", jan2020, 12, 10, 1)
	tests := []struct {
		name   string
		series []model.PriceSeries
		base   float64
	}{
		{"no series", nil, 1},
		{"zero base", []model.PriceSeries{s}, 0},
		{"negative base", []model.PriceSeries{s}, -1},
		{"NaN base", []model.PriceSeries{s}, math.NaN()},
		{"infinite base", []model.PriceSeries{s}, math.Inf(1)},
		{"duplicate ticker", []model.PriceSeries{s, s}, 1},
		{"missing ticker", []model.PriceSeries{{Points: s.Points}}, 1},
	}
	for _, tt := range tests {
		if _, err := AlignAndNormalize(tt.series, tt.base, 1); !errors.Is(err, model.ErrInvalidInput) {
			t.Errorf("%s: expected ErrInvalidInput, got %v", tt.name, err)
		}
	}
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	table, err := Align([]model.PriceSeries{monthly("AAA", jan2020, 12, 10, 1)}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := Normalize(table, 100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Columns["AAA"][0] != 10 {
		t.Errorf("input column modified: %v", table.Columns["AAA"][0])
	}
}

func TestNormalize_RejectsNonFiniteBase(t *testing.T) {
	table, err := Align([]model.PriceSeries{monthly("AAA", jan2020, 12, 10, 1)}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, base := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := Normalize(table, base); !errors.Is(err, model.ErrInvalidInput) {
			t.Errorf("Normalize(base=%v): expected ErrInvalidInput, got %v", base, err)
		}
	}
}

func TestAlign_UnsortedInputIsChronological(t *testing.T) {
	a := monthly("AAA", jan2020, 12, 10, 1)
	b := monthly("BBB", jan2020, 12, 20, 2)
	// reverse a and swap two points of b
	for i, j := 0, len(a.Points)-1; i < j; i, j = i+1, j-1 {
		a.Points[i], a.Points[j] = a.Points[j], a.Points[i]
	}
	b.Points[0], b.Points[5] = b.Points[5], b.Points[0]

	table, err := Align([]model.PriceSeries{a, b}, 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < table.Rows(); i++ {
		if !table.Times[i-1].Before(table.Times[i]) {
			t.Fatalf("times not increasing at row %d: %v then %v", i, table.Times[i-1], table.Times[i])
		}
	}
	if !table.Times[0].Equal(jan2020) {
		t.Errorf("first period = %v, want %v", table.Times[0], jan2020)
	}
	if got := table.Columns["AAA"][0]; got != 10 {
		t.Errorf("AAA first = %v, want 10", got)
	}
	if got := table.Columns["BBB"][11]; math.Abs(got-42) > eps {
		t.Errorf("BBB last = %v, want 42", got)
	}
}
