package compare

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"MarketCompare/internal/calculator"
	"MarketCompare/internal/collector"
	"MarketCompare/internal/model"
)

// Result is one finished comparison.
type Result struct {
	RunID    string
	Tickers  []string
	Start    time.Time
	End      time.Time
	Interval model.Interval
	Series   []model.PriceSeries
	Aligned  model.Table // prices on the common periods
	Table    model.NormedTable
	Stats    map[string]model.Stats
}

// Service runs fetch, alignment, normalization and summary for a set of tickers.
// It holds no state between runs.
type Service struct {
	Collector  *collector.Collector
	Base       float64
	MinOverlap int
	Lookback   time.Duration
	Interval   model.Interval
	Now        func() time.Time
}

// NewService creates a Service with the default monthly five-year window.
func NewService(col *collector.Collector, base float64, minOverlap int) *Service {
	return &Service{
		Collector:  col,
		Base:       base,
		MinOverlap: minOverlap,
		Lookback:   5 * 365 * 24 * time.Hour,
		Interval:   model.Monthly,
		Now:        time.Now,
	}
}

// Run compares tickers over [now-Lookback, now]. Tickers are expected to be
// validated by input.ParseTickers.
func (s *Service) Run(ctx context.Context, tickers []string) (*Result, error) {
	end := s.Now().UTC()
	return s.RunRange(ctx, tickers, end.Add(-s.Lookback), end)
}

// RunRange compares tickers over an explicit date range.
func (s *Service) RunRange(ctx context.Context, tickers []string, start, end time.Time) (*Result, error) {
	res := &Result{
		RunID:    uuid.NewString()[:8],
		Tickers:  tickers,
		Start:    start,
		End:      end,
		Interval: s.Interval,
	}
	log.Printf("[INFO] run %s: comparing %v from %s to %s", res.RunID, tickers,
		start.Format("2006-01-02"), end.Format("2006-01-02"))

	series, err := s.Collector.FetchAll(ctx, tickers, start, end, s.Interval)
	if err != nil {
		log.Printf("[WARN] run %s: fetch failed: %v", res.RunID, err)
		return nil, fmt.Errorf("fetch: %w", err)
	}
	res.Series = series

	aligned, err := calculator.Align(series, s.MinOverlap)
	if err != nil {
		log.Printf("[WARN] run %s: align failed: %v", res.RunID, err)
		return nil, fmt.Errorf("align: %w", err)
	}
	res.Aligned = aligned

	table, err := calculator.Normalize(aligned, s.Base)
	if err != nil {
		log.Printf("[WARN] run %s: normalize failed: %v", res.RunID, err)
		return nil, fmt.Errorf("normalize: %w", err)
	}
	res.Table = table

	// Stats are on prices; returns are the same on the normed columns.
	stats, err := calculator.Summarize(aligned, s.Interval)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}
	res.Stats = stats

	log.Printf("[INFO] run %s: %d aligned periods, %s to %s", res.RunID, table.Rows(),
		table.Times[0].Format(s.Interval.Layout()), table.Times[table.Rows()-1].Format(s.Interval.Layout()))
	return res, nil
}

// Message renders err as the short user-facing text for a failed comparison.
func Message(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%s: %v", model.Kind(err), err)
}
