package collector

import (
	"context"
	"fmt"
	"strings"
	"time"

	"MarketCompare/internal/model"
)

// Request describes one historical price query.
type Request struct {
	Ticker   string
	Start    time.Time
	End      time.Time
	Interval model.Interval
}

// Fetcher defines the interface for fetching a historical price series.
type Fetcher interface {
	FetchSeries(ctx context.Context, req Request) (model.PriceSeries, error)
	Name() string
}

func (r Request) validate() error {
	if strings.TrimSpace(r.Ticker) == "" {
		return fmt.Errorf("%w: empty ticker", model.ErrInvalidInput)
	}
	if !r.Start.Before(r.End) {
		return fmt.Errorf("%w: start %s is not before end %s",
			model.ErrInvalidInput, r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
	}
	return nil
}

func (r Request) interval() model.Interval {
	if r.Interval == "" {
		return model.Monthly
	}
	return r.Interval
}
