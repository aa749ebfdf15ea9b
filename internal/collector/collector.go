package collector

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"MarketCompare/internal/model"
)

// Collector fans out one fetch per ticker and joins the results.
type Collector struct {
	Fetcher Fetcher
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{Fetcher: fetcher}
}

// FetchAll fetches every ticker concurrently. The first failure cancels the
// remaining fetches and is returned; no partial result is handed back.
func (c *Collector) FetchAll(ctx context.Context, tickers []string, start, end time.Time, interval model.Interval) ([]model.PriceSeries, error) {
	if len(tickers) == 0 {
		return nil, fmt.Errorf("%w: no tickers", model.ErrInvalidInput)
	}
	out := make([]model.PriceSeries, len(tickers))
	group, gctx := errgroup.WithContext(ctx)
	for i, ticker := range tickers {
		i, ticker := i, ticker
		group.Go(func() error {
			s, err := c.Fetcher.FetchSeries(gctx, Request{
				Ticker:   ticker,
				Start:    start,
				End:      end,
				Interval: interval,
			})
			if err != nil {
				return err
			}
			log.Printf("[INFO] %s: fetched %d %s periods of %s from %s",
				ticker, s.Len(), interval, s.Field, c.Fetcher.Name())
			out[i] = s
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
