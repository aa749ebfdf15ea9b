package collector

import (
	"context"
	"math"
	"sync"

	"MarketCompare/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	mu     sync.Mutex
	Series map[string]model.PriceSeries
	Errors map[string]error
	Calls  []Request
}

func (m *MockFetcher) Name() string { return "mock" }

// FetchSeries returns the configured series or error for req.Ticker. Tickers with
// neither get a generated series so the CLI can run offline.
func (m *MockFetcher) FetchSeries(_ context.Context, req Request) (model.PriceSeries, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	m.mu.Unlock()

	if err := req.validate(); err != nil {
		return model.PriceSeries{}, &model.SeriesError{Ticker: req.Ticker, Err: err}
	}
	if err, ok := m.Errors[req.Ticker]; ok {
		return model.PriceSeries{}, &model.SeriesError{Ticker: req.Ticker, Err: err}
	}
	if s, ok := m.Series[req.Ticker]; ok {
		return s, nil
	}
	return generateMockSeries(req), nil
}

// generateMockSeries yields a smooth series whose level depends on the ticker.
func generateMockSeries(req Request) model.PriceSeries {
	iv := req.interval()
	seed := 0.0
	for _, r := range req.Ticker {
		seed += float64(r)
	}
	base := 20 + math.Mod(seed, 180)

	s := model.PriceSeries{Ticker: req.Ticker, Field: model.AdjClose, Interval: iv}
	i := 0
	for t := iv.PeriodStart(req.Start); !t.After(req.End); i++ {
		p := base * (1 + 0.01*float64(i)) * (1 + 0.05*math.Sin(float64(i)+seed))
		s.Points = append(s.Points, model.Point{Time: t, Value: p})
		switch iv {
		case model.Daily:
			t = t.AddDate(0, 0, 1)
		case model.Weekly:
			t = t.AddDate(0, 0, 7)
		default:
			t = t.AddDate(0, 1, 0)
		}
	}
	return s
}
