package collector

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/tidwall/gjson"

	"MarketCompare/internal/model"
)

// newHTTPClient builds a client with a 30s timeout and optional proxy.
func newHTTPClient(proxyURL string) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}
}

// get performs a GET and returns the status code and full body.
func get(ctx context.Context, client *http.Client, u string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read body: %w", err)
	}
	return resp.StatusCode, body, nil
}

// rawRow is one provider row before cleaning.
type rawRow struct {
	Time  time.Time
	Value gjson.Result
}

// buildSeries drops rows with a missing value, buckets the rest into calendar
// periods (the latest row of a period wins) and sorts them chronologically.
func buildSeries(ticker string, field model.PriceField, interval model.Interval, rows []rawRow) (model.PriceSeries, error) {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Time.Before(rows[j].Time) })

	byPeriod := make(map[int64]model.Point, len(rows))
	for _, r := range rows {
		if r.Value.Type != gjson.Number {
			continue // null bars (holidays, halted months)
		}
		v := r.Value.Float()
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			continue
		}
		period := interval.PeriodStart(r.Time)
		byPeriod[period.Unix()] = model.Point{Time: period, Value: v}
	}
	if len(byPeriod) == 0 {
		return model.PriceSeries{}, model.ErrEmptySeries
	}

	points := make([]model.Point, 0, len(byPeriod))
	for _, p := range byPeriod {
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Time.Before(points[j].Time) })

	return model.PriceSeries{
		Ticker:   ticker,
		Field:    field,
		Interval: interval,
		Points:   points,
	}, nil
}
