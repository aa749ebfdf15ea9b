package calculator

import (
	"fmt"
	"sort"
	"time"

	"MarketCompare/internal/model"
)

// DefaultMinOverlap is the minimum number of common periods accepted by Align.
const DefaultMinOverlap = 12

// Align restricts every series to the periods present in all of them.
// Fails with ErrNoOverlap on an empty intersection and ErrInsufficientOverlap
// when fewer than minOverlap periods remain.
func Align(series []model.PriceSeries, minOverlap int) (model.Table, error) {
	if len(series) == 0 {
		return model.Table{}, fmt.Errorf("%w: at least one series required", model.ErrInvalidInput)
	}
	if minOverlap < 1 {
		minOverlap = 1
	}

	counts := make(map[int64]int)
	lookup := make([]map[int64]float64, len(series))
	seen := make(map[string]bool, len(series))
	for i, s := range series {
		if s.Ticker == "" {
			return model.Table{}, fmt.Errorf("%w: series %d has no ticker", model.ErrInvalidInput, i)
		}
		if seen[s.Ticker] {
			return model.Table{}, fmt.Errorf("%w: duplicate ticker %s", model.ErrInvalidInput, s.Ticker)
		}
		seen[s.Ticker] = true

		lookup[i] = make(map[int64]float64, len(s.Points))
		for _, p := range s.Points {
			key := p.Time.Unix()
			if _, dup := lookup[i][key]; dup {
				continue
			}
			lookup[i][key] = p.Value
			counts[key]++
		}
	}

	var times []time.Time
	for _, p := range series[0].Points {
		if counts[p.Time.Unix()] == len(series) {
			times = append(times, p.Time)
		}
	}
	// Input order is not trusted.
	sort.Slice(times, func(a, b int) bool { return times[a].Before(times[b]) })
	uniq := times[:0]
	for _, t := range times {
		if n := len(uniq); n > 0 && uniq[n-1].Equal(t) {
			continue
		}
		uniq = append(uniq, t)
	}
	times = uniq
	if len(times) == 0 {
		return model.Table{}, model.ErrNoOverlap
	}
	if len(times) < minOverlap {
		return model.Table{}, fmt.Errorf("%w: %d common periods, need %d", model.ErrInsufficientOverlap, len(times), minOverlap)
	}

	table := model.Table{
		Times:   times,
		Tickers: make([]string, len(series)),
		Columns: make(map[string][]float64, len(series)),
	}
	for i, s := range series {
		col := make([]float64, len(times))
		for j, t := range times {
			col[j] = lookup[i][t.Unix()]
		}
		table.Tickers[i] = s.Ticker
		table.Columns[s.Ticker] = col
	}
	return table, nil
}
