package model

import (
	"fmt"
	"time"
)

// Interval is the sampling granularity of a price series.
type Interval string

const (
	Daily   Interval = "1d"
	Weekly  Interval = "1wk"
	Monthly Interval = "1mo"
)

// ParseInterval accepts the provider codes as well as the plain names.
func ParseInterval(s string) (Interval, error) {
	switch s {
	case "1d", "daily", "day":
		return Daily, nil
	case "1wk", "weekly", "week":
		return Weekly, nil
	case "", "1mo", "monthly", "month":
		return Monthly, nil
	}
	return "", fmt.Errorf("%w: unknown interval %q", ErrInvalidInput, s)
}

// PeriodStart returns the UTC start of the calendar period containing t.
// Weekly periods start on the ISO-week Monday.
func (iv Interval) PeriodStart(t time.Time) time.Time {
	y, m, d := t.Date()
	switch iv {
	case Daily:
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	case Weekly:
		day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
		return day.AddDate(0, 0, -offset)
	default:
		return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	}
}

// PeriodsPerYear is used to annualise per-period statistics.
func (iv Interval) PeriodsPerYear() float64 {
	switch iv {
	case Daily:
		return 252
	case Weekly:
		return 52
	default:
		return 12
	}
}

// Layout is the date layout used when printing period labels.
func (iv Interval) Layout() string {
	if iv == Monthly || iv == "" {
		return "2006-01"
	}
	return "2006-01-02"
}

// PriceField names the provider field a series was built from.
type PriceField string

const (
	AdjClose PriceField = "adjclose"
	Close    PriceField = "close"
)

// Point is a single period value.
type Point struct {
	Time  time.Time
	Value float64
}

// PriceSeries is a time-ordered, one-value-per-period price history for a ticker.
type PriceSeries struct {
	Ticker   string
	Field    PriceField
	Interval Interval
	Points   []Point
}

// Len returns the number of periods in the series.
func (s PriceSeries) Len() int { return len(s.Points) }
