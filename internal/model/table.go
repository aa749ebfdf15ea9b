package model

import "time"

// Table holds price columns that share one ordered set of period timestamps.
type Table struct {
	Times   []time.Time
	Tickers []string // column order, as requested
	Columns map[string][]float64
}

// Rows returns the number of aligned periods.
func (t Table) Rows() int { return len(t.Times) }

// Column returns the values for ticker, or nil.
func (t Table) Column(ticker string) []float64 { return t.Columns[ticker] }

// NormedTable is a Table whose columns all start at Base.
type NormedTable struct {
	Table
	Base float64
}

// Stats summarises one aligned price column.
type Stats struct {
	Ticker      string
	First       float64
	Last        float64
	High        float64
	Low         float64
	TotalReturn float64 // last/first - 1
	CAGR        float64
	Volatility  float64 // annualised stdev of period returns
	MaxDrawdown float64 // 0.0 ~ 1.0
	BestPeriod  float64
	WorstPeriod float64
}
