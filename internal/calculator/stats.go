package calculator

import (
	"errors"
	"math"

	"MarketCompare/internal/model"
)

// Summarize computes per-ticker statistics over the aligned columns of t.
func Summarize(t model.Table, interval model.Interval) (map[string]model.Stats, error) {
	if t.Rows() == 0 {
		return nil, errors.New("no rows to summarize")
	}
	years := 0.0
	if n := t.Rows(); n > 1 {
		years = t.Times[n-1].Sub(t.Times[0]).Hours() / 24 / 365.25
	}

	out := make(map[string]model.Stats, len(t.Tickers))
	for _, ticker := range t.Tickers {
		col := t.Columns[ticker]
		if len(col) == 0 {
			continue
		}
		st := model.Stats{Ticker: ticker, First: col[0], Last: col[len(col)-1]}
		st.High, st.Low, _ = HighLow(col)
		st.MaxDrawdown = MaxDrawdown(col)
		if st.First > 0 {
			st.TotalReturn = st.Last/st.First - 1
			if years > 0 && st.Last > 0 {
				st.CAGR = math.Pow(st.Last/st.First, 1/years) - 1
			}
		}

		rets := PeriodReturns(col)
		if len(rets) > 0 {
			st.BestPeriod, st.WorstPeriod = math.Inf(-1), math.Inf(1)
			for _, r := range rets {
				st.BestPeriod = math.Max(st.BestPeriod, r)
				st.WorstPeriod = math.Min(st.WorstPeriod, r)
			}
		}
		if sd, err := StdDev(rets); err == nil {
			st.Volatility = sd * math.Sqrt(interval.PeriodsPerYear())
		}
		out[ticker] = st
	}
	return out, nil
}

// PeriodReturns returns the simple return between consecutive values.
func PeriodReturns(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	rets := make([]float64, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		if values[i-1] == 0 {
			continue
		}
		rets = append(rets, values[i]/values[i-1]-1)
	}
	return rets
}

// StdDev returns the sample standard deviation. Requires at least 2 values.
func StdDev(values []float64) (float64, error) {
	if len(values) < 2 {
		return 0, errors.New("not enough data for standard deviation")
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	sum := 0.0
	for _, v := range values {
		sum += (v - mean) * (v - mean)
	}
	return math.Sqrt(sum / float64(len(values)-1)), nil
}

// HighLow scans values and returns the highest and lowest.
func HighLow(values []float64) (high, low float64, err error) {
	if len(values) == 0 {
		return 0, 0, errors.New("no values provided")
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, v := range values {
		if v > high {
			high = v
		}
		if v < low {
			low = v
		}
	}
	return high, low, nil
}

// MaxDrawdown returns the largest peak-to-trough decline as a fraction of the peak.
func MaxDrawdown(values []float64) float64 {
	peak, worst := 0.0, 0.0
	for _, v := range values {
		if v > peak {
			peak = v
		}
		if peak > 0 {
			if dd := (peak - v) / peak; dd > worst {
				worst = dd
			}
		}
	}
	return worst
}
