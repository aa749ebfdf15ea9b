package calculator

import (
	"fmt"
	"math"

	"MarketCompare/internal/model"
)

// Normalize rescales every column of t so that it starts at base.
func Normalize(t model.Table, base float64) (model.NormedTable, error) {
	if err := checkBase(base); err != nil {
		return model.NormedTable{}, err
	}
	if t.Rows() == 0 {
		return model.NormedTable{}, model.ErrNoOverlap
	}

	out := model.NormedTable{
		Table: model.Table{
			Times:   append(t.Times[:0:0], t.Times...),
			Tickers: append(t.Tickers[:0:0], t.Tickers...),
			Columns: make(map[string][]float64, len(t.Columns)),
		},
		Base: base,
	}
	for _, ticker := range t.Tickers {
		col := t.Columns[ticker]
		if len(col) != t.Rows() {
			return model.NormedTable{}, fmt.Errorf("%w: column %s has %d rows, table has %d",
				model.ErrInvalidInput, ticker, len(col), t.Rows())
		}
		first := col[0]
		if first <= 0 {
			return model.NormedTable{}, fmt.Errorf("%w: %s starts at non-positive price %v",
				model.ErrInvalidInput, ticker, first)
		}
		normed := make([]float64, len(col))
		normed[0] = base
		for i := 1; i < len(col); i++ {
			normed[i] = col[i] / first * base
		}
		out.Columns[ticker] = normed
	}
	return out, nil
}

// AlignAndNormalize aligns series on their common periods and rescales them to base.
func AlignAndNormalize(series []model.PriceSeries, base float64, minOverlap int) (model.NormedTable, error) {
	if err := checkBase(base); err != nil {
		return model.NormedTable{}, err
	}
	aligned, err := Align(series, minOverlap)
	if err != nil {
		return model.NormedTable{}, err
	}
	return Normalize(aligned, base)
}

// checkBase rejects zero, negative, NaN and infinite bases.
func checkBase(base float64) error {
	if !(base > 0) || math.IsInf(base, 0) {
		return fmt.Errorf("%w: base must be a positive finite number, got %v", model.ErrInvalidInput, base)
	}
	return nil
}
