package render

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"MarketCompare/internal/compare"
)

const (
	chartWidthPx  = 1200
	chartHeightPx = 600
)

// Chart builds a line chart with one series per ticker on a shared period axis.
func Chart(res *compare.Result) *charts.Line {
	t := res.Table
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "MarketCompare",
			Width:     fmt.Sprintf("%dpx", chartWidthPx),
			Height:    fmt.Sprintf("%dpx", chartHeightPx),
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Normed %s performance", intervalName(res)),
			Subtitle: fmt.Sprintf("%s, start = %s", strings.Join(t.Tickers, " vs "), formatBase(t.Base)),
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", XAxisIndex: []int{0}}),
		charts.WithYAxisOpts(opts.YAxis{Scale: opts.Bool(true)}),
	)

	xAxis := make([]string, t.Rows())
	for i, ts := range t.Times {
		xAxis[i] = ts.Format(res.Interval.Layout())
	}
	line.SetXAxis(xAxis)
	for _, ticker := range t.Tickers {
		col := t.Columns[ticker]
		data := make([]opts.LineData, len(col))
		for i, v := range col {
			data[i] = opts.LineData{Value: round(v, 4)}
		}
		line.AddSeries(ticker, data)
	}
	return line
}

// WriteChart writes the chart as a standalone HTML page.
func WriteChart(w io.Writer, res *compare.Result) error {
	return Chart(res).Render(w)
}

// SaveChart writes the chart HTML to path, creating parent directories.
func SaveChart(path string, res *compare.Result) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create chart dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	if err := WriteChart(f, res); err != nil {
		f.Close()
		return fmt.Errorf("render chart: %w", err)
	}
	return f.Close()
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
