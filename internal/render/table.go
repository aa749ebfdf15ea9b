package render

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	md "github.com/nao1215/markdown"

	"MarketCompare/internal/compare"
	"MarketCompare/internal/model"
)

// DefaultTail is the number of trailing rows shown in the data table.
const DefaultTail = 5

// TableMarkdown renders the last tail rows of the normed table followed by the
// per-ticker summary. tail <= 0 shows every row.
func TableMarkdown(res *compare.Result, tail int) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	t := res.Table
	doc.H2(fmt.Sprintf("Normed %s series: %s (start = %s)",
		intervalName(res), strings.Join(t.Tickers, " vs "), formatBase(t.Base)))

	from := 0
	if tail > 0 && t.Rows() > tail {
		from = t.Rows() - tail
	}
	rows := make([][]string, 0, t.Rows()-from)
	for i := from; i < t.Rows(); i++ {
		row := []string{t.Times[i].Format(res.Interval.Layout())}
		for _, ticker := range t.Tickers {
			row = append(row, strconv.FormatFloat(t.Columns[ticker][i], 'f', 4, 64))
		}
		rows = append(rows, row)
	}
	doc.Table(md.TableSet{
		Header: append([]string{"Period"}, t.Tickers...),
		Rows:   rows,
	})

	doc.H2("Summary")
	fields := make(map[string]string, len(res.Series))
	for _, s := range res.Series {
		fields[s.Ticker] = string(s.Field)
	}
	summary := make([][]string, 0, len(t.Tickers))
	for _, ticker := range t.Tickers {
		st := res.Stats[ticker]
		summary = append(summary, []string{
			ticker,
			fields[ticker],
			strconv.FormatFloat(st.Last, 'f', 2, 64),
			strconv.FormatFloat(t.Columns[ticker][t.Rows()-1], 'f', 2, 64),
			pct(st.TotalReturn),
			pct(st.CAGR),
			pct(st.Volatility),
			pct(-st.MaxDrawdown),
			pct(st.BestPeriod),
			pct(st.WorstPeriod),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Ticker", "Field", "Last price", "Normed", "Total", "CAGR", "Volatility", "Max DD", "Best", "Worst"},
		Rows:   summary,
	})
	doc.PlainText(fmt.Sprintf("%d aligned periods from %s to %s. Run %s.",
		t.Rows(),
		t.Times[0].Format(res.Interval.Layout()),
		t.Times[t.Rows()-1].Format(res.Interval.Layout()),
		res.RunID))

	return doc.String()
}

// Terminal renders markdown for a terminal of the given width.
func Terminal(markdown string, width int) (string, error) {
	if width <= 0 {
		width = 100
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("create renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}

func pct(v float64) string {
	return fmt.Sprintf("%+.2f%%", v*100)
}

func formatBase(base float64) string {
	return strconv.FormatFloat(base, 'f', -1, 64)
}

func intervalName(res *compare.Result) string {
	switch res.Interval {
	case model.Daily:
		return "daily"
	case model.Weekly:
		return "weekly"
	default:
		return "monthly"
	}
}
