package notifier

import (
	"fmt"
	"html"
	"strings"

	"MarketCompare/internal/compare"
	"MarketCompare/internal/model"
)

// FormatComparison formats a finished comparison into a Telegram message.
func FormatComparison(res *compare.Result, tail int) string {
	var b strings.Builder
	t := res.Table
	layout := res.Interval.Layout()

	b.WriteString(fmt.Sprintf("📊 <b>%s</b> | normed, start = %g\n", html.EscapeString(strings.Join(t.Tickers, " vs ")), t.Base))
	b.WriteString(fmt.Sprintf("%s → %s (%d periods)\n\n",
		t.Times[0].Format(layout), t.Times[t.Rows()-1].Format(layout), t.Rows()))

	// Tail of the normed table
	from := 0
	if tail > 0 && t.Rows() > tail {
		from = t.Rows() - tail
	}
	b.WriteString("<pre>")
	b.WriteString(fmt.Sprintf("%-10s", "Period"))
	for _, ticker := range t.Tickers {
		b.WriteString(fmt.Sprintf(" %10s", html.EscapeString(ticker)))
	}
	b.WriteString("\n")
	for i := from; i < t.Rows(); i++ {
		b.WriteString(fmt.Sprintf("%-10s", t.Times[i].Format(layout)))
		for _, ticker := range t.Tickers {
			b.WriteString(fmt.Sprintf(" %10.2f", t.Columns[ticker][i]))
		}
		b.WriteString("\n")
	}
	b.WriteString("</pre>\n")

	b.WriteString("📈 <b>Summary:</b>\n")
	for _, ticker := range t.Tickers {
		st := res.Stats[ticker]
		b.WriteString(fmt.Sprintf("  %s: %+.1f%% total, %+.1f%%/yr, vol %.1f%%, max DD %.1f%%\n",
			html.EscapeString(ticker), st.TotalReturn*100, st.CAGR*100, st.Volatility*100, st.MaxDrawdown*100))
	}

	if len(t.Tickers) == 2 {
		last := t.Rows() - 1
		lead, lag := t.Tickers[0], t.Tickers[1]
		diff := t.Columns[lead][last] - t.Columns[lag][last]
		if diff < 0 {
			lead, lag, diff = lag, lead, -diff
		}
		b.WriteString(fmt.Sprintf("\n🏁 %s ahead of %s by %.2f points\n",
			html.EscapeString(lead), html.EscapeString(lag), diff))
	}
	return b.String()
}

// FormatError formats a failed comparison for the user.
func FormatError(tickers []string, err error) string {
	return fmt.Sprintf("❌ <b>Comparison failed</b> %s\n%s: %s",
		html.EscapeString(strings.Join(tickers, " vs ")),
		model.Kind(err),
		html.EscapeString(err.Error()))
}

// FormatHelp lists the supported bot commands.
func FormatHelp() string {
	return "Available commands:\n" +
		"• /compare TICKER1 TICKER2 - normed monthly comparison\n" +
		"• /compare TICKER - single ticker performance\n" +
		"• /help - this message"
}
