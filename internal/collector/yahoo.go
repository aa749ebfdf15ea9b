package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	_ "time/tzdata" // exchange timezones must resolve on hosts without zoneinfo

	"github.com/tidwall/gjson"

	"MarketCompare/internal/model"
)

// DefaultYahooBaseURL is the public Yahoo Finance chart host.
const DefaultYahooBaseURL = "https://query1.finance.yahoo.com"

// YahooFetcher implements Fetcher using Yahoo Finance public API.
type YahooFetcher struct {
	BaseURL   string
	Client    *http.Client
	SymbolMap map[string]string // maps internal symbol to Yahoo ticker
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	return &YahooFetcher{
		BaseURL: DefaultYahooBaseURL,
		Client:  newHTTPClient(proxyURL),
		SymbolMap: map[string]string{
			"SPX500": "^GSPC",
			"SPX":    "^GSPC",
			"SP500":  "^GSPC",
			"NDX":    "^NDX",
			"DJI":    "^DJI",
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

func (f *YahooFetcher) chartURL(req Request) string {
	q := url.Values{}
	q.Set("period1", fmt.Sprint(req.Start.Unix()))
	q.Set("period2", fmt.Sprint(req.End.Unix()))
	q.Set("interval", string(req.interval()))
	q.Set("events", "history")
	q.Set("includeAdjustedClose", "true")
	return fmt.Sprintf("%s/v8/finance/chart/%s?%s",
		strings.TrimRight(f.BaseURL, "/"), url.PathEscape(f.yahooSymbol(req.Ticker)), q.Encode())
}

// FetchSeries downloads the chart for req and keeps the adjusted close, or the
// raw close when the payload carries no adjusted prices.
func (f *YahooFetcher) FetchSeries(ctx context.Context, req Request) (model.PriceSeries, error) {
	s, err := f.fetch(ctx, req)
	if err != nil {
		return model.PriceSeries{}, &model.SeriesError{Ticker: req.Ticker, Err: err}
	}
	return s, nil
}

func (f *YahooFetcher) fetch(ctx context.Context, req Request) (model.PriceSeries, error) {
	if err := req.validate(); err != nil {
		return model.PriceSeries{}, err
	}

	status, body, err := get(ctx, f.Client, f.chartURL(req))
	if err != nil {
		return model.PriceSeries{}, fmt.Errorf("yahoo fetch: %w", err)
	}
	if !gjson.ValidBytes(body) {
		if status != http.StatusOK {
			return model.PriceSeries{}, fmt.Errorf("yahoo: status %d, body: %s", status, truncate(body, 200))
		}
		return model.PriceSeries{}, fmt.Errorf("yahoo decode: invalid json")
	}

	chart := gjson.GetBytes(body, "chart")
	if e := chart.Get("error"); e.Exists() && e.Type != gjson.Null {
		if strings.EqualFold(e.Get("code").String(), "Not Found") {
			return model.PriceSeries{}, fmt.Errorf("%w: %s", model.ErrNoData, e.Get("description").String())
		}
		return model.PriceSeries{}, fmt.Errorf("yahoo api error: %s", e.Get("description").String())
	}
	if status != http.StatusOK {
		return model.PriceSeries{}, fmt.Errorf("yahoo: status %d, body: %s", status, truncate(body, 200))
	}

	result := chart.Get("result.0")
	timestamps := result.Get("timestamp").Array()
	if !result.Exists() || len(timestamps) == 0 {
		return model.PriceSeries{}, model.ErrNoData
	}

	field := model.AdjClose
	values := result.Get("indicators.adjclose.0.adjclose")
	if !values.IsArray() {
		field = model.Close
		values = result.Get("indicators.quote.0.close")
	}
	if !values.IsArray() {
		return model.PriceSeries{}, model.ErrMissingField
	}

	loc := exchangeLocation(result.Get("meta"))
	prices := values.Array()
	rows := make([]rawRow, 0, len(timestamps))
	for i, ts := range timestamps {
		var v gjson.Result
		if i < len(prices) {
			v = prices[i]
		}
		// Bars are stamped at exchange midnight; read the date on the exchange's wall clock.
		local := time.Unix(ts.Int(), 0).In(loc)
		y, m, d := local.Date()
		rows = append(rows, rawRow{
			Time:  time.Date(y, m, d, local.Hour(), local.Minute(), 0, 0, time.UTC),
			Value: v,
		})
	}
	return buildSeries(req.Ticker, field, req.interval(), rows)
}

// exchangeLocation resolves the exchange timezone, falling back to the fixed
// gmtoffset Yahoo reports for the current date.
func exchangeLocation(meta gjson.Result) *time.Location {
	if name := meta.Get("exchangeTimezoneName").String(); name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	return time.FixedZone("exchange", int(meta.Get("gmtoffset").Int()))
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
