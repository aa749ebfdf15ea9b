package collector

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"MarketCompare/internal/model"
)

// DefaultEODHDBaseURL is the eodhd.com API host.
const DefaultEODHDBaseURL = "https://eodhd.com"

// EODHDFetcher implements Fetcher using the eodhd.com end-of-day API.
type EODHDFetcher struct {
	BaseURL  string
	APIKey   string
	Exchange string // appended to tickers without an exchange suffix, e.g. "US"
	Client   *http.Client
}

// NewEODHDFetcher creates a new fetcher with optional proxy support.
func NewEODHDFetcher(apiKey, exchange, proxyURL string) *EODHDFetcher {
	if exchange == "" {
		exchange = "US"
	}
	return &EODHDFetcher{
		BaseURL:  DefaultEODHDBaseURL,
		APIKey:   apiKey,
		Exchange: exchange,
		Client:   newHTTPClient(proxyURL),
	}
}

func (f *EODHDFetcher) Name() string { return "eodhd" }

func (f *EODHDFetcher) symbol(ticker string) string {
	if strings.Contains(ticker, ".") {
		return ticker
	}
	return ticker + "." + f.Exchange
}

func eodhdPeriod(iv model.Interval) string {
	switch iv {
	case model.Daily:
		return "d"
	case model.Weekly:
		return "w"
	default:
		return "m"
	}
}

// FetchSeries queries /api/eod for req. Rows look like
// {"date":"2024-02-01","open":..,"close":..,"adjusted_close":..,"volume":..}.
func (f *EODHDFetcher) FetchSeries(ctx context.Context, req Request) (model.PriceSeries, error) {
	s, err := f.fetch(ctx, req)
	if err != nil {
		return model.PriceSeries{}, &model.SeriesError{Ticker: req.Ticker, Err: err}
	}
	return s, nil
}

func (f *EODHDFetcher) fetch(ctx context.Context, req Request) (model.PriceSeries, error) {
	if err := req.validate(); err != nil {
		return model.PriceSeries{}, err
	}
	if f.APIKey == "" {
		return model.PriceSeries{}, errors.New("eodhd: api key is not set")
	}

	q := url.Values{}
	q.Set("fmt", "json")
	q.Set("period", eodhdPeriod(req.interval()))
	q.Set("from", req.Start.Format("2006-01-02"))
	q.Set("to", req.End.Format("2006-01-02"))
	q.Set("api_token", f.APIKey)
	u := fmt.Sprintf("%s/api/eod/%s?%s",
		strings.TrimRight(f.BaseURL, "/"), url.PathEscape(f.symbol(req.Ticker)), q.Encode())

	status, body, err := get(ctx, f.Client, u)
	if err != nil {
		return model.PriceSeries{}, fmt.Errorf("eodhd fetch: %w", err)
	}
	if status == http.StatusNotFound {
		return model.PriceSeries{}, fmt.Errorf("%w: %s", model.ErrNoData, truncate(body, 100))
	}
	if status != http.StatusOK {
		return model.PriceSeries{}, fmt.Errorf("eodhd: status %d, body: %s", status, truncate(body, 200))
	}
	if !gjson.ValidBytes(body) {
		return model.PriceSeries{}, fmt.Errorf("eodhd decode: invalid json")
	}

	payload := gjson.ParseBytes(body)
	if !payload.IsArray() {
		return model.PriceSeries{}, fmt.Errorf("eodhd: unexpected payload: %s", truncate(body, 200))
	}
	items := payload.Array()
	if len(items) == 0 {
		return model.PriceSeries{}, model.ErrNoData
	}

	key := ""
	for _, item := range items {
		if item.Get("adjusted_close").Exists() {
			key = "adjusted_close"
			break
		}
	}
	field := model.AdjClose
	if key == "" {
		for _, item := range items {
			if item.Get("close").Exists() {
				key = "close"
				break
			}
		}
		field = model.Close
	}
	if key == "" {
		return model.PriceSeries{}, model.ErrMissingField
	}

	rows := make([]rawRow, 0, len(items))
	for _, item := range items {
		d, err := time.Parse("2006-01-02", item.Get("date").String())
		if err != nil {
			continue
		}
		rows = append(rows, rawRow{Time: d, Value: item.Get(key)})
	}
	return buildSeries(req.Ticker, field, req.interval(), rows)
}
