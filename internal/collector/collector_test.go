package collector

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"MarketCompare/internal/model"
)

func TestCollector_FetchAllKeepsTickerOrder(t *testing.T) {
	m := &MockFetcher{}
	c := NewCollector(m)

	out, err := c.FetchAll(context.Background(), []string{"MSFT", "AAPL"}, testStart, testEnd, model.Monthly)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "MSFT", out[0].Ticker)
	assert.Equal(t, "AAPL", out[1].Ticker)
	assert.Len(t, m.Calls, 2)
	assert.Equal(t, 6, out[0].Len())
}

func TestCollector_FetchAllFailsOnAnyTicker(t *testing.T) {
	m := &MockFetcher{Errors: map[string]error{"NOPE": model.ErrNoData}}
	c := NewCollector(m)

	out, err := c.FetchAll(context.Background(), []string{"AAPL", "NOPE"}, testStart, testEnd, model.Monthly)
	assert.Nil(t, out, "no partial result on failure")
	assert.ErrorIs(t, err, model.ErrNoData)
	assert.Equal(t, "NoDataError", model.Kind(err))
}

func TestCollector_FetchAllRequiresTickers(t *testing.T) {
	_, err := NewCollector(&MockFetcher{}).FetchAll(context.Background(), nil, testStart, testEnd, model.Monthly)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestBuildSeries_LatestRowOfPeriodWins(t *testing.T) {
	rows := []rawRow{
		{Time: time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC), Value: gjson.Parse("3")},
		{Time: time.Date(2021, 3, 17, 16, 0, 0, 0, time.UTC), Value: gjson.Parse("3.5")},
		{Time: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), Value: gjson.Parse("1")},
		{Time: time.Date(2021, 2, 1, 0, 0, 0, 0, time.UTC), Value: gjson.Parse("-2")},
	}
	s, err := buildSeries("T", model.Close, model.Monthly, rows)
	require.NoError(t, err)
	require.Len(t, s.Points, 2)
	assert.Equal(t, 1.0, s.Points[0].Value)
	assert.Equal(t, time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC), s.Points[1].Time)
	assert.Equal(t, 3.5, s.Points[1].Value)
}

func TestPeriodStart(t *testing.T) {
	ts := time.Date(2024, 5, 19, 13, 45, 0, 0, time.UTC) // a Sunday
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), model.Monthly.PeriodStart(ts))
	assert.Equal(t, time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC), model.Weekly.PeriodStart(ts))
	assert.Equal(t, time.Date(2024, 5, 19, 0, 0, 0, 0, time.UTC), model.Daily.PeriodStart(ts))
}
