package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"MarketCompare/internal/collector"
	"MarketCompare/internal/compare"
	"MarketCompare/internal/model"
)

type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendWithRetry(ctx context.Context, text string, maxRetries int) error {
	args := m.Called(ctx, text, maxRetries)
	return args.Error(0)
}

func newTestScheduler(fetcher *collector.MockFetcher, sender Sender) *Scheduler {
	svc := compare.NewService(collector.NewCollector(fetcher), 100, 12)
	svc.Now = func() time.Time { return time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC) }
	return NewScheduler(context.Background(), svc, sender, []string{"AAPL", "MSFT"}, 3)
}

func TestHandleCommand_Compare(t *testing.T) {
	fetcher := &collector.MockFetcher{}
	s := newTestScheduler(fetcher, &MockSender{})

	reply := s.HandleCommand(context.Background(), "/compare spy, qqq")
	assert.Contains(t, reply, "SPY vs QQQ")
	assert.Contains(t, reply, "Summary")
	require.Len(t, fetcher.Calls, 2)
}

func TestHandleCommand_DefaultTickersAndBotSuffix(t *testing.T) {
	s := newTestScheduler(&collector.MockFetcher{}, &MockSender{})
	reply := s.HandleCommand(context.Background(), "/compare@MarketCompareBot")
	assert.Contains(t, reply, "AAPL vs MSFT")
}

func TestHandleCommand_Errors(t *testing.T) {
	fetcher := &collector.MockFetcher{Errors: map[string]error{"GONE": model.ErrNoData}}
	s := newTestScheduler(fetcher, &MockSender{})

	reply := s.HandleCommand(context.Background(), "/compare AAPL GONE")
	assert.Contains(t, reply, "NoDataError")
	assert.NotContains(t, reply, "Summary", "no partial result on failure")

	reply = s.HandleCommand(context.Background(), "/compare AAPL aapl")
	assert.Contains(t, reply, "InvalidInputError")

	reply = s.HandleCommand(context.Background(), "/compare A B C")
	assert.Contains(t, reply, "InvalidInputError")
}

func TestHandleCommand_Help(t *testing.T) {
	s := newTestScheduler(&collector.MockFetcher{}, &MockSender{})
	for _, cmd := range []string{"", "/help", "hello"} {
		assert.Contains(t, s.HandleCommand(context.Background(), cmd), "/compare", cmd)
	}
}

func TestRunReportNow_SendsReport(t *testing.T) {
	sender := &MockSender{}
	sender.On("SendWithRetry", mock.Anything, mock.MatchedBy(func(text string) bool {
		return len(text) > 0
	}), 3).Return(nil).Once()

	s := newTestScheduler(&collector.MockFetcher{}, sender)
	s.RunReportNow()
	sender.AssertExpectations(t)
}

func TestRegister(t *testing.T) {
	s := newTestScheduler(&collector.MockFetcher{}, &MockSender{})
	assert.NoError(t, s.Register(""))
	assert.Empty(t, s.Cron.Entries())

	assert.NoError(t, s.Register("0 0 9 1 * *"))
	assert.Len(t, s.Cron.Entries(), 1)

	assert.Error(t, s.Register("not a cron"))

	s.Tickers = []string{"AAPL", "AAPL"}
	assert.Error(t, s.Register("0 0 9 1 * *"))
}
