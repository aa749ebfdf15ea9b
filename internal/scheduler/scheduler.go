package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/robfig/cron/v3"

	"MarketCompare/internal/compare"
	"MarketCompare/internal/input"
	"MarketCompare/internal/notifier"
)

// Sender delivers a formatted report.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler runs scheduled reports and answers bot commands.
type Scheduler struct {
	Cron     *cron.Cron
	Service  *compare.Service
	Notifier Sender
	Tickers  []string // default tickers for scheduled reports
	TailRows int
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, svc *compare.Service, sender Sender, tickers []string, tailRows int) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Service:  svc,
		Notifier: sender,
		Tickers:  tickers,
		TailRows: tailRows,
		Ctx:      ctx,
	}
}

// Register schedules the periodic comparison report. An empty cron expression disables it.
func (s *Scheduler) Register(reportCron string) error {
	if reportCron == "" {
		log.Println("[INFO] no report schedule configured")
		return nil
	}
	if _, err := input.ParseTickers(s.Tickers...); err != nil {
		return fmt.Errorf("report tickers: %w", err)
	}
	if _, err := s.Cron.AddFunc(reportCron, s.reportTask); err != nil {
		return fmt.Errorf("register report task: %w", err)
	}
	log.Printf("[INFO] report scheduled: %q for %v", reportCron, s.Tickers)
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunReportNow executes the scheduled report immediately.
func (s *Scheduler) RunReportNow() {
	s.reportTask()
}

func (s *Scheduler) reportTask() {
	log.Printf("[INFO] running scheduled report for %v", s.Tickers)
	s.trySend(s.Compare(s.Ctx, s.Tickers))
}

// Compare runs one comparison and returns the message to show, success or not.
func (s *Scheduler) Compare(ctx context.Context, raw []string) string {
	tickers, err := input.ParseTickers(raw...)
	if err != nil {
		return notifier.FormatError(raw, err)
	}
	res, err := s.Service.Run(ctx, tickers)
	if err != nil {
		log.Printf("[ERROR] compare %v: %v", tickers, err)
		return notifier.FormatError(tickers, err)
	}
	return notifier.FormatComparison(res, s.TailRows)
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.FormatHelp()
	}
	// "/compare@MyBot AAPL MSFT" in group chats
	name, _, _ := strings.Cut(strings.ToLower(fields[0]), "@")
	switch name {
	case "/compare":
		args := input.SplitArgs(strings.Join(fields[1:], " "))
		if len(args) == 0 {
			args = s.Tickers
		}
		return s.Compare(ctx, args)
	default:
		return notifier.FormatHelp()
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
