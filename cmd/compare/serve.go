package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/subcommands"

	"MarketCompare/internal/notifier"
	"MarketCompare/internal/scheduler"
)

type serveCmd struct {
	runOnStart bool
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "run the Telegram bot and scheduled reports" }
func (*serveCmd) Usage() string {
	return `compare serve [-now]

  Answers /compare commands over Telegram and sends the configured
  comparison on the report schedule until interrupted.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.runOnStart, "now", os.Getenv("RUN_ON_START") == "true", "send the scheduled report once at startup")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	log.Println("[INFO] MarketCompare bot starting...")

	cfg, err := loadConfig()
	if err != nil {
		log.Printf("[ERROR] %v", err)
		return subcommands.ExitFailure
	}
	if err := cfg.ValidateBot(); err != nil {
		log.Printf("[ERROR] config validation: %v", err)
		return subcommands.ExitFailure
	}

	svc, err := newService(cfg)
	if err != nil {
		log.Printf("[ERROR] %v", err)
		return subcommands.ExitFailure
	}

	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sched := scheduler.NewScheduler(ctx, svc, tn, cfg.Compare.Tickers, cfg.Compare.TailRows)
	if err := sched.Register(cfg.Schedule.ReportCron); err != nil {
		log.Printf("[ERROR] register cron tasks: %v", err)
		return subcommands.ExitFailure
	}
	sched.Start()
	defer sched.Stop()

	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	if c.runOnStart && cfg.Telegram.ChatID != "" {
		log.Println("[INFO] sending report now")
		go sched.RunReportNow()
	}

	fmt.Println("MarketCompare is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] MarketCompare stopped")
	return subcommands.ExitSuccess
}
