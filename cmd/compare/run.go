package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/subcommands"

	"MarketCompare/internal/compare"
	"MarketCompare/internal/input"
	"MarketCompare/internal/model"
	"MarketCompare/internal/render"
)

type runCmd struct {
	from     string
	to       string
	interval string
	chart    string
	tail     int
	width    int
	raw      bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "compare one or two tickers and print the normed table" }
func (*runCmd) Usage() string {
	return `compare run [-from <date>] [-to <date>] [-chart <file>] [-tail n] TICKER1 [TICKER2]

  Fetches price history, aligns it on common periods, normalizes it to the
  configured base and prints the tail of the table with a summary.
  An HTML line chart is written to -chart.
`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "start date YYYY-MM-DD (defaults to the configured lookback)")
	f.StringVar(&c.to, "to", "", "end date YYYY-MM-DD (defaults to today)")
	f.StringVar(&c.interval, "interval", "", "sampling interval: 1mo, 1wk or 1d (defaults to config)")
	f.StringVar(&c.chart, "chart", "", "chart output file, \"-\" to skip (defaults to config)")
	f.IntVar(&c.tail, "tail", 0, "number of table rows to print (defaults to config)")
	f.IntVar(&c.width, "width", 100, "word wrap width for terminal output")
	f.BoolVar(&c.raw, "raw", false, "print markdown without terminal styling")
}

func (c *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tickers, err := input.ParseTickers(f.Args()...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", compare.Message(err))
		return subcommands.ExitUsageError
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.interval != "" {
		cfg.Compare.Interval = c.interval
	}
	if c.tail == 0 {
		c.tail = cfg.Compare.TailRows
	}
	if c.chart == "" {
		c.chart = cfg.Output.ChartPath
	}

	svc, err := newService(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	var res *compare.Result
	if c.from == "" && c.to == "" {
		res, err = svc.Run(ctx, tickers)
	} else {
		var start, end time.Time
		start, end, err = c.window(svc.Now().UTC(), svc.Lookback)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", compare.Message(err))
			return subcommands.ExitUsageError
		}
		res, err = svc.RunRange(ctx, tickers, start, end)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", compare.Message(err))
		if errors.Is(err, model.ErrInvalidInput) {
			return subcommands.ExitUsageError
		}
		return subcommands.ExitFailure
	}

	md := render.TableMarkdown(res, c.tail)
	if c.raw {
		fmt.Print(md)
	} else {
		out, err := render.Terminal(md, c.width)
		if err != nil {
			log.Printf("[WARN] terminal rendering failed, printing markdown: %v", err)
			out = md
		}
		fmt.Print(out)
	}

	if c.chart != "-" {
		if err := render.SaveChart(c.chart, res); err != nil {
			fmt.Fprintf(os.Stderr, "Error: save chart: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("chart written to %s\n", c.chart)
	}
	return subcommands.ExitSuccess
}

// window resolves -from and -to, filling the missing side from now and lookback.
func (c *runCmd) window(now time.Time, lookback time.Duration) (time.Time, time.Time, error) {
	end := now
	if c.to != "" {
		t, err := time.Parse("2006-01-02", c.to)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: -to: %v", model.ErrInvalidInput, err)
		}
		end = t
	}
	start := end.Add(-lookback)
	if c.from != "" {
		t, err := time.Parse("2006-01-02", c.from)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: -from: %v", model.ErrInvalidInput, err)
		}
		start = t
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: -from must be before -to", model.ErrInvalidInput)
	}
	return start, end, nil
}
