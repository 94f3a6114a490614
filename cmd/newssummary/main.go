package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"

	"NewsSummary/internal/app"
	"NewsSummary/internal/config"
	"NewsSummary/internal/domain"
	"NewsSummary/internal/logging"
)

func main() {
	var (
		channel = flag.String("channel", "Russia 1", "channel name or archive identifier")
		date    = flag.String("date", "", "day to summarize (YYYYMMDD)")
		lang    = flag.String("lang", "English", "transcript language: English or Original")
		model   = flag.String("model", "", "summarization model (default from config)")
		daemon  = flag.Bool("daemon", false, "run on an interval for all configured channels")
	)
	flag.Parse()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}

	if *daemon {
		if err := application.RunDaemon(ctx); err != nil {
			logger.Error("daemon stopped", "error", err)
			os.Exit(1)
		}
		return
	}

	if *date == "" {
		*date = time.Now().UTC().AddDate(0, 0, -2).Format("20060102")
	}

	records, err := application.SummarizeDay(ctx, app.RunRequest{
		Channel:  *channel,
		Date:     *date,
		Language: domain.Language(*lang),
		Model:    *model,
	})
	if err != nil {
		var naErr *domain.NotAvailableError
		if errors.As(err, &naErr) {
			fmt.Fprintf(os.Stderr, "%v; pick another date or channel\n", naErr)
			os.Exit(1)
		}
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}

	render(*channel, *date, records)
}

func render(channel, date string, records []domain.SummaryRecord) {
	boldCyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	fmt.Printf("%s %s\n\n", boldCyan(channel), boldCyan(date))

	if len(records) == 0 {
		fmt.Println("no stories for this day")
		return
	}

	for i, rec := range records {
		fmt.Printf("%s %s\n", boldGreen(fmt.Sprintf("%d.", i+1)), boldGreen(rec.Title))
		if rec.Category != "" {
			fmt.Printf("   %s\n", yellow(rec.Category))
		}
		if aired := airTime(rec); aired != "" {
			fmt.Printf("   aired around %s\n", aired)
		}
		if rec.Description != "" {
			fmt.Printf("   %s\n", rec.Description)
		}
		fmt.Println()
	}
}

func airTime(rec domain.SummaryRecord) string {
	prog := domain.ProgramRecord{ID: rec.ID}
	t, err := prog.AirTime(rec.Start)
	if err != nil {
		return ""
	}
	return t.Format("15:04 MST")
}
