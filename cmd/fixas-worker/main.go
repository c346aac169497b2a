// fixas-worker materializes the month's fixed bills into the ledger. It is
// meant to be run once per invocation (e.g. from cron or on app startup);
// re-running it for the same month is a no-op.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/fgbm4bdwfd-lang/Controle-financeiro-casal/internal/config"
	"github.com/fgbm4bdwfd-lang/Controle-financeiro-casal/internal/log"
	"github.com/fgbm4bdwfd-lang/Controle-financeiro-casal/internal/recurring"
	"github.com/fgbm4bdwfd-lang/Controle-financeiro-casal/internal/store"
)

func main() {
	// Load .env file for local development (ignore errors in production).
	_ = godotenv.Load()

	logger := log.New(log.Config{
		Level:     log.ParseLevel(os.Getenv("FINANCEIRO_LOG_LEVEL")),
		Component: log.ComponentRecurring,
	})
	log.SetDefault(logger)

	monthFlag := flag.String("mes", "", "target month as YYYY-MM (default: current month)")
	flag.Parse()

	year, month, err := targetMonth(*monthFlag)
	if err != nil {
		logger.Error("Invalid -mes flag", "value", *monthFlag, "error", err)
		os.Exit(2)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	s := store.New(store.Config{
		Path:              cfg.DocumentPath,
		LockTimeout:       cfg.LockTimeout,
		LockStaleAfter:    cfg.LockStaleAfter,
		LockRetryInterval: cfg.LockRetryInterval,
	})

	ctx := context.Background()
	res, err := s.Load(ctx)
	if err != nil {
		logger.Error("Failed to load document", "path", cfg.DocumentPath, "error", err)
		os.Exit(1)
	}
	if res.Recovered {
		logger.Warn("Document was corrupt and has been replaced; restore a backup if needed",
			"quarantine", res.QuarantinePath)
	}

	ledger, created, skipped := recurring.Generate(ctx, res.Data.Ledger, res.Data.Bills, year, month)
	if created == 0 {
		logger.Info("Nothing to materialize", "year", year, "month", month, "skipped", skipped)
		return
	}

	res.Data.Ledger = ledger
	if err := s.Save(ctx, res.Data); err != nil {
		logger.Error("Failed to save document", "error", err)
		os.Exit(1)
	}
	logger.Info("Fixed bills materialized",
		"year", year,
		"month", month,
		"created", created,
		"skipped", skipped)
}

func targetMonth(flagValue string) (int, int, error) {
	if flagValue == "" {
		now := time.Now()
		return now.Year(), int(now.Month()), nil
	}
	t, err := time.Parse("2006-01", flagValue)
	if err != nil {
		return 0, 0, fmt.Errorf("expected YYYY-MM: %w", err)
	}
	return t.Year(), int(t.Month()), nil
}
