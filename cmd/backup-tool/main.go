// backup-tool exports the live workbook document or restores it from a
// previously exported copy. A restore runs every table through the schema
// normalizer and rejects unparseable input without touching the live file.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/fgbm4bdwfd-lang/Controle-financeiro-casal/internal/config"
	"github.com/fgbm4bdwfd-lang/Controle-financeiro-casal/internal/log"
	"github.com/fgbm4bdwfd-lang/Controle-financeiro-casal/internal/store"
)

func main() {
	_ = godotenv.Load()

	logger := log.New(log.Config{
		Level:     log.ParseLevel(os.Getenv("FINANCEIRO_LOG_LEVEL")),
		Component: log.ComponentStore,
	})
	log.SetDefault(logger)

	if len(os.Args) != 3 {
		usage()
		os.Exit(2)
	}
	command, path := os.Args[1], os.Args[2]

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
	switch command {
	case "export":
		out, err := os.Create(path)
		if err != nil {
			logger.Error("Cannot create export file", "path", path, "error", err)
			os.Exit(1)
		}
		if err := s.Export(ctx, out); err != nil {
			out.Close()
			logger.Error("Export failed", "error", err)
			os.Exit(1)
		}
		if err := out.Close(); err != nil {
			logger.Error("Export failed", "error", err)
			os.Exit(1)
		}
		logger.Info("Document exported", "to", path)
	case "restore":
		in, err := os.Open(path)
		if err != nil {
			logger.Error("Cannot open restore file", "path", path, "error", err)
			os.Exit(1)
		}
		defer in.Close()
		if err := s.Restore(ctx, in); err != nil {
			logger.Error("Restore rejected", "path", path, "error", err)
			os.Exit(1)
		}
		logger.Info("Document restored", "from", path)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s export|restore <file.xlsx>\n", os.Args[0])
}
