package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/honeycarbs/jobsync/internal/app"
	"github.com/honeycarbs/jobsync/internal/config"
	"github.com/honeycarbs/jobsync/pkg/logging"
)

func main() {
	columns := flag.Bool("columns", false, "print the board's columns and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *columns {
		os.Exit(printColumns(ctx, cfg, logger))
	}

	if err := cfg.RequireExport(); err != nil {
		logger.Error("invalid config", "err", err)
		os.Exit(1)
	}

	bridge, err := app.InitializeExport(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize export", "err", err)
		os.Exit(1)
	}

	report, err := bridge.Run(ctx)
	if err != nil {
		logger.Error("export failed", "err", err)
		os.Exit(1)
	}

	logger.Info("process completed", "created", len(report.Created), "failed", len(report.Failures))
}

func printColumns(ctx context.Context, cfg config.Config, logger *logging.Logger) int {
	client, err := app.InitializeMonday(cfg)
	if err != nil {
		logger.Error("failed to initialize monday client", "err", err)
		return 1
	}

	cols, err := client.BoardColumns(ctx)
	if err != nil {
		logger.Error("failed to get column info", "err", err)
		return 1
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cols); err != nil {
		logger.Error("failed to print columns", "err", err)
		return 1
	}
	return 0
}
