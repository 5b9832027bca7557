package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/honeycarbs/jobsync/internal/app"
	"github.com/honeycarbs/jobsync/internal/config"
	"github.com/honeycarbs/jobsync/internal/notify"
	"github.com/honeycarbs/jobsync/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.RequireStore(); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	os.Exit(run(cfg, logger))
}

func run(cfg config.Config, logger *logging.Logger) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	driver, cleanup, err := app.InitializeBatch(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize batch", "err", err)
		return 1
	}
	defer cleanup()

	report, runErr := driver.Run(ctx)
	if runErr != nil {
		logger.Error("batch stopped early", "err", runErr, "processed", len(report.Outcomes))
	}

	if cfg.TelegramEnabled() {
		notifyCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		tg, err := notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID)
		if err == nil {
			err = tg.NotifyBatch(notifyCtx, report)
		}
		if err != nil {
			logger.Warn("failed to send run summary", "err", err)
		}
	}

	if runErr != nil {
		return 1
	}
	return 0
}
