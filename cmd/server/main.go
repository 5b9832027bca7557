package main

import (
	"context"
	"log"
	"os"
	"syscall"
	"time"

	"github.com/honeycarbs/jobsync/internal/app"
	"github.com/honeycarbs/jobsync/internal/config"
	"github.com/honeycarbs/jobsync/pkg/logging"
	"github.com/honeycarbs/jobsync/pkg/shutdown"
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

	srv, cleanup, err := app.InitializeServer(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("failed to initialize server", "err", err)
		os.Exit(1)
	}
	srv.OnShutdown(func() error {
		cleanup()
		return nil
	})

	go shutdown.Graceful(
		[]os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP},
		srv,
		10*time.Second,
		logger,
	)

	logger.Info("scrape server initialized and starting", "addr", srv.Addr())

	if err := srv.Run(); err != nil {
		logger.Error("server exited with error", "err", err)
		cleanup()
		os.Exit(1)
	}
	logger.Info("server stopped")
}
