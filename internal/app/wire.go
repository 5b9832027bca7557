//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"

	"github.com/honeycarbs/jobsync/internal/batch"
	"github.com/honeycarbs/jobsync/internal/config"
	"github.com/honeycarbs/jobsync/internal/export"
	"github.com/honeycarbs/jobsync/internal/server"
	"github.com/honeycarbs/jobsync/pkg/logging"
	"github.com/honeycarbs/jobsync/pkg/monday"
)

var storeSet = wire.NewSet(
	provideSheetsClient,
	provideStore,
)

var scrapeSet = wire.NewSet(
	provideExtractor,
	provideLauncher,
	provideScrapeService,
)

// InitializeServer builds the HTTP service. cleanup stops the browser.
func InitializeServer(ctx context.Context, cfg config.Config, log *logging.Logger) (*server.Server, func(), error) {
	wire.Build(
		storeSet,
		scrapeSet,
		provideAdapter,
		provideMCPServer,
		provideHandler,
		provideServer,
	)
	return nil, nil, nil
}

// InitializeBatch builds the queue driver. cleanup stops the browser.
func InitializeBatch(ctx context.Context, cfg config.Config, log *logging.Logger) (*batch.Driver, func(), error) {
	wire.Build(
		storeSet,
		scrapeSet,
		provideRowPacer,
		provideDriver,
	)
	return nil, nil, nil
}

// InitializeExport builds the Monday.com export bridge
func InitializeExport(ctx context.Context, cfg config.Config, log *logging.Logger) (*export.Bridge, error) {
	wire.Build(
		storeSet,
		provideMondayClient,
		provideBridge,
	)
	return nil, nil
}

// InitializeMonday builds a bare Monday.com client for board introspection
func InitializeMonday(cfg config.Config) (*monday.Client, error) {
	wire.Build(provideMondayClient)
	return nil, nil
}
