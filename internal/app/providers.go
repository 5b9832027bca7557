// Package app wires the binaries together.
package app

import (
	"context"
	"net/http"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobsync/internal/adapter"
	"github.com/honeycarbs/jobsync/internal/batch"
	"github.com/honeycarbs/jobsync/internal/browser"
	"github.com/honeycarbs/jobsync/internal/config"
	"github.com/honeycarbs/jobsync/internal/export"
	"github.com/honeycarbs/jobsync/internal/extract"
	"github.com/honeycarbs/jobsync/internal/mcp"
	"github.com/honeycarbs/jobsync/internal/mcp/tools"
	"github.com/honeycarbs/jobsync/internal/pacing"
	"github.com/honeycarbs/jobsync/internal/scrape"
	"github.com/honeycarbs/jobsync/internal/server"
	storage "github.com/honeycarbs/jobsync/internal/storage/sheets"
	"github.com/honeycarbs/jobsync/pkg/logging"
	"github.com/honeycarbs/jobsync/pkg/monday"
	sheetsclient "github.com/honeycarbs/jobsync/pkg/sheets"
)

// provideSheetsClient builds the Google Sheets client from the credentials file
func provideSheetsClient(ctx context.Context, cfg config.Config) (*sheetsclient.Client, error) {
	return sheetsclient.NewClient(ctx, sheetsclient.Config{
		CredentialsPath: cfg.Sheets.CredentialsPath,
	})
}

func provideStore(client *sheetsclient.Client, cfg config.Config, log *logging.Logger) (*storage.Store, error) {
	return storage.NewStore(client, cfg.Sheets.SpreadsheetID,
		storage.WithSheetName(cfg.Sheets.SheetName),
		storage.WithSkipCompleted(cfg.Sheets.SkipCompleted),
		storage.WithLogger(log.Named("store")),
	)
}

// provideExtractor uses the embedded rules unless SELECTOR_RULES_PATH is set
func provideExtractor(cfg config.Config) (*extract.Extractor, error) {
	if cfg.Browser.RulesPath == "" {
		return extract.NewDefault()
	}

	table, err := extract.LoadRules(cfg.Browser.RulesPath)
	if err != nil {
		return nil, err
	}
	return extract.New(table)
}

// provideLauncher returns the browser launcher and a cleanup that stops Chromium
func provideLauncher(cfg config.Config, log *logging.Logger) (*browser.Launcher, func()) {
	l := browser.NewLauncher(browser.Options{
		Headless:    cfg.Browser.Headless,
		UserAgent:   cfg.Browser.UserAgent,
		SettleDelay: cfg.Browser.SettleDelay,
	}, log)

	return l, func() {
		if err := l.Close(); err != nil {
			log.Warn("failed to close browser", "err", err)
		}
	}
}

func provideScrapeService(l *browser.Launcher, e *extract.Extractor, cfg config.Config, log *logging.Logger) *scrape.Service {
	return scrape.NewService(l, e,
		scrape.WithTimeout(cfg.Browser.NavigationTimeout),
		scrape.WithLogger(log.Named("scrape")),
	)
}

func provideAdapter(s *scrape.Service, store *storage.Store, log *logging.Logger) *adapter.Adapter {
	return adapter.New(s, store, log)
}

func provideMCPServer(a *adapter.Adapter, store *storage.Store, log *logging.Logger) *sdkmcp.Server {
	return mcp.NewServer(log,
		tools.WithScrapeJob(a),
		tools.WithQueuePending(store),
	)
}

func provideHandler(a *adapter.Adapter, mcpServer *sdkmcp.Server, log *logging.Logger) http.Handler {
	return server.NewHandler(a, mcp.NewHandler(mcpServer), log)
}

func provideServer(cfg config.Config, log *logging.Logger, h http.Handler) *server.Server {
	return server.New(log, cfg.Host, cfg.Port, h)
}

func provideRowPacer(cfg config.Config) (pacing.Pacer, error) {
	return pacing.New(cfg.Batch.PacingMode, cfg.Batch.RowDelay)
}

func provideDriver(store *storage.Store, s *scrape.Service, p pacing.Pacer, log *logging.Logger) *batch.Driver {
	return batch.NewDriver(store, store, s,
		batch.WithPacer(p),
		batch.WithLogger(log.Named("batch")),
	)
}

func provideMondayClient(cfg config.Config) (*monday.Client, error) {
	return monday.NewClient(monday.Config{
		APIKey:  cfg.Monday.APIKey,
		BoardID: cfg.Monday.BoardID,
		BaseURL: cfg.Monday.APIURL,
	})
}

func provideBridge(store *storage.Store, client *monday.Client, cfg config.Config, log *logging.Logger) *export.Bridge {
	return export.NewBridge(store, client,
		export.Columns{
			Company:     cfg.Monday.Columns.Company,
			Location:    cfg.Monday.Columns.Location,
			Link:        cfg.Monday.Columns.Link,
			Description: cfg.Monday.Columns.Description,
		},
		export.WithPacer(pacing.Interval(cfg.Monday.ItemDelay)),
		export.WithLogger(log.Named("export")),
	)
}
