package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/honeycarbs/jobsync/internal/domain"
	"github.com/honeycarbs/jobsync/internal/extract"
	"github.com/honeycarbs/jobsync/pkg/logging"
)

const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// launchArgs keep Chromium usable inside containers.
var launchArgs = []string{
	"--no-sandbox",
	"--disable-setuid-sandbox",
	"--disable-dev-shm-usage",
	"--disable-gpu",
	"--disable-extensions",
}

// Options controls how the browser is launched and how pages settle.
type Options struct {
	Headless    bool
	UserAgent   string
	SettleDelay time.Duration
}

// Launcher owns the playwright driver and a single Chromium process.
// Every Acquire hands out an isolated browser context.
type Launcher struct {
	opts Options
	log  *logging.Logger

	mu      sync.Mutex
	pw      *playwright.Playwright
	browser playwright.Browser

	// open is Acquire behind the tab interface Visit needs
	open func(context.Context) (tab, error)
}

// tab is the part of a Session that Visit drives.
type tab interface {
	Navigate(ctx context.Context, url string, timeout time.Duration) (extract.Document, error)
	Release() error
}

func NewLauncher(opts Options, log *logging.Logger) *Launcher {
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	l := &Launcher{opts: opts, log: log.Named("browser")}
	l.open = l.openTab
	return l
}

func (l *Launcher) openTab(ctx context.Context) (tab, error) {
	s, err := l.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (l *Launcher) start() (playwright.Browser, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.browser != nil && l.browser.IsConnected() {
		return l.browser, nil
	}

	if l.pw == nil {
		pw, err := playwright.Run()
		if err != nil {
			return nil, fmt.Errorf("start playwright: %w", err)
		}
		l.pw = pw
	}

	b, err := l.pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(l.opts.Headless),
		Args:     launchArgs,
	})
	if err != nil {
		return nil, fmt.Errorf("launch chromium: %w", err)
	}
	l.browser = b
	l.log.Info("chromium launched", "headless", l.opts.Headless)

	return b, nil
}

// Acquire opens a fresh session. The caller must Release it.
func (l *Launcher) Acquire(ctx context.Context) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.TransportError("browser acquire", err)
	}

	b, err := l.start()
	if err != nil {
		return nil, domain.TransportError("browser acquire", err)
	}

	bctx, err := b.NewContext(playwright.BrowserNewContextOptions{
		UserAgent:         playwright.String(l.opts.UserAgent),
		IgnoreHttpsErrors: playwright.Bool(true),
		Viewport:          &playwright.Size{Width: 1366, Height: 900},
	})
	if err != nil {
		return nil, domain.TransportError("browser new context", err)
	}

	if err := bctx.Route("**/*", blockHeavyResources); err != nil {
		_ = bctx.Close()
		return nil, domain.TransportError("browser route", err)
	}

	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		return nil, domain.TransportError("browser new page", err)
	}

	return &Session{
		bctx:   bctx,
		page:   page,
		settle: l.opts.SettleDelay,
	}, nil
}

// Visit acquires a session, navigates to url and hands the rendered page to fn.
// The session is released on every path.
func (l *Launcher) Visit(ctx context.Context, url string, timeout time.Duration, fn func(extract.Document) error) (err error) {
	s, err := l.open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if rerr := s.Release(); rerr != nil {
			l.log.Warn("release browser session", "err", rerr)
		}
	}()

	doc, err := s.Navigate(ctx, url, timeout)
	if err != nil {
		return err
	}
	return fn(doc)
}

// Close stops Chromium and the playwright driver.
func (l *Launcher) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var errs []error
	if l.browser != nil {
		errs = append(errs, l.browser.Close())
		l.browser = nil
	}
	if l.pw != nil {
		errs = append(errs, l.pw.Stop())
		l.pw = nil
	}
	return errors.Join(errs...)
}

func blockHeavyResources(route playwright.Route) {
	if shouldBlock(route.Request().ResourceType()) {
		_ = route.Abort()
		return
	}
	_ = route.Continue()
}

func shouldBlock(resourceType string) bool {
	switch resourceType {
	case "image", "stylesheet", "font", "media":
		return true
	default:
		return false
	}
}
