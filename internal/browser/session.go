package browser

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/honeycarbs/jobsync/internal/domain"
	"github.com/honeycarbs/jobsync/internal/extract"
)

// Session is one isolated browser context with a single page.
type Session struct {
	bctx   playwright.BrowserContext
	page   playwright.Page
	settle time.Duration

	once    sync.Once
	release error
}

// idleWait bounds how long Navigate waits for network idle after load.
const idleWait = 5 * time.Second

// Navigate loads url, then waits a bounded time for the network to go idle
// and finally for the settle delay. Only the load itself can fail: pages that
// keep a connection open never reach idle, and their content is read anyway.
func (s *Session) Navigate(ctx context.Context, url string, timeout time.Duration) (extract.Document, error) {
	if s.page == nil {
		return nil, domain.TransportError("navigate", errors.New("session released"))
	}

	timeout = capToDeadline(ctx, timeout)
	if timeout <= 0 {
		return nil, domain.TransportError("navigate", context.DeadlineExceeded)
	}

	start := time.Now()
	_, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
		Timeout:   playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		return nil, domain.TransportError("navigate", err)
	}

	if budget := idleBudget(timeout - time.Since(start)); budget > 0 {
		// a timeout here is expected for long-polling pages
		_ = s.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
			State:   playwright.LoadStateNetworkidle,
			Timeout: playwright.Float(float64(budget.Milliseconds())),
		})
	}

	if s.settle > 0 {
		t := time.NewTimer(s.settle)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, domain.TransportError("navigate", ctx.Err())
		case <-t.C:
		}
	}

	return &pageDocument{page: s.page}, nil
}

// Release closes the browser context. Safe to call more than once.
func (s *Session) Release() error {
	s.once.Do(func() {
		if s.bctx != nil {
			s.release = s.bctx.Close()
		}
		s.page = nil
	})
	return s.release
}

// idleBudget is the network idle wait allowed given the navigation time left.
func idleBudget(left time.Duration) time.Duration {
	if left < idleWait {
		return left
	}
	return idleWait
}

func capToDeadline(ctx context.Context, timeout time.Duration) time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return timeout
	}
	if left := time.Until(deadline); left < timeout {
		return left
	}
	return timeout
}
