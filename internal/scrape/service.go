package scrape

import (
	"context"
	"time"

	"github.com/honeycarbs/jobsync/internal/domain"
	"github.com/honeycarbs/jobsync/internal/extract"
	"github.com/honeycarbs/jobsync/pkg/logging"
)

const DefaultNavigationTimeout = 30 * time.Second

// Visitor renders a URL and passes the resulting document to fn.
type Visitor interface {
	Visit(ctx context.Context, url string, timeout time.Duration, fn func(extract.Document) error) error
}

// Service turns a posting URL into a JobPosting.
type Service struct {
	visitor   Visitor
	extractor *extract.Extractor
	timeout   time.Duration
	log       *logging.Logger
}

type Option func(*Service)

// WithTimeout overrides the navigation timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func WithLogger(log *logging.Logger) Option {
	return func(s *Service) {
		s.log = log
	}
}

func NewService(v Visitor, e *extract.Extractor, opts ...Option) *Service {
	s := &Service{
		visitor:   v,
		extractor: e,
		timeout:   DefaultNavigationTimeout,
		log:       logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scrape renders url and extracts every field. A page that loads but has no
// matching elements is not an error here; the sentinel values say so.
func (s *Service) Scrape(ctx context.Context, url string) (domain.JobPosting, error) {
	posting := domain.NewJobPosting(url)

	start := time.Now()
	err := s.visitor.Visit(ctx, url, s.timeout, func(doc extract.Document) error {
		posting = s.extractor.Extract(doc, url)
		return nil
	})
	if err != nil {
		s.log.Warn("scrape failed", "url", url, "err", err)
		if domain.KindOf(err) == domain.KindUnknown {
			err = domain.TransportError("scrape", err)
		}
		return domain.NewJobPosting(url), err
	}

	s.log.Debug("scraped posting",
		"url", url,
		"title", posting.JobTitle,
		"company", posting.CompanyName,
		"elapsed", time.Since(start),
	)
	return posting, nil
}
