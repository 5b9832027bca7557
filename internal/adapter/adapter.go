// Package adapter handles a single scrape-and-write request for one row.
package adapter

import (
	"context"
	"errors"
	"strings"

	"github.com/honeycarbs/jobsync/internal/domain"
	"github.com/honeycarbs/jobsync/pkg/logging"
)

const MsgMissingInput = "Missing URL or row number"

type Scraper interface {
	Scrape(ctx context.Context, url string) (domain.JobPosting, error)
}

type Sink interface {
	Write(ctx context.Context, rowIndex int, p domain.JobPosting) error
}

// Request carries the caller's input. Pointers tell absent from zero.
type Request struct {
	URL *string `json:"url"`
	Row *int    `json:"row"`
}

// Adapter validates a request, scrapes the URL and writes the row.
type Adapter struct {
	scraper Scraper
	sink    Sink
	log     *logging.Logger
}

func New(scraper Scraper, sink Sink, log *logging.Logger) *Adapter {
	if log == nil {
		log = logging.NewNop()
	}
	return &Adapter{scraper: scraper, sink: sink, log: log.Named("adapter")}
}

// Validate runs before any browser work.
func (r Request) Validate() (string, int, error) {
	if r.URL == nil || r.Row == nil {
		return "", 0, domain.ValidationError(MsgMissingInput)
	}
	url := strings.TrimSpace(*r.URL)
	if url == "" || *r.Row == 0 {
		return "", 0, domain.ValidationError(MsgMissingInput)
	}
	if *r.Row < domain.FirstDataRow {
		return "", 0, domain.ValidationError("Row number must be 2 or greater")
	}
	return url, *r.Row, nil
}

// Scrape is one complete attempt with no retry. A page whose title
// resolves to the sentinel is a content error even though nothing failed.
func (a *Adapter) Scrape(ctx context.Context, req Request) (domain.JobPosting, error) {
	url, row, err := req.Validate()
	if err != nil {
		return domain.JobPosting{}, err
	}

	posting, err := a.scraper.Scrape(ctx, url)
	if err != nil {
		return posting, err
	}

	if !domain.Resolved(posting.JobTitle) {
		a.log.Warn("job title not found", "url", url, "row", row)
		return posting, domain.ContentError("extract", errors.New("job title not found"))
	}

	if err := a.sink.Write(ctx, row, posting); err != nil {
		return posting, err
	}

	a.log.Info("row written", "row", row, "title", posting.JobTitle, "company", posting.CompanyName)
	return posting, nil
}
