// Package export pushes finished sheet rows to a Monday.com board.
package export

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/honeycarbs/jobsync/internal/domain"
	"github.com/honeycarbs/jobsync/internal/pacing"
	"github.com/honeycarbs/jobsync/pkg/logging"
	"github.com/honeycarbs/jobsync/pkg/monday"
)

const linkText = "Job Link"

type RowReader interface {
	ReadCompleted(ctx context.Context) ([]domain.JobPosting, error)
}

type ItemCreator interface {
	CreateItem(ctx context.Context, itemName string, columnValues map[string]any) (string, error)
}

// Columns maps posting fields to board column ids.
type Columns struct {
	Company     string
	Location    string
	Link        string
	Description string
}

// Failure records one item that could not be created.
type Failure struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Err   string `json:"error"`
}

type Report struct {
	RunID    string    `json:"run_id"`
	Read     int       `json:"read"`
	Eligible int       `json:"eligible"`
	Created  []string  `json:"created"`
	Failures []Failure `json:"failures,omitempty"`
}

// Bridge reads completed rows and creates one board item per row.
type Bridge struct {
	rows    RowReader
	items   ItemCreator
	columns Columns
	pacer   pacing.Pacer
	log     *logging.Logger
}

type Option func(*Bridge)

func WithPacer(p pacing.Pacer) Option {
	return func(b *Bridge) {
		if p != nil {
			b.pacer = p
		}
	}
}

func WithLogger(log *logging.Logger) Option {
	return func(b *Bridge) {
		b.log = log
	}
}

func NewBridge(rows RowReader, items ItemCreator, columns Columns, opts ...Option) *Bridge {
	b := &Bridge{
		rows:    rows,
		items:   items,
		columns: columns,
		pacer:   pacing.Interval(time.Second),
		log:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run exports every eligible row. One item failing never stops the rest.
func (b *Bridge) Run(ctx context.Context) (Report, error) {
	report := Report{RunID: uuid.NewString()}
	log := b.log.With("run_id", report.RunID)

	postings, err := b.rows.ReadCompleted(ctx)
	if err != nil {
		return report, fmt.Errorf("read completed rows: %w", err)
	}
	report.Read = len(postings)

	eligible := Eligible(postings)
	report.Eligible = len(eligible)
	if len(eligible) == 0 {
		log.Warn("no job data found")
		return report, nil
	}

	log.Info("exporting jobs", "count", len(eligible))

	for _, p := range eligible {
		id, err := b.items.CreateItem(ctx, p.JobTitle, b.ColumnValues(p))
		if err != nil {
			log.Error("failed to add job", "title", p.JobTitle, "url", p.URL, "err", err)
			report.Failures = append(report.Failures, Failure{URL: p.URL, Title: p.JobTitle, Err: err.Error()})
		} else {
			log.Info("added job", "title", p.JobTitle, "item_id", id)
			report.Created = append(report.Created, id)
		}

		if err := b.pacer.Wait(ctx); err != nil {
			return report, err
		}
	}

	log.Info("export finished", "created", len(report.Created), "failed", len(report.Failures))
	return report, nil
}

// Eligible keeps rows that have both a title and a company.
func Eligible(postings []domain.JobPosting) []domain.JobPosting {
	out := make([]domain.JobPosting, 0, len(postings))
	for _, p := range postings {
		if p.Succeeded() {
			out = append(out, p)
		}
	}
	return out
}

// ColumnValues builds the column_values payload for one posting. Columns
// with no configured id are left out.
func (b *Bridge) ColumnValues(p domain.JobPosting) map[string]any {
	values := map[string]any{}
	set := func(col string, v any) {
		if col != "" {
			values[col] = v
		}
	}

	set(b.columns.Company, p.CompanyName)
	set(b.columns.Location, bestEffort(p.Location))
	set(b.columns.Link, monday.LinkValue{URL: p.URL, Text: linkText})
	set(b.columns.Description, monday.LongTextValue{Text: bestEffort(p.JobDescription)})

	return values
}

func bestEffort(v string) string {
	if domain.Resolved(v) {
		return v
	}
	return ""
}
