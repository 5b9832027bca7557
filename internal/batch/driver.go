// Package batch drains the sheet queue one row at a time.
package batch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/honeycarbs/jobsync/internal/domain"
	"github.com/honeycarbs/jobsync/internal/pacing"
	"github.com/honeycarbs/jobsync/pkg/logging"
)

type Source interface {
	ReadPending(ctx context.Context) ([]domain.QueueRow, error)
}

type Sink interface {
	Write(ctx context.Context, rowIndex int, p domain.JobPosting) error
}

type Scraper interface {
	Scrape(ctx context.Context, url string) (domain.JobPosting, error)
}

// State is the lifecycle of one queue row.
type State string

const (
	StatePending  State = "PENDING"
	StateScraping State = "SCRAPING"
	StateWritten  State = "WRITTEN"
	StateSkipped  State = "SKIPPED"
)

// Outcome is the terminal state of one row.
type Outcome struct {
	Row   int           `json:"row"`
	URL   string        `json:"url"`
	State State         `json:"state"`
	Err   string        `json:"error,omitempty"`
	Kind  string        `json:"kind,omitempty"`
	Took  time.Duration `json:"took"`
}

// Report summarises a run.
type Report struct {
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Outcomes   []Outcome `json:"outcomes"`
}

func (r Report) Written() int {
	return r.count(StateWritten)
}

func (r Report) Skipped() int {
	return r.count(StateSkipped)
}

func (r Report) count(s State) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.State == s {
			n++
		}
	}
	return n
}

// Driver runs the queue sequentially with a pause after every row.
type Driver struct {
	source  Source
	sink    Sink
	scraper Scraper
	pacer   pacing.Pacer
	log     *logging.Logger
	now     func() time.Time
}

type Option func(*Driver)

func WithPacer(p pacing.Pacer) Option {
	return func(d *Driver) {
		if p != nil {
			d.pacer = p
		}
	}
}

func WithLogger(log *logging.Logger) Option {
	return func(d *Driver) {
		d.log = log
	}
}

func NewDriver(source Source, sink Sink, scraper Scraper, opts ...Option) *Driver {
	d := &Driver{
		source:  source,
		sink:    sink,
		scraper: scraper,
		pacer:   pacing.Interval(2 * time.Second),
		log:     logging.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run reads the queue once and processes every row. Row failures are
// recorded in the report and never stop the run. An error is returned only
// when the queue cannot be read or ctx ends early; the report then holds
// whatever finished before that.
func (d *Driver) Run(ctx context.Context) (Report, error) {
	report := Report{RunID: uuid.NewString(), StartedAt: d.now()}
	log := d.log.With("run_id", report.RunID)

	rows, err := d.source.ReadPending(ctx)
	if err != nil {
		report.FinishedAt = d.now()
		return report, fmt.Errorf("read queue: %w", err)
	}

	log.Info("batch started", "rows", len(rows))

	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			report.FinishedAt = d.now()
			return report, err
		}

		out := d.process(ctx, row)
		report.Outcomes = append(report.Outcomes, out)

		if out.State == StateWritten {
			log.Info("row written", "row", row.RowIndex, "progress", fmt.Sprintf("%d/%d", i+1, len(rows)))
		} else {
			log.Warn("row skipped", "row", row.RowIndex, "url", row.URL, "kind", out.Kind, "err", out.Err)
		}

		if err := d.pacer.Wait(ctx); err != nil {
			report.FinishedAt = d.now()
			return report, err
		}
	}

	report.FinishedAt = d.now()
	log.Info("batch finished",
		"written", report.Written(),
		"skipped", report.Skipped(),
		"elapsed", report.FinishedAt.Sub(report.StartedAt),
	)
	return report, nil
}

func (d *Driver) process(ctx context.Context, row domain.QueueRow) Outcome {
	start := d.now()
	out := Outcome{Row: row.RowIndex, URL: row.URL, State: StateScraping}

	d.log.Debug("scraping row", "row", row.RowIndex, "url", row.URL)

	err := d.scrapeAndWrite(ctx, row)
	out.Took = d.now().Sub(start)
	if err != nil {
		out.State = StateSkipped
		out.Err = err.Error()
		out.Kind = domain.KindOf(err).String()
		return out
	}

	out.State = StateWritten
	return out
}

func (d *Driver) scrapeAndWrite(ctx context.Context, row domain.QueueRow) error {
	posting, err := d.scraper.Scrape(ctx, row.URL)
	if err != nil {
		return err
	}
	if !posting.Succeeded() {
		return domain.ContentError("extract", errors.New("job title or company not found"))
	}
	return d.sink.Write(ctx, row.RowIndex, posting)
}
