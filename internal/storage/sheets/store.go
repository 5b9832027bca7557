// Package sheets maps the job queue onto a Google Sheets tab.
//
// Column A holds posting URLs starting at row 2. Columns B to E receive
// title, company, location and description.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/honeycarbs/jobsync/internal/domain"
	"github.com/honeycarbs/jobsync/pkg/logging"
)

const DefaultSheetName = "Job Data"

// ValuesClient is the subset of the Sheets API the store needs.
type ValuesClient interface {
	GetValues(ctx context.Context, spreadsheetID, range_ string) ([][]interface{}, error)
	UpdateValues(ctx context.Context, spreadsheetID, range_ string, values [][]interface{}) error
}

// Store reads the queue and writes results for one spreadsheet tab.
type Store struct {
	client        ValuesClient
	spreadsheetID string
	sheet         string
	skipCompleted bool
	log           *logging.Logger
}

type Option func(*Store)

// WithSheetName selects the tab. Defaults to DefaultSheetName.
func WithSheetName(name string) Option {
	return func(s *Store) {
		if name != "" {
			s.sheet = name
		}
	}
}

// WithSkipCompleted makes ReadPending ignore rows that already hold a title
// and a company.
func WithSkipCompleted(skip bool) Option {
	return func(s *Store) {
		s.skipCompleted = skip
	}
}

func WithLogger(log *logging.Logger) Option {
	return func(s *Store) {
		s.log = log
	}
}

func NewStore(client ValuesClient, spreadsheetID string, opts ...Option) (*Store, error) {
	if client == nil {
		return nil, errors.New("sheets store: client is nil")
	}
	if spreadsheetID == "" {
		return nil, errors.New("sheets store: spreadsheet id is required")
	}

	s := &Store{
		client:        client,
		spreadsheetID: spreadsheetID,
		sheet:         DefaultSheetName,
		log:           logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ReadPending returns one QueueRow per non-blank URL cell in column A.
// Row numbers stay positional: the i-th value read maps to row i+2 even
// when earlier cells are blank.
func (s *Store) ReadPending(ctx context.Context) ([]domain.QueueRow, error) {
	cols := "A"
	if s.skipCompleted {
		cols = "E"
	}

	values, err := s.client.GetValues(ctx, s.spreadsheetID, s.rangeOf(fmt.Sprintf("A%d:%s", domain.FirstDataRow, cols)))
	if err != nil {
		return nil, domain.StoreError("sheets read queue", err)
	}

	rows := make([]domain.QueueRow, 0, len(values))
	for i, v := range values {
		url := cell(v, 0)
		if url == "" {
			continue
		}
		if s.skipCompleted && domain.Resolved(cell(v, 1)) && domain.Resolved(cell(v, 2)) {
			continue
		}
		rows = append(rows, domain.QueueRow{RowIndex: i + domain.FirstDataRow, URL: url})
	}

	s.log.Debug("queue read", "rows", len(rows), "cells", len(values))
	return rows, nil
}

// Write puts the four result fields into B{row}:E{row}. Writing the same
// posting twice leaves the sheet unchanged.
func (s *Store) Write(ctx context.Context, rowIndex int, p domain.JobPosting) error {
	if rowIndex < 1 {
		return domain.StoreError("sheets write", fmt.Errorf("invalid row %d", rowIndex))
	}

	values := [][]interface{}{{p.JobTitle, p.CompanyName, p.Location, p.JobDescription}}
	if err := s.client.UpdateValues(ctx, s.spreadsheetID, s.rangeOf(fmt.Sprintf("B%d:E%d", rowIndex, rowIndex)), values); err != nil {
		return domain.StoreError("sheets write", err)
	}
	return nil
}

// ReadCompleted returns every row with a URL, as the export step sees it.
// Cells that are missing come back as domain.NotFound.
func (s *Store) ReadCompleted(ctx context.Context) ([]domain.JobPosting, error) {
	values, err := s.client.GetValues(ctx, s.spreadsheetID, s.rangeOf(fmt.Sprintf("A%d:E", domain.FirstDataRow)))
	if err != nil {
		return nil, domain.StoreError("sheets read completed", err)
	}

	postings := make([]domain.JobPosting, 0, len(values))
	for _, v := range values {
		url := cell(v, 0)
		if url == "" {
			continue
		}
		postings = append(postings, domain.JobPosting{
			URL:            url,
			JobTitle:       orNotFound(cell(v, 1)),
			CompanyName:    orNotFound(cell(v, 2)),
			Location:       orNotFound(cell(v, 3)),
			JobDescription: orNotFound(cell(v, 4)),
		})
	}
	return postings, nil
}

func (s *Store) rangeOf(a1 string) string {
	return quoteSheet(s.sheet) + "!" + a1
}

// quoteSheet wraps a tab name in single quotes, doubling embedded quotes.
func quoteSheet(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

func cell(row []interface{}, i int) string {
	if i >= len(row) || row[i] == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(row[i]))
}

func orNotFound(v string) string {
	if v == "" {
		return domain.NotFound
	}
	return v
}
