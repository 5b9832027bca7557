package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobsync/internal/adapter"
	"github.com/honeycarbs/jobsync/internal/domain"
)

// RowScraper scrapes one URL and writes it to a sheet row.
type RowScraper interface {
	Scrape(ctx context.Context, req adapter.Request) (domain.JobPosting, error)
}

// ScrapeJobParams defines the arguments for the scrape_job tool
type ScrapeJobParams struct {
	URL string `json:"url" jsonschema:"LinkedIn job posting URL"`
	Row int    `json:"row" jsonschema:"Sheet row to write, 2 or greater"`
}

// ScrapeJobResult is the posting that was written
type ScrapeJobResult struct {
	Row     int               `json:"row"`
	Posting domain.JobPosting `json:"posting"`
}

// WithScrapeJob registers the scrape_job tool
func WithScrapeJob(rows RowScraper) Option {
	return func(reg *registry) {
		sdkmcp.AddTool(reg.server, reg.add(&sdkmcp.Tool{
			Name:        "scrape_job",
			Description: "Scrape a job posting and write title, company, location and description into the given sheet row",
		}), scrapeJob(rows))
	}
}

func scrapeJob(rows RowScraper) sdkmcp.ToolHandlerFor[ScrapeJobParams, ScrapeJobResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, params ScrapeJobParams) (*sdkmcp.CallToolResult, ScrapeJobResult, error) {
		req := adapter.Request{URL: &params.URL, Row: &params.Row}

		posting, err := rows.Scrape(ctx, req)
		if err != nil {
			return nil, ScrapeJobResult{}, fmt.Errorf("[scrape_job] %s error: %w", domain.KindOf(err), err)
		}

		result := ScrapeJobResult{Row: params.Row, Posting: posting}
		msg := fmt.Sprintf("[scrape_job] wrote row %d: %s at %s", params.Row, posting.JobTitle, posting.CompanyName)
		return textResult(msg), result, nil
	}
}
