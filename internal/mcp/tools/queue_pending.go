package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobsync/internal/domain"
)

type QueueReader interface {
	ReadPending(ctx context.Context) ([]domain.QueueRow, error)
}

type QueuePendingParams struct{}

// QueuePendingResult lists the rows a batch run would process
type QueuePendingResult struct {
	Rows []domain.QueueRow `json:"rows"`
}

// WithQueuePending registers the queue_pending tool
func WithQueuePending(queue QueueReader) Option {
	return func(reg *registry) {
		sdkmcp.AddTool(reg.server, reg.add(&sdkmcp.Tool{
			Name:        "queue_pending",
			Description: "List the job URLs waiting in the sheet queue with their row numbers",
		}), queuePending(queue))
	}
}

func queuePending(queue QueueReader) sdkmcp.ToolHandlerFor[QueuePendingParams, QueuePendingResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ QueuePendingParams) (*sdkmcp.CallToolResult, QueuePendingResult, error) {
		rows, err := queue.ReadPending(ctx)
		if err != nil {
			return nil, QueuePendingResult{}, fmt.Errorf("[queue_pending] %w", err)
		}
		if rows == nil {
			rows = []domain.QueueRow{}
		}

		msg := fmt.Sprintf("[queue_pending] %d rows queued", len(rows))
		return textResult(msg), QueuePendingResult{Rows: rows}, nil
	}
}
