package mcp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/honeycarbs/jobsync/internal/domain"
	"github.com/honeycarbs/jobsync/internal/mcp/tools"
	"github.com/honeycarbs/jobsync/pkg/logging"
)

type emptyQueue struct{}

func (emptyQueue) ReadPending(context.Context) ([]domain.QueueRow, error) {
	return nil, nil
}

func TestHandler_RejectsNonMCPRequests(t *testing.T) {
	s := NewServer(logging.NewNop(), tools.WithQueuePending(emptyQueue{}))
	h := NewHandler(s)

	req := httptest.NewRequest(http.MethodPost, "/mcp/stream", strings.NewReader(`not json`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.GreaterOrEqual(t, rec.Code, http.StatusBadRequest)
}
