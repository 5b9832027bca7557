package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/honeycarbs/jobsync/internal/adapter"
	"github.com/honeycarbs/jobsync/internal/domain"
	"github.com/honeycarbs/jobsync/pkg/logging"
)

// RowScraper is the single-shot scrape-and-write operation.
type RowScraper interface {
	Scrape(ctx context.Context, req adapter.Request) (domain.JobPosting, error)
}

type errorResponse struct {
	Error string `json:"error"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type statusResponse struct {
	Status string `json:"status"`
}

// NewHandler builds the route table. mcpHandler may be nil.
func NewHandler(rows RowScraper, mcpHandler http.Handler, log *logging.Logger) http.Handler {
	h := &handlers{rows: rows, log: log}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /scrape", h.scrape)
	mux.HandleFunc("GET /test", h.test)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if mcpHandler != nil {
		mux.Handle("/mcp/stream", mcpHandler)
	}

	return withRequestLog(log, mux)
}

type handlers struct {
	rows RowScraper
	log  *logging.Logger
}

func (h *handlers) test(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{Status: "Server is running"})
}

func (h *handlers) scrape(w http.ResponseWriter, r *http.Request) {
	var req adapter.Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		// a body that is not JSON carries neither field
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: adapter.MsgMissingInput})
		return
	}

	if _, err := h.rows.Scrape(r.Context(), req); err != nil {
		writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func statusFor(err error) int {
	if domain.KindOf(err) == domain.KindValidation {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
