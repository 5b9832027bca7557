package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/honeycarbs/jobsync/pkg/logging"
)

// Server wraps the HTTP listener for the scrape service
type Server struct {
	logger *logging.Logger

	srv     *http.Server
	started atomic.Bool
	onStop  []func() error

	// done closes once Shutdown has drained requests and run every cleanup
	done     chan struct{}
	doneOnce sync.Once
}

// New constructs the HTTP server around an already built handler
func New(log *logging.Logger, host, port string, handler http.Handler) *Server {
	httpSrv := &http.Server{
		Addr:              net.JoinHostPort(host, port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		logger: log,
		srv:    httpSrv,
		done:   make(chan struct{}),
	}
}

// OnShutdown registers cleanup that runs after the listener has stopped
func (s *Server) OnShutdown(fn func() error) {
	s.onStop = append(s.onStop, fn)
}

func (s *Server) Addr() string {
	return s.srv.Addr
}

// Run starts the HTTP server and blocks until Shutdown has finished,
// cleanup hooks included
func (s *Server) Run() error {
	if !s.started.CompareAndSwap(false, true) {
		return nil
	}

	s.logger.Info("HTTP server listening", "addr", s.srv.Addr)

	err := s.srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	// ListenAndServe returns as soon as Shutdown starts; in-flight requests
	// and the cleanup hooks are still running at that point
	<-s.done
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	defer s.doneOnce.Do(func() { close(s.done) })

	s.logger.Info("shutdown requested for HTTP server")
	err := s.srv.Shutdown(ctx)
	if err != nil {
		s.logger.Warn("HTTP server shutdown with error", "err", err)
	}

	for _, fn := range s.onStop {
		if cerr := fn(); cerr != nil {
			s.logger.Warn("cleanup after shutdown failed", "err", cerr)
			err = errors.Join(err, cerr)
		}
	}

	if err == nil {
		s.logger.Info("HTTP server shutdown complete")
	}
	return err
}
