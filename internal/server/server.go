// Package server provides the HTTP API for the price feed service.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/andresgonzalez1997/pricefeed/internal/config"
	"github.com/andresgonzalez1997/pricefeed/internal/ingest"
	"github.com/andresgonzalez1997/pricefeed/internal/watcher"
)

// Ingestor runs one file through the reconciliation pipeline.
type Ingestor interface {
	IngestFile(ctx context.Context, path, layout string) (*ingest.Result, error)
}

// WarehouseStatus reports on the live warehouse table.
type WarehouseStatus interface {
	Table() string
	Count(ctx context.Context) (int64, error)
}

// Server is the HTTP server for the price feed API.
type Server struct {
	ingestor  Ingestor
	warehouse WarehouseStatus
	cfg       *config.Config
	watch     *watcher.Watcher // optional; nil when watching is disabled
	logger    *zap.Logger
	server    *http.Server
}

// NewServer creates a server with the given dependencies. watch may be
// nil when the drop-directory watcher is not running.
func NewServer(
	ingestor Ingestor,
	warehouse WarehouseStatus,
	cfg *config.Config,
	watch *watcher.Watcher,
	logger *zap.Logger,
) *Server {
	return &Server{
		ingestor:  ingestor,
		warehouse: warehouse,
		cfg:       cfg,
		watch:     watch,
		logger:    logger,
	}
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/ingest", s.handleIngest)
	r.Get("/api/v1/layouts", s.handleLayouts)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.router(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
