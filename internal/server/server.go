// Package server wires the HTTP surface: routing, CORS, upload limits.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/a3tai/syllabus-digest/internal/config"
)

const shutdownTimeout = 5 * time.Second

// maxBatchFiles sizes the whole-request cap: MaxFileSize limits each
// uploaded PDF, so the body must have room for a batch of them plus
// multipart framing.
const maxBatchFiles = 16

func requestBodyLimit(perFile int64) int64 {
	if perFile <= 0 {
		return 0
	}
	return perFile*maxBatchFiles + 1<<20
}

// Server is the HTTP front of the digest service.
type Server struct {
	http *http.Server
}

// New builds the gin engine with its middleware chain and handlers.
func New(cfg *config.Config) *Server {
	if !cfg.IsDebug() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestLogger())
	engine.Use(MaxBodySize(requestBodyLimit(cfg.MaxFileSize)))
	engine.Use(CORS(cfg.Origins))

	registerRoutes(engine, NewAPI(cfg))

	return &Server{
		http: &http.Server{
			Addr:              cfg.Address(),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errCh
	case err := <-errCh:
		return err
	}
}
