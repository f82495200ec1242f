// =============================================================================
// Quota Data Transformer - HTTP Server
// =============================================================================
//
// This module exposes the parsing pipeline over HTTP.
//
// ROUTES:
//   GET  /healthz         liveness probe
//   POST /api/sheets      list the sheets of an uploaded workbook
//   POST /api/transform   parse text or an uploaded file, return JSON
//   POST /api/export      parse and return the table as a file
//
// INPUT:
//   A multipart form with a "file" field (and optional "sheet" and "text"
//   fields), or a raw text body.
//
// =============================================================================

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ginjaninja78/quota-data-transformer/internal/config"
)

const shutdownTimeout = 10 * time.Second

// Server is the HTTP presentation layer.
type Server struct {
	cfg    *config.Config
	logger *zap.Logger
	engine *gin.Engine
}

// New builds the router. A nil logger disables logging.
func New(cfg *config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		requestIDMiddleware(),
		loggerMiddleware(logger),
		gzip.Gzip(gzip.BestSpeed),
	)

	s := &Server{cfg: cfg, logger: logger, engine: engine}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.engine.Group("/api")
	api.POST("/sheets", s.handleSheets)
	api.POST("/transform", s.handleTransform)
	api.POST("/export", s.handleExport)
}

// Handler returns the router as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.ServerAddr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info("shutting down http server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve: %w", err)
	}
	return nil
}
