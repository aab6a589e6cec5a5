package ui

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tabscope/adapters/excel"
	"tabscope/app"
	"tabscope/internal"
)

// Server serves the profiling API. Every upload is parsed, processed and
// discarded within its request.
type Server struct {
	router       *gin.Engine
	service      *app.ProfileService
	readerConfig excel.ReaderConfig
	maxUpload    int64
	logger       *internal.Logger
}

// ServerConfig holds the settings the HTTP layer needs
type ServerConfig struct {
	GinMode      string
	MaxUploadMB  int
	ReaderConfig excel.ReaderConfig
}

// NewServer creates a new web server instance with routes registered
func NewServer(cfg ServerConfig, service *app.ProfileService, logger *internal.Logger) *Server {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}

	s := &Server{
		router:       gin.New(),
		service:      service,
		readerConfig: cfg.ReaderConfig,
		maxUpload:    int64(cfg.MaxUploadMB) << 20,
		logger:       logger.With("Server"),
	}
	s.router.MaxMultipartMemory = s.maxUpload

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api")
	{
		api.POST("/profile", s.handleProfile)
		api.POST("/columns", s.handleColumns)
		api.POST("/aggregate", s.handleAggregate)
		api.POST("/preview", s.handlePreview)
	}
}

// Handler exposes the router for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
