// Package api serves the persistence and edit endpoints of revgantt over
// HTTP.
package api

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexanderramin/revgantt/internal/service"
	"github.com/gin-gonic/gin"
)

// StartOpts holds configuration for the API server.
type StartOpts struct {
	Sessions *service.SessionManager
	Teams    service.TeamService
	Listen   string
	Out      io.Writer
	Logger   *slog.Logger
}

// Start launches the API server. It blocks until ctx is cancelled, then
// flushes open editing sessions and shuts down gracefully.
func Start(ctx context.Context, opts StartOpts) error {
	if opts.Sessions == nil || opts.Teams == nil {
		return fmt.Errorf("api: sessions and teams are required")
	}
	if opts.Listen == "" {
		opts.Listen = "127.0.0.1:8080"
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:    opts.Listen,
		Handler: NewRouter(opts),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := opts.Sessions.CloseAll(shutdownCtx); err != nil {
			opts.Logger.Error("flush_on_shutdown_failed", "error", err.Error())
		}
		srv.Shutdown(shutdownCtx)
	}()

	if opts.Out != nil {
		fmt.Fprintf(opts.Out, "revgantt API listening on http://%s\n", opts.Listen)
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(opts StartOpts) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if opts.Logger != nil {
		router.Use(requestLogger(opts.Logger))
	}
	registerRoutes(router, &handlers{
		sessions: opts.Sessions,
		teams:    opts.Teams,
	})
	return router
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("http_request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
