// Package server exposes the diary insights over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Harshit-code-tech/personal-diary-sub001/internal/constants"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/insights"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/logger"
	"github.com/Harshit-code-tech/personal-diary-sub001/internal/utils"
)

// Server is the HTTP front end of the insights service.
type Server struct {
	svc    *insights.Service
	router chi.Router
}

// New creates a server with all routes registered.
func New(svc *insights.Service) *Server {
	s := &Server{svc: svc}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(instrument)
	r.Use(middleware.Timeout(constants.ServeRequestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/streak", s.handleStreak)
		r.Get("/calendar", s.handleCalendar)
		r.Get("/consistency", s.handleConsistency)
		r.Get("/mood", s.handleMood)

		r.Route("/entries", func(r chi.Router) {
			r.Get("/", s.handleListEntries)
			r.Post("/", s.handleAddEntry)
			r.Delete("/{id}", s.handleDeleteEntry)
			r.Post("/{id}/restore", s.handleRestoreEntry)
		})

		r.Route("/folders", func(r chi.Router) {
			r.Get("/tree", s.handleFolderTree)
			r.Post("/", s.handleAddFolder)
			r.Get("/{id}/path", s.handleFolderPath)
			r.Post("/{id}/toggle", s.handleToggleFolder)
			r.Post("/{id}/move", s.handleMoveFolder)
			r.Delete("/{id}", s.handleDeleteFolder)
		})
	})

	s.router = r
}

// Handler returns the root handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), utils.GetEnvAsDuration("DIARY_SHUTDOWN_GRACE", constants.ServeShutdownGrace))
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
