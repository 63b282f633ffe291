// Package web serves the garden records over HTTP: JSON reads and
// form-encoded writes.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"gardenbook/internal/application"
	"gardenbook/internal/ports"
)

// Server is the gardenbook HTTP server.
type Server struct {
	store   ports.GardenStore
	mux     *http.ServeMux
	logger  *slog.Logger
	metrics *metrics
}

// Config holds server configuration.
type Config struct {
	Addr     string
	CertFile string
	KeyFile  string
}

// New creates a server backed by store.
func New(store ports.GardenStore, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		store:   store,
		mux:     http.NewServeMux(),
		logger:  logger,
		metrics: newMetrics(),
	}
	s.registerRoutes()
	return s
}

// registerRoutes sets up all routes.
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.Handle("GET /metrics", s.metrics.handler())

	// Calendar
	s.mux.HandleFunc("GET /api/months/{month}", s.instrument(s.handleMonth))
	s.mux.HandleFunc("GET /api/plants/{id}/months", s.instrument(s.handlePlantMonths))

	// Links
	s.mux.HandleFunc("POST /api/links/{relation}", s.instrument(s.handleLink))
	s.mux.HandleFunc("DELETE /api/links/{relation}", s.instrument(s.handleUnlink))

	// Records
	s.mux.HandleFunc("GET /api/{kind}", s.instrument(s.handleList))
	s.mux.HandleFunc("POST /api/{kind}", s.instrument(s.handleSave))
	s.mux.HandleFunc("GET /api/{kind}/{id}", s.instrument(s.handleShow))
	s.mux.HandleFunc("DELETE /api/{kind}/{id}", s.instrument(s.handleDelete))
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Run serves until ctx is cancelled. TLS is used when both certificate and
// key files are set.
func (s *Server) Run(ctx context.Context, cfg Config) error {
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "addr", cfg.Addr, "tls", cfg.CertFile != "" && cfg.KeyFile != "")
		var err error
		if cfg.CertFile != "" && cfg.KeyFile != "" {
			err = server.ListenAndServeTLS(cfg.CertFile, cfg.KeyFile)
		} else {
			err = server.ListenAndServe()
		}
		if !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("shutting down web server")
	return server.Shutdown(shutdownCtx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("failed to encode response", "error", err)
	}
}

// jsonError writes a JSON error response.
func (s *Server) jsonError(w http.ResponseWriter, message string, status int) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// handleError maps application errors to status codes. Validation messages
// are returned as is; storage failures only as "bad request".
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *application.ValidationError
	switch {
	case errors.As(err, &verr):
		s.jsonError(w, verr.Error(), http.StatusBadRequest)
	case errors.Is(err, application.ErrNotFound):
		s.jsonError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, application.ErrBadRequest):
		s.logger.Warn("request rejected", "method", r.Method, "path", r.URL.Path, "error", err)
		s.jsonError(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
	default:
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		s.jsonError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
