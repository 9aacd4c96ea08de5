// Package server exposes the running desk to spectators over HTTP: the
// current state as JSON, the rendered UI as MJPEG and live state over a
// WebSocket.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Config holds the server configuration.
type Config struct {
	Hub       *Hub
	StaticDir string
}

// Server serves the spectator API.
type Server struct {
	config Config
	router chi.Router
	start  time.Time
}

// New creates a Server. A nil Hub is replaced by an empty one.
func New(config Config) *Server {
	if config.Hub == nil {
		config.Hub = NewHub()
	}
	s := &Server{
		config: config,
		start:  time.Now(),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.With(middleware.Logger).Get("/health", s.handleHealth)
		r.With(middleware.Logger).Get("/state", s.handleState)
		r.Get("/stream", NewStreamHandler(s.config.Hub).ServeHTTP)
		r.Get("/events", NewEventsHandler(s.config.Hub).ServeHTTP)
	})

	if s.config.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(s.config.StaticDir)))
	}

	return r
}

// Hub returns the hub the server reads from.
func (s *Server) Hub() *Hub { return s.config.Hub }

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"uptime":      time.Since(s.start).String(),
		"subscribers": s.config.Hub.Subscribers(),
	})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	snap := s.config.Hub.Snapshot()
	if snap == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no state published yet"})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(snap)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
