// Package server exposes the Style Code codec over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/anfive/servizio-cli/internal/render"
	"github.com/anfive/servizio-cli/internal/stylecode"
)

// Config holds server settings.
type Config struct {
	Addr           string
	AllowedOrigins []string
	Logger         *slog.Logger
}

// Server is the HTTP API surface for the codec.
type Server struct {
	cfg    Config
	router chi.Router
	logger *slog.Logger
}

// New creates a Server with its routes mounted.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{cfg: cfg, router: chi.NewRouter(), logger: logger}
	s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := s.router
	r.Use(middleware.RequestID, middleware.Recoverer)
	r.Use(s.logRequests)
	if len(s.cfg.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.cfg.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/v1/codes", func(r chi.Router) {
		r.Post("/", s.handleEncode)
		r.Get("/{code}", s.handleDecode)
		r.Get("/{code}/{field}", s.handleField)
	})
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server.ListenAndServe: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server.ListenAndServe: shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

type errorResponse struct {
	Error  string                 `json:"error"`
	Fields []stylecode.FieldError `json:"fields,omitempty"`
}

type encodeResponse struct {
	Code  string  `json:"code"`
	Score float64 `json:"score"`
}

func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	v, err := stylecode.Decode(code)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "invalid style code"})
		return
	}
	writeJSON(w, http.StatusOK, render.NewResult(code, v))
}

func (s *Server) handleField(w http.ResponseWriter, r *http.Request) {
	f, err := stylecode.ParseField(chi.URLParam(r, "field"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown field"})
		return
	}
	v, err := stylecode.Decode(chi.URLParam(r, "code"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "invalid style code"})
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(v.Value(f)))
}

func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	var v stylecode.Vector
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<10))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed vector: " + err.Error()})
		return
	}
	if errs := v.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "vector out of range", Fields: errs})
		return
	}
	writeJSON(w, http.StatusOK, encodeResponse{Code: v.Encode(), Score: v.Score()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
