// Package http exposes the engine as a JSON API.
package http

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/LeenJaber1/automata-builder/pkg/ports"
	"github.com/LeenJaber1/automata-builder/pkg/session"
)

// DefaultHistoryLimit is the number of runs /history returns without a limit parameter.
const DefaultHistoryLimit = 20

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	Engine   ports.Engine
	Sessions *session.Manager
	History  ports.RunHistory
	Streams  *StreamManager

	logger   *slog.Logger
	validate bool
	clock    func() time.Time
}

// Option configures the handler.
type Option func(*Server)

// WithHistory records every /run in h and enables GET /history.
func WithHistory(h ports.RunHistory) Option {
	return func(s *Server) {
		s.History = h
	}
}

// WithRequestValidation checks every request against the embedded OpenAPI document.
func WithRequestValidation(enabled bool) Option {
	return func(s *Server) {
		s.validate = enabled
	}
}

// WithLogger sets the logger used for request failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithClock replaces time.Now for history records.
func WithClock(clock func() time.Time) Option {
	return func(s *Server) {
		s.clock = clock
	}
}

// NewHandler creates a new HTTP handler for the engine.
// It fails only when request validation is enabled and the API document cannot be loaded.
func NewHandler(engine ports.Engine, manager *session.Manager, opts ...Option) (http.Handler, error) {
	server := &Server{
		Engine:   engine,
		Sessions: manager,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(server)
	}
	server.Streams = NewStreamManager(server.logger)

	r := chi.NewRouter()
	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/events", server.SubscribeLibrary)

	r.Post("/validate", server.Validate)
	r.Post("/run", server.Run)

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", server.ListSessions)
		r.Post("/", server.CreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", server.GetSession)
			r.Delete("/", server.DeleteSession)
			r.Post("/advance", server.AdvanceSession)
			r.Post("/reset", server.ResetSession)
			r.Get("/events", server.SubscribeSession)
		})
	})

	r.Get("/automata", server.ListAutomata)
	r.Get("/automata/{id}", server.GetAutomaton)
	r.Get("/history", server.ListHistory)

	var handler http.Handler = r
	if server.validate {
		validated, err := requestValidator(r)
		if err != nil {
			return nil, err
		}
		handler = validated
	}
	return enableCORS(handler), nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
