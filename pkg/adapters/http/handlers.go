package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"

	"github.com/LeenJaber1/automata-builder"
	"github.com/LeenJaber1/automata-builder/pkg/domain"
	"github.com/LeenJaber1/automata-builder/pkg/runner"
	"github.com/LeenJaber1/automata-builder/pkg/schema"
	"github.com/LeenJaber1/automata-builder/pkg/session"
)

// AutomatonRequest names an automaton either inline or by library id.
type AutomatonRequest struct {
	AutomatonID string         `json:"automaton_id,omitempty"`
	Automaton   map[string]any `json:"automaton,omitempty"`
}

// RunRequest carries a test string; SessionID is only read by POST /sessions.
type RunRequest struct {
	AutomatonRequest
	Input     string `json:"input"`
	SessionID string `json:"session_id,omitempty"`
}

// ValidateResponse is the body of POST /validate.
type ValidateResponse struct {
	Valid  bool                     `json:"valid"`
	Errors []domain.ValidationError `json:"errors"`
}

// AdvanceResponse is the body of POST /sessions/{id}/advance.
type AdvanceResponse struct {
	Result domain.StepResult   `json:"result"`
	Diff   *domain.SessionDiff `json:"diff"`
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "automata-http",
		"version":     strings.TrimSpace(automata.Version),
		"api_version": apiVersion,
	})
}

// Validate handles the POST /validate request.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	var body AutomatonRequest
	if !s.decode(w, r, &body) {
		return
	}
	a, ok := s.resolve(w, r, body)
	if !ok {
		return
	}

	errs := s.Engine.Validate(r.Context(), a)
	if errs == nil {
		errs = domain.ValidationErrors{}
	}
	writeJSON(w, http.StatusOK, ValidateResponse{Valid: len(errs) == 0, Errors: errs})
}

// Run handles the POST /run request.
func (s *Server) Run(w http.ResponseWriter, r *http.Request) {
	var body RunRequest
	if !s.decode(w, r, &body) {
		return
	}
	input, ok := s.sanitize(w, body.Input)
	if !ok {
		return
	}
	a, ok := s.resolve(w, r, body.AutomatonRequest)
	if !ok {
		return
	}

	verdict, err := s.Engine.Run(r.Context(), a, input)
	s.record(r.Context(), body.AutomatonRequest, a, input, verdict, err)
	if err != nil {
		s.fail(w, "Run", err, verdict.Trace)
		return
	}
	writeJSON(w, http.StatusOK, verdict)
}

// CreateSession handles the POST /sessions request.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body RunRequest
	if !s.decode(w, r, &body) {
		return
	}
	input, ok := s.sanitize(w, body.Input)
	if !ok {
		return
	}
	a, ok := s.resolve(w, r, body.AutomatonRequest)
	if !ok {
		return
	}

	sess, err := s.Engine.Start(r.Context(), a, input)
	if err != nil {
		s.fail(w, "CreateSession", err, nil)
		return
	}
	sess.ID = body.SessionID
	sess, err = s.Sessions.Create(r.Context(), sess)
	if err != nil {
		s.fail(w, "CreateSession", err, nil)
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

// ListSessions handles the GET /sessions request.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		s.fail(w, "ListSessions", err, nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
}

// GetSession handles the GET /sessions/{id} request.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	sess, err := s.Sessions.Load(r.Context(), id)
	if err != nil {
		s.fail(w, "GetSession", err, nil)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// DeleteSession handles the DELETE /sessions/{id} request.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	if err := s.Sessions.Delete(r.Context(), id); err != nil {
		s.fail(w, "DeleteSession", err, nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AdvanceSession handles the POST /sessions/{id}/advance request.
// The response and every SSE subscriber of the session get the diff against the previous snapshot.
func (s *Server) AdvanceSession(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var (
		res  domain.StepResult
		diff *domain.SessionDiff
	)
	_, err := s.Sessions.Update(r.Context(), id, func(sess *domain.Session) error {
		before := sess.Clone()
		var err error
		res, err = s.Engine.Advance(r.Context(), sess)
		if err != nil {
			return err
		}
		diff = domain.Diff(before, sess)
		return nil
	})
	if err != nil {
		s.fail(w, "AdvanceSession", err, nil)
		return
	}

	s.broadcast(id, diff)
	writeJSON(w, http.StatusOK, AdvanceResponse{Result: res, Diff: diff})
}

// ResetSession handles the POST /sessions/{id}/reset request.
// The session starts over from its own snapshot and input, keeping its id.
func (s *Server) ResetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var diff *domain.SessionDiff
	sess, err := s.Sessions.Update(r.Context(), id, func(sess *domain.Session) error {
		if sess.Automaton == nil {
			return domain.ErrSessionNotStarted
		}
		before := sess.Clone()
		fresh, err := s.Engine.Start(r.Context(), sess.Automaton, sess.Input)
		if err != nil {
			return err
		}
		fresh.ID = sess.ID
		fresh.CreatedAt = sess.CreatedAt
		*sess = *fresh
		diff = domain.Diff(before, sess)
		return nil
	})
	if err != nil {
		s.fail(w, "ResetSession", err, nil)
		return
	}

	s.broadcast(id, diff)
	writeJSON(w, http.StatusOK, sess)
}

// ListAutomata handles the GET /automata request.
func (s *Server) ListAutomata(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Engine.List(r.Context())
	if err != nil {
		s.fail(w, "ListAutomata", err, nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"automata": ids})
}

// GetAutomaton handles the GET /automata/{id} request.
func (s *Server) GetAutomaton(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	a, err := s.Engine.Load(r.Context(), id)
	if err != nil {
		s.fail(w, "GetAutomaton", err, nil)
		return
	}
	writeJSON(w, http.StatusOK, schema.FromAutomaton(a))
}

// ListHistory handles the GET /history request.
func (s *Server) ListHistory(w http.ResponseWriter, r *http.Request) {
	if s.History == nil {
		writeError(w, http.StatusNotImplemented, "NO_HISTORY", errors.New("run history is not configured"))
		return
	}

	var param *int
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &param); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_PARAMETER", fmt.Errorf("invalid format for parameter limit: %w", err))
		return
	}
	limit := DefaultHistoryLimit
	if param != nil {
		limit = *param
	}
	if limit <= 0 {
		writeError(w, http.StatusBadRequest, "INVALID_PARAMETER", fmt.Errorf("limit must be positive, got %d", limit))
		return
	}

	recs, err := s.History.Recent(r.Context(), limit)
	if err != nil {
		s.fail(w, "ListHistory", err, nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]domain.RunRecord{"runs": recs})
}

// -- Helpers --

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", fmt.Errorf("invalid request body: %w", err))
		s.logger.Warn("Invalid request body", "path", r.URL.Path, "err", err)
		return false
	}
	return true
}

func (s *Server) sanitize(w http.ResponseWriter, input string) (string, bool) {
	clean, err := runner.SanitizeInput(input)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", err)
		s.logger.Warn("Input rejected", "err", err, "size", len(input))
		return "", false
	}
	return clean, true
}

// resolve returns the inline automaton of body, or loads it from the library.
func (s *Server) resolve(w http.ResponseWriter, r *http.Request, body AutomatonRequest) (*domain.Automaton, bool) {
	switch {
	case body.Automaton != nil:
		a, err := schema.DecodeMap(body.Automaton)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_AUTOMATON", err)
			return nil, false
		}
		return a, true
	case body.AutomatonID != "":
		a, err := s.Engine.Load(r.Context(), body.AutomatonID)
		if err != nil {
			s.fail(w, "Load", err, nil)
			return nil, false
		}
		return a, true
	default:
		writeError(w, http.StatusBadRequest, "INVALID_BODY", errors.New("automaton or automaton_id is required"))
		return nil, false
	}
}

func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_PARAMETER", fmt.Errorf("invalid format for parameter id: %w", err))
		return "", false
	}
	return id, true
}

func (s *Server) record(ctx context.Context, body AutomatonRequest, a *domain.Automaton, input string, verdict domain.Verdict, runErr error) {
	if s.History == nil {
		return
	}
	rec := domain.RunRecord{
		ID:        uuid.NewString(),
		Automaton: body.AutomatonID,
		Kind:      a.Kind,
		Input:     input,
		Accepted:  runErr == nil && verdict.Accepted,
		CreatedAt: s.clock(),
	}
	if rec.Automaton == "" {
		rec.Automaton = "inline"
	}
	if runErr != nil {
		rec.Error = runErr.Error()
	}
	if err := s.History.Record(ctx, rec); err != nil {
		s.logger.Error("Failed to record run", "err", err)
	}
}

func (s *Server) broadcast(sessionID string, diff *domain.SessionDiff) {
	if diff == nil {
		return
	}
	if data, err := json.Marshal(diff); err == nil {
		s.Streams.Broadcast(sessionID, string(data))
	}
}

// fail maps engine and store errors onto status codes.
func (s *Server) fail(w http.ResponseWriter, op string, err error, trace []domain.StateSet) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(op+" failed", "err", err)
	}
	writeErrorBody(w, status, ErrorResponse{Error: err.Error(), Code: code, Trace: trace})
}

func classify(err error) (int, string) {
	var nt *domain.NoTransitionError
	switch {
	case errors.As(err, &nt):
		return http.StatusUnprocessableEntity, "NO_TRANSITION"
	case errors.Is(err, domain.ErrNoStartState):
		return http.StatusUnprocessableEntity, "NO_START_STATE"
	case errors.Is(err, domain.ErrSessionNotStarted):
		return http.StatusUnprocessableEntity, "SESSION_NOT_STARTED"
	case errors.Is(err, domain.ErrAutomatonNotFound):
		return http.StatusNotFound, "AUTOMATON_NOT_FOUND"
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, "SESSION_NOT_FOUND"
	case errors.Is(err, session.ErrSessionExists):
		return http.StatusConflict, "SESSION_EXISTS"
	case errors.Is(err, automata.ErrNoLoader):
		return http.StatusNotImplemented, "NO_LIBRARY"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}
