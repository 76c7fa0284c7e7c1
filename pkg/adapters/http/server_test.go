package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeenJaber1/automata-builder"
	"github.com/LeenJaber1/automata-builder/pkg/adapters/memory"
	"github.com/LeenJaber1/automata-builder/pkg/domain"
	"github.com/LeenJaber1/automata-builder/pkg/session"
)

func toggleDoc() map[string]any {
	return map[string]any{
		"type":     "DFA",
		"alphabet": "a,b",
		"states": []any{
			map[string]any{"id": 0, "role": "start"},
			map[string]any{"id": 1, "role": "accept"},
		},
		"transitions": []any{
			map[string]any{"from": 0, "to": 1, "label": "a"},
			map[string]any{"from": 0, "to": 0, "label": "b"},
			map[string]any{"from": 1, "to": 1, "label": "a"},
			map[string]any{"from": 1, "to": 0, "label": "b"},
		},
	}
}

func toggle() *domain.Automaton {
	return &domain.Automaton{
		Kind:     domain.KindDFA,
		Alphabet: domain.Alphabet{"a", "b"},
		States: []domain.State{
			{ID: 0, Role: domain.RoleStart},
			{ID: 1, Role: domain.RoleAccept},
		},
		Transitions: []domain.Transition{
			{From: 0, To: 1, Label: "a"},
			{From: 0, To: 0, Label: "b"},
			{From: 1, To: 1, Label: "a"},
			{From: 1, To: 0, Label: "b"},
		},
	}
}

type fixture struct {
	handler http.Handler
	history *memory.History
}

func setup(t *testing.T, opts ...Option) fixture {
	t.Helper()
	loader := memory.NewLoader(map[string]*domain.Automaton{"toggle": toggle()})
	eng := automata.New(automata.WithLoader(loader))
	manager := session.NewManager(memory.NewStore())
	history := memory.NewHistory()

	tick := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}

	opts = append([]Option{WithHistory(history), WithRequestValidation(true), WithClock(clock)}, opts...)
	h, err := NewHandler(eng, manager, opts...)
	require.NoError(t, err)
	return fixture{handler: h, history: history}
}

func (f fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealthAndInfo(t *testing.T) {
	f := setup(t)

	w := f.do(t, "GET", "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeBody[map[string]string](t, w)["status"])

	w = f.do(t, "GET", "/info", nil)
	require.Equal(t, http.StatusOK, w.Code)
	info := decodeBody[map[string]string](t, w)
	assert.Equal(t, strings.TrimSpace(automata.Version), info["version"])
	assert.Equal(t, "1.0.0", info["api_version"])

	w = f.do(t, "GET", "/openapi.yaml", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "openapi: 3.0.3")
}

func TestValidate(t *testing.T) {
	f := setup(t)

	doc := toggleDoc()
	doc["transitions"] = doc["transitions"].([]any)[:3]
	w := f.do(t, "POST", "/validate", map[string]any{"automaton": doc})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decodeBody[ValidateResponse](t, w)
	assert.False(t, resp.Valid)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "DFA state 'q1' is missing a transition for symbol 'b'.", resp.Errors[0].Message)
	assert.Equal(t, domain.CodeDFAMissingTransition, resp.Errors[0].Code)

	w = f.do(t, "POST", "/validate", map[string]any{"automaton_id": "toggle"})
	require.Equal(t, http.StatusOK, w.Code)
	resp = decodeBody[ValidateResponse](t, w)
	assert.True(t, resp.Valid)
	assert.Empty(t, resp.Errors)
}

func TestRun(t *testing.T) {
	f := setup(t)

	w := f.do(t, "POST", "/run", map[string]any{"automaton": toggleDoc(), "input": "ba"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	verdict := decodeBody[domain.Verdict](t, w)
	assert.True(t, verdict.Accepted)
	assert.Equal(t, []domain.StateSet{{0}, {0}, {1}}, verdict.Trace)

	w = f.do(t, "POST", "/run", map[string]any{"automaton_id": "toggle", "input": "ax"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	failure := decodeBody[ErrorResponse](t, w)
	assert.Equal(t, "NO_TRANSITION", failure.Code)
	assert.Equal(t, "No transition for 'x' from state q1", failure.Error)
	assert.Equal(t, []domain.StateSet{{0}, {1}}, failure.Trace)

	w = f.do(t, "POST", "/run", map[string]any{"automaton_id": "missing", "input": "a"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, "POST", "/run", map[string]any{"input": "a"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	recs, err := f.history.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "toggle", recs[0].Automaton)
	assert.NotEmpty(t, recs[0].Error)
	assert.Equal(t, "inline", recs[1].Automaton)
	assert.True(t, recs[1].Accepted)
}

func TestRun_NoStartState(t *testing.T) {
	f := setup(t)
	doc := toggleDoc()
	doc["states"] = []any{map[string]any{"id": 0}, map[string]any{"id": 1, "role": "accept"}}

	w := f.do(t, "POST", "/run", map[string]any{"automaton": doc, "input": "a"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "NO_START_STATE", decodeBody[ErrorResponse](t, w).Code)
}

func TestRun_RejectsControlChars(t *testing.T) {
	f := setup(t)
	w := f.do(t, "POST", "/run", map[string]any{"automaton_id": "toggle", "input": "a\x00\x1b"})
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Equal(t, "INVALID_INPUT", decodeBody[ErrorResponse](t, w).Code)

	w = f.do(t, "POST", "/run", map[string]any{"automaton_id": "toggle", "input": "a\n"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, decodeBody[domain.Verdict](t, w).Accepted)
}

func TestRequestValidation(t *testing.T) {
	f := setup(t)
	w := f.do(t, "POST", "/run", map[string]any{"automaton": map[string]any{"states": "nope"}, "input": "a"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", decodeBody[ErrorResponse](t, w).Code)

	w = f.do(t, "GET", "/history?limit=abc", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", decodeBody[ErrorResponse](t, w).Code)
}

func TestSessionLifecycle(t *testing.T) {
	f := setup(t)

	w := f.do(t, "POST", "/sessions", map[string]any{"automaton_id": "toggle", "input": "ab", "session_id": "s1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeBody[domain.Session](t, w)
	assert.Equal(t, "s1", created.ID)
	assert.Equal(t, domain.StatusRunning, created.Status)

	w = f.do(t, "POST", "/sessions", map[string]any{"automaton_id": "toggle", "input": "ab", "session_id": "s1"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = f.do(t, "POST", "/sessions/s1/advance", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	adv := decodeBody[AdvanceResponse](t, w)
	assert.Equal(t, domain.OutcomeContinue, adv.Result.Outcome)
	require.NotNil(t, adv.Diff)
	assert.Equal(t, []domain.StateSet{{1}}, adv.Diff.Appended)
	require.NotNil(t, adv.Diff.Consumed)
	assert.Equal(t, 1, *adv.Diff.Consumed)

	f.do(t, "POST", "/sessions/s1/advance", nil)
	w = f.do(t, "POST", "/sessions/s1/advance", nil)
	adv = decodeBody[AdvanceResponse](t, w)
	assert.Equal(t, domain.OutcomeRejected, adv.Result.Outcome)
	require.NotNil(t, adv.Diff)
	require.NotNil(t, adv.Diff.Status)
	assert.Equal(t, domain.StatusRejected, *adv.Diff.Status)

	w = f.do(t, "POST", "/sessions/s1/advance", nil)
	adv = decodeBody[AdvanceResponse](t, w)
	assert.Equal(t, domain.OutcomeRejected, adv.Result.Outcome)
	assert.Nil(t, adv.Diff)

	w = f.do(t, "GET", "/sessions", nil)
	assert.Equal(t, []string{"s1"}, decodeBody[map[string][]string](t, w)["sessions"])

	w = f.do(t, "POST", "/sessions/s1/reset", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	reset := decodeBody[domain.Session](t, w)
	assert.Equal(t, 0, reset.Consumed)
	assert.Equal(t, domain.StatusRunning, reset.Status)
	assert.Len(t, reset.Trace, 1)

	w = f.do(t, "DELETE", "/sessions/s1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = f.do(t, "GET", "/sessions/s1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = f.do(t, "POST", "/sessions/s1/advance", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSession_Stuck(t *testing.T) {
	f := setup(t)
	w := f.do(t, "POST", "/sessions", map[string]any{"automaton": toggleDoc(), "input": "x"})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeBody[domain.Session](t, w).ID
	require.NotEmpty(t, id)

	w = f.do(t, "POST", "/sessions/"+id+"/advance", nil)
	require.Equal(t, http.StatusOK, w.Code)
	adv := decodeBody[AdvanceResponse](t, w)
	assert.Equal(t, domain.OutcomeStuck, adv.Result.Outcome)
	assert.Equal(t, "x", adv.Result.Symbol)
	require.NotNil(t, adv.Diff)
	require.NotNil(t, adv.Diff.Stuck)
	assert.Equal(t, domain.StateID(0), adv.Diff.Stuck.State)
}

func TestAutomata(t *testing.T) {
	f := setup(t)

	w := f.do(t, "GET", "/automata", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"toggle"}, decodeBody[map[string][]string](t, w)["automata"])

	w = f.do(t, "GET", "/automata/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	doc := decodeBody[map[string]any](t, w)
	assert.Equal(t, "DFA", doc["type"])
	assert.Len(t, doc["states"], 2)

	w = f.do(t, "GET", "/automata/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHistory(t *testing.T) {
	f := setup(t)
	for _, input := range []string{"a", "b", "ab"} {
		f.do(t, "POST", "/run", map[string]any{"automaton_id": "toggle", "input": input})
	}

	w := f.do(t, "GET", "/history?limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	runs := decodeBody[map[string][]domain.RunRecord](t, w)["runs"]
	require.Len(t, runs, 2)
	assert.Equal(t, "ab", runs[0].Input)
	assert.Equal(t, "b", runs[1].Input)

	w = f.do(t, "GET", "/history", nil)
	assert.Len(t, decodeBody[map[string][]domain.RunRecord](t, w)["runs"], 3)
}

func TestHistory_WithoutValidation(t *testing.T) {
	f := setup(t, WithRequestValidation(false))
	w := f.do(t, "GET", "/history?limit=abc", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_PARAMETER", decodeBody[ErrorResponse](t, w).Code)

	w = f.do(t, "GET", "/history?limit=0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHistory_NotConfigured(t *testing.T) {
	eng := automata.New()
	h, err := NewHandler(eng, session.NewManager(memory.NewStore()))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/history", nil))
	assert.Equal(t, http.StatusNotImplemented, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/automata", nil))
	assert.Equal(t, http.StatusNotImplemented, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/events", nil))
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestCORS(t *testing.T) {
	f := setup(t)
	w := f.do(t, "OPTIONS", "/run", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSubscribeSession(t *testing.T) {
	f := setup(t)
	srv := httptest.NewServer(f.handler)
	defer srv.Close()

	w := f.do(t, "POST", "/sessions", map[string]any{"automaton_id": "toggle", "input": "a", "session_id": "live"})
	require.Equal(t, http.StatusCreated, w.Code)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, "GET", srv.URL+"/sessions/live/events", nil)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := bufio.NewScanner(resp.Body)
	require.True(t, lines.Scan())
	assert.Equal(t, "event: ping", lines.Text())

	w = f.do(t, "POST", "/sessions/live/advance", nil)
	require.Equal(t, http.StatusOK, w.Code)

	for lines.Scan() {
		line := lines.Text()
		if !strings.HasPrefix(line, "data: {") {
			continue
		}
		var diff domain.SessionDiff
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &diff))
		assert.Equal(t, "live", diff.SessionID)
		assert.Equal(t, []domain.StateSet{{1}}, diff.Appended)
		return
	}
	t.Fatal("no diff received")
}

func TestStreamManager(t *testing.T) {
	sm := NewStreamManager(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ch, cancel := sm.Subscribe("s")
	assert.Equal(t, 1, sm.Subscribers("s"))

	sm.Broadcast("s", "hello")
	assert.Equal(t, "hello", <-ch)

	cancel()
	cancel()
	assert.Equal(t, 0, sm.Subscribers("s"))
}
