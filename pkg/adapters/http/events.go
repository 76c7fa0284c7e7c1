package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/LeenJaber1/automata-builder/pkg/ports"
)

// SubscribeLibrary handles the GET /events request (SSE).
// Every change in the automaton library is sent as the id of the changed automaton.
func (s *Server) SubscribeLibrary(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "INTERNAL", errors.New("streaming not supported"))
		return
	}
	watchable, ok := s.Engine.(ports.Watchable)
	if !ok {
		writeError(w, http.StatusNotImplemented, "NO_WATCH", errors.New("engine does not support watching"))
		return
	}
	events, err := watchable.Watch(r.Context())
	if err != nil {
		writeError(w, http.StatusNotImplemented, "NO_WATCH", fmt.Errorf("watch error: %w", err))
		return
	}

	streamHeaders(w)
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case id, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: reload\ndata: %s\n\n", id)
			flusher.Flush()
		}
	}
}

// SubscribeSession handles the GET /sessions/{id}/events request (SSE).
// Every advance or reset of the session is sent as a JSON SessionDiff.
func (s *Server) SubscribeSession(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "INTERNAL", errors.New("streaming not supported"))
		return
	}
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	ch, cancel := s.Streams.Subscribe(id)
	defer cancel()
	s.logger.Info("SSE: Subscribing to session updates", "session_id", id)

	streamHeaders(w)
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE: Client disconnected", "session_id", id)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func streamHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
}
