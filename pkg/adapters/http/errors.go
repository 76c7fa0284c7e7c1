package http

import (
	"encoding/json"
	"net/http"

	"github.com/LeenJaber1/automata-builder/pkg/domain"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
	// Trace holds the state sets visited before a run failed.
	Trace []domain.StateSet `json:"trace,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	writeErrorBody(w, status, ErrorResponse{Error: err.Error(), Code: code})
}

func writeErrorBody(w http.ResponseWriter, status int, body ErrorResponse) {
	writeJSON(w, status, body)
}
