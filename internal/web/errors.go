package web

// errors.go provides unified error response handling for the web layer.
//
// Every error is logged server-side with its full technical detail and the
// request ID for correlation. What goes back to the client depends on the
// error class:
//   - bad-request errors (structural validation, load failures, upload
//     validation) keep their message, which is already user-safe
//   - not-found errors keep their message
//   - everything else collapses to a generic message so internals never
//     leak into responses

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/tabscan/tabscan/internal/core"
	"github.com/tabscan/tabscan/internal/logging"
)

// errorResponse is the JSON structure for API error responses.
type errorResponse struct {
	Error string `json:"error"`
}

// respondError maps a service error onto an HTTP status and writes the JSON
// error body. Unexpected errors are logged in full but answered generically.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "an unexpected error occurred"

	switch {
	case core.IsNotFound(err):
		status = http.StatusNotFound
		message = err.Error()
	case core.IsBadRequest(err):
		status = http.StatusBadRequest
		message = err.Error()
	}

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
	)

	writeError(w, status, message)
}

// writeError writes a JSON error response with the given message as-is.
// Use respondError for service errors so unexpected detail stays server-side.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: message})
}

// writeJSON encodes v as JSON and writes it to w.
// Encoding errors are logged since headers are already sent.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers already sent; nothing to do but record it.
		slog.Error("json encode error", "error", err)
	}
}
