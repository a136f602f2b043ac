// internal/handlers/utils.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rodrigovaamonde/uno-server/internal/game"
)

// writeJSON serializes v and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// errorResponse is the JSON error body returned by the HTTP endpoints.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// writeGameError maps an engine error to an HTTP status via its kind and
// writes a structured error body.
func writeGameError(w http.ResponseWriter, gs *GameServer, err error) {
	status := httpStatusForError(err)
	if status == http.StatusInternalServerError {
		gs.Logger.Errorf("internal error: %v", err)
	}
	body := errorResponse{Error: err.Error()}
	var ge *game.Error
	if errors.As(err, &ge) {
		body.Code = ge.Code
	}
	writeJSON(w, status, body)
}

// httpStatusForError translates the engine's error kinds into HTTP statuses.
func httpStatusForError(err error) int {
	switch game.KindOf(err) {
	case game.KindNotFound:
		return http.StatusNotFound
	case game.KindState, game.KindCapacity:
		return http.StatusConflict
	case game.KindAuthorization:
		return http.StatusForbidden
	case game.KindRuleViolation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// extractCookieToken extracts a named cookie value from "Cookie" header, or returns empty if not found.
func extractCookieToken(cookieHeader, cookieName string) string {
	parts := strings.Split(cookieHeader, cookieName+"=")
	if len(parts) < 2 {
		return ""
	}
	token := parts[1]
	if idx := strings.Index(token, ";"); idx != -1 {
		token = token[:idx]
	}
	return token
}
