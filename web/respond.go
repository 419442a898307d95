/* respond.go
 * Contains the JSON response helpers and the mapping from error kinds to HTTP status codes
 * Authors: Zachary Bower
 */

package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"arena-bot/api/shared"

	"github.com/rs/zerolog/hlog"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// statusFor maps an error to its HTTP status by kind
func statusFor(err error) int {
	switch {
	case errors.Is(err, shared.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, shared.ErrAuthorization):
		return http.StatusForbidden
	case errors.Is(err, shared.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, shared.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrInvalidState):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError answers with the status of err. Unknown errors are logged and hidden from the caller
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	logger := hlog.FromRequest(r)

	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Msg("request failed")
		writeJSON(w, status, errorResponse{Error: "internal server error"})
		return
	}

	logger.Warn().Err(err).Int("status", status).Msg("request rejected")
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
