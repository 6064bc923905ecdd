// Package handler implements the HTTP surface: request decoding, the
// session cookie, and the mapping from domain errors to status codes.
// Handlers stay thin — every decision that matters lives in the services.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/devhub/internal/apperror"
)

// errorResponse is the error envelope every endpoint returns: the status
// code mirrored in the body plus a human-readable detail. RequiresAuth is
// set on 401s so frontends show a login prompt instead of an error page.
type errorResponse struct {
	Status       int    `json:"status"`
	Detail       string `json:"detail"`
	RequiresAuth bool   `json:"requires_auth,omitempty"`
}

// writeJSON sends a JSON response. Headers and status must go out before the
// body; once Encode writes, header changes are silently dropped.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error onto an HTTP status and the standard error
// envelope. The mapping lives here and nowhere else — the service layer
// returns apperror sentinels and knows nothing about HTTP.
//
// errors.Is walks the whole chain, so wrapped errors like
// "liking idea abc: <AppError conflict>" still map correctly.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	detail := "an internal error occurred"

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		detail = appErr.Message

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
		case errors.Is(err, apperror.ErrUnauthenticated):
			status = http.StatusUnauthorized
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusConflict
		case errors.Is(err, apperror.ErrUpstreamAuth):
			status = http.StatusBadGateway
		case errors.Is(err, apperror.ErrUnavailable):
			status = http.StatusServiceUnavailable
		default:
			// Typed but uncategorized — fall through to 500 without leaking
			// the internal message.
			detail = "an internal error occurred"
		}
	}

	writeJSON(w, status, errorResponse{
		Status:       status,
		Detail:       detail,
		RequiresAuth: status == http.StatusUnauthorized,
	})
}

// decodeJSON reads a request body into dst, rejecting unknown fields so
// typos in client payloads fail loudly instead of silently doing nothing.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperror.ValidationFailed("body", "invalid JSON body")
	}
	return nil
}
