// Package httputil provides JSON helpers shared by HTTP handlers.
package httputil

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	domainerrors "vetgate/pkg/domain-errors"
)

// ErrorResponse is the wire shape for all handler errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// WriteError maps a domain error to an HTTP status and writes the coded
// error body. Uncoded errors become 500 internal without leaking detail.
func WriteError(w http.ResponseWriter, err error) {
	code := domainerrors.CodeOf(err)
	WriteJSON(w, statusOf(code), ErrorResponse{
		Error:   string(code),
		Message: domainerrors.MessageOf(err),
	})
}

func statusOf(code domainerrors.Code) int {
	switch code {
	case domainerrors.CodeBadRequest:
		return http.StatusBadRequest
	case domainerrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case domainerrors.CodeNotFound:
		return http.StatusNotFound
	case domainerrors.CodeConflict, domainerrors.CodeBusy:
		return http.StatusConflict
	case domainerrors.CodeUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// DecodeAndPrepare decodes a JSON request body into T and writes a
// bad_request error on malformed input. The bool result reports whether the
// handler should continue.
func DecodeAndPrepare[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (T, bool) {
	var req T
	if r.Body == nil {
		return req, true
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if logger != nil {
			logger.WarnContext(ctx, "malformed request body",
				"request_id", requestID,
				"error", err,
			)
		}
		WriteError(w, domainerrors.New(domainerrors.CodeBadRequest, "malformed request body"))
		var zero T
		return zero, false
	}
	return req, true
}
