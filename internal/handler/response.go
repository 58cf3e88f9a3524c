// Package handler is the HTTP boundary: chi routes, JSON decoding with
// strict amount coercion, and the {success, data, message} response
// envelope.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/devanshg/splitmate/internal/apperr"
)

// envelope is the uniform response shape.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeSuccess(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Success: true, Message: msg})
}

// writeError maps the error taxonomy onto HTTP statuses: validation 400,
// authorization 403, not-found 404, everything else a generic 500 that
// leaks no internal detail.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	msg := "server error"

	if class, ok := apperr.ClassOf(err); ok {
		switch class {
		case apperr.Validation:
			status = http.StatusBadRequest
		case apperr.Authorization:
			status = http.StatusForbidden
		case apperr.NotFound:
			status = http.StatusNotFound
		case apperr.Storage:
			status = http.StatusInternalServerError
		}
		msg = apperr.Message(err, msg)
	} else {
		slog.Error("Unhandled error", "error", err)
	}

	writeJSON(w, status, envelope{Success: false, Message: msg})
}

func requiredFieldsErr() error {
	return apperr.Validationf("required fields missing")
}

// decode parses a JSON request body into v.
func decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, errInvalidAmount) {
			return apperr.Validationf("invalid amount type")
		}
		return apperr.Validationf("invalid request body")
	}
	return nil
}
