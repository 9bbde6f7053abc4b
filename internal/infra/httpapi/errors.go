package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"smart-home-mock/internal/application"
	"smart-home-mock/internal/validation"
)

type Error struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error Error `json:"error"`
}

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeValidation       = "validation_error"
	ErrCodeRateLimited      = "rate_limited"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // connection may already be gone
		json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: Error{
		Status:  status,
		Code:    code,
		Message: message,
	}})
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, ErrCodeBadRequest, message)
}

func writeNotFound(w http.ResponseWriter, message string) {
	writeError(w, http.StatusNotFound, ErrCodeNotFound, message)
}

func writeInternalError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusInternalServerError, ErrCodeInternal, message)
}

// dispatchError maps a handler error onto an HTTP status and error code.
func dispatchError(err error) Error {
	switch {
	case errors.Is(err, application.ErrMalformedRequest),
		errors.Is(err, application.ErrUnsupportedNamespace):
		return Error{Status: http.StatusBadRequest, Code: ErrCodeBadRequest, Message: err.Error()}
	case errors.Is(err, validation.ErrInvalidContext),
		errors.Is(err, validation.ErrInvalidResponse):
		return Error{Status: http.StatusUnprocessableEntity, Code: ErrCodeValidation, Message: err.Error()}
	default:
		return Error{Status: http.StatusInternalServerError, Code: ErrCodeInternal, Message: err.Error()}
	}
}
