package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/apperrors"
	"github.com/Shashanksingh57/agent-bi-assistant-v2/pkg/llm"
)

// ErrorResponse writes a JSON error response and returns any encoding error.
func ErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(map[string]string{
		"error":   errorCode,
		"message": message,
	})
}

// WriteJSON writes a JSON response and returns any encoding error.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}
	return json.NewEncoder(w).Encode(data)
}

// DecodeJSON decodes the request body into dst.
func DecodeJSON(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// validationErrors are caller mistakes that map to 400.
var validationErrors = []error{
	apperrors.ErrNoTables,
	apperrors.ErrInvalidModel,
	apperrors.ErrMissingPlatform,
	apperrors.ErrNotesTooShort,
	apperrors.ErrSchemaTooLarge,
	apperrors.ErrEmptyImage,
	apperrors.ErrImageTooLarge,
	apperrors.ErrUnsupportedImage,
}

// StatusForError maps a service error to an HTTP status code. Upstream
// AI failures surface as 502/504 so callers can distinguish them from
// our own faults.
func StatusForError(err error) int {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}

	var llmErr *llm.Error
	if errors.As(err, &llmErr) {
		if llmErr.Type == llm.ErrorTypeTimeout {
			return http.StatusGatewayTimeout
		}
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}
