package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"tradesim/internal/domain"
)

// envelope is the standard response format: a status discriminator, an
// optional human-readable message, and the payload.
type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// WriteJSON writes a success envelope with the given status code and data.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	writeEnvelope(w, status, envelope{Status: "success", Data: data})
}

// WriteMessage writes a success envelope with a message and data.
func WriteMessage(w http.ResponseWriter, status int, message string, data any) {
	writeEnvelope(w, status, envelope{Status: "success", Message: message, Data: data})
}

// WriteError writes an error envelope with the given status code and
// human-readable message.
func WriteError(w http.ResponseWriter, status int, message string) {
	writeEnvelope(w, status, envelope{Status: "error", Message: message})
}

func writeEnvelope(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env) // Write error intentionally ignored in response helper
}

// ParseJSON decodes the request body as JSON into v. It validates that the
// Content-Type header is application/json and rejects unknown fields.
func ParseJSON(r *http.Request, v any) error {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(ct, "application/json") {
		return fmt.Errorf("Request body must be valid JSON with Content-Type: application/json")
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("Request body must be valid JSON with Content-Type: application/json")
	}

	return nil
}

// mapDomainError maps domain errors to HTTP responses. Unknown errors
// surface as a generic server failure with no internals leaked.
func mapDomainError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		WriteError(w, http.StatusBadRequest, validationErr.Message)
		return
	}
	var balanceErr *domain.InsufficientBalanceError
	if errors.As(err, &balanceErr) {
		WriteError(w, http.StatusBadRequest, balanceErr.Error())
		return
	}

	switch {
	case errors.Is(err, domain.ErrInstrumentNotFound):
		WriteError(w, http.StatusNotFound, "Instrument not found")
	case errors.Is(err, domain.ErrOrderNotFound):
		WriteError(w, http.StatusNotFound, "Order not found")
	default:
		WriteError(w, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
