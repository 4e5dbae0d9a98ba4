package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse is the body of every non-200 response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, status int, data interface{}, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes an error response in JSON format
func WriteError(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	WriteJSON(w, status, ErrorResponse{Error: message}, logger)
}

// WriteErrorDetails writes an error response carrying a detail message.
func WriteErrorDetails(w http.ResponseWriter, status int, message, details string, logger *slog.Logger) {
	WriteJSON(w, status, ErrorResponse{Error: message, Details: details}, logger)
}
