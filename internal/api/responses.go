package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	app_errors "chatshell/internal/errors"
)

// This file contains shared DTOs (Data Transfer Objects) for API requests and
// responses, and helper functions for sending consistent HTTP responses.

// ErrorResponse defines the standard JSON structure for error messages.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse defines a generic success response for intents that don't
// return a resource.
type StatusResponse struct {
	Status string `json:"status"`
}

// SubmitMessageRequest is the DTO for the composer's send action. Blank content
// is accepted here and ignored by the turn controller.
type SubmitMessageRequest struct {
	Content string `json:"content" validate:"max=32000" example:"How do I create a reusable button component in React?"`
}

// CancelResponse reports whether a pending turn was cancelled.
type CancelResponse struct {
	Cancelled bool `json:"cancelled"`
}

// respondWithError is the centralized error handling function for the API layer.
// It maps business-layer errors to HTTP status codes and formats a standard
// JSON error response.
func respondWithError(w http.ResponseWriter, err error) {
	var statusCode int
	var message string

	switch {
	case errors.Is(err, app_errors.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "The requested conversation was not found."
	case errors.Is(err, app_errors.ErrValidation):
		statusCode = http.StatusBadRequest
		// Validation messages are already descriptive.
		message = err.Error()
	case errors.Is(err, app_errors.ErrAwaitingReply):
		statusCode = http.StatusConflict
		message = "A reply is already pending. Wait for it or cancel it first."
	case errors.Is(err, app_errors.ErrNothingToRetry):
		statusCode = http.StatusConflict
		message = "There is no failed turn to retry."
	default:
		// Anything unexpected is an internal error; details stay in the log.
		statusCode = http.StatusInternalServerError
		message = "An unexpected internal server error occurred."
	}

	slog.Warn("Responding with error", "status_code", statusCode, "client_message", message, "internal_error", err)

	respondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

// respondWithJSON is a low-level helper for marshaling a payload to JSON
// and writing it to the http.ResponseWriter with a given status code.
func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to marshal JSON response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}

// sendStreamError sends a structured error message over a Server-Sent Events stream.
func sendStreamError(w http.ResponseWriter, message string) {
	slog.Warn("Sending stream error to client", "message", message)
	if err := writeStreamEvent(w, "error", ErrorResponse{Error: message}); err != nil {
		slog.Warn("Failed to write stream error, client might have disconnected", "error", err)
	}
}

// writeStreamEvent marshals data and writes it as one SSE message. A non-empty
// event name lets clients register a listener for that type with
// `eventSource.addEventListener(name, ...)`. It returns an error on write
// failure, which means the client has gone away.
func writeStreamEvent(w http.ResponseWriter, event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		// The connection is fine; only this payload is bad.
		slog.Error("Failed to marshal stream data to JSON", "error", err)
		return nil
	}

	if event != "" {
		if _, err := fmt.Fprintf(w, "event: %s\n", event); err != nil {
			return fmt.Errorf("failed to write event name to stream: %w", err)
		}
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", jsonData); err != nil {
		return fmt.Errorf("failed to write data to stream: %w", err)
	}

	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}
