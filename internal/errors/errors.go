package errors

import "errors"

// This package defines the sentinel errors shared by every layer. Services return
// them (usually wrapped with context) and the API layer maps them to HTTP responses
// with `errors.Is()`.

var (
	// ErrNotFound signifies that a referenced conversation does not exist.
	// Under normal UI flow this is a programming error, not a user-facing one.
	// Mapped to 404 Not Found.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that a request body failed validation.
	// Mapped to 400 Bad Request.
	ErrValidation = errors.New("validation failed")

	// ErrBlankInput is returned when a submitted message is empty after trimming.
	// It is never surfaced to the user; the API answers 204 No Content.
	ErrBlankInput = errors.New("blank input")

	// ErrAwaitingReply is returned when a turn is started while another is still in flight.
	ErrAwaitingReply = errors.New("a reply is already pending")

	// ErrNothingToRetry is returned by a retry when the last turn did not fail.
	ErrNothingToRetry = errors.New("no failed turn to retry")

	// ErrNetwork, ErrTimeout and ErrRateLimit classify completion failures. They are
	// surfaced inline in the transcript as failed assistant messages.
	ErrNetwork   = errors.New("completion backend unreachable")
	ErrTimeout   = errors.New("completion timed out")
	ErrRateLimit = errors.New("completion rate limited")
)
