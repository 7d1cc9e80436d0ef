// Package service orchestrates the game: registration, the admin start/stop
// transition that runs the allocation, and every checkpoint interaction.
// Services log each call with slog and return classified errors the HTTP
// layer maps to status codes.
package service

import "fmt"

// ValidationError marks malformed client input (bad email, empty answer).
// The client re-prompts; nothing changed server-side.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// PreconditionError marks a missing prerequisite: no group, no assigned
// question, a teammate without a selfie. Surfaced to the user with retry; no
// state was mutated.
type PreconditionError struct {
	msg string
}

func (e *PreconditionError) Error() string { return e.msg }

func preconditionf(format string, args ...any) error {
	return &PreconditionError{msg: fmt.Sprintf(format, args...)}
}

// ConflictError marks an operation that is invalid in the current game state:
// starting an already-started game, answering after the location is solved.
type ConflictError struct {
	msg string
}

func (e *ConflictError) Error() string { return e.msg }

func conflictf(format string, args ...any) error {
	return &ConflictError{msg: fmt.Sprintf(format, args...)}
}

// ExternalError wraps a failed delegated call (similarity service, media
// store). The current operation aborts without flipping any flag; the user
// retries.
type ExternalError struct {
	err error
}

func (e *ExternalError) Error() string { return e.err.Error() }
func (e *ExternalError) Unwrap() error { return e.err }

func externalErr(err error) error {
	return &ExternalError{err: err}
}
