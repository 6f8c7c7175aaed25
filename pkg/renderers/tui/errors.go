package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrRejected is returned when a submit fails only on errors no prompt
	// can fix, such as form-level validation messages.
	ErrRejected = errors.New("tui: submit rejected")
	// ErrTooManyAttempts is returned when submits keep failing validation.
	ErrTooManyAttempts = errors.New("tui: too many invalid attempts")
)
