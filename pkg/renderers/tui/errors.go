package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (Ctrl+C) or declined to fix
	// a rejected submission.
	ErrAborted = errors.New("tui: aborted")
	// ErrTooManyAttempts is returned once the configured retry budget is spent.
	ErrTooManyAttempts = errors.New("tui: too many rejected attempts")
)
