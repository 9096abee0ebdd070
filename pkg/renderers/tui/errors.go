package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNilRecord is returned when there is no record to fill.
	ErrNilRecord = errors.New("tui: record is nil")
	// ErrUnknownFormat is returned for an output format the renderer cannot
	// produce.
	ErrUnknownFormat = errors.New("tui: unknown output format")
)
