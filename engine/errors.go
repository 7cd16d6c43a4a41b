package engine

import "errors"

var (
	// ErrInvalidInput marks errors caused by a malformed prompt or parameter
	// rather than by the runtime itself.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoModel is returned when generating before a model was loaded.
	ErrNoModel = errors.New("no model loaded")
)
