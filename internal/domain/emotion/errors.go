package emotion

import "errors"

// Error kinds surfaced to the HTTP boundary.
var (
	// ErrMissingInput means no text was supplied.
	ErrMissingInput = errors.New("missing input text")
	// ErrInvalidInput means the classifier could not derive a dominant emotion.
	ErrInvalidInput = errors.New("invalid input text")
	// ErrClassifierUnavailable covers transport, status and decode failures.
	ErrClassifierUnavailable = errors.New("emotion classifier unavailable")
)
