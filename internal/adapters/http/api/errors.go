package api

import "errors"

// User-facing response bodies for /emotionDetector.
const (
	MsgMissingInput = "Error: 'textToAnalyze' query parameter is missing"
	MsgInvalidInput = "Invalid text! Please try again!"
	MsgUnavailable  = "Error: emotion classifier is unavailable, please try again later"
)

// Sentinel kinds for API errors.
var (
	ErrMethodNotAllowed = errors.New("method not allowed")
)
