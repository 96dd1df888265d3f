package config

import "errors"

var (
	// ErrInvalidConfig marks a loaded config the server refuses to start
	// with, e.g. a classifier_url that is not http(s).
	ErrInvalidConfig = errors.New("invalid emodetect config")
	// ErrLoadConfig wraps failures reading the YAML file or the EMODETECT_ env.
	ErrLoadConfig = errors.New("load emodetect config failed")
)
