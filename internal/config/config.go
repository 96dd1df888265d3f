// Package config defines service configuration and its defaults.
//
// Conventions:
// - Defaults listen on all interfaces, port 5000.
// - Loading layers defaults, an optional YAML file and EMODETECT_* env vars.
// - Errors are wrapped with this package's sentinels.
package config

import (
	"context"
)

// Default values.
const (
	DefaultAddr          = "0.0.0.0:5000"
	DefaultClassifierURL = "https://sn-watson-emotion.labs.skills.network/v1/watson.runtime.nlp.v1/NlpService/EmotionPredict"
	DefaultModelID       = "emotion_aggregated-workflow_lang_en_stock"
	DefaultTimeoutMS     = 10_000
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address.
	Addr string `koanf:"addr"`

	// ClassifierURL is the remote EmotionPredict endpoint.
	ClassifierURL string `koanf:"classifier_url"`

	// ModelID is sent in the grpc-metadata-mm-model-id header.
	ModelID string `koanf:"model_id"`

	// ClassifierTimeoutMS bounds a single outbound classification call.
	ClassifierTimeoutMS int `koanf:"classifier_timeout_ms"`
}

// New returns a Config populated with defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           "text",
		Addr:                DefaultAddr,
		ClassifierURL:       DefaultClassifierURL,
		ModelID:             DefaultModelID,
		ClassifierTimeoutMS: DefaultTimeoutMS,
	}
}
