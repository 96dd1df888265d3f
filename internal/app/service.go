// Package service orchestrates emotion detection for the HTTP API.
package service

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/okian/emodetect/internal/adapters/classifier"
	"github.com/okian/emodetect/internal/domain/emotion"
	"github.com/okian/emodetect/pkg/logger"
	"github.com/okian/emodetect/pkg/metrics"
)

// Service implements the API dependencies for emotion detection.
type Service struct {
	detector classifier.Detector
	logger   logger.Logger
	started  time.Time

	// counters exposed through GetStats
	requests    atomic.Int64
	succeeded   atomic.Int64
	invalid     atomic.Int64
	unavailable atomic.Int64
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithDetector sets the classifier used for detection.
func WithDetector(d classifier.Detector) Option {
	return func(s *Service) {
		if d != nil {
			s.detector = d
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service. Without WithDetector it talks to the default
// public classifier endpoint.
func New(opts ...Option) *Service {
	s := &Service{
		logger:  logger.Nop(),
		started: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.detector == nil {
		s.detector = classifier.New(classifier.WithLogger(s.logger))
	}
	return s
}

// Analyze classifies text. Empty text fails with emotion.ErrMissingInput
// without calling the classifier. A result without a dominant emotion is
// reported as emotion.ErrInvalidInput.
func (s *Service) Analyze(ctx context.Context, text string) (emotion.Analysis, error) {
	if text == "" {
		return emotion.Analysis{}, emotion.ErrMissingInput
	}
	s.requests.Add(1)

	a, err := s.detector.Detect(ctx, text)
	if err == nil && !a.HasDominant() {
		err = emotion.ErrInvalidInput
	}

	switch {
	case errors.Is(err, emotion.ErrInvalidInput):
		s.invalid.Add(1)
		metrics.RecordDetection(metrics.OutcomeInvalid, "")
		s.logger.Info(ctx, "no dominant emotion for text", logger.Int("text_len", len(text)))
		return a, err
	case err != nil:
		s.unavailable.Add(1)
		metrics.RecordDetection(metrics.OutcomeUnavailable, "")
		s.logger.Error(ctx, "emotion detection failed", logger.Error(err))
		return emotion.Analysis{}, err
	}

	s.succeeded.Add(1)
	metrics.RecordDetection(metrics.OutcomeSuccess, a.Dominant)
	s.logger.Debug(ctx, "emotion detected", logger.String("dominant", a.Dominant))
	return a, nil
}

// GetStats returns a snapshot of service counters.
func (s *Service) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"requests":      s.requests.Load(),
		"succeeded":     s.succeeded.Load(),
		"invalidInput":  s.invalid.Load(),
		"unavailable":   s.unavailable.Load(),
		"uptimeSeconds": int64(time.Since(s.started).Seconds()),
	}
}
