// Package classifier is the HTTP client for the remote Watson NLP
// EmotionPredict endpoint.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/okian/emodetect/internal/domain/emotion"
	"github.com/okian/emodetect/pkg/logger"
	"github.com/okian/emodetect/pkg/metrics"
)

// Defaults for the public Watson emotion endpoint.
const (
	DefaultEndpoint = "https://sn-watson-emotion.labs.skills.network/v1/watson.runtime.nlp.v1/NlpService/EmotionPredict"
	DefaultModelID  = "emotion_aggregated-workflow_lang_en_stock"
	DefaultTimeout  = 10 * time.Second

	// ModelHeader selects the model variant on the remote service.
	ModelHeader = "grpc-metadata-mm-model-id"

	maxResponseBytes = 1 << 20
)

// Detector classifies text into emotion scores.
type Detector interface {
	Detect(ctx context.Context, text string) (emotion.Analysis, error)
}

type predictRequest struct {
	RawDocument rawDocument `json:"raw_document"`
}

type rawDocument struct {
	Text string `json:"text"`
}

type predictResponse struct {
	EmotionPredictions []emotionPrediction `json:"emotionPredictions"`
}

type emotionPrediction struct {
	Emotion emotion.Scores `json:"emotion"`
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithEndpoint overrides the EmotionPredict URL.
func WithEndpoint(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.endpoint = url
		}
	}
}

// WithModelID overrides the model id header value.
func WithModelID(id string) Option {
	return func(c *Client) {
		if id != "" {
			c.modelID = id
		}
	}
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds each outbound call.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// Client calls the remote classifier. It holds no per-request state and is
// safe for concurrent use.
type Client struct {
	endpoint   string
	modelID    string
	timeout    time.Duration
	httpClient *http.Client
	logger     logger.Logger
}

// New constructs a Client with defaults overridden by opts.
func New(opts ...Option) *Client {
	c := &Client{
		endpoint:   DefaultEndpoint,
		modelID:    DefaultModelID,
		timeout:    DefaultTimeout,
		httpClient: &http.Client{},
		logger:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Detect sends text to the classifier and returns its scores with the
// dominant emotion. Empty text is sent as-is.
//
// Transport failures, unexpected statuses and undecodable bodies are
// reported as emotion.ErrClassifierUnavailable. A 400 from the classifier or
// a response without usable predictions is emotion.ErrInvalidInput.
func (c *Client) Detect(ctx context.Context, text string) (emotion.Analysis, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	release := metrics.ClassifierCallStarted()
	defer release()

	start := time.Now()
	status, body, err := c.post(ctx, text)
	latency := float64(time.Since(start).Milliseconds())
	statusLabel := strconv.Itoa(status)

	if err != nil {
		metrics.ObserveClassifierCall(metrics.OutcomeUnavailable, statusLabel, latency)
		c.logger.Warn(ctx, "classifier request failed", logger.Error(err), logger.Float64("latency_ms", latency))
		return emotion.Analysis{}, unavailable(status, body, err)
	}

	analysis, err := decode(status, body)
	if err != nil {
		outcome := metrics.OutcomeUnavailable
		if errors.Is(err, emotion.ErrInvalidInput) {
			outcome = metrics.OutcomeInvalid
		}
		metrics.ObserveClassifierCall(outcome, statusLabel, latency)
		c.logger.Debug(ctx, "classifier rejected response",
			logger.Int("status", status), logger.Error(err), logger.Float64("latency_ms", latency))
		return analysis, err
	}

	metrics.ObserveClassifierCall(metrics.OutcomeSuccess, statusLabel, latency)
	c.logger.Debug(ctx, "classifier responded",
		logger.String("dominant", analysis.Dominant), logger.Float64("latency_ms", latency))
	return analysis, nil
}

func (c *Client) post(ctx context.Context, text string) (int, []byte, error) {
	payload, err := json.Marshal(predictRequest{RawDocument: rawDocument{Text: text}})
	if err != nil {
		return 0, nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(ModelHeader, c.modelID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, body, nil
}

func decode(status int, body []byte) (emotion.Analysis, error) {
	switch {
	case status == http.StatusBadRequest:
		return emotion.Analysis{}, invalid(status, body, nil)
	case status < 200 || status > 299:
		return emotion.Analysis{}, unavailable(status, body, nil)
	}

	var resp predictResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return emotion.Analysis{}, unavailable(status, body, fmt.Errorf("decode response: %w", err))
	}
	if len(resp.EmotionPredictions) == 0 {
		return emotion.Analysis{}, invalid(status, body, errors.New("no emotion predictions"))
	}

	analysis := emotion.NewAnalysis(resp.EmotionPredictions[0].Emotion)
	if !analysis.HasDominant() {
		return analysis, invalid(status, body, errors.New("prediction has no emotion scores"))
	}
	return analysis, nil
}
