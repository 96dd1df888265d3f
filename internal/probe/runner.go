package probe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"

	"github.com/okian/emodetect/pkg/logger"
)

// ErrVerification is returned when at least one response fails verification.
var ErrVerification = errors.New("probe verification failed")

// Run probes a running server and verifies every response.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	log := logger.Named("probe").With(logger.String("run_id", uuid.NewString()))
	stats := &Stats{StartTime: time.Now(), ByOutcome: map[Outcome]int{}}

	statements := DefaultStatements
	if config.File != "" {
		loaded, err := LoadStatements(config.File)
		if err != nil {
			return nil, err
		}
		statements = loaded
	}

	repeat := config.Repeat
	if repeat < 1 {
		repeat = 1
	}
	workers := config.Workers
	if workers < 1 {
		workers = 1
	}

	log.Info(ctx, "starting emotion detector probe",
		logger.String("baseURL", config.BaseURL),
		logger.Int("statements", len(statements)),
		logger.Int("repeat", repeat),
		logger.Int("workers", workers),
		logger.Duration("timeout", config.Timeout))

	client := newHTTPClient(config.BaseURL, config.Timeout)
	if err := checkServiceHealth(ctx, client); err != nil {
		return nil, fmt.Errorf("service health check failed: %w", err)
	}

	p := pool.NewWithResults[Result]().WithMaxGoroutines(workers)
	for _, text := range statements {
		text := text
		p.Go(func() Result {
			return probeStatement(ctx, client, text, repeat)
		})
	}
	results := p.Wait()

	failed := 0
	for _, r := range results {
		stats.Statements++
		stats.Requests += repeat
		stats.ByOutcome[r.Outcome]++
		if !r.Identical {
			stats.NotRepeated++
		}

		fields := []logger.Field{
			logger.String("text", r.Text),
			logger.Int("status", r.Status),
			logger.String("outcome", string(r.Outcome)),
			logger.Duration("latency", r.Latency),
		}
		switch {
		case r.Err != nil:
			failed++
			log.Error(ctx, "response failed verification", append(fields, logger.Error(r.Err))...)
		case !r.Identical:
			failed++
			log.Error(ctx, "repeated requests returned different responses", fields...)
		case config.Verbose:
			log.Info(ctx, "response verified", append(fields, logger.String("body", r.Body))...)
		}
	}

	stats.Duration = time.Since(stats.StartTime)
	displayFinalStats(ctx, log, stats)

	if failed > 0 {
		return stats, fmt.Errorf("%w: %d of %d statements", ErrVerification, failed, len(results))
	}
	return stats, nil
}

func probeStatement(ctx context.Context, client *HTTPClient, text string, repeat int) Result {
	res := Result{Text: text, Identical: true}
	start := time.Now()

	for i := 0; i < repeat; i++ {
		status, body, err := client.Detect(ctx, text)
		if err != nil {
			res.Outcome, res.Err = OutcomeFailed, err
			break
		}
		if i == 0 {
			res.Status, res.Body = status, body
			continue
		}
		if status != res.Status || body != res.Body {
			res.Identical = false
		}
	}
	res.Latency = time.Since(start) / time.Duration(repeat)

	if res.Err == nil {
		res.Outcome, res.Dominant, res.Err = classify(text, res.Status, res.Body)
	}
	return res
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient) error {
	status, _, err := client.Get(ctx, "/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	if status != StatusOK {
		return fmt.Errorf("unexpected status: %d", status)
	}
	return nil
}

func displayFinalStats(ctx context.Context, log logger.Logger, stats *Stats) {
	fields := []logger.Field{
		logger.Int("statements", stats.Statements),
		logger.Int("requests", stats.Requests),
		logger.Int("notRepeatable", stats.NotRepeated),
		logger.Duration("duration", stats.Duration),
	}
	for _, o := range []Outcome{OutcomeDetected, OutcomeMissing, OutcomeInvalid, OutcomeUnavailable, OutcomeMalformed, OutcomeFailed} {
		fields = append(fields, logger.Int(string(o), stats.ByOutcome[o]))
	}
	log.Info(ctx, "final statistics", fields...)
}
