package probe

import "time"

// Config holds configuration for a probe run.
type Config struct {
	BaseURL string        // Base URL of the service
	File    string        // Optional file with one statement per line
	Repeat  int           // Times each statement is sent
	Workers int           // Number of concurrent requests
	Timeout time.Duration // HTTP request timeout
	Verbose bool          // Log every response
}

// Outcome classifies a single response.
type Outcome string

const (
	OutcomeDetected    Outcome = "detected"
	OutcomeMissing     Outcome = "missing_input"
	OutcomeInvalid     Outcome = "invalid_input"
	OutcomeUnavailable Outcome = "unavailable"
	OutcomeMalformed   Outcome = "malformed"
	OutcomeFailed      Outcome = "failed"
)

// Result is the verified response for one statement.
type Result struct {
	Text      string
	Status    int
	Body      string
	Outcome   Outcome
	Dominant  string
	Err       error
	Latency   time.Duration
	Identical bool // every repetition returned the same status and body
}

// Stats holds run statistics.
type Stats struct {
	Statements  int
	Requests    int
	ByOutcome   map[Outcome]int
	NotRepeated int
	StartTime   time.Time
	Duration    time.Duration
}
