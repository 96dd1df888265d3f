package probe

import "time"

// HTTP status code constants.
const (
	StatusOK = 200
)

// Defaults for the CLI flags.
const (
	DefaultBaseURL = "http://localhost:5000"
	DefaultRepeat  = 2
	DefaultTimeout = 30 * time.Second
	DefaultRunTime = 5 * time.Minute
)
