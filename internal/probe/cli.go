package probe

import (
	"fmt"
	"os"

	"github.com/okian/emodetect/pkg/logger"
)

// SetupLogging initializes the logger for the CLI.
func SetupLogging(verbose bool) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		return logger.SetLevelString("debug")
	}
	return nil
}

// ShowHelp prints usage information for the probe tool.
func ShowHelp() {
	os.Stdout.WriteString(`Emotion Detector Probe
======================

Sends statements to a running emotion detector and verifies each response:
success sentences must name the highest score as dominant, errors must use
the fixed messages, and repeated requests must return identical bodies.

Usage:
  go run ./cmd/emotion-probe [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:5000")
  -file string
        File with one statement per line (default: built-in samples)
  -repeat int
        Times each statement is sent (default 2)
  -workers int
        Number of concurrent requests (default CPU cores)
  -timeout duration
        HTTP request timeout (default 30s)
  -verbose
        Log every verified response
  -help
        Show this help message

Examples:
  go run ./cmd/emotion-probe
  go run ./cmd/emotion-probe -file statements.txt -repeat 3 -url http://localhost:8080
`)
}
