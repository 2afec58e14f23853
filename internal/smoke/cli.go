// Package smoke drives the remote profile API end to end: register, log in,
// fetch and verify, for many synthetic users at once.
package smoke

import (
	"fmt"
	"io"
	"os"

	"github.com/okian/skillcard/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging initializes the global logger, teeing to logFile when set.
// It returns a closer for the log file.
func SetupLogging(logFile string, verbose bool) (io.Closer, error) {
	var w io.Writer = os.Stdout
	var closer io.Closer = io.NopCloser(nil)

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = io.MultiWriter(os.Stdout, f)
		closer = f
	}

	if err := logger.Init(logger.WithWriter(w)); err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		_ = logger.SetLevelString("debug")
	}
	return closer, nil
}

// ShowHelp prints usage information for the smoke tool.
func ShowHelp() {
	os.Stdout.WriteString(`Skillcard Smoke Tool
====================

Registers synthetic users against a running profile API, logs each in,
fetches each profile and checks that skills round-trip into one radar
axis per skill.

Usage:
  go run ./cmd/smoke [options]

Options:
  -url string
        Base URL of the profile API (default "http://localhost:8001")
  -users int
        Number of users to register (default 50)
  -skills int
        Skills per user (default 4)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        Per-request timeout (default 10s)
  -log string
        Also write logs to this file
  -verbose
        Log every verified user
  -help
        Show this help message
`)
}
