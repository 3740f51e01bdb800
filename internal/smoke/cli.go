package smoke

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/okian/cookoff/pkg/logger"
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, only the console is used.
func SetupLogging(logFile string, verbose bool) (func() error, error) {
	var w io.Writer = os.Stdout
	closeFn := func() error { return nil }

	if logFile != "" {
		if logFile == "auto" {
			logFile = "smoke_" + time.Now().Format("20060102_150405") + ".log"
		}
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, filePermission)
		if err != nil {
			return nil, fmt.Errorf("failed to create log file: %w", err)
		}
		w = io.MultiWriter(os.Stdout, file)
		closeFn = file.Close
	}

	if err := logger.Init(logger.WithWriter(w), logger.WithSource(false)); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		_ = logger.SetLevelString("debug")
	}
	return closeFn, nil
}

// ShowHelp prints usage information for the smoke tool.
func ShowHelp() {
	os.Stdout.WriteString(`cookoff smoke run
=================

Generates episodes against a running cookoff server and checks every
selection rule that is visible from the API.

Usage:
  go run ./cmd/smoke [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -episodes int
        Episodes generated one by one via POST /episodes (default 5)
  -batch int
        Episodes requested via POST /episodes/batch, 0 skips (default 3)
  -nationalities int
        Expected nationalities per episode (default 10)
  -judges int
        Expected judges per episode (default 3)
  -per-season int
        Season cap the server runs with (default 10)
  -timeout duration
        HTTP request timeout (default 30s)
  -output string
        JSON file receiving the generated episodes
  -log string
        Log file for run output; "auto" picks a timestamped name
  -verbose
        Log every episode
  -help
        Show this help message

Examples:
  go run ./cmd/smoke -episodes 20 -batch 10
  go run ./cmd/smoke -url http://localhost:8080 -output out/episodes.json
`)
}
