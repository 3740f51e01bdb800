package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/cookoff/internal/smoke"
)

const defaultRunTimeout = 10 * time.Minute

func main() {
	os.Exit(run())
}

func run() int {
	var (
		baseURL       = flag.String("url", "http://localhost:9080", "Base URL of the service")
		episodes      = flag.Int("episodes", smoke.DefaultEpisodes, "Episodes generated one by one")
		batch         = flag.Int("batch", smoke.DefaultBatch, "Episodes requested as a batch; 0 skips")
		nationalities = flag.Int("nationalities", smoke.DefaultNationalities, "Expected nationalities per episode")
		judges        = flag.Int("judges", smoke.DefaultJudges, "Expected judges per episode")
		perSeason     = flag.Int("per-season", smoke.DefaultEpisodesPerSeason, "Season cap the server runs with")
		timeout       = flag.Duration("timeout", smoke.DefaultTimeout, "HTTP request timeout")
		outputFile    = flag.String("output", "", "JSON file receiving the generated episodes")
		logFile       = flag.String("log", "", "Log file for run output")
		verbose       = flag.Bool("verbose", false, "Log every episode")
		help          = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		smoke.ShowHelp()
		return 0
	}

	closeLog, err := smoke.SetupLogging(*logFile, *verbose)
	if err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return 1
	}
	defer func() { _ = closeLog() }()

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	config := &smoke.Config{
		BaseURL:           *baseURL,
		Episodes:          *episodes,
		Batch:             *batch,
		Timeout:           *timeout,
		PollInterval:      smoke.DefaultPollInterval,
		JobWait:           smoke.DefaultJobWait,
		OutputFile:        *outputFile,
		Verbose:           *verbose,
		Nationalities:     *nationalities,
		Judges:            *judges,
		EpisodesPerSeason: *perSeason,
	}

	if _, err := smoke.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Smoke run failed: " + err.Error() + "\n")
		return 1
	}
	return 0
}
