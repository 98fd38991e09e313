package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"tradesim/internal/cli"
)

func main() {
	// Bootstrap logger; serve replaces it with the configured one.
	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	rootCmd := cli.NewRootCmd(logger)
	if err := rootCmd.Execute(); err != nil {
		logger.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
