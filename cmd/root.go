// Package cmd implements the CLI commands for nfcepipe using Cobra.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/nfcepipe/config"
)

var flagVerbose bool

var rootCmd = &cobra.Command{
	Use:   "nfcepipe",
	Short: "Turn NFC-e invoice pages into structured records",
	Long: `nfcepipe renders a Brazilian NFC-e consumer invoice page in a headless
browser and extracts it into a normalized record: issuer, address, line
items, tax breakdown and payment totals.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(config.Load().LogLevel)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogging(level string) {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	if flagVerbose {
		lvl = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(lvl)
}
