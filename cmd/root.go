// Package cmd implements the CLI commands for newscast using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagLogLevel string

var rootCmd = &cobra.Command{
	Use:   "newscast",
	Short: "newscast: last 24-hour news briefings as PDF and audio",
	Long: `newscast asks a web-search grounded generative model for the last 24 hours
of news, filtered by topic and region, and turns the answer into a printable
PDF and an MP3 narration named news_<YYYY-MM-DD>.<ext>.

Usage:
  newscast generate --topic India --topic Sports --region Kerala
  newscast serve
  newscast topics`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log_level", "", "Log level (overrides LOG_LEVEL)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
