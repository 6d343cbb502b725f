// Package cmd implements the CLI commands for notepipe using Cobra.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var flagVerbose bool

var rootCmd = &cobra.Command{
	Use:   "notepipe",
	Short: "Transcode stored note markup",
	Long: `notepipe reads the HTML body of a stored note and turns it into plain text,
Markdown, JSON or PDF. It also externalizes inline images into an attachment
store, resolves them back, strips attachments, extracts blocks, searches notes
and follows internal nn:// links between notes.

Usage:
  notepipe convert <note> [flags]
  notepipe postprocess <note> --store <dir>`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(flagVerbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug output")
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
