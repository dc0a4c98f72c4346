package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/nao1215/blotter/internal/log"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for blotter.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blotter",
		Short: "Extract suspect records from police news releases",
		Long: `blotter crawls a police service's news-release listing, renders each
article, keeps the crime-related ones and extracts suspect records
(name, age, charge) into a spreadsheet with one row per suspect.

By default it drives a headless Chrome with automation signals disguised.
Use --engine http for sites that do not need script execution.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .blotter in current or home directory)")

	cmd.AddCommand(NewScrapeCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewShowCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// getConfigFlag retrieves the config file path from the command or its parent.
func getConfigFlag(cmd *cobra.Command) string {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		path, err = cmd.Root().PersistentFlags().GetString("config")
		if err != nil {
			return ""
		}
	}
	return path
}

// setupLogger creates the sanitizing logger and installs it as the default.
func setupLogger(w io.Writer, verbose bool, fallback slog.Level) *slog.Logger {
	logger := log.NewLogger(w, log.WithLevel(log.LevelFor(verbose, fallback)))
	slog.SetDefault(logger)
	return logger
}
