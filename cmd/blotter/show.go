package main

import (
	"encoding/json"
	"fmt"

	"github.com/nao1215/blotter/internal/config"
	"github.com/nao1215/blotter/internal/report"
	"github.com/nao1215/markdown"
	"github.com/spf13/cobra"
)

// NewShowCmd creates the show command.
func NewShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [file]",
		Short: "Print a spreadsheet written by scrape",
		Long: `Show reads a spreadsheet written by scrape and prints its rows as a
Markdown table, or as JSON with --json.

Examples:
  blotter show
  blotter show results.xlsx --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runShowCmd,
	}

	cmd.Flags().BoolP("json", "j", false, "Print rows as JSON")

	return cmd
}

// runShowCmd executes the show command.
func runShowCmd(cmd *cobra.Command, args []string) error {
	path := config.DefaultOutput
	if len(args) == 1 {
		path = args[0]
	}

	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	rows, err := report.ReadSpreadsheet(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	if len(rows) == 0 {
		fmt.Fprintf(out, "%s has no rows\n", path) //nolint:errcheck
		return nil
	}
	md := markdown.NewMarkdown(out)
	md.Table(report.RowsTable(rows))
	return md.Build()
}
