package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nao1215/blotter/internal/config"
	"github.com/nao1215/blotter/internal/report"
	"github.com/nao1215/blotter/internal/service"
	"github.com/spf13/cobra"
)

// NewScrapeCmd creates the scrape command.
func NewScrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Run the pipeline once and write the spreadsheet",
		Long: `Scrape collects news-release links page by page until the link cap is
reached or the listing stops yielding new links, then renders every
article in order. Articles without crime vocabulary or without a suspect
pattern are skipped. The spreadsheet is replaced on every run.

Examples:
  # Collect 20 articles with the default browser engine
  blotter scrape

  # Collect 50 articles and print a Markdown summary
  blotter scrape -n 50 --markdown

  # Plain HTTP engine through a local Tor proxy
  blotter scrape --engine http --proxy socks5://127.0.0.1:9050

  # Reuse a running Chrome
  blotter scrape --remote ws://127.0.0.1:9222/devtools/browser/<id>`,
		Args: cobra.NoArgs,
		RunE: runScrapeCmd,
	}

	cmd.Flags().IntP("max-links", "n", config.DefaultMaxLinks, "Maximum number of article links to collect")
	addRenderFlags(cmd.Flags())
	cmd.Flags().BoolP("json", "j", false, "Print the run summary as JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false, "Print the run summary as Markdown (mutually exclusive with --json)")
	cmd.Flags().Bool("rows", false, "Include the extracted rows in the summary")

	return cmd
}

// runScrapeCmd executes the scrape command.
func runScrapeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	withRows, err := cmd.Flags().GetBool("rows")
	if err != nil {
		return err
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg.Verbose, slog.LevelWarn)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runScrape(ctx, cfg, cmd.OutOrStdout(), withRows, logger)
}

// runScrape runs one pipeline and prints its summary to out.
func runScrape(ctx context.Context, cfg *config.Config, out io.Writer, withRows bool, logger *slog.Logger, opts ...service.Option) error {
	svc, err := service.New(cfg, append([]service.Option{service.WithLogger(logger)}, opts...)...)
	if err != nil {
		return err
	}

	logger.Info("starting scrape",
		"site", cfg.Site.BaseURL,
		"max_links", cfg.MaxLinks,
		"engine", cfg.Engine,
		"output", cfg.Output,
	)

	summary, err := svc.RunPipeline(ctx, cfg.MaxLinks)
	if err != nil {
		if summary.Run != nil {
			logger.Warn("run aborted",
				"links", summary.Run.LinksCollected,
				"articles", summary.Run.ArticlesFetched,
			)
		}
		return fmt.Errorf("scrape failed: %w", err)
	}

	_, err = summaryWriter(cfg, out, withRows).Write(summary.Run)
	return err
}

// summaryWriter selects the summary format.
func summaryWriter(cfg *config.Config, out io.Writer, withRows bool) report.Writer {
	switch {
	case cfg.JSONSummary:
		return report.NewJSONWriter(out, report.WithPrettyPrint(), report.WithRows(withRows))
	case cfg.MarkdownSummary:
		return report.NewMarkdownWriter(out, report.WithChart(true), report.WithRowTable(withRows))
	default:
		return report.NewSimpleWriter(out, report.WithVerbose(withRows || cfg.Verbose))
	}
}
