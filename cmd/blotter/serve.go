package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nao1215/blotter/internal/config"
	"github.com/nao1215/blotter/internal/server"
	"github.com/nao1215/blotter/internal/service"
	"github.com/spf13/cobra"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scrape and download endpoints over HTTP",
		Long: `Serve starts an HTTP server with three endpoints:

  GET /            liveness message
  GET /scrape      run the pipeline; ?max=N caps the links (default 50)
  GET /download    download the last spreadsheet

Concurrent /scrape requests with the same max share a single run.

Examples:
  blotter serve
  blotter serve --addr 127.0.0.1:8080 --engine http`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().String("addr", config.DefaultServerAddr, "Listen address")
	cmd.Flags().Int("default-max", config.DefaultServeMaxLinks, "Link cap for /scrape without a max parameter")
	addRenderFlags(cmd.Flags())

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	defaultMax, err := cmd.Flags().GetInt("default-max")
	if err != nil {
		return err
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg.Verbose, slog.LevelInfo)

	svc, err := service.New(cfg, service.WithLogger(logger))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(svc,
		server.WithLogger(logger),
		server.WithDefaultMaxLinks(defaultMax),
	)
	return srv.ListenAndServe(ctx, cfg.ServerAddr)
}
