package main

import (
	"fmt"
	"time"

	"github.com/nao1215/blotter/internal/browser"
	"github.com/nao1215/blotter/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// addRenderFlags registers the flags shared by scrape and serve.
func addRenderFlags(flags *pflag.FlagSet) {
	flags.StringP("output", "o", config.DefaultOutput, "Spreadsheet output path")
	flags.String("engine", browser.EngineBrowser, "Render engine: browser or http")
	flags.Duration("settle", browser.DefaultSettle, "Wait after each page load")
	flags.Duration("timeout", browser.DefaultTimeout, "Timeout for each page load")
	flags.Float64("rate", 0, "Maximum page loads per second (0 = unlimited)")
	flags.String("proxy", "", "Proxy URL (http, https, socks5)")
	flags.Bool("tor", false, "Start an embedded Tor daemon and route page loads through it")
	flags.Duration("tor-timeout", config.DefaultTorStartupTimeout, "Timeout for embedded Tor startup")
	flags.String("remote", "", "Connect to a running browser at this DevTools URL")
	flags.Bool("headful", false, "Show the browser window")
	flags.String("user-agent", "", "User-Agent header")
	flags.Bool("continue-on-error", false, "Log and skip articles that fail to load instead of aborting")
}

// buildConfig layers defaults, the config file and explicitly set flags.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	cfg.ConfigFilePath = getConfigFlag(cmd)
	if _, err := config.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	cfg.Verbose = getVerboseFlag(cmd)
	if err := applyFlags(cmd.Flags(), cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags copies every flag the user set onto cfg.
func applyFlags(flags *pflag.FlagSet, cfg *config.Config) error {
	steps := []func() error{
		func() error { return changedInt(flags, "max-links", &cfg.MaxLinks) },
		func() error { return changedString(flags, "output", &cfg.Output) },
		func() error { return changedString(flags, "engine", &cfg.Engine) },
		func() error { return changedDuration(flags, "settle", &cfg.Settle) },
		func() error { return changedDuration(flags, "timeout", &cfg.Timeout) },
		func() error { return changedFloat64(flags, "rate", &cfg.Rate) },
		func() error { return changedString(flags, "proxy", &cfg.Proxy) },
		func() error { return changedBool(flags, "tor", &cfg.Tor) },
		func() error { return changedDuration(flags, "tor-timeout", &cfg.TorStartupTimeout) },
		func() error { return changedString(flags, "remote", &cfg.RemoteURL) },
		func() error { return changedBool(flags, "headful", &cfg.Headful) },
		func() error { return changedString(flags, "user-agent", &cfg.UserAgent) },
		func() error { return changedBool(flags, "continue-on-error", &cfg.ContinueOnError) },
		func() error { return changedBool(flags, "json", &cfg.JSONSummary) },
		func() error { return changedBool(flags, "markdown", &cfg.MarkdownSummary) },
		func() error { return changedString(flags, "addr", &cfg.ServerAddr) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// changed reports whether the flag exists on this command and was set.
func changed(flags *pflag.FlagSet, name string) bool {
	return flags.Lookup(name) != nil && flags.Changed(name)
}

func changedString(flags *pflag.FlagSet, name string, dst *string) error {
	if !changed(flags, name) {
		return nil
	}
	v, err := flags.GetString(name)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func changedInt(flags *pflag.FlagSet, name string, dst *int) error {
	if !changed(flags, name) {
		return nil
	}
	v, err := flags.GetInt(name)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func changedBool(flags *pflag.FlagSet, name string, dst *bool) error {
	if !changed(flags, name) {
		return nil
	}
	v, err := flags.GetBool(name)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func changedFloat64(flags *pflag.FlagSet, name string, dst *float64) error {
	if !changed(flags, name) {
		return nil
	}
	v, err := flags.GetFloat64(name)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func changedDuration(flags *pflag.FlagSet, name string, dst *time.Duration) error {
	if !changed(flags, name) {
		return nil
	}
	v, err := flags.GetDuration(name)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}
