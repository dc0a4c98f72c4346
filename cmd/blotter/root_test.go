package main

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "blotter" {
			t.Errorf("expected use 'blotter', got %q", cmd.Use)
		}
	})

	t.Run("has version", func(t *testing.T) {
		t.Parallel()
		if cmd.Version == "" {
			t.Error("expected non-empty version")
		}
	})

	t.Run("has persistent flags", func(t *testing.T) {
		t.Parallel()
		for name, short := range map[string]string{"verbose": "v", "config": "c"} {
			flag := cmd.PersistentFlags().Lookup(name)
			if flag == nil {
				t.Fatalf("expected %s flag", name)
			}
			if flag.Shorthand != short {
				t.Errorf("%s: expected shorthand %q, got %q", name, short, flag.Shorthand)
			}
		}
	})

	t.Run("has subcommands", func(t *testing.T) {
		t.Parallel()
		want := map[string]bool{"scrape": false, "serve": false, "show": false, "init": false, "version": false}
		for _, sub := range cmd.Commands() {
			if _, ok := want[sub.Name()]; ok {
				want[sub.Name()] = true
			}
		}
		for name, found := range want {
			if !found {
				t.Errorf("expected %s subcommand", name)
			}
		}
	})
}

func TestGetVerboseFlag(t *testing.T) {
	t.Parallel()

	root := NewRootCmd()
	if err := root.PersistentFlags().Set("verbose", "true"); err != nil {
		t.Fatal(err)
	}
	scrape, _, err := root.Find([]string{"scrape"})
	if err != nil {
		t.Fatal(err)
	}
	if !getVerboseFlag(scrape) {
		t.Error("expected verbose from root persistent flags")
	}
}

func TestSetupLogger(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	logger := setupLogger(&buf, false, slog.LevelInfo)
	logger.Debug("hidden")
	logger.Info("shown", "cookie", "session=1")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug should be filtered")
	}
	if !strings.Contains(out, "shown") || strings.Contains(out, "session=1") {
		t.Errorf("unexpected output: %s", out)
	}
}
