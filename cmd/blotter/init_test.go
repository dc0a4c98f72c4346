package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/blotter/internal/config"
)

func TestNewInitCmd(t *testing.T) {
	t.Parallel()

	cmd := NewInitCmd()
	flag := cmd.Flags().Lookup("output")
	if flag == nil || flag.Shorthand != "o" || flag.DefValue != config.DefaultConfigFile {
		t.Errorf("unexpected output flag: %+v", flag)
	}
	if f := cmd.Flags().Lookup("force"); f == nil || f.Shorthand != "f" {
		t.Error("expected force flag")
	}
}

func TestRunInitCmd(t *testing.T) {
	t.Parallel()

	t.Run("writes a loadable template", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nested", "config.yaml")
		cmd := NewInitCmd()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"-o", path})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if !strings.Contains(out.String(), path) {
			t.Errorf("output = %s", out.String())
		}

		f, err := config.LoadConfigFile(path)
		if err != nil {
			t.Fatalf("LoadConfigFile() error = %v", err)
		}
		cfg := config.NewConfig()
		f.Apply(cfg)
		if err := cfg.Validate(); err != nil {
			t.Errorf("template config invalid: %v", err)
		}
		if cfg.MaxLinks != config.DefaultMaxLinks || cfg.Output != config.DefaultOutput {
			t.Errorf("cfg = %+v", cfg)
		}
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".blotter")
		if err := os.WriteFile(path, []byte("maxLinks: 1\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		cmd := NewInitCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"-o", path})
		if err := cmd.Execute(); err == nil || !strings.Contains(err.Error(), "already exists") {
			t.Errorf("Execute() error = %v", err)
		}

		cmd = NewInitCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs([]string{"-o", path, "-f"})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("forced Execute() error = %v", err)
		}
		data, _ := os.ReadFile(path)
		if !strings.Contains(string(data), "blotter configuration") {
			t.Error("file was not overwritten")
		}
	})
}
