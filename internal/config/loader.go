package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the config file name searched in the current and
// home directories.
const DefaultConfigFile = ".blotter"

// XDGConfigFile is the config file name inside XDGConfigDir.
const XDGConfigFile = "config.yaml"

// LoadConfigFile parses the YAML file at path.
// A missing file returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrConfigNotFound)
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &f, nil
}

// FindConfigFile searches for the configuration file in the following order:
//  1. configPath, if specified
//  2. .blotter in the current directory
//  3. .blotter in the user's home directory
//  4. config.yaml in XDGConfigDir
//
// It returns the empty string when nothing is found. An explicit configPath
// that does not exist is returned as is so that loading reports it.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		return configPath
	}

	candidates := make([]string, 0, 3)
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), XDGConfigFile))

	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	return ""
}

// Load finds the config file for cfg.ConfigFilePath and applies it to cfg.
// It returns the path that was applied, or "" when no file was found.
func Load(cfg *Config) (string, error) {
	path := FindConfigFile(cfg.ConfigFilePath)
	if path == "" {
		return "", nil
	}
	f, err := LoadConfigFile(path)
	if err != nil {
		return "", err
	}
	f.Apply(cfg)
	return path, nil
}
