// Package config provides configuration loading and validation for gitpick.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Standard config file locations. The TOML file wins when both exist.
const (
	defaultConfigDir = "~/.config/gitpick"
	jsonConfigName   = "config.json"
	tomlConfigName   = "config.toml"
)

// Config holds all gitpick configuration settings.
type Config struct {
	ViewportSize   int    `json:"viewport_size" toml:"viewport_size"`
	CommitLimit    int    `json:"commit_limit" toml:"commit_limit"`
	IncludeRemote  bool   `json:"include_remote" toml:"include_remote"`
	Editor         string `json:"editor" toml:"editor"`
	Remote         string `json:"remote" toml:"remote"`
	HistoryEnabled bool   `json:"history_enabled" toml:"history_enabled"`
	HistoryPath    string `json:"history_path" toml:"history_path"`
	LogFile        string `json:"log_file" toml:"log_file"`

	// expandedPaths tracks whether ExpandPaths has been called.
	expandedPaths bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		ViewportSize:   7,
		CommitLimit:    50,
		Remote:         "origin",
		HistoryEnabled: true,
		HistoryPath:    "~/.local/share/gitpick/history.db",
	}
}

// DefaultPath returns the config file gitpick reads when no path is given:
// config.toml if it exists, config.json otherwise.
func DefaultPath() (string, error) {
	dir, err := expandPath(defaultConfigDir)
	if err != nil {
		return "", fmt.Errorf("failed to expand config path: %w", err)
	}
	tomlPath := filepath.Join(dir, tomlConfigName)
	if _, err := os.Stat(tomlPath); err == nil {
		return tomlPath, nil
	}
	return filepath.Join(dir, jsonConfigName), nil
}

// Load reads config from the standard location, falling back to defaults if
// the file doesn't exist. Missing fields use default values (not zero values).
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads config from a specific path. The format follows the
// file extension: .toml is TOML, anything else JSON.
// If the file doesn't exist, returns default config.
// If the file exists but is invalid, returns an error.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := cfg.ExpandPaths(); err != nil {
			return nil, fmt.Errorf("failed to expand paths: %w", err)
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg fileConfig
	if isTOML(path) {
		err = toml.Unmarshal(data, &fileCfg)
	} else {
		err = json.Unmarshal(data, &fileCfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	mergeConfig(cfg, &fileCfg)

	if err := cfg.ExpandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// WriteDefault writes the default configuration to path in the format its
// extension selects. An existing file is left untouched.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var (
		data []byte
		err  error
	)
	if isTOML(path) {
		data, err = toml.Marshal(DefaultConfig())
	} else {
		data, err = json.MarshalIndent(DefaultConfig(), "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("failed to encode default config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// fileConfig is used for parsing with pointer fields to detect what was set.
type fileConfig struct {
	ViewportSize   *int    `json:"viewport_size" toml:"viewport_size"`
	CommitLimit    *int    `json:"commit_limit" toml:"commit_limit"`
	IncludeRemote  *bool   `json:"include_remote" toml:"include_remote"`
	Editor         *string `json:"editor" toml:"editor"`
	Remote         *string `json:"remote" toml:"remote"`
	HistoryEnabled *bool   `json:"history_enabled" toml:"history_enabled"`
	HistoryPath    *string `json:"history_path" toml:"history_path"`
	LogFile        *string `json:"log_file" toml:"log_file"`
}

// mergeConfig merges file config values into the default config.
// Only non-nil values from the file config are applied.
func mergeConfig(cfg *Config, fileCfg *fileConfig) {
	if fileCfg.ViewportSize != nil {
		cfg.ViewportSize = *fileCfg.ViewportSize
	}
	if fileCfg.CommitLimit != nil {
		cfg.CommitLimit = *fileCfg.CommitLimit
	}
	if fileCfg.IncludeRemote != nil {
		cfg.IncludeRemote = *fileCfg.IncludeRemote
	}
	if fileCfg.Editor != nil {
		cfg.Editor = *fileCfg.Editor
	}
	if fileCfg.Remote != nil {
		cfg.Remote = *fileCfg.Remote
	}
	if fileCfg.HistoryEnabled != nil {
		cfg.HistoryEnabled = *fileCfg.HistoryEnabled
	}
	if fileCfg.HistoryPath != nil {
		cfg.HistoryPath = *fileCfg.HistoryPath
	}
	if fileCfg.LogFile != nil {
		cfg.LogFile = *fileCfg.LogFile
	}
}

// Validate checks that all config values are valid.
func (c *Config) Validate() error {
	var errs []error

	if c.ViewportSize < 1 {
		errs = append(errs, errors.New("viewport_size must be >= 1"))
	}

	if c.CommitLimit < 1 {
		errs = append(errs, errors.New("commit_limit must be >= 1"))
	}

	if strings.TrimSpace(c.Remote) == "" {
		errs = append(errs, errors.New("remote must be non-empty"))
	}

	if c.HistoryEnabled && c.HistoryPath == "" {
		errs = append(errs, errors.New("history_path must be set when history_enabled is true"))
	}

	if c.LogFile != "" {
		if info, err := os.Stat(c.LogFile); err == nil && info.IsDir() {
			errs = append(errs, fmt.Errorf("log_file is a directory: %s", c.LogFile))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// ExpandPaths expands ~ to home directory in all path fields.
func (c *Config) ExpandPaths() error {
	if c.expandedPaths {
		return nil
	}

	var err error

	c.HistoryPath, err = expandPath(c.HistoryPath)
	if err != nil {
		return fmt.Errorf("failed to expand history_path: %w", err)
	}

	c.LogFile, err = expandPath(c.LogFile)
	if err != nil {
		return fmt.Errorf("failed to expand log_file: %w", err)
	}

	c.expandedPaths = true
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	return filepath.Clean(path), nil
}
