package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the bridge credentials and settings. It is read at the start
// of each operation and mutated only by explicit user action (pairing,
// settings edit).
type Config struct {
	ServerURL        string `toml:"server_url"`
	APIToken         string `toml:"api_token"`
	PairCode         string `toml:"pair_code"`
	TimeoutSeconds   int    `toml:"timeout_seconds"`
	AllowInsecureTLS bool   `toml:"allow_insecure_tls"`
	ImportCollection string `toml:"import_collection"`
}

const (
	defaultConfigPath       = "~/.config/store3d-bridge/config.toml"
	defaultServerURL        = "http://localhost:3000"
	defaultTimeoutSeconds   = 30
	minTimeoutSeconds       = 3
	defaultImportCollection = "Store3D Imports"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the settings used when no config file exists yet.
func Default() Config {
	return Config{
		ServerURL:        defaultServerURL,
		TimeoutSeconds:   defaultTimeoutSeconds,
		ImportCollection: defaultImportCollection,
	}
}

// Load locates and parses the bridge config, falling back to defaults when
// the file is missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(bytes, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.ServerURL = strings.TrimSpace(cfg.ServerURL)
	if cfg.ServerURL == "" {
		cfg.ServerURL = defaultServerURL
	}
	cfg.APIToken = strings.TrimSpace(cfg.APIToken)
	cfg.PairCode = strings.TrimSpace(cfg.PairCode)
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = defaultTimeoutSeconds
	}
	if cfg.TimeoutSeconds < minTimeoutSeconds {
		cfg.TimeoutSeconds = minTimeoutSeconds
	}
	cfg.ImportCollection = strings.TrimSpace(cfg.ImportCollection)

	return cfg, nil
}

// Save writes the config to the given path, creating directories as needed.
// Pairing uses this to persist the fresh token and clear the pair code.
func Save(path string, cfg Config) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	bytes, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// Timeout returns the request timeout as a duration, never below the
// enforced 3 second minimum.
func (c Config) Timeout() time.Duration {
	seconds := c.TimeoutSeconds
	if seconds < minTimeoutSeconds {
		seconds = minTimeoutSeconds
	}
	return time.Duration(seconds) * time.Second
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
