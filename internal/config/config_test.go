package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ServerURL != defaultServerURL {
		t.Fatalf("ServerURL = %q, want %q", cfg.ServerURL, defaultServerURL)
	}
	if cfg.TimeoutSeconds != defaultTimeoutSeconds {
		t.Fatalf("TimeoutSeconds = %d, want %d", cfg.TimeoutSeconds, defaultTimeoutSeconds)
	}
	if cfg.ImportCollection != defaultImportCollection {
		t.Fatalf("ImportCollection = %q, want %q", cfg.ImportCollection, defaultImportCollection)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
server_url = "  https://store.example.com  "
api_token = "  tok-123  "
pair_code = " a1b2 "
timeout_seconds = 45
import_collection = "  My Imports  "
allow_insecure_tls = true
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ServerURL != "https://store.example.com" {
		t.Fatalf("ServerURL = %q, want trimmed URL", cfg.ServerURL)
	}
	if cfg.APIToken != "tok-123" {
		t.Fatalf("APIToken = %q, want %q", cfg.APIToken, "tok-123")
	}
	if cfg.PairCode != "a1b2" {
		t.Fatalf("PairCode = %q, want %q", cfg.PairCode, "a1b2")
	}
	if cfg.TimeoutSeconds != 45 {
		t.Fatalf("TimeoutSeconds = %d, want 45", cfg.TimeoutSeconds)
	}
	if cfg.ImportCollection != "My Imports" {
		t.Fatalf("ImportCollection = %q, want %q", cfg.ImportCollection, "My Imports")
	}
	if !cfg.AllowInsecureTLS {
		t.Fatalf("AllowInsecureTLS = false, want true")
	}
}

func TestLoad_TimeoutBelowMinimumIsClamped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("timeout_seconds = 1\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.TimeoutSeconds != minTimeoutSeconds {
		t.Fatalf("TimeoutSeconds = %d, want clamped to %d", cfg.TimeoutSeconds, minTimeoutSeconds)
	}
	if cfg.Timeout() != time.Duration(minTimeoutSeconds)*time.Second {
		t.Fatalf("Timeout() = %v, want %v", cfg.Timeout(), time.Duration(minTimeoutSeconds)*time.Second)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`server_url = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	want := Config{
		ServerURL:        "https://store.example.com",
		APIToken:         "tok-xyz",
		TimeoutSeconds:   10,
		ImportCollection: "Store3D Imports",
	}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got != want {
		t.Fatalf("round trip = %#v, want %#v", got, want)
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
