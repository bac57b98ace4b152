// Package config handles loading and saving the bridge's settings file.
//
// # Overview
//
// This package persists the bridge's connection settings and credentials as
// TOML. Unlike most config layers it is read-write: pairing stores the API
// token it obtains and clears the consumed pair code, and the settings
// commands write individual fields back.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/store3d-bridge/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/store3d-bridge/config.toml
//   - Server URL: http://localhost:3000
//   - Request timeout: 30 seconds (enforced minimum of 3)
//   - Import collection: "Store3D Imports"
//
// # TOML Format
//
// Example config.toml:
//
//	server_url = "https://store.example.com"
//	api_token = "st3d_..."
//	pair_code = ""
//	timeout_seconds = 30
//	allow_insecure_tls = false
//	import_collection = "Store3D Imports"
//
// All fields are optional. Tilde expansion is performed on the config path.
//
// # Reload Semantics
//
// Configuration is re-read at the start of every operation rather than held
// in memory, so edits made through the settings commands or by hand take
// effect on the next action without a restart.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//
// Missing config files are NOT an error. Defaults are used instead, so the
// bridge works out-of-the-box against a local server.
//
// # Logging
//
// SetupLogger in this package builds the process-wide slog.Logger: a text
// handler on stderr for interactive commands plus a JSON handler appending
// to ~/.local/state/store3d-bridge/bridge.log, fanned out together. The
// panel runs with the stderr handler suppressed so log lines cannot corrupt
// the terminal UI.
package config
