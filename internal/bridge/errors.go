package bridge

import "errors"

// Sentinel errors for the failure classes the API client can report.
// Callers match with errors.Is; the wrapped message stays human readable.
var (
	// ErrConfig indicates missing or malformed client configuration
	// (server URL, token, pair code). Raised before any network I/O.
	ErrConfig = errors.New("configuration error")

	// ErrNetwork indicates a transport-level failure: connection refused,
	// DNS failure, timeout.
	ErrNetwork = errors.New("network error")

	// ErrProtocol indicates the server answered with an error status or a
	// response shape the client does not understand.
	ErrProtocol = errors.New("protocol error")
)
