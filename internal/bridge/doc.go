// Package bridge provides the HTTP client for the Store-3D job queue API.
//
// # Overview
//
// The bridge package owns everything that crosses the wire: pairing a
// one-time code for an API token, listing queued jobs, acknowledging job
// status transitions, and downloading model payloads into temporary files.
// It knows nothing about Blender or the import pipeline.
//
// # API Endpoints
//
//   - PUT  /api/dcc/blender/pair            exchange pair code for token (unauthenticated)
//   - GET  /api/dcc/blender/jobs?status=queued  list queued jobs
//   - POST /api/dcc/blender/jobs/{id}/ack   report a status transition
//
// Authenticated requests carry Authorization: Bearer <token> and
// Accept: application/json. JSON bodies are sent with
// Content-Type: application/json. Payload downloads attach the token when
// present but do not require one, since download URLs may be pre-signed.
//
// # Leniency
//
// Job discovery is deliberately forgiving: a response whose jobs field is
// absent or not an array decodes to an empty list instead of an error, so a
// half-broken server never wedges the poll loop. Individual job entries are
// accepted as-is; the runner validates the fields it needs at time of use.
//
// # Error Handling
//
// Failures are classified with sentinel errors usable via errors.Is:
//
//   - ErrConfig: missing/malformed URL, token, or pair code (no I/O done)
//   - ErrNetwork: transport failure or timeout
//   - ErrProtocol: non-2xx status or unexpected response shape
//
// Non-2xx responses are reduced to one readable line, preferring the
// server's own "error" or "message" JSON fields, then the raw body, then a
// bare "HTTP <code>".
package bridge
