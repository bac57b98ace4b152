package bridge

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// TempPayload is a downloaded job payload on disk. It is owned by exactly
// one run and must be released via Cleanup on every exit path.
type TempPayload struct {
	Path   string
	Suffix string
}

// Cleanup removes the payload file. Removal failures are swallowed so that
// cleanup never masks the run's primary outcome.
func (p TempPayload) Cleanup() {
	if p.Path == "" {
		return
	}
	_ = os.Remove(p.Path)
}

// Download fetches the job payload into a temporary file with the given
// suffix. The bearer token is attached when present but is not required:
// download URLs may be pre-signed.
func (c *Client) Download(ctx context.Context, rawURL, suffix string) (TempPayload, error) {
	if c == nil {
		return TempPayload{}, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(rawURL) == "" {
		return TempPayload{}, fmt.Errorf("%w: download URL is empty", ErrConfig)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimSpace(rawURL), nil)
	if err != nil {
		return TempPayload{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return TempPayload{}, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return TempPayload{}, httpError(resp)
	}

	file, err := os.CreateTemp("", "store3d_bridge_*"+suffix)
	if err != nil {
		return TempPayload{}, fmt.Errorf("create temp file: %w", err)
	}

	if _, err := io.Copy(file, resp.Body); err != nil {
		_ = file.Close()
		_ = os.Remove(file.Name())
		return TempPayload{}, fmt.Errorf("%w: write payload: %v", ErrNetwork, err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(file.Name())
		return TempPayload{}, fmt.Errorf("close temp file: %w", err)
	}

	return TempPayload{Path: file.Name(), Suffix: suffix}, nil
}
