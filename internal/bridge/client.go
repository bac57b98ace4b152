package bridge

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the Store-3D bridge HTTP API.
type Client struct {
	baseURL   *url.URL
	token     string
	http      *http.Client
	userAgent string
}

const (
	defaultUserAgent = "store3d-bridge/0.1"
	minTimeout       = 3 * time.Second
	defaultTimeout   = 30 * time.Second

	pairPath = "/api/dcc/blender/pair"
	jobsPath = "/api/dcc/blender/jobs"
)

// Options configure a Client. Token may be empty for clients that only pair
// or download pre-signed URLs.
type Options struct {
	BaseURL          string
	Token            string
	Timeout          time.Duration
	AllowInsecureTLS bool
}

// NewClient validates the base URL and builds a Client. The timeout is
// clamped to a 3 second minimum; AllowInsecureTLS disables certificate
// verification for local self-signed setups.
func NewClient(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if timeout < minTimeout {
		timeout = minTimeout
	}

	httpClient := &http.Client{Timeout: timeout}
	if opts.AllowInsecureTLS {
		httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	return &Client{
		baseURL:   base,
		token:     strings.TrimSpace(opts.Token),
		http:      httpClient,
		userAgent: defaultUserAgent,
	}, nil
}

// HasToken reports whether the client carries a bearer token.
func (c *Client) HasToken() bool {
	return c != nil && c.token != ""
}

// Pair exchanges a one-time code for a long-lived API token. The code is
// normalized (trimmed, upper-cased) and must be non-empty. The request is
// unauthenticated. Persisting the returned token is the caller's job.
func (c *Client) Pair(ctx context.Context, code string) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return "", fmt.Errorf("%w: pair code is empty", ErrConfig)
	}

	var payload pairResponse
	rel := &url.URL{Path: pairPath}
	if err := c.doJSON(ctx, http.MethodPut, rel, pairRequest{Code: normalized}, &payload, false); err != nil {
		return "", err
	}

	token := strings.TrimSpace(payload.Token)
	if token == "" {
		return "", fmt.Errorf("%w: pairing response does not contain token", ErrProtocol)
	}
	return token, nil
}

// FetchQueuedJobs lists jobs waiting for this client, in server order. A
// missing or malformed jobs field in the response yields an empty slice,
// not an error.
func (c *Client) FetchQueuedJobs(ctx context.Context) ([]Job, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if c.token == "" {
		return nil, fmt.Errorf("%w: API token is not set", ErrConfig)
	}

	values := url.Values{}
	values.Set("status", string(StatusQueued))
	rel := &url.URL{Path: jobsPath, RawQuery: values.Encode()}

	var payload jobListResponse
	if err := c.doJSON(ctx, http.MethodGet, rel, nil, &payload, true); err != nil {
		return nil, err
	}
	return payload.decodeJobs(), nil
}

// AckJob reports a job status transition to the server. Message is optional
// human-readable context.
func (c *Client) AckJob(ctx context.Context, jobID string, status Status, message string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(jobID) == "" {
		return fmt.Errorf("%w: job id is empty", ErrConfig)
	}
	if c.token == "" {
		return fmt.Errorf("%w: API token is not set", ErrConfig)
	}

	rel := &url.URL{Path: jobsPath + "/" + url.PathEscape(jobID) + "/ack"}
	return c.doJSON(ctx, http.MethodPost, rel, ackRequest{Status: status, Message: message}, nil, true)
}

func (c *Client) doJSON(ctx context.Context, method string, rel *url.URL, body, dest any, auth bool) error {
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return httpError(resp)
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrProtocol, err)
	}
	return nil
}

// httpError turns a non-2xx response into a single readable message,
// preferring the server's own error/message fields over the raw body.
func httpError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	message := strings.TrimSpace(string(raw))

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if m := strings.TrimSpace(payload.Error); m != "" {
			message = m
		} else if m := strings.TrimSpace(payload.Message); m != "" {
			message = m
		}
	}

	if message == "" {
		return fmt.Errorf("%w: HTTP %d", ErrProtocol, resp.StatusCode)
	}
	return fmt.Errorf("%w: HTTP %d: %s", ErrProtocol, resp.StatusCode, message)
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(raw), "/")
	if trimmed == "" {
		return nil, fmt.Errorf("%w: server URL is not set", ErrConfig)
	}
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		return nil, fmt.Errorf("%w: server URL must start with http:// or https://", ErrConfig)
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: parse server URL %q: %v", ErrConfig, raw, err)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
