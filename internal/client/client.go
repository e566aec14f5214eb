// Package client talks to the estimate HTTP API. It is the transport used by
// the CLI front-end: it submits form drafts for rendering or saving and
// reads back stored estimates.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the local development server.
const DefaultBaseURL = "http://localhost:3000"

const defaultTimeout = 30 * time.Second

// Client is an estimate API client. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
	log        *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client (30s timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithClock overrides the time source for locally derived filenames.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// New creates a Client for baseURL. An empty baseURL selects DefaultBaseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		now:        time.Now,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("component", "client")
	return c
}

// do sends a request and returns the response when the status is 2xx. On
// any other status the body is drained and a *TransportError is returned.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body any) (*http.Response, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, &TransportError{Op: op, Message: "encode request", Err: err}
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return nil, &TransportError{Op: op, Message: "create request", Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	c.log.DebugContext(ctx, "api request", slog.String("op", op), slog.String("method", method), slog.String("url", reqURL))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WarnContext(ctx, "api request failed", slog.String("op", op), slog.String("error", err.Error()))
		return nil, &TransportError{Op: op, Message: "request failed", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, &TransportError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    serverMessage(resp),
		}
	}
	return resp, nil
}

// getJSON performs a request and decodes a JSON response into dst.
func (c *Client) getJSON(ctx context.Context, op, method, path string, query url.Values, body, dst any) error {
	resp, err := c.do(ctx, op, method, path, query, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return &TransportError{Op: op, StatusCode: resp.StatusCode, Message: "decode response", Err: err}
	}
	return nil
}

// serverMessage extracts {"error": ...} from an error response, falling back
// to the status text.
func serverMessage(resp *http.Response) string {
	var envelope struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if json.Unmarshal(data, &envelope) == nil && envelope.Error != "" {
		if envelope.Details != "" {
			return envelope.Error + ": " + envelope.Details
		}
		return envelope.Error
	}
	return fmt.Sprintf("unexpected status %d", resp.StatusCode)
}
