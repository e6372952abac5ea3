package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultHTTPTimeout   = 10 * time.Second
	maxResponseSizeBytes = 2 << 20
)

// restClient is the transport shared by every adapter. Each adapter embeds
// it with its own base URL; the per-call timeout lives on the http.Client.
type restClient struct {
	baseURL    string
	httpClient *http.Client
}

// Option customizes an adapter's transport. Tests use it to swap the HTTP
// client for a guarded or httptest one.
type Option func(*restClient)

func WithHTTPClient(client *http.Client) Option {
	return func(c *restClient) {
		if client != nil {
			c.httpClient = client
		}
	}
}

func newRESTClient(baseURL string, timeout time.Duration, opts ...Option) restClient {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	c := restClient{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return c
}

// getJSON performs one GET and decodes the body into out. The HTTP status is
// returned so adapters can map upstream error states; a non-2xx status is not
// an error by itself since several upstreams carry their failure details in
// the body.
func (c restClient) getJSON(ctx context.Context, rawURL string, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	if len(body) > 0 && out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// stringArg extracts a required string argument from a tool invocation.
func stringArg(args map[string]any, key string) (string, bool) {
	v, ok := args[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return s, true
}
