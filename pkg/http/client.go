package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ClientOption configures Client.
type ClientOption func(*Client)

// Client is a JSON HTTP client bound to one upstream base URL. Default
// query params (API tokens) are merged into every request.
type Client struct {
	baseURL       string
	timeout       time.Duration
	defaultQuery  url.Values
	defaultHeader map[string]string
	client        *http.Client
}

// NewClient creates a new HTTP client for baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:       baseURL,
		timeout:       30 * time.Second,
		defaultQuery:  url.Values{},
		defaultHeader: map[string]string{},
	}

	for _, opt := range opts {
		opt(c)
	}

	c.client = &http.Client{Timeout: c.timeout}
	return c
}

// GetJSON issues GET baseURL+path?query and decodes the JSON response
// into dest. A nil dest discards the body.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, dest interface{}) error {
	req, err := c.buildRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	return c.do(req, dest)
}

// PostJSON issues POST baseURL+path with a JSON-encoded body and
// decodes the JSON response into dest.
func (c *Client) PostJSON(ctx context.Context, path string, body interface{}, dest interface{}) error {
	var buf io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		buf = bytes.NewReader(encoded)
	}

	req, err := c.buildRequest(ctx, http.MethodPost, path, nil, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, dest)
}

func (c *Client) buildRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	q := req.URL.Query()
	for key, values := range c.defaultQuery {
		for _, value := range values {
			q.Add(key, value)
		}
	}
	for key, values := range query {
		for _, value := range values {
			q.Add(key, value)
		}
	}
	req.URL.RawQuery = q.Encode()

	for key, value := range c.defaultHeader {
		req.Header.Set(key, value)
	}

	return req, nil
}

func (c *Client) do(req *http.Request, dest interface{}) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body)
	}

	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}

// WithTimeout sets client timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithQueryParam adds a query param sent on every request.
func WithQueryParam(key, value string) ClientOption {
	return func(c *Client) {
		c.defaultQuery.Add(key, value)
	}
}

// WithHeader adds a header sent on every request.
func WithHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.defaultHeader[key] = value
	}
}
