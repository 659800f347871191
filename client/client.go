// Package client talks to the catalog API on behalf of the admin console.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"catalog/models"
)

// DefaultBaseURL is used when no API address is configured.
const DefaultBaseURL = "http://localhost:3001/api"

// Error is the only error shape returned by Client calls. Status is 0 when
// the request never produced a response.
type Error struct {
	Status  int
	Kind    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is an API error with status 404.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

type envelope struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message"`
	Data       json.RawMessage    `json:"data"`
	Pagination *models.Pagination `json:"pagination"`
	Error      string             `json:"error"`
}

// Client is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do sends body as JSON and decodes the envelope's data into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Message: fmt.Sprintf("encode request: %v", err), Err: err}
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &Error{Message: err.Error(), Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	return c.send(req, out)
}

// send applies the two-tier error contract: a non-2xx status fails with the
// server's message, and so does a 2xx body whose success flag is false.
func (c *Client) send(req *http.Request, out any) (*envelope, error) {
	raw, err := c.exchange(req)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &Error{Message: fmt.Sprintf("decode response: %v", err), Err: err}
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = "request failed"
		}
		return nil, &Error{Kind: env.Error, Message: msg}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, &Error{Message: fmt.Sprintf("decode response data: %v", err), Err: err}
		}
	}
	return &env, nil
}

// exchange performs req and returns the body of a 2xx response.
func (c *Client) exchange(req *http.Request) ([]byte, error) {
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Status: resp.StatusCode, Message: fmt.Sprintf("read response: %v", err), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("HTTP error! status: %d", resp.StatusCode),
		}
		var env envelope
		if json.Unmarshal(raw, &env) == nil {
			apiErr.Kind = env.Error
			if env.Message != "" {
				apiErr.Message = env.Message
			}
		}
		return nil, apiErr
	}
	return raw, nil
}

// Health is the server's liveness report.
type Health struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    float64   `json:"uptime"`
}

// Health queries the liveness endpoint, which sits beside the API root.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.serverURL()+"/health", nil)
	if err != nil {
		return nil, &Error{Message: err.Error(), Err: err}
	}
	raw, err := c.exchange(req)
	if err != nil {
		return nil, err
	}

	var h Health
	if err := json.Unmarshal(raw, &h); err != nil {
		return nil, &Error{Message: fmt.Sprintf("decode health: %v", err), Err: err}
	}
	return &h, nil
}

// serverURL strips the /api suffix from the base URL.
func (c *Client) serverURL() string {
	return strings.TrimSuffix(c.baseURL, "/api")
}
