// Package transport provides the single configured HTTP client the stores
// share. It attaches the bearer token to every outgoing request, normalizes
// transport failures into a uniform error shape, and enforces the global
// "expired session means forced logout" policy at the 401 boundary.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/agentstation/eventhub/pkg/constants"
	"github.com/agentstation/eventhub/pkg/errors"
	"github.com/agentstation/eventhub/pkg/logging"
)

// TokenProvider supplies the current bearer token. An empty string means the
// request goes out unauthenticated. Injected rather than read from ambient
// storage so tests can fake sessions.
type TokenProvider interface {
	Token() string
}

// TokenProviderFunc adapts a function to the TokenProvider interface.
type TokenProviderFunc func() string

// Token implements TokenProvider.
func (f TokenProviderFunc) Token() string { return f() }

// Client is the shared HTTP client for the EventHub API.
type Client struct {
	http           *http.Client
	baseURL        string
	tokens         TokenProvider
	onUnauthorized func()
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithUnauthorizedHandler sets the callback invoked when the server rejects
// an authenticated, non-public request with 401.
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) {
		c.onUnauthorized = fn
	}
}

// New creates a transport client for the API at baseURL.
func New(baseURL string, tokens TokenProvider, opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{Timeout: constants.DefaultHTTPTimeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs a GET request and decodes the response into target.
func (c *Client) Get(ctx context.Context, path string, target any) error {
	return c.do(ctx, http.MethodGet, path, nil, target)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, target any) error {
	return c.do(ctx, http.MethodPost, path, body, target)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, target any) error {
	return c.do(ctx, http.MethodPut, path, body, target)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, target any) error {
	return c.do(ctx, http.MethodDelete, path, nil, target)
}

func (c *Client) do(ctx context.Context, method, path string, body, target any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating %s %s request: %w", method, path, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(constants.RequestIDHeader, uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	logging.Ctx(ctx).Debug().Str("method", method).Str("path", path).Msg("API request")

	resp, err := c.http.Do(req)
	if err != nil {
		// No transport-level reply. Callers see one uniform error shape
		// regardless of DNS failures, refused connections, or timeouts.
		return errors.WrapNetwork(method, path, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapNetwork(method, path, err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &errors.APIError{
			StatusCode:    resp.StatusCode,
			Endpoint:      path,
			ServerMessage: serverMessage(data),
		}
		if resp.StatusCode == http.StatusUnauthorized && c.forcesLogout(method, path) {
			apiErr.Err = errors.ErrSessionExpired
			if c.onUnauthorized != nil {
				c.onUnauthorized()
			}
		}
		return apiErr
	}

	if target != nil && len(data) > 0 {
		if err := json.Unmarshal(data, target); err != nil {
			return fmt.Errorf("decoding %s %s response: %w", method, path, err)
		}
	}
	return nil
}

// forcesLogout decides whether a 401 on this request invalidates the whole
// session. Login and signup report bad credentials through their own error
// paths, and unauthenticated public browsing of events must never bounce an
// anonymous visitor to the login screen.
func (c *Client) forcesLogout(method, path string) bool {
	if path == "/auth/login" || path == "/auth/signup" {
		return false
	}
	if method == http.MethodGet && strings.HasPrefix(path, "/events") && !strings.Contains(path, "/register") {
		return false
	}
	return true
}

// serverMessage extracts the error wording from an API error payload.
// The backend uses {"error": "..."} with {"message": "..."} as a fallback.
func serverMessage(data []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Message
}
