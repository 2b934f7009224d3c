// ABOUTME: HTTP client core for the chatbot backend API
// ABOUTME: Request building, credential attachment, and error normalization

package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Credentials supplies the bearer token and session identity attached to
// every request. The gateway client only reads credentials; their
// lifecycle (login, expiry, teardown) is owned by the session package.
type Credentials interface {
	Token() string
	SessionID() string
}

// Error is the single error shape returned by every client method.
// Message is safe to show an operator; Cause carries the underlying
// transport or decoding error, if any.
type Error struct {
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Client talks to the chatbot backend. All methods are safe for
// concurrent use; the client holds no mutable state beyond the
// underlying http.Client connection pool.
type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      Credentials
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. Used by tests and
// by callers that need custom transport settings.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout on the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// New creates a Client for the backend at baseURL. A trailing slash on
// baseURL is tolerated. creds may be nil for unauthenticated probes.
func New(baseURL string, creds Credentials, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		creds:      creds,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured backend URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do builds and executes one request, decoding a JSON response into out
// when out is non-nil. wantStatus is the expected success status; any
// other status becomes a normalized *Error, preferring the backend's
// {"error": "..."} body message when present.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, wantStatus int, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Message: "encoding request", Cause: err}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return &Error{Message: "creating request", Cause: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.attachCredentials(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Message: "contacting gateway", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return &Error{Message: errorMessage(resp)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &Error{Message: "parsing response", Cause: err}
		}
	}
	return nil
}

// attachCredentials adds the bearer header and session cookie when a
// credential source is configured.
func (c *Client) attachCredentials(req *http.Request) {
	if c.creds == nil {
		return
	}
	if token := c.creds.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if sid := c.creds.SessionID(); sid != "" {
		req.AddCookie(&http.Cookie{Name: "session_id", Value: sid})
	}
}

// errorMessage extracts a display message from a non-success response.
// The backend reports failures as {"error": "..."}; anything else falls
// back to the HTTP status.
func errorMessage(resp *http.Response) string {
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		var payload struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
			return payload.Error
		}
	}
	return fmt.Sprintf("gateway returned status %d", resp.StatusCode)
}
