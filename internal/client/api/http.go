// Package api is the HTTP wrapper around the DeckPilot REST API. It attaches
// bearer credentials, normalizes the response envelope and maps failures to
// typed errors. It deliberately does not manage session state: on a 401 the
// session layer clears itself, not this package.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/deckpilot/deckpilot/internal/common"
	"github.com/deckpilot/deckpilot/internal/logging"
)

// TokenProvider supplies the current bearer token, or "" when anonymous.
type TokenProvider interface {
	Token() string
}

// TokenFunc adapts a plain function to TokenProvider.
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

// envelope is the server's uniform response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *errorBody      `json:"error,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HTTPClient talks to one DeckPilot server.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenProvider
	log     logging.Logger
}

// Option customizes an HTTPClient.
type Option func(*HTTPClient)

// WithTokenProvider sets the source of the bearer token.
func WithTokenProvider(tp TokenProvider) Option {
	return func(c *HTTPClient) { c.tokens = tp }
}

// WithHTTPClient replaces the underlying transport.
func WithHTTPClient(h *http.Client) Option {
	return func(c *HTTPClient) { c.http = h }
}

// WithTimeout sets the per-request timeout on the underlying transport.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.http.Timeout = d }
}

// WithLogger attaches a logger for request diagnostics.
func WithLogger(log logging.Logger) Option {
	return func(c *HTTPClient) { c.log = log }
}

// New constructs a client for the given base URL (scheme://host[:port]).
func New(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL returns the configured server base URL.
func (c *HTTPClient) BaseURL() string { return c.baseURL }

// token returns the current bearer token or "".
func (c *HTTPClient) token() string {
	if c.tokens == nil {
		return ""
	}
	return c.tokens.Token()
}

// do issues a JSON request and decodes the envelope's data into out
// (skipped when out is nil).
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

// upload issues a multipart/form-data request with one file part plus
// optional form fields.
func (c *HTTPClient) upload(ctx context.Context, path string, fields map[string]string, fileField, filename string, file io.Reader, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return fmt.Errorf("encode form field %s: %w", k, err)
		}
	}

	part, err := mw.CreateFormFile(fileField, filename)
	if err != nil {
		return fmt.Errorf("encode file part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("read upload payload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.send(req, out)
}

func (c *HTTPClient) send(req *http.Request, out any) error {
	if tok := c.token(); tok != "" {
		req.Header.Set(common.AuthHeaderName, common.BearerPrefix+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", common.ErrUnavailable, err)
	}

	var env envelope
	parsed := false
	if len(raw) > 0 {
		// A non-JSON body (proxy error page etc.) is treated like a missing
		// envelope; the status code alone then decides the outcome.
		parsed = json.Unmarshal(raw, &env) == nil
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 || (parsed && !env.Success) {
		apiErr := &APIError{HTTPStatus: resp.StatusCode}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		} else if env.Message != "" {
			apiErr.Message = env.Message
		}
		if c.log != nil {
			c.log.Debug(req.Context(), "api error",
				"method", req.Method, "path", req.URL.Path,
				"status", resp.StatusCode, "code", apiErr.Code)
		}
		return apiErr
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
