// Package http wraps the HTTP transport used for EnergiaPro API calls:
// form-encoded POSTs with optional bearer authentication, response body
// capture with UTF-8 BOM stripping, and optional debug logging.
package http

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/energiapro-io/energiapro-client/pkg/energiapro"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "energiapro-client/1.0"
)

// utf8BOM is the UTF-8 byte order mark some vendor responses are prefixed
// with, occasionally more than once.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Client posts form-encoded requests to the EnergiaPro API.
//
// It does not interpret response payloads: any HTTP status is returned to
// the caller together with the BOM-stripped body, and only network or I/O
// failures produce an error. Classification of vendor error payloads is the
// session's job.
type Client struct {
	httpClient *retryablehttp.Client
	baseURL    string
	userAgent  string
	logger     energiapro.Logger
	debug      bool
}

// Response is a captured HTTP response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Option configures the client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// WithRetryConfig enables transport-level retries for transient failures.
// Retries are disabled by default; the session's single re-authentication
// retry is independent of this setting.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger energiapro.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// NewClient creates a transport client for the given base URL. The base URL
// is expected to be normalized already (no trailing slash).
func NewClient(baseURL string, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil
	retryClient.HTTPClient.Timeout = defaultTimeout

	client := &Client{
		httpClient: retryClient,
		baseURL:    baseURL,
		userAgent:  defaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// PostForm sends a form-encoded POST to {baseURL}/{endpoint}. When
// bearerToken is non-empty it is sent as an Authorization header; the
// authentication endpoint itself is called without one.
func (c *Client) PostForm(ctx context.Context, endpoint string, form url.Values, bearerToken string) (*Response, error) {
	fullURL := c.baseURL + "/" + endpoint

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, fullURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &energiapro.TransportError{Err: err}
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	if bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+bearerToken)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": http.MethodPost,
			"url":    fullURL,
		})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &energiapro.TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &energiapro.TransportError{Err: err}
	}

	body = stripUTF8BOM(body)

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status": resp.StatusCode,
			"url":    fullURL,
			"bytes":  len(body),
		})
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}, nil
}

// stripUTF8BOM removes leading UTF-8 byte order marks from a payload before
// JSON parsing.
func stripUTF8BOM(body []byte) []byte {
	for bytes.HasPrefix(body, utf8BOM) {
		body = body[len(utf8BOM):]
	}

	return body
}
