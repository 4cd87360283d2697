package energiapro

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Default configuration values.
const (
	// DefaultBaseURL is the production EnergiaPro customer API.
	DefaultBaseURL = "https://web2.holdigaz.ch/espace-client-api/api"

	// DefaultTimeout is the default per-request HTTP timeout.
	DefaultTimeout = 30 * time.Second
)

// Config holds the configuration for an EnergiaPro API client.
type Config struct {
	// Username is the EnergiaPro API username. Required.
	Username string

	// SecretKey is the long-lived EnergiaPro secret key. It is never sent
	// over the wire directly; every authentication attempt sends a fresh
	// one-time salted hash of it. Required.
	SecretKey string

	// BaseURL is the API base URL. Defaults to DefaultBaseURL. Must be an
	// absolute https URL.
	BaseURL string

	// Timeout is the per-request HTTP timeout. Defaults to DefaultTimeout.
	Timeout time.Duration

	// RetryMax is the number of transport-level retries for transient
	// failures. Zero (the default) disables them; the single re-auth retry
	// on a rejected token is independent of this setting.
	RetryMax int

	// RetryWaitMin and RetryWaitMax bound the wait between transport-level
	// retries when RetryMax is set.
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// UserAgent overrides the User-Agent header sent with every request.
	UserAgent string

	// Logger receives debug logging from the HTTP transport when Debug is
	// set. Optional.
	Logger Logger

	// Debug enables request/response logging through Logger.
	Debug bool
}

// Validate checks the configuration without making any network call.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Username) == "" {
		return &InvalidArgumentError{Reason: "username cannot be empty"}
	}

	if strings.TrimSpace(c.SecretKey) == "" {
		return &InvalidArgumentError{Reason: "secret_key cannot be empty"}
	}

	_, err := NormalizeBaseURL(c.BaseURLOrDefault())

	return err
}

// BaseURLOrDefault returns the configured base URL, or DefaultBaseURL when
// unset.
func (c *Config) BaseURLOrDefault() string {
	if strings.TrimSpace(c.BaseURL) == "" {
		return DefaultBaseURL
	}

	return c.BaseURL
}

// TimeoutOrDefault returns the configured timeout, or DefaultTimeout when
// unset.
func (c *Config) TimeoutOrDefault() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}

	return c.Timeout
}

// NormalizeBaseURL validates a base URL and returns it without trailing
// slashes. The URL must be absolute and use the https scheme; anything else
// is a configuration error raised at client construction, not at request
// time.
func NormalizeBaseURL(raw string) (string, error) {
	normalized := strings.TrimRight(strings.TrimSpace(raw), "/")
	if normalized == "" {
		return "", &InvalidArgumentError{Reason: "base_url cannot be empty"}
	}

	parsed, err := url.Parse(normalized)
	if err != nil {
		return "", &InvalidArgumentError{Reason: fmt.Sprintf("base_url %q is not a valid URL", raw)}
	}

	if parsed.Scheme != "https" {
		return "", &InvalidArgumentError{Reason: fmt.Sprintf("base_url %q must use the https scheme", raw)}
	}

	if parsed.Host == "" {
		return "", &InvalidArgumentError{Reason: fmt.Sprintf("base_url %q must be an absolute URL", raw)}
	}

	return normalized, nil
}

// Logger is the interface for debug logging from the HTTP transport.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}
