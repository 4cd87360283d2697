// Package client implements the EnergiaPro API client: the authenticated
// request session, the per-operation request contracts, and the response
// fix-ups applied before typed decoding.
package client

import (
	"context"
	"net/http"

	"github.com/energiapro-io/energiapro-client/internal/auth"
	internalhttp "github.com/energiapro-io/energiapro-client/internal/http"
	"github.com/energiapro-io/energiapro-client/pkg/energiapro"
)

// Client implements energiapro.Client.
type Client struct {
	transport *internalhttp.Client
	tokens    *auth.Manager

	installations *InstallationsClient
	measurements  *MeasurementsClient
}

// New creates a client from the given configuration. Credentials and base
// URL are validated here so misconfiguration fails before any network call.
func New(config *energiapro.Config) (*Client, error) {
	err := config.Validate()
	if err != nil {
		return nil, err
	}

	baseURL, err := energiapro.NormalizeBaseURL(config.BaseURLOrDefault())
	if err != nil {
		return nil, err
	}

	transport := internalhttp.NewClient(baseURL, transportOptions(config)...)

	client := &Client{
		transport: transport,
		tokens:    auth.NewManager(transport, config.Username, config.SecretKey),
	}

	client.installations = NewInstallationsClient(client)
	client.measurements = NewMeasurementsClient(client)

	return client, nil
}

// transportOptions builds transport options from the configuration.
func transportOptions(config *energiapro.Config) []internalhttp.Option {
	opts := []internalhttp.Option{
		internalhttp.WithTimeout(config.TimeoutOrDefault()),
	}

	if config.Logger != nil {
		opts = append(opts, internalhttp.WithLogger(config.Logger))
	}

	if config.Debug {
		opts = append(opts, internalhttp.WithDebug(true))
	}

	if config.UserAgent != "" {
		opts = append(opts, internalhttp.WithUserAgent(config.UserAgent))
	}

	if config.RetryMax > 0 {
		opts = append(opts, internalhttp.WithRetryConfig(config.RetryMax, config.RetryWaitMin, config.RetryWaitMax))
	}

	return opts
}

// Installations implements energiapro.Client.Installations.
func (c *Client) Installations() energiapro.InstallationsClient {
	return c.installations
}

// Measurements implements energiapro.Client.Measurements.
func (c *Client) Measurements() energiapro.MeasurementsClient {
	return c.measurements
}

// send executes one authenticated API call and returns the raw success
// payload.
//
// The loop is bounded to exactly one retry: when the API classifies the
// response as a token rejection on the first attempt, the cached token is
// cleared and the call restarted with a fresh one. A second rejection is
// returned to the caller, so no send ever issues more than two attempts.
func (c *Client) send(ctx context.Context, request apiRequest) ([]byte, error) {
	err := request.Validate()
	if err != nil {
		return nil, err
	}

	retried := false

	for {
		token, err := c.tokens.Obtain(ctx)
		if err != nil {
			return nil, err
		}

		resp, err := c.transport.PostForm(ctx, request.Endpoint(), request.FormData(), token)
		if err != nil {
			return nil, err
		}

		// A vendor error payload is classified the same way whether it
		// arrived with a 2xx status or not.
		if apiErr := energiapro.ParseAPIError(resp.Body); apiErr != nil {
			if apiErr.Code.IsTokenError() && !retried {
				c.tokens.Clear()

				retried = true

				continue
			}

			return nil, apiErr
		}

		if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
			return nil, energiapro.NewHTTPStatusError(resp.StatusCode, request.Endpoint(), resp.Body)
		}

		return resp.Body, nil
	}
}
