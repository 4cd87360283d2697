package client

import (
	"context"
	"encoding/json"

	"github.com/energiapro-io/energiapro-client/pkg/energiapro"
)

// InstallationsClient implements energiapro.InstallationsClient.
type InstallationsClient struct {
	client *Client
}

// NewInstallationsClient creates a new installations client.
func NewInstallationsClient(client *Client) *InstallationsClient {
	return &InstallationsClient{client: client}
}

// List implements energiapro.InstallationsClient.List.
func (c *InstallationsClient) List(ctx context.Context, clientID string) ([]energiapro.Installation, error) {
	payload, err := c.client.send(ctx, &installationsRequest{clientID: clientID})
	if err != nil {
		return nil, err
	}

	var installations []energiapro.Installation

	err = json.Unmarshal(payload, &installations)
	if err != nil {
		return nil, &energiapro.DecodeError{Err: err}
	}

	return installations, nil
}
