package client

import (
	"context"
	"encoding/json"

	"github.com/energiapro-io/energiapro-client/pkg/energiapro"
)

// MeasurementsClient implements energiapro.MeasurementsClient.
type MeasurementsClient struct {
	client *Client
}

// NewMeasurementsClient creates a new measurements client.
func NewMeasurementsClient(client *Client) *MeasurementsClient {
	return &MeasurementsClient{client: client}
}

// List implements energiapro.MeasurementsClient.List.
func (c *MeasurementsClient) List(ctx context.Context, request *energiapro.MeasurementsRequest) ([]energiapro.Measurement, error) {
	payload, err := c.client.send(ctx, &measurementsRequest{request: request})
	if err != nil {
		return nil, err
	}

	payload = ensureInstallationID(payload, request.InstallationID)

	var measurements []energiapro.Measurement

	err = json.Unmarshal(payload, &measurements)
	if err != nil {
		return nil, &energiapro.DecodeError{Err: err}
	}

	return measurements, nil
}
