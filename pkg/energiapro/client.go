package energiapro

import "context"

// Client is the high-level interface for the EnergiaPro customer API.
//
// A Client owns one cached authentication token and transparently refreshes
// it: the first data call authenticates, later calls reuse the cached token,
// and a call whose token is rejected by the API re-authenticates once before
// giving up. A single Client is safe for concurrent use.
type Client interface {
	// Installations returns the client for installation operations.
	Installations() InstallationsClient

	// Measurements returns the client for measurement operations.
	Measurements() MeasurementsClient
}

// InstallationsClient lists the installations attached to a client account.
type InstallationsClient interface {
	// List returns every installation visible to the given client id.
	List(ctx context.Context, clientID string) ([]Installation, error)
}

// MeasurementsClient lists metering rows for an installation.
type MeasurementsClient interface {
	// List returns the measurements matching the request.
	List(ctx context.Context, request *MeasurementsRequest) ([]Measurement, error)
}
