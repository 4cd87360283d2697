// Package eproclient provides the main entry point for creating EnergiaPro API clients
package eproclient

import (
	"fmt"

	"github.com/energiapro-io/energiapro-client/internal/client"
	"github.com/energiapro-io/energiapro-client/pkg/energiapro"
)

// New creates a new EnergiaPro API client.
//
// Construction validates the credentials and base URL without making any
// network call; the first data call authenticates lazily.
func New(config *energiapro.Config) (energiapro.Client, error) {
	if config == nil {
		return nil, &energiapro.InvalidArgumentError{Reason: "config is required"}
	}

	cli, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return cli, nil
}
