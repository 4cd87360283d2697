package client

import (
	"net/url"
	"strings"

	"github.com/energiapro-io/energiapro-client/pkg/energiapro"
)

// dataEndpoint serves all authenticated data operations; the operation is
// selected by the scope form field.
const dataEndpoint = "index.php"

// apiRequest is the contract every authenticated operation supplies to the
// session: field-level validation that runs before any network call, and the
// wire encoding of the request.
type apiRequest interface {
	Validate() error
	Endpoint() string
	FormData() url.Values
}

// installationsRequest lists the installations of a client account.
type installationsRequest struct {
	clientID string
}

const (
	installationsScope = "installation-lpn-list"

	// The installations operation has no target installation, but the API
	// still requires the field.
	installationsNumInstPlaceholder = "0"
)

// Validate implements apiRequest.
func (r *installationsRequest) Validate() error {
	if strings.TrimSpace(r.clientID) == "" {
		return &energiapro.InvalidArgumentError{Reason: "client_id cannot be empty"}
	}

	return nil
}

// Endpoint implements apiRequest.
func (r *installationsRequest) Endpoint() string {
	return dataEndpoint
}

// FormData implements apiRequest.
func (r *installationsRequest) FormData() url.Values {
	form := url.Values{}
	form.Set("scope", installationsScope)
	form.Set("client_id", r.clientID)
	form.Set("num_inst", installationsNumInstPlaceholder)

	return form
}

// measurementsRequest lists metering rows for one installation.
type measurementsRequest struct {
	request *energiapro.MeasurementsRequest
}

// Validate implements apiRequest.
func (r *measurementsRequest) Validate() error {
	return r.request.Validate()
}

// Endpoint implements apiRequest.
func (r *measurementsRequest) Endpoint() string {
	return dataEndpoint
}

// FormData implements apiRequest.
func (r *measurementsRequest) FormData() url.Values {
	form := url.Values{}
	form.Set("scope", string(r.request.ScopeOrDefault()))
	form.Set("client_id", r.request.ClientID)
	form.Set("num_inst", r.request.InstallationID)

	if r.request.From != "" {
		form.Set("date_debut", r.request.From)
	}

	if r.request.To != "" {
		form.Set("date_fin", r.request.To)
	}

	return form
}
