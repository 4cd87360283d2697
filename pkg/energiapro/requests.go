package energiapro

import (
	"strings"
	"time"
)

// dateLayout is the only accepted calendar date form for range bounds.
const dateLayout = "2006-01-02"

// MeasurementsRequest describes a measurements query. ClientID and
// InstallationID are required; Scope defaults to ScopeLpnJSON; From and To
// optionally bound the range and must be canonical YYYY-MM-DD dates.
type MeasurementsRequest struct {
	ClientID       string
	InstallationID string
	Scope          MeasurementScope
	From           string
	To             string
}

// ScopeOrDefault returns the requested scope, or ScopeLpnJSON when unset.
func (r *MeasurementsRequest) ScopeOrDefault() MeasurementScope {
	if strings.TrimSpace(string(r.Scope)) == "" {
		return ScopeLpnJSON
	}

	return r.Scope
}

// Validate checks the request fields without making any network call.
func (r *MeasurementsRequest) Validate() error {
	if strings.TrimSpace(string(r.ScopeOrDefault())) == "" {
		return &InvalidArgumentError{Reason: "scope cannot be empty"}
	}

	if strings.TrimSpace(r.ClientID) == "" {
		return &InvalidArgumentError{Reason: "client_id cannot be empty"}
	}

	if strings.TrimSpace(r.InstallationID) == "" {
		return &InvalidArgumentError{Reason: "installation_id cannot be empty"}
	}

	var from, to time.Time

	if r.From != "" {
		parsed, err := parseDateArgument("from", r.From)
		if err != nil {
			return err
		}

		from = parsed
	}

	if r.To != "" {
		parsed, err := parseDateArgument("to", r.To)
		if err != nil {
			return err
		}

		to = parsed
	}

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return &InvalidArgumentError{Reason: "from must be less than or equal to to"}
	}

	return nil
}

// parseDateArgument parses a YYYY-MM-DD date and rejects any non-canonical
// rendering of it: the parsed date must re-serialize to exactly the input, so
// forms like 2024-4-1 fail even though they denote a valid date.
func parseDateArgument(field, value string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, value)
	if err != nil || parsed.Format(dateLayout) != value {
		return time.Time{}, &InvalidArgumentError{Reason: field + " must be in YYYY-MM-DD format"}
	}

	return parsed, nil
}
