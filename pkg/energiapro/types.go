package energiapro

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// MeasurementScope is the scope value sent to the measurements endpoint.
type MeasurementScope string

// Known measurement scopes. Any other value is passed through to the API
// verbatim, so future scopes work without a library update.
const (
	// ScopeLpnJSON is the standard LPN JSON payload and the default scope.
	ScopeLpnJSON MeasurementScope = "lpn-json"

	// ScopeGcPlusJSON is the extended GC+ JSON payload.
	ScopeGcPlusJSON MeasurementScope = "gc-plus-json"
)

// String implements fmt.Stringer.
func (s MeasurementScope) String() string {
	return string(s)
}

// Installation represents a gas installation attached to a client account.
//
// The API reports installations with French field names (insID, adrNomRueC,
// ...); decoding accepts both those and the canonical names below.
type Installation struct {
	ID             string `json:"id"              yaml:"id"              parquet:"id"`
	StreetName     string `json:"street_name"     yaml:"street_name"     parquet:"street_name"`
	StreetAddress  string `json:"street_address"  yaml:"street_address"  parquet:"street_address"`
	BuildingNumber int64  `json:"building_number" yaml:"building_number" parquet:"building_number"`
	PostalCode     string `json:"postal_code"     yaml:"postal_code"     parquet:"postal_code"`
	City           string `json:"city"            yaml:"city"            parquet:"city"`
}

// UnmarshalJSON decodes an installation from either canonical or vendor
// field names.
func (i *Installation) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID             *string      `json:"id"`
		InsID          *string      `json:"insID"`
		StreetName     *string      `json:"street_name"`
		AdrNomRueC     *string      `json:"adrNomRueC"`
		StreetAddress  *string      `json:"street_address"`
		AdrRueC        *string      `json:"adrRueC"`
		BuildingNumber *json.Number `json:"building_number"`
		AdrNumImm      *json.Number `json:"adrNumImm"`
		PostalCode     *string      `json:"postal_code"`
		AdrCPC         *string      `json:"adrCPC"`
		City           *string      `json:"city"`
		AdrLocaliteC   *string      `json:"adrLocaliteC"`
	}

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return fmt.Errorf("decoding installation: %w", err)
	}

	i.ID = firstString(raw.ID, raw.InsID)
	i.StreetName = firstString(raw.StreetName, raw.AdrNomRueC)
	i.StreetAddress = firstString(raw.StreetAddress, raw.AdrRueC)
	i.PostalCode = firstString(raw.PostalCode, raw.AdrCPC)
	i.City = firstString(raw.City, raw.AdrLocaliteC)

	number := raw.BuildingNumber
	if number == nil {
		number = raw.AdrNumImm
	}

	if number != nil {
		value, err := number.Int64()
		if err != nil {
			return fmt.Errorf("decoding installation building number: %w", err)
		}

		i.BuildingNumber = value
	}

	return nil
}

// Measurement represents one metering row for an installation.
//
// The API reports measurements with French field names (num_inst, date,
// quantite_m3, consommation_kw_h) and encodes numeric fields either as JSON
// numbers or as numeric strings. Decoding accepts both namings and both wire
// shapes, normalizing numbers at the boundary.
type Measurement struct {
	ClientID       int64   `json:"client_id"       yaml:"client_id"       parquet:"client_id"`
	InstallationID string  `json:"installation_id" yaml:"installation_id" parquet:"installation_id"`
	Timestamp      string  `json:"timestamp"       yaml:"timestamp"       parquet:"timestamp"`
	IndexM3        float64 `json:"index_m3"        yaml:"index_m3"        parquet:"index_m3"`
	ConsumptionM3  float64 `json:"consumption_m3"  yaml:"consumption_m3"  parquet:"consumption_m3"`
	ConsumptionKWh float64 `json:"consumption_kwh" yaml:"consumption_kwh" parquet:"consumption_kwh"`
}

// UnmarshalJSON decodes a measurement from either canonical or vendor field
// names, accepting numbers encoded as JSON numbers or numeric strings.
func (m *Measurement) UnmarshalJSON(data []byte) error {
	var raw struct {
		ClientID        *flexInt   `json:"client_id"`
		InstallationID  *string    `json:"installation_id"`
		NumInst         *string    `json:"num_inst"`
		Timestamp       *string    `json:"timestamp"`
		Date            *string    `json:"date"`
		IndexM3         *flexFloat `json:"index_m3"`
		ConsumptionM3   *flexFloat `json:"consumption_m3"`
		QuantiteM3      *flexFloat `json:"quantite_m3"`
		ConsumptionKWh  *flexFloat `json:"consumption_kwh"`
		ConsommationKWh *flexFloat `json:"consommation_kw_h"`
	}

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return fmt.Errorf("decoding measurement: %w", err)
	}

	if raw.ClientID != nil {
		m.ClientID = int64(*raw.ClientID)
	}

	m.InstallationID = firstString(raw.InstallationID, raw.NumInst)
	m.Timestamp = firstString(raw.Timestamp, raw.Date)
	m.IndexM3 = firstFloat(raw.IndexM3)
	m.ConsumptionM3 = firstFloat(raw.ConsumptionM3, raw.QuantiteM3)
	m.ConsumptionKWh = firstFloat(raw.ConsumptionKWh, raw.ConsommationKWh)

	return nil
}

// flexFloat decodes a float64 from a JSON number or a numeric string.
type flexFloat float64

// UnmarshalJSON implements json.Unmarshaler.
func (f *flexFloat) UnmarshalJSON(data []byte) error {
	text := string(data)

	if strings.HasPrefix(text, `"`) {
		err := json.Unmarshal(data, &text)
		if err != nil {
			return fmt.Errorf("decoding numeric string: %w", err)
		}
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return fmt.Errorf("parsing numeric value %q: %w", text, err)
	}

	*f = flexFloat(value)

	return nil
}

// flexInt decodes an int64 from a JSON number or a numeric string.
type flexInt int64

// UnmarshalJSON implements json.Unmarshaler.
func (f *flexInt) UnmarshalJSON(data []byte) error {
	text := string(data)

	if strings.HasPrefix(text, `"`) {
		err := json.Unmarshal(data, &text)
		if err != nil {
			return fmt.Errorf("decoding numeric string: %w", err)
		}
	}

	value, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return fmt.Errorf("parsing integer value %q: %w", text, err)
	}

	*f = flexInt(value)

	return nil
}

// firstString returns the first non-nil value, or "".
func firstString(values ...*string) string {
	for _, value := range values {
		if value != nil {
			return *value
		}
	}

	return ""
}

// firstFloat returns the first non-nil value, or 0.
func firstFloat(values ...*flexFloat) float64 {
	for _, value := range values {
		if value != nil {
			return float64(*value)
		}
	}

	return 0
}
