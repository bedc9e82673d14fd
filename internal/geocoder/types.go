package geocoder

import (
	"bytes"
	"context"

	"github.com/goccy/go-json"
)

// Provider is the geocoding backend used by the resolution engine.
type Provider interface {
	// Search geocodes a free-text query and returns at most one ranked result.
	Search(ctx context.Context, query, apiKey string) ([]Place, error)
}

// Place is one search result in LocationIQ/Nominatim format.
type Place struct {
	PlaceID     PlaceID        `json:"place_id"`
	DisplayName string         `json:"display_name"`
	Address     AddressDetails `json:"address"`
}

// AddressDetails is the address breakdown returned with addressdetails=1.
type AddressDetails struct {
	Suburb        string `json:"suburb,omitempty"`
	CityDistrict  string `json:"city_district,omitempty"`
	Village       string `json:"village,omitempty"`
	Town          string `json:"town,omitempty"`
	City          string `json:"city,omitempty"`
	County        string `json:"county,omitempty"`
	StateDistrict string `json:"state_district,omitempty"`
	State         string `json:"state,omitempty"`
	Postcode      string `json:"postcode,omitempty"`
	Country       string `json:"country,omitempty"`
	CountryCode   string `json:"country_code,omitempty"`
}

// PlaceID is an opaque provider identifier. LocationIQ sends it as a string,
// Nominatim as a number; both decode to the same text.
type PlaceID string

// UnmarshalJSON accepts a JSON string, number or null.
func (p *PlaceID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*p = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = PlaceID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*p = PlaceID(n.String())
	return nil
}

// errorBody is the provider's JSON error payload.
type errorBody struct {
	Error string `json:"error"`
}
