package models

// GeocodedLocation is the successful output of a resolution.
type GeocodedLocation struct {
	City    string `json:"city"`    // City chosen by the classifier
	Address string `json:"address"` // Provider display_name, verbatim
	PlaceID string `json:"placeId"` // Provider place id, empty when absent
}
