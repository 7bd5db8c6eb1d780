package types

// GeoPoint is a WGS 84 coordinate pair.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CityInfo is a successfully geocoded city. Instances are never mutated;
// cities that fail to geocode are dropped from the query instead.
type CityInfo struct {
	Name             string   `json:"name"`
	FormattedAddress string   `json:"formatted_address"`
	PlaceID          string   `json:"place_id"`
	Coordinates      GeoPoint `json:"coordinates"`
}

// DestinationQuery is the parsed form of a free-text destination string.
type DestinationQuery struct {
	Raw       string   `json:"raw"`
	Cities    []string `json:"cities"`
	Primary   string   `json:"primary"`
	MultiCity bool     `json:"multi_city"`
}

// LocationData is the trip-wide resolution result handed to the itinerary
// workflow. HasRealData is false when no city in the query could be geocoded
// (or the provider is unavailable), in which case callers fall back to a
// fully synthetic content path.
type LocationData struct {
	HasRealData bool       `json:"has_real_data"`
	Cities      []CityInfo `json:"cities"`
	Catalog     Catalog    `json:"catalog"`
	RadiusMiles float64    `json:"radius_miles"`
	Summary     string     `json:"summary"`
}
