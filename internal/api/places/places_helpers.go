package places

import (
	"fmt"
	"math"
	"strings"

	"github.com/FACorreiaa/go-trip-content-engine/internal/types"
)

// metersPerMile converts the caller's radius (meters, provider convention)
// into the miles the distance filter enforces.
const MetersPerMile = 1609.34

// earthRadiusMiles is the mean Earth radius used by the haversine formula.
const earthRadiusMiles = 3959.0

// Haversine returns the great-circle distance between two points in miles.
func Haversine(p1, p2 types.GeoPoint) float64 {
	lat1 := p1.Lat * math.Pi / 180
	lat2 := p2.Lat * math.Pi / 180
	dlat := (p2.Lat - p1.Lat) * math.Pi / 180
	dlng := (p2.Lng - p1.Lng) * math.Pi / 180

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlng/2)*math.Sin(dlng/2)
	return 2 * earthRadiusMiles * math.Asin(math.Sqrt(a))
}

// MaxDistanceMiles converts a provider radius in meters to the mile bound the
// distance filter enforces.
func MaxDistanceMiles(radiusMeters float64) float64 {
	return radiusMeters / MetersPerMile
}

// annotateAndFilter converts raw provider records into Places, recomputes the
// exact distance from center, and keeps only results inside the radius. The
// provider's own radius is advisory, so results outside it are common.
// Records without coordinates are always excluded: without a location the
// distance contract cannot be checked.
func annotateAndFilter(raw []RawPlace, center types.GeoPoint, radiusMeters float64, category types.PlaceCategory) []types.Place {
	maxMiles := MaxDistanceMiles(radiusMeters)
	out := make([]types.Place, 0, len(raw))
	for _, r := range raw {
		if r.Geometry == nil {
			continue
		}
		coords := types.GeoPoint{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng}
		distance := Haversine(center, coords)
		if distance > maxMiles {
			continue
		}
		id := r.PlaceID
		if id == "" {
			id = r.Name
		}
		out = append(out, types.Place{
			ID:                 id,
			Name:               r.Name,
			Category:           category,
			Address:            r.FormattedAddress,
			Coordinates:        coords,
			Rating:             r.Rating,
			PriceLevel:         r.PriceLevel,
			Tags:               r.Types,
			DistanceFromCenter: distance,
		})
	}
	return out
}

// truncate caps a result set after distance filtering. Truncating before
// filtering would keep the provider's ranking instead of true proximity.
func truncate(places []types.Place, limit int) []types.Place {
	if len(places) > limit {
		return places[:limit]
	}
	return places
}

func searchCacheKey(kind string, center types.GeoPoint, radiusMeters float64, filters ...string) string {
	// Coordinates are rounded to ~11m granularity so nearby lookups share
	// cache entries.
	key := fmt.Sprintf("places:%s:%.4f:%.4f:%.0f", kind, center.Lat, center.Lng, radiusMeters)
	// Empty filters are kept as empty segments: dropping them would collapse
	// distinct filter combinations onto the same key.
	for _, f := range filters {
		key += ":" + strings.ToLower(f)
	}
	return key
}

func buildRestaurantQuery(cuisine string) string {
	if cuisine != "" {
		return fmt.Sprintf("%s restaurants", cuisine)
	}
	return "restaurants"
}

func buildActivityQuery(activityType string) string {
	if activityType != "" {
		return fmt.Sprintf("%s attractions", activityType)
	}
	return "tourist attractions things to do"
}
