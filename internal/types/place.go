package types

// PlaceCategory tags a Place as a restaurant or an activity.
type PlaceCategory string

const (
	CategoryRestaurant PlaceCategory = "restaurant"
	CategoryActivity   PlaceCategory = "activity"
)

// Place is a single restaurant or activity candidate. Immutable once
// constructed. ID is the provider place id, falling back to the name when the
// provider omitted one; synthetic placeholders carry an empty ID and
// Synthetic=true so they never claim a real place's identity.
type Place struct {
	ID                 string        `json:"id,omitempty"`
	Name               string        `json:"name"`
	Category           PlaceCategory `json:"category"`
	Address            string        `json:"address,omitempty"`
	Coordinates        GeoPoint      `json:"coordinates"`
	Rating             *float64      `json:"rating,omitempty"`
	PriceLevel         *int          `json:"price_level,omitempty"`
	Tags               []string      `json:"tags,omitempty"`
	DistanceFromCenter float64       `json:"distance_from_center"`
	Synthetic          bool          `json:"synthetic,omitempty"`
}

// RestaurantSets partitions the deduplicated restaurant pool by price tier.
// Fine holds price level 3, Casual price level 1; All is the full pool.
type RestaurantSets struct {
	All    []Place `json:"all"`
	Fine   []Place `json:"fine"`
	Casual []Place `json:"casual"`
}

// Catalog is the trip-wide, deduplicated set of candidates available to the
// allocator. Invariant: no two entries share a non-empty ID.
type Catalog struct {
	Restaurants RestaurantSets `json:"restaurants"`
	Activities  []Place        `json:"activities"`
}

// Empty reports whether the catalog holds no real candidates at all.
func (c Catalog) Empty() bool {
	return len(c.Restaurants.All) == 0 && len(c.Activities) == 0
}
