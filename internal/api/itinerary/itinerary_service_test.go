package itinerary

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-trip-content-engine/internal/api/places"
	"github.com/FACorreiaa/go-trip-content-engine/internal/types"
)

// MockGeocodeService is a mock implementation of geocode.Service
type MockGeocodeService struct {
	mock.Mock
}

func (m *MockGeocodeService) Resolve(ctx context.Context, city string) *types.CityInfo {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*types.CityInfo)
}

// MockPlacesService is a mock implementation of places.Service
type MockPlacesService struct {
	mock.Mock
}

func (m *MockPlacesService) FindRestaurants(ctx context.Context, center types.GeoPoint, radiusMeters float64, cuisine string, priceLevel *int) []types.Place {
	args := m.Called(ctx, center, radiusMeters, cuisine, priceLevel)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]types.Place)
}

func (m *MockPlacesService) FindActivities(ctx context.Context, center types.GeoPoint, radiusMeters float64, activityType string) []types.Place {
	args := m.Called(ctx, center, radiusMeters, activityType)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]types.Place)
}

func testDate() time.Time {
	return time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
}

func cityInfo(name string, lat, lng float64) *types.CityInfo {
	return &types.CityInfo{
		Name:        name,
		Coordinates: types.GeoPoint{Lat: lat, Lng: lng},
	}
}

func newResolveService(geo *MockGeocodeService, pl *MockPlacesService) *ServiceImpl {
	return NewServiceImpl(geo, pl, nil, rand.New(rand.NewSource(1)), testLogger())
}

func TestResolveLocationData_DeduplicatesAcrossCities(t *testing.T) {
	portland := cityInfo("Portland", 45.5152, -122.6784)
	seattle := cityInfo("Seattle", 47.6062, -122.3321)

	shared := types.Place{ID: "chain-1", Name: "Chain Bistro", Category: types.CategoryRestaurant}
	geo := new(MockGeocodeService)
	geo.On("Resolve", mock.Anything, "Portland").Return(portland)
	geo.On("Resolve", mock.Anything, "Seattle").Return(seattle)

	pl := new(MockPlacesService)
	pl.On("FindRestaurants", mock.Anything, portland.Coordinates, mock.Anything, mock.Anything, mock.Anything).
		Return([]types.Place{shared, {ID: "pdx-1", Name: "Rose City Diner", Category: types.CategoryRestaurant}})
	pl.On("FindRestaurants", mock.Anything, seattle.Coordinates, mock.Anything, mock.Anything, mock.Anything).
		Return([]types.Place{shared, {ID: "sea-1", Name: "Sound Eats", Category: types.CategoryRestaurant}})
	pl.On("FindActivities", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]types.Place{})

	data := newResolveService(geo, pl).ResolveLocationData(context.Background(), "Portland and Seattle", 5)

	require.True(t, data.HasRealData)
	require.Len(t, data.Cities, 2)
	assert.Len(t, data.Catalog.Restaurants.All, 3)

	seen := make(map[string]bool)
	for _, p := range data.Catalog.Restaurants.All {
		if p.ID == "" {
			continue
		}
		assert.False(t, seen[p.ID], "duplicate id %q in catalog", p.ID)
		seen[p.ID] = true
	}
}

func TestResolveLocationData_FailedCityIsDroppedOthersProceed(t *testing.T) {
	lisbon := cityInfo("Lisbon", 38.7223, -9.1393)

	geo := new(MockGeocodeService)
	geo.On("Resolve", mock.Anything, "Lisbon").Return(lisbon)
	geo.On("Resolve", mock.Anything, "Atlantis").Return(nil)

	pl := new(MockPlacesService)
	pl.On("FindRestaurants", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]types.Place{{ID: "lis-1", Name: "Tasca do Chico", Category: types.CategoryRestaurant}})
	pl.On("FindActivities", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]types.Place{{ID: "lis-act", Name: "Tram 28 Ride", Category: types.CategoryActivity}})

	data := newResolveService(geo, pl).ResolveLocationData(context.Background(), "Lisbon and Atlantis", 5)

	assert.True(t, data.HasRealData)
	require.Len(t, data.Cities, 1)
	assert.Equal(t, "Lisbon", data.Cities[0].Name)
	assert.NotEmpty(t, data.Catalog.Restaurants.All)
}

func TestResolveLocationData_AllCitiesUnresolvable(t *testing.T) {
	geo := new(MockGeocodeService)
	geo.On("Resolve", mock.Anything, mock.Anything).Return(nil)

	pl := new(MockPlacesService)

	data := newResolveService(geo, pl).ResolveLocationData(context.Background(), "Atlantis to El Dorado", 5)

	assert.False(t, data.HasRealData)
	assert.Empty(t, data.Cities)
	assert.True(t, data.Catalog.Empty())
	pl.AssertNotCalled(t, "FindRestaurants", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveLocationData_BlankDestination(t *testing.T) {
	geo := new(MockGeocodeService)
	pl := new(MockPlacesService)

	data := newResolveService(geo, pl).ResolveLocationData(context.Background(), "   ", 5)

	assert.False(t, data.HasRealData)
	geo.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

func TestResolveLocationData_RadiusConvertedToMeters(t *testing.T) {
	lisbon := cityInfo("Lisbon", 38.7223, -9.1393)

	geo := new(MockGeocodeService)
	geo.On("Resolve", mock.Anything, "Lisbon").Return(lisbon)

	expectedMeters := 5 * places.MetersPerMile
	pl := new(MockPlacesService)
	pl.On("FindRestaurants", mock.Anything, lisbon.Coordinates, expectedMeters, mock.Anything, mock.Anything).
		Return([]types.Place{})
	pl.On("FindActivities", mock.Anything, lisbon.Coordinates, expectedMeters, mock.Anything).
		Return([]types.Place{})

	data := newResolveService(geo, pl).ResolveLocationData(context.Background(), "Lisbon", 5)

	assert.Equal(t, 5.0, data.RadiusMiles)
	pl.AssertExpectations(t)
}

func TestResolveLocationData_SyntheticAllocationAfterFallback(t *testing.T) {
	geo := new(MockGeocodeService)
	geo.On("Resolve", mock.Anything, mock.Anything).Return(nil)

	service := newResolveService(geo, new(MockPlacesService))
	data := service.ResolveLocationData(context.Background(), "Atlantis", 5)
	require.False(t, data.HasRealData)

	// The whole-query fallback still yields fully populated days.
	days := service.AllocateDays(context.Background(), data.Catalog, 2, types.StylePreferences{}, testDate(), nil)
	require.Len(t, days, 2)
	for _, day := range days {
		assert.Len(t, day.Activities, 3)
		assert.Len(t, day.Meals, 2)
	}
}

func TestDedupePlaces_KeepsIDlessEntries(t *testing.T) {
	got := dedupePlaces(
		[]types.Place{{ID: "a", Name: "A"}, {Name: "anon 1"}},
		[]types.Place{{ID: "a", Name: "A again"}, {Name: "anon 2"}},
	)

	require.Len(t, got, 3)
	assert.Equal(t, "A", got[0].Name)
	assert.Equal(t, "anon 1", got[1].Name)
	assert.Equal(t, "anon 2", got[2].Name)
}
