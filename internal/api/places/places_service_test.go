package places

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-trip-content-engine/internal/types"
)

// MockProvider is a mock implementation of Provider
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) TextSearch(ctx context.Context, req SearchRequest) ([]RawPlace, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]RawPlace), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(provider Provider) *ServiceImpl {
	return NewServiceImpl(provider, cache.New(time.Hour, time.Hour), testLogger())
}

func TestFindRestaurants_FiltersAndAnnotates(t *testing.T) {
	center := types.GeoPoint{Lat: 40.7580, Lng: -73.9855}
	radiusMeters := 5 * MetersPerMile

	mockProvider := new(MockProvider)
	mockProvider.On("TextSearch", mock.Anything, mock.Anything).Return([]RawPlace{
		rawPlaceAt("Near Diner", "p1", 40.7600, -73.9850),
		rawPlaceAt("Far Roadhouse", "p2", 42.0, -73.9855),
	}, nil).Once()

	service := newTestService(mockProvider)
	got := service.FindRestaurants(context.Background(), center, radiusMeters, "", nil)

	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].ID)
	assert.Greater(t, got[0].DistanceFromCenter, 0.0)
	assert.LessOrEqual(t, got[0].DistanceFromCenter, MaxDistanceMiles(radiusMeters))
	mockProvider.AssertExpectations(t)
}

func TestFindRestaurants_CacheHitSkipsProvider(t *testing.T) {
	center := types.GeoPoint{Lat: 40.7580, Lng: -73.9855}
	radiusMeters := 5 * MetersPerMile

	mockProvider := new(MockProvider)
	mockProvider.On("TextSearch", mock.Anything, mock.Anything).Return([]RawPlace{
		rawPlaceAt("Near Diner", "p1", 40.7600, -73.9850),
	}, nil).Once()

	service := newTestService(mockProvider)
	first := service.FindRestaurants(context.Background(), center, radiusMeters, "", nil)
	second := service.FindRestaurants(context.Background(), center, radiusMeters, "", nil)

	assert.Equal(t, first, second)
	mockProvider.AssertNumberOfCalls(t, "TextSearch", 1)
}

func TestFindRestaurants_DistinctFiltersDistinctCacheEntries(t *testing.T) {
	center := types.GeoPoint{Lat: 40.7580, Lng: -73.9855}
	radiusMeters := 5 * MetersPerMile

	mockProvider := new(MockProvider)
	mockProvider.On("TextSearch", mock.Anything, mock.Anything).Return([]RawPlace{
		rawPlaceAt("Near Diner", "p1", 40.7600, -73.9850),
	}, nil)

	service := newTestService(mockProvider)
	fine := 3
	service.FindRestaurants(context.Background(), center, radiusMeters, "fine dining", &fine)
	service.FindRestaurants(context.Background(), center, radiusMeters, "", nil)

	mockProvider.AssertNumberOfCalls(t, "TextSearch", 2)
}

func TestFindRestaurants_ProviderErrorReturnsEmpty(t *testing.T) {
	mockProvider := new(MockProvider)
	mockProvider.On("TextSearch", mock.Anything, mock.Anything).Return(nil, errors.New("provider down"))

	service := newTestService(mockProvider)
	got := service.FindRestaurants(context.Background(), types.GeoPoint{}, 5*MetersPerMile, "", nil)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFindRestaurants_TruncatesAfterFiltering(t *testing.T) {
	center := types.GeoPoint{Lat: 40.7580, Lng: -73.9855}
	radiusMeters := 5 * MetersPerMile

	// 6 results ranked first sit outside the radius; 12 in-radius results
	// follow. Filter-then-truncate must keep 10 of the near ones instead of
	// letting the provider's ranking crowd them out.
	var raw []RawPlace
	for i := 0; i < 6; i++ {
		raw = append(raw, rawPlaceAt("Far", string(rune('a'+i)), 42.0, -73.9855))
	}
	for i := 0; i < 12; i++ {
		raw = append(raw, rawPlaceAt("Near", string(rune('m'+i)), 40.7600, -73.9850))
	}

	mockProvider := new(MockProvider)
	mockProvider.On("TextSearch", mock.Anything, mock.Anything).Return(raw, nil).Once()

	service := newTestService(mockProvider)
	got := service.FindRestaurants(context.Background(), center, radiusMeters, "", nil)

	require.Len(t, got, maxRestaurants)
	for _, p := range got {
		assert.Equal(t, "Near", p.Name)
	}
}

func TestFindActivities_CapsAtFifteen(t *testing.T) {
	center := types.GeoPoint{Lat: 40.7580, Lng: -73.9855}

	var raw []RawPlace
	for i := 0; i < 20; i++ {
		raw = append(raw, rawPlaceAt("Spot", string(rune('a'+i)), 40.7600, -73.9850))
	}

	mockProvider := new(MockProvider)
	mockProvider.On("TextSearch", mock.Anything, mock.Anything).Return(raw, nil).Once()

	service := newTestService(mockProvider)
	got := service.FindActivities(context.Background(), center, 5*MetersPerMile, "")

	assert.Len(t, got, maxActivities)
	for _, p := range got {
		assert.Equal(t, types.CategoryActivity, p.Category)
	}
}
