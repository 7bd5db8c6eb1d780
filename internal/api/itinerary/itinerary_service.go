package itinerary

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-trip-content-engine/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-content-engine/internal/api/destination"
	"github.com/FACorreiaa/go-trip-content-engine/internal/api/geocode"
	"github.com/FACorreiaa/go-trip-content-engine/internal/api/places"
	"github.com/FACorreiaa/go-trip-content-engine/internal/types"
)

// Restaurant price levels used for the fine/casual partitions.
const (
	priceLevelFine   = 3
	priceLevelCasual = 1
)

var _ Service = (*ServiceImpl)(nil)

// Service is the engine surface the itinerary-generation and suggestion
// workflows call. None of its operations fail for data scarcity: every
// degradation path ends in a fully populated, best-effort result.
type Service interface {
	ResolveLocationData(ctx context.Context, destinationText string, radiusMiles float64) *types.LocationData
	AllocateDays(ctx context.Context, catalog types.Catalog, dayCount int, prefs types.StylePreferences, startDate time.Time, existing []types.DayAllocation) []types.DayAllocation
	AllocateSingleDay(ctx context.Context, catalog types.Catalog, targetDay int, prefs types.StylePreferences, date time.Time, existing []types.DayAllocation) *types.DayAllocation
}

type ServiceImpl struct {
	logger     *slog.Logger
	geocodeSvc geocode.Service
	placesSvc  places.Service
	metrics    *metrics.AppMetrics
	rand       *rand.Rand
}

// NewServiceImpl wires the engine. metrics may be nil (tests); rng may be nil,
// in which case a time-seeded source is used. Passing a seeded rng makes
// allocation order reproducible.
func NewServiceImpl(geocodeSvc geocode.Service, placesSvc places.Service, m *metrics.AppMetrics, rng *rand.Rand, logger *slog.Logger) *ServiceImpl {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &ServiceImpl{
		logger:     logger,
		geocodeSvc: geocodeSvc,
		placesSvc:  placesSvc,
		metrics:    m,
		rand:       rng,
	}
}

// cityContent is one city's resolved coordinates plus its four concurrent
// search results.
type cityContent struct {
	city        *types.CityInfo
	restaurants []types.Place
	fine        []types.Place
	casual      []types.Place
	activities  []types.Place
}

// ResolveLocationData turns a free-text destination into a deduplicated,
// trip-wide catalog. Cities resolve concurrently and independently: a slow or
// failing provider call for one city never blocks or fails the others. With
// zero resolvable cities the result carries HasRealData=false and an empty
// catalog, which the allocator fills synthetically.
func (s *ServiceImpl) ResolveLocationData(ctx context.Context, destinationText string, radiusMiles float64) *types.LocationData {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "ResolveLocationData")
	defer span.End()

	start := time.Now()
	query := destination.ParseDestination(destinationText)
	span.SetAttributes(
		attribute.String("destination.raw", destinationText),
		attribute.Int("destination.cities", len(query.Cities)),
		attribute.Float64("radius_miles", radiusMiles),
	)

	radiusMeters := radiusMiles * places.MetersPerMile
	perCity := make([]cityContent, len(query.Cities))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range query.Cities {
		g.Go(func() error {
			city := s.geocodeSvc.Resolve(gctx, name)
			if city == nil {
				if s.metrics != nil {
					s.metrics.CitiesDroppedTotal.Add(gctx, 1)
				}
				return nil
			}

			content := cityContent{city: city}
			center := city.Coordinates

			// The four category/price scoped searches are independent of
			// one another, so they fan out concurrently within the city.
			var wg sync.WaitGroup
			wg.Add(4)
			go func() {
				defer wg.Done()
				content.restaurants = s.placesSvc.FindRestaurants(gctx, center, radiusMeters, "", nil)
			}()
			go func() {
				defer wg.Done()
				fine := priceLevelFine
				content.fine = s.placesSvc.FindRestaurants(gctx, center, radiusMeters, "fine dining", &fine)
			}()
			go func() {
				defer wg.Done()
				casual := priceLevelCasual
				content.casual = s.placesSvc.FindRestaurants(gctx, center, radiusMeters, "casual", &casual)
			}()
			go func() {
				defer wg.Done()
				content.activities = s.placesSvc.FindActivities(gctx, center, radiusMeters, "")
			}()
			wg.Wait()

			perCity[i] = content
			return nil
		})
	}
	// Worker funcs only ever return nil; failures degrade to dropped cities.
	_ = g.Wait()

	var (
		cities                          []types.CityInfo
		allRest, fine, casual, allActiv [][]types.Place
	)
	for _, content := range perCity {
		if content.city == nil {
			continue
		}
		cities = append(cities, *content.city)
		allRest = append(allRest, content.restaurants)
		fine = append(fine, content.fine)
		casual = append(casual, content.casual)
		allActiv = append(allActiv, content.activities)
	}

	catalog := types.Catalog{
		Restaurants: types.RestaurantSets{
			All:    dedupePlaces(allRest...),
			Fine:   dedupePlaces(fine...),
			Casual: dedupePlaces(casual...),
		},
		Activities: dedupePlaces(allActiv...),
	}

	data := &types.LocationData{
		HasRealData: len(cities) > 0,
		Cities:      cities,
		Catalog:     catalog,
		RadiusMiles: radiusMiles,
		Summary:     buildSummary(cities, catalog, radiusMiles),
	}

	if s.metrics != nil {
		s.metrics.ResolveRequestsTotal.Add(ctx, 1)
		s.metrics.CitiesResolvedTotal.Add(ctx, int64(len(cities)))
		s.metrics.ResolveDurationSeconds.Record(ctx, time.Since(start).Seconds())
	}
	if !data.HasRealData {
		s.logger.WarnContext(ctx, "No cities resolved, falling back to synthetic content",
			slog.String("destination", destinationText))
		span.SetStatus(codes.Ok, "Resolved with synthetic fallback")
		return data
	}

	s.logger.InfoContext(ctx, "Destination resolved",
		slog.String("destination", destinationText),
		slog.Int("cities", len(cities)),
		slog.Int("restaurants", len(catalog.Restaurants.All)),
		slog.Int("activities", len(catalog.Activities)))
	span.SetAttributes(
		attribute.Int("catalog.restaurants", len(catalog.Restaurants.All)),
		attribute.Int("catalog.activities", len(catalog.Activities)),
	)
	span.SetStatus(codes.Ok, "Location data resolved")
	return data
}
