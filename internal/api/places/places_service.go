package places

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/FACorreiaa/go-trip-content-engine/internal/types"
)

// Result caps applied after distance filtering.
const (
	maxRestaurants = 10
	maxActivities  = 15
)

var _ Service = (*ServiceImpl)(nil)

// Service performs category-scoped place searches near coordinates, with a
// read-through cache and exact distance enforcement. Both operations return
// an empty slice on provider error; scarcity is never fatal here.
type Service interface {
	FindRestaurants(ctx context.Context, center types.GeoPoint, radiusMeters float64, cuisine string, priceLevel *int) []types.Place
	FindActivities(ctx context.Context, center types.GeoPoint, radiusMeters float64, activityType string) []types.Place
}

type ServiceImpl struct {
	logger   *slog.Logger
	provider Provider
	cache    *cache.Cache
}

func NewServiceImpl(provider Provider, c *cache.Cache, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:   logger,
		provider: provider,
		cache:    c,
	}
}

func (s *ServiceImpl) FindRestaurants(ctx context.Context, center types.GeoPoint, radiusMeters float64, cuisine string, priceLevel *int) []types.Place {
	ctx, span := otel.Tracer("PlacesService").Start(ctx, "FindRestaurants")
	defer span.End()

	priceFilter := ""
	if priceLevel != nil {
		priceFilter = strconv.Itoa(*priceLevel)
	}
	cacheKey := searchCacheKey("restaurants", center, radiusMeters, cuisine, priceFilter)
	span.SetAttributes(attribute.String("cache.key", cacheKey))

	if cached, found := s.cache.Get(cacheKey); found {
		if results, ok := cached.([]types.Place); ok {
			span.AddEvent("Cache hit")
			span.SetStatus(codes.Ok, "Served from cache")
			return results
		}
	}

	req := SearchRequest{
		Query:        buildRestaurantQuery(cuisine),
		Lat:          center.Lat,
		Lng:          center.Lng,
		RadiusMeters: radiusMeters,
		PriceLevel:   priceLevel,
	}
	raw, err := s.provider.TextSearch(ctx, req)
	if err != nil {
		s.logger.WarnContext(ctx, "Restaurant search failed, returning empty set",
			slog.String("query", req.Query), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Provider error")
		return []types.Place{}
	}

	results := truncate(annotateAndFilter(raw, center, radiusMeters, types.CategoryRestaurant), maxRestaurants)
	s.cache.Set(cacheKey, results, cache.DefaultExpiration)
	span.SetAttributes(attribute.Int("results.count", len(results)))
	span.SetStatus(codes.Ok, "Restaurants found")
	return results
}

func (s *ServiceImpl) FindActivities(ctx context.Context, center types.GeoPoint, radiusMeters float64, activityType string) []types.Place {
	ctx, span := otel.Tracer("PlacesService").Start(ctx, "FindActivities")
	defer span.End()

	cacheKey := searchCacheKey("activities", center, radiusMeters, activityType)
	span.SetAttributes(attribute.String("cache.key", cacheKey))

	if cached, found := s.cache.Get(cacheKey); found {
		if results, ok := cached.([]types.Place); ok {
			span.AddEvent("Cache hit")
			span.SetStatus(codes.Ok, "Served from cache")
			return results
		}
	}

	req := SearchRequest{
		Query:        buildActivityQuery(activityType),
		Lat:          center.Lat,
		Lng:          center.Lng,
		RadiusMeters: radiusMeters,
	}
	raw, err := s.provider.TextSearch(ctx, req)
	if err != nil {
		s.logger.WarnContext(ctx, "Activity search failed, returning empty set",
			slog.String("query", req.Query), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Provider error")
		return []types.Place{}
	}

	results := truncate(annotateAndFilter(raw, center, radiusMeters, types.CategoryActivity), maxActivities)
	s.cache.Set(cacheKey, results, cache.DefaultExpiration)
	span.SetAttributes(attribute.Int("results.count", len(results)))
	span.SetStatus(codes.Ok, "Activities found")
	return results
}
