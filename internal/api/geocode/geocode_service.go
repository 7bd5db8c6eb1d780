package geocode

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/FACorreiaa/go-trip-content-engine/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service resolves city names to coordinates with a read-through cache.
type Service interface {
	// Resolve returns nil when the city cannot be geocoded, for any reason.
	// Callers drop the city and continue; a nil result is never fatal.
	Resolve(ctx context.Context, city string) *types.CityInfo
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

func geocodeCacheKey(city string) string {
	return fmt.Sprintf("geocode:%s", strings.ToLower(strings.TrimSpace(city)))
}

func (s *ServiceImpl) Resolve(ctx context.Context, city string) *types.CityInfo {
	ctx, span := otel.Tracer("GeocodeService").Start(ctx, "Resolve")
	defer span.End()

	cacheKey := geocodeCacheKey(city)
	span.SetAttributes(attribute.String("city", city), attribute.String("cache.key", cacheKey))

	if cached, found := s.cache.Get(cacheKey); found {
		if info, ok := cached.(*types.CityInfo); ok {
			span.AddEvent("Cache hit")
			span.SetStatus(codes.Ok, "Served from cache")
			return info
		}
	}

	info, err := s.provider.Geocode(ctx, city)
	if err != nil {
		s.logger.WarnContext(ctx, "Dropping city after failed geocode",
			slog.String("city", city), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Geocode failed")
		return nil
	}

	// Only successes are cached; a transient provider failure should not
	// pin a miss for the full TTL.
	s.cache.Set(cacheKey, info, cache.DefaultExpiration)
	span.SetStatus(codes.Ok, "Geocoded")
	return info
}
