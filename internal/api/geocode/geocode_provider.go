package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/FACorreiaa/go-trip-content-engine/internal/types"
)

var (
	// ErrProviderUnavailable marks transport failures and missing
	// credentials, as opposed to a lookup that legitimately found nothing.
	ErrProviderUnavailable = errors.New("geocode provider unavailable")
	// ErrNoResults marks a lookup the provider answered with zero matches.
	ErrNoResults = errors.New("geocode returned no results")
)

// Provider resolves a city name to coordinates via an external service.
type Provider interface {
	Geocode(ctx context.Context, city string) (*types.CityInfo, error)
}

var _ Provider = (*HTTPProvider)(nil)

// HTTPProvider talks to a Google-style geocoding endpoint
// (GET <baseURL>/maps/api/geocode/json?address=...&key=...).
type HTTPProvider struct {
	client  *http.Client
	logger  *slog.Logger
	baseURL string
	apiKey  string
}

func NewHTTPProvider(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *HTTPProvider {
	return &HTTPProvider{
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

type geocodeResponse struct {
	Status  string          `json:"status"`
	Results []geocodeResult `json:"results"`
}

type geocodeResult struct {
	FormattedAddress string `json:"formatted_address"`
	PlaceID          string `json:"place_id"`
	Geometry         struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}

func (p *HTTPProvider) Geocode(ctx context.Context, city string) (*types.CityInfo, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("no API key configured: %w", ErrProviderUnavailable)
	}

	params := url.Values{}
	params.Set("address", city)
	params.Set("key", p.apiKey)
	endpoint := fmt.Sprintf("%s/maps/api/geocode/json?%s", p.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building geocode request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request failed: %w: %w", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode status %d: %w", resp.StatusCode, ErrProviderUnavailable)
	}

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decoding geocode response: %w", err)
	}
	if decoded.Status != "OK" || len(decoded.Results) == 0 {
		p.logger.DebugContext(ctx, "Geocode miss", slog.String("city", city), slog.String("provider_status", decoded.Status))
		return nil, fmt.Errorf("city %q: %w", city, ErrNoResults)
	}

	first := decoded.Results[0]
	return &types.CityInfo{
		Name:             city,
		FormattedAddress: first.FormattedAddress,
		PlaceID:          first.PlaceID,
		Coordinates: types.GeoPoint{
			Lat: first.Geometry.Location.Lat,
			Lng: first.Geometry.Location.Lng,
		},
	}, nil
}
