package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

var (
	// ErrProviderUnavailable marks transport failures and missing
	// credentials; a search that simply matched nothing returns an empty
	// slice with a nil error.
	ErrProviderUnavailable = errors.New("place search provider unavailable")
)

// RawPlace is one record from the provider's text-search response, before
// distance annotation and filtering.
type RawPlace struct {
	Name             string       `json:"name"`
	FormattedAddress string       `json:"formatted_address"`
	PlaceID          string       `json:"place_id"`
	Rating           *float64     `json:"rating,omitempty"`
	PriceLevel       *int         `json:"price_level,omitempty"`
	Types            []string     `json:"types,omitempty"`
	Geometry         *RawGeometry `json:"geometry,omitempty"`
}

type RawGeometry struct {
	Location RawLocation `json:"location"`
}

type RawLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type textSearchResponse struct {
	Status  string     `json:"status"`
	Results []RawPlace `json:"results"`
}

// SearchRequest is one category/price-scoped text search near a point. The
// provider treats the radius as advisory; exact distance enforcement happens
// in the service layer.
type SearchRequest struct {
	Query        string
	Lat          float64
	Lng          float64
	RadiusMeters float64
	PriceLevel   *int
}

// Provider performs text searches against an external place-search service.
type Provider interface {
	TextSearch(ctx context.Context, req SearchRequest) ([]RawPlace, error)
}

var _ Provider = (*HTTPProvider)(nil)

// HTTPProvider talks to a Google-style text-search endpoint
// (GET <baseURL>/maps/api/place/textsearch/json).
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

func (p *HTTPProvider) TextSearch(ctx context.Context, req SearchRequest) ([]RawPlace, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("no API key configured: %w", ErrProviderUnavailable)
	}

	params := url.Values{}
	params.Set("query", req.Query)
	params.Set("location", fmt.Sprintf("%f,%f", req.Lat, req.Lng))
	params.Set("radius", strconv.Itoa(int(req.RadiusMeters)))
	params.Set("key", p.apiKey)
	if req.PriceLevel != nil {
		params.Set("minprice", strconv.Itoa(*req.PriceLevel))
		params.Set("maxprice", strconv.Itoa(*req.PriceLevel))
	}
	endpoint := fmt.Sprintf("%s/maps/api/place/textsearch/json?%s", p.baseURL, params.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building text search request: %w", err)
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("text search request failed: %w: %w", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("text search status %d: %w", resp.StatusCode, ErrProviderUnavailable)
	}

	var decoded textSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decoding text search response: %w", err)
	}
	if decoded.Status != "OK" && decoded.Status != "ZERO_RESULTS" {
		p.logger.DebugContext(ctx, "Text search rejected",
			slog.String("query", req.Query), slog.String("provider_status", decoded.Status))
		return nil, fmt.Errorf("provider status %s: %w", decoded.Status, ErrProviderUnavailable)
	}
	return decoded.Results, nil
}
