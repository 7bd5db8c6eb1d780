package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/patrickmn/go-cache"

	appLogger "github.com/FACorreiaa/go-trip-content-engine/app/logger"
	"github.com/FACorreiaa/go-trip-content-engine/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-content-engine/app/tracer"
	"github.com/FACorreiaa/go-trip-content-engine/config"
	"github.com/FACorreiaa/go-trip-content-engine/internal/api/geocode"
	"github.com/FACorreiaa/go-trip-content-engine/internal/api/itinerary"
	"github.com/FACorreiaa/go-trip-content-engine/internal/api/places"
	"github.com/FACorreiaa/go-trip-content-engine/internal/types"
)

func main() {
	// --- Initial Loading ---
	// Use standard log until slog is configured, in case godotenv fails
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	// --- Logger Setup ---
	logger := appLogger.Setup(os.Getenv("APP_ENV"))
	slog.SetDefault(logger)

	// --- Application Context & Shutdown ---
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// --- Observability ---
	tracer.InitTracingAndMetrics(cfg.Server.MetricsPort)
	appMetrics := metrics.Init()

	// --- Flags ---
	var (
		destinationText = flag.String("destination", "", "free-text destination, e.g. \"New York to Los Angeles\"")
		days            = flag.Int("days", 3, "trip length in days")
		style           = flag.String("style", "", "travel style: chillaxed, adventurous or busy")
		radiusMiles     = flag.Float64("radius", cfg.Engine.DefaultRadiusMiles, "search radius in miles")
		seed            = flag.Int64("seed", 0, "allocation shuffle seed (0 = time-seeded)")
	)
	flag.Parse()

	if *destinationText == "" {
		logger.Error("No destination given, use -destination")
		os.Exit(1)
	}

	// --- Engine Wiring ---
	// One process-wide read-through cache, shared by geocoder and place
	// finder, injected rather than global.
	contentCache := cache.New(cfg.Engine.CacheTTL, cfg.Engine.CacheCleanupInterval)
	apiKey := os.Getenv(cfg.Providers.APIKeyEnv)
	if apiKey == "" {
		logger.Warn("Provider API key not set, engine will degrade to synthetic content",
			slog.String("env_var", cfg.Providers.APIKeyEnv))
	}

	geocodeProvider := geocode.NewHTTPProvider(cfg.Providers.GeocodeBaseURL, apiKey, cfg.Providers.Timeout, logger)
	geocodeService := geocode.NewServiceImpl(geocodeProvider, contentCache, logger)
	placesProvider := places.NewHTTPProvider(cfg.Providers.PlacesBaseURL, apiKey, cfg.Providers.Timeout, logger)
	placesService := places.NewServiceImpl(placesProvider, contentCache, logger)

	var rng *rand.Rand
	if *seed != 0 {
		rng = rand.New(rand.NewSource(*seed))
	}
	engine := itinerary.NewServiceImpl(geocodeService, placesService, appMetrics, rng, logger)

	// --- Resolve & Allocate ---
	prefs := types.StylePreferences{
		Chillaxed:   *style == "chillaxed",
		Adventurous: *style == "adventurous",
		Busy:        *style == "busy",
	}

	data := engine.ResolveLocationData(ctx, *destinationText, *radiusMiles)
	logger.Info("Resolution summary", slog.String("summary", data.Summary), slog.Bool("has_real_data", data.HasRealData))

	allocations := engine.AllocateDays(ctx, data.Catalog, *days, prefs, time.Now().AddDate(0, 0, 1), nil)

	out, err := json.MarshalIndent(struct {
		Location *types.LocationData   `json:"location"`
		Days     []types.DayAllocation `json:"days"`
	}{data, allocations}, "", "  ")
	if err != nil {
		logger.Error("Failed to encode itinerary", slog.Any("error", err))
		os.Exit(1)
	}
	os.Stdout.Write(out)
	os.Stdout.Write([]byte("\n"))
	logger.Info("Itinerary generated", slog.Int("days", len(allocations)))
}
