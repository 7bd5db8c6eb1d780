package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the engine's metric instruments.
// Make fields public so they can be accessed from other packages.
type AppMetrics struct {
	ResolveRequestsTotal   metric.Int64Counter
	ResolveDurationSeconds metric.Float64Histogram
	CitiesResolvedTotal    metric.Int64Counter
	CitiesDroppedTotal     metric.Int64Counter
	AllocationRunsTotal    metric.Int64Counter
	SyntheticEntriesTotal  metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// Init creates the metric instruments ONLY ONCE and returns the shared
// instance. It gets the Meter from the globally configured MeterProvider, so
// the tracer/meter setup must run first.
func Init() *AppMetrics {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("TripContentEngine")
		var err error
		m := &AppMetrics{}

		m.ResolveRequestsTotal, err = meter.Int64Counter(
			"resolve_requests_total",
			metric.WithDescription("Total number of destination resolutions completed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create resolve_requests_total: %v", err)
		}

		m.ResolveDurationSeconds, err = meter.Float64Histogram(
			"resolve_duration_seconds",
			metric.WithDescription("Duration of destination resolutions in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create resolve_duration_seconds: %v", err)
		}

		m.CitiesResolvedTotal, err = meter.Int64Counter(
			"cities_resolved_total",
			metric.WithDescription("Total number of cities successfully geocoded"),
			metric.WithUnit("{city}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create cities_resolved_total: %v", err)
		}

		m.CitiesDroppedTotal, err = meter.Int64Counter(
			"cities_dropped_total",
			metric.WithDescription("Total number of cities dropped after a failed geocode"),
			metric.WithUnit("{city}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create cities_dropped_total: %v", err)
		}

		m.AllocationRunsTotal, err = meter.Int64Counter(
			"allocation_runs_total",
			metric.WithDescription("Total number of day allocation runs"),
			metric.WithUnit("{run}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create allocation_runs_total: %v", err)
		}

		m.SyntheticEntriesTotal, err = meter.Int64Counter(
			"synthetic_entries_total",
			metric.WithDescription("Total number of synthetic placeholder entries generated"),
			metric.WithUnit("{entry}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create synthetic_entries_total: %v", err)
		}

		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
	return appMetrics
}
