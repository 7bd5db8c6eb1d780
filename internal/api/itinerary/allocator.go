package itinerary

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-trip-content-engine/internal/types"
)

// ProfileForStyle derives the quota/timing envelope from the traveler's pace
// flags. When several flags are set the busiest wins; with none set, the
// balanced defaults apply.
func ProfileForStyle(prefs types.StylePreferences) types.StyleProfile {
	switch {
	case prefs.Busy:
		return types.StyleProfile{
			Name:             "busy",
			ActivityQuota:    6,
			MealQuota:        3,
			ActivityDuration: "1 hour",
			StartTime:        "9:00 AM",
			MealTypes:        []string{"breakfast", "lunch", "dinner"},
		}
	case prefs.Adventurous:
		return types.StyleProfile{
			Name:             "adventurous",
			ActivityQuota:    4,
			MealQuota:        2,
			ActivityDuration: "2 hours",
			StartTime:        "9:00 AM",
			MealTypes:        []string{"lunch", "dinner"},
		}
	case prefs.Chillaxed:
		return types.StyleProfile{
			Name:             "chillaxed",
			ActivityQuota:    2,
			MealQuota:        2,
			ActivityDuration: "3 hours",
			StartTime:        "10:00 AM",
			MealTypes:        []string{"lunch", "dinner"},
		}
	default:
		return types.StyleProfile{
			Name:             "balanced",
			ActivityQuota:    3,
			MealQuota:        2,
			ActivityDuration: "2 hours",
			StartTime:        "9:00 AM",
			MealTypes:        []string{"lunch", "dinner"},
		}
	}
}

// activitySlots fixes the clock schedule for each activity quota. The slots
// are deterministic per style so regenerated days land on the same rhythm.
var activitySlots = map[int][]string{
	1: {"10:00 AM"},
	2: {"10:00 AM", "2:00 PM"},
	3: {"9:00 AM", "1:00 PM", "4:00 PM"},
	4: {"9:00 AM", "11:30 AM", "2:00 PM", "4:30 PM"},
	5: {"9:00 AM", "11:00 AM", "1:00 PM", "3:00 PM", "5:00 PM"},
	6: {"9:00 AM", "10:30 AM", "12:00 PM", "1:30 PM", "3:00 PM", "4:30 PM"},
}

var mealSlots = map[string]string{
	"breakfast": "8:00 AM",
	"lunch":     "12:30 PM",
	"dinner":    "7:00 PM",
}

var syntheticMealNames = map[string]string{
	"breakfast": "Local Breakfast Spot",
	"lunch":     "Local Lunch Spot",
	"dinner":    "Local Dinner Spot",
}

// syntheticActivityNames holds generic placeholders keyed by style. They fill
// quota gaps when the real pool is exhausted and may repeat across days.
var syntheticActivityNames = map[string][]string{
	"chillaxed": {
		"Leisurely Neighborhood Stroll",
		"Scenic Viewpoint Visit",
		"Relaxed Cafe Break",
		"Local Park Picnic",
	},
	"adventurous": {
		"Guided Hiking Excursion",
		"Bike Rental Exploration",
		"Kayak or Paddle Session",
		"Sunrise Lookout Climb",
	},
	"busy": {
		"City Landmark Tour",
		"Local Market Browse",
		"Museum Quick Visit",
		"Historic District Walk",
		"Waterfront Promenade",
		"Gallery Hop",
	},
	"balanced": {
		"City Walking Tour",
		"Local Museum Visit",
		"Popular Neighborhood Exploration",
		"Botanical Garden Visit",
	},
}

func syntheticMeal(mealType string) types.Place {
	return types.Place{
		Name:      syntheticMealNames[mealType],
		Category:  types.CategoryRestaurant,
		Synthetic: true,
	}
}

func syntheticActivity(profile types.StyleProfile, index int) types.Place {
	pool := syntheticActivityNames[profile.Name]
	if len(pool) == 0 {
		pool = syntheticActivityNames["balanced"]
	}
	return types.Place{
		Name:      pool[index%len(pool)],
		Category:  types.CategoryActivity,
		Synthetic: true,
	}
}

// allocationRun carries the mutable state of one allocation pass: the
// shuffled pools, the draw cursors, and the uniqueness ledger. Day N draws
// strictly after day N-1's ledger update, so a run is sequential.
type allocationRun struct {
	profile     types.StyleProfile
	ledger      *usageLedger
	restaurants []types.Place
	activities  []types.Place
	rIdx        int
	aIdx        int
	synthesized int
}

func (s *ServiceImpl) newAllocationRun(catalog types.Catalog, prefs types.StylePreferences, existing []types.DayAllocation, skipDay int) *allocationRun {
	ledger := newUsageLedger()
	ledger.seedFromDays(existing, skipDay)

	// One Fisher-Yates shuffle per run, not per day: every day draws from a
	// single randomized order, and the ledger walks it without replacement.
	restaurants := make([]types.Place, len(catalog.Restaurants.All))
	copy(restaurants, catalog.Restaurants.All)
	s.rand.Shuffle(len(restaurants), func(i, j int) {
		restaurants[i], restaurants[j] = restaurants[j], restaurants[i]
	})
	activities := make([]types.Place, len(catalog.Activities))
	copy(activities, catalog.Activities)
	s.rand.Shuffle(len(activities), func(i, j int) {
		activities[i], activities[j] = activities[j], activities[i]
	})

	return &allocationRun{
		profile:     ProfileForStyle(prefs),
		ledger:      ledger,
		restaurants: restaurants,
		activities:  activities,
	}
}

// nextUnused advances the cursor past places already in the ledger and
// returns the next fresh one, or false when the pool is exhausted.
func nextUnused(pool []types.Place, idx *int, ledger *usageLedger) (types.Place, bool) {
	for *idx < len(pool) {
		p := pool[*idx]
		*idx++
		if ledger.seen(p) {
			continue
		}
		return p, true
	}
	return types.Place{}, false
}

func (r *allocationRun) allocateDay(dayNumber int, date time.Time) types.DayAllocation {
	day := types.DayAllocation{
		DayNumber:  dayNumber,
		Date:       date,
		Activities: make([]types.ScheduledActivity, 0, r.profile.ActivityQuota),
		Meals:      make([]types.ScheduledMeal, 0, r.profile.MealQuota),
	}

	for _, mealType := range r.profile.MealTypes {
		place, ok := nextUnused(r.restaurants, &r.rIdx, r.ledger)
		if !ok {
			place = syntheticMeal(mealType)
			r.synthesized++
		}
		r.ledger.record(place)
		day.Meals = append(day.Meals, types.ScheduledMeal{
			MealType: mealType,
			TimeSlot: mealSlots[mealType],
			Place:    place,
		})
	}

	slots := activitySlots[r.profile.ActivityQuota]
	synthIdx := 0
	for _, slot := range slots {
		place, ok := nextUnused(r.activities, &r.aIdx, r.ledger)
		if !ok {
			place = syntheticActivity(r.profile, synthIdx)
			synthIdx++
			r.synthesized++
		}
		r.ledger.record(place)
		day.Activities = append(day.Activities, types.ScheduledActivity{
			TimeSlot: slot,
			Duration: r.profile.ActivityDuration,
			Place:    place,
		})
	}
	return day
}

// AllocateDays assigns a non-repeating subset of the catalog to each of
// dayCount days. Already-populated days passed in existing pre-seed the
// uniqueness ledger so new days never collide with them. Scarcity is not an
// error: exhausted pools degrade to synthetic placeholders, and every day
// comes back with its quotas exactly filled.
func (s *ServiceImpl) AllocateDays(ctx context.Context, catalog types.Catalog, dayCount int, prefs types.StylePreferences, startDate time.Time, existing []types.DayAllocation) []types.DayAllocation {
	runID := uuid.New()
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "AllocateDays", trace.WithAttributes(
		attribute.String("allocation.run_id", runID.String()),
		attribute.Int("day_count", dayCount),
	))
	defer span.End()

	run := s.newAllocationRun(catalog, prefs, existing, 0)
	span.SetAttributes(attribute.String("style", run.profile.Name))

	days := make([]types.DayAllocation, 0, dayCount)
	for i := 0; i < dayCount; i++ {
		days = append(days, run.allocateDay(i+1, startDate.AddDate(0, 0, i)))
	}

	if s.metrics != nil {
		s.metrics.AllocationRunsTotal.Add(ctx, 1)
		s.metrics.SyntheticEntriesTotal.Add(ctx, int64(run.synthesized))
	}
	s.logger.InfoContext(ctx, "Allocation run complete",
		slog.String("run_id", runID.String()),
		slog.String("style", run.profile.Name),
		slog.Int("days", dayCount),
		slog.Int("synthesized", run.synthesized))
	span.SetStatus(codes.Ok, "Days allocated")
	return days
}

// AllocateSingleDay regenerates one day of an existing trip. The ledger is
// pre-seeded with every sibling day's places, so the fresh day cannot reuse
// anything already on the schedule.
func (s *ServiceImpl) AllocateSingleDay(ctx context.Context, catalog types.Catalog, targetDay int, prefs types.StylePreferences, date time.Time, existing []types.DayAllocation) *types.DayAllocation {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "AllocateSingleDay", trace.WithAttributes(
		attribute.Int("target_day", targetDay),
	))
	defer span.End()

	run := s.newAllocationRun(catalog, prefs, existing, targetDay)
	span.SetAttributes(attribute.String("style", run.profile.Name))

	day := run.allocateDay(targetDay, date)

	if s.metrics != nil {
		s.metrics.AllocationRunsTotal.Add(ctx, 1)
		s.metrics.SyntheticEntriesTotal.Add(ctx, int64(run.synthesized))
	}
	span.SetStatus(codes.Ok, "Day regenerated")
	return &day
}
