package types

import "time"

// StylePreferences are the traveler's declared pace flags. At most one is
// expected to be set; when several are, the busiest wins, and when none are,
// default quotas apply.
type StylePreferences struct {
	Chillaxed   bool `json:"chillaxed"`
	Adventurous bool `json:"adventurous"`
	Busy        bool `json:"busy"`
}

// StyleProfile is the quota/timing envelope derived from StylePreferences.
type StyleProfile struct {
	Name             string   `json:"name"`
	ActivityQuota    int      `json:"activity_quota"`
	MealQuota        int      `json:"meal_quota"`
	ActivityDuration string   `json:"activity_duration"`
	StartTime        string   `json:"start_time"`
	MealTypes        []string `json:"meal_types"`
}

// ScheduledActivity pins a place (real or synthetic) to a time slot.
type ScheduledActivity struct {
	TimeSlot string `json:"time_slot"`
	Duration string `json:"duration"`
	Place    Place  `json:"place"`
}

// ScheduledMeal pins a restaurant (real or synthetic) to a meal of the day.
type ScheduledMeal struct {
	MealType string `json:"meal_type"`
	TimeSlot string `json:"time_slot"`
	Place    Place  `json:"place"`
}

// DayAllocation is one fully populated day of a trip. Allocations are created
// once per run and never patched; regeneration produces a replacement.
type DayAllocation struct {
	DayNumber  int                 `json:"day_number"`
	Date       time.Time           `json:"date"`
	Activities []ScheduledActivity `json:"activities"`
	Meals      []ScheduledMeal     `json:"meals"`
}
