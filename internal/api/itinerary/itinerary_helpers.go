package itinerary

import (
	"fmt"
	"strings"

	"github.com/FACorreiaa/go-trip-content-engine/internal/types"
)

// dedupePlaces concatenates per-city result sets and removes duplicates by
// provider id. Entries with an empty id are always kept: without a reliable
// key there is nothing safe to collapse them on.
func dedupePlaces(lists ...[]types.Place) []types.Place {
	var out []types.Place
	seen := make(map[string]bool)
	for _, list := range lists {
		for _, p := range list {
			if p.ID != "" {
				if seen[p.ID] {
					continue
				}
				seen[p.ID] = true
			}
			out = append(out, p)
		}
	}
	return out
}

func buildSummary(cities []types.CityInfo, catalog types.Catalog, radiusMiles float64) string {
	if len(cities) == 0 {
		return "no cities resolved; using synthetic content"
	}
	names := make([]string, len(cities))
	for i, c := range cities {
		names[i] = c.Name
	}
	return fmt.Sprintf("%d restaurants and %d activities within %.1f miles of %s",
		len(catalog.Restaurants.All), len(catalog.Activities), radiusMiles,
		strings.Join(names, ", "))
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// usageLedger tracks the identities of real places already assigned within a
// single allocation run. Checked by id, name and address simultaneously: the
// same venue can resurface under a different provider id with a slightly
// different address string, and any one matching key counts as a repeat.
// Scoped to one run and discarded afterward.
type usageLedger struct {
	ids       map[string]bool
	names     map[string]bool
	addresses map[string]bool
}

func newUsageLedger() *usageLedger {
	return &usageLedger{
		ids:       make(map[string]bool),
		names:     make(map[string]bool),
		addresses: make(map[string]bool),
	}
}

func (l *usageLedger) seen(p types.Place) bool {
	if p.ID != "" && l.ids[p.ID] {
		return true
	}
	if p.Name != "" && l.names[normalizeKey(p.Name)] {
		return true
	}
	if p.Address != "" && l.addresses[normalizeKey(p.Address)] {
		return true
	}
	return false
}

// record adds a real place's identity to the ledger. Synthetic entries stay
// out: they are intentionally generic and may repeat across days.
func (l *usageLedger) record(p types.Place) {
	if p.Synthetic {
		return
	}
	if p.ID != "" {
		l.ids[p.ID] = true
	}
	if p.Name != "" {
		l.names[normalizeKey(p.Name)] = true
	}
	if p.Address != "" {
		l.addresses[normalizeKey(p.Address)] = true
	}
}

// seedFromDays preloads the ledger with everything already allocated to the
// given days, skipping the day being regenerated (0 skips nothing).
func (l *usageLedger) seedFromDays(days []types.DayAllocation, skipDay int) {
	for _, day := range days {
		if day.DayNumber == skipDay {
			continue
		}
		for _, a := range day.Activities {
			l.record(a.Place)
		}
		for _, m := range day.Meals {
			l.record(m.Place)
		}
	}
}
