package destination

import (
	"regexp"
	"strings"

	"github.com/FACorreiaa/go-trip-content-engine/internal/types"
)

// maxCities bounds per-query provider cost: each city triggers one geocode
// plus four text searches.
const maxCities = 5

var (
	// Filler phrases stripped before splitting ("trip to Tokyo" -> "Tokyo").
	// Matched case-insensitively in place so byte offsets never have to be
	// mapped between a lowercased copy and the original string, which breaks
	// for runes whose lowercase form has a different byte length.
	stopPhraseRe = regexp.MustCompile(`(?i)\b(?:trip to|travelling to|traveling to|travel to|vacation in|vacation to|holiday in|visiting|visit|going to|journey to|tour of)\b`)

	// Conjunctions and transition words that separate cities in a
	// multi-city destination ("New York to Los Angeles").
	conjunctionRe = regexp.MustCompile(`(?i)\b(?:and|then|to|via|through)\b`)

	trailingPunctRe = regexp.MustCompile(`[.!?;:]+$`)
	whitespaceRe    = regexp.MustCompile(`\s+`)
)

// statePrefixRe strips qualifiers that lead a fragment which continues with a
// city name ("Northern California" -> "California").
var statePrefixRe = regexp.MustCompile(`(?i)^(?:new york state|northern|southern|eastern|western|central|upstate)\s+`)

// regionNames are region/country words that, as the second half of a
// "City, Region" pair, mark the pair as a single destination.
var regionNames = map[string]bool{
	"new zealand": true, "south korea": true, "south africa": true,
	"united states": true, "united kingdom": true, "costa rica": true,
	"sri lanka": true, "saudi arabia": true, "czech republic": true,
	"new south wales": true, "british columbia": true,
	"new hampshire": true, "new jersey": true, "new mexico": true,
	"north carolina": true, "south carolina": true,
	"north dakota": true, "south dakota": true, "rhode island": true,
	"west virginia": true,
}

// regionDefaults maps a bare region name to a representative city. This is an
// intentionally narrow hardcoded heuristic, not a general rule: a traveler
// typing just "Oregon" still needs a geocodable anchor city.
var regionDefaults = map[string]string{
	"oregon":     "Portland, Oregon",
	"california": "Los Angeles, California",
	"texas":      "Austin, Texas",
	"hawaii":     "Honolulu, Hawaii",
	"colorado":   "Denver, Colorado",
}

// ParseDestination splits a free-text destination string into an ordered,
// case-insensitively deduplicated list of at most maxCities candidate cities.
// Pure and deterministic; performs no network calls.
func ParseDestination(raw string) types.DestinationQuery {
	query := types.DestinationQuery{Raw: raw}

	cleaned := strings.TrimSpace(raw)
	cleaned = trailingPunctRe.ReplaceAllString(cleaned, "")
	cleaned = stopPhraseRe.ReplaceAllString(cleaned, " ")
	cleaned = whitespaceRe.ReplaceAllString(strings.TrimSpace(cleaned), " ")
	if cleaned == "" {
		return query
	}

	candidates := splitFragments(conjunctionRe.Split(cleaned, -1))

	// Conjunction splitting found nothing to split on: fall back to commas,
	// but keep a single "City, Country" pair intact as one destination.
	if len(candidates) <= 1 {
		parts := splitFragments(strings.Split(cleaned, ","))
		switch {
		case len(parts) == 2 && isRegionName(parts[1]):
			candidates = []string{cleaned}
		case len(parts) > 1:
			candidates = parts
		default:
			candidates = []string{cleaned}
		}
	}

	seen := make(map[string]bool)
	for _, candidate := range candidates {
		candidate = stripStatePrefix(candidate)
		if def, ok := regionDefaults[strings.ToLower(candidate)]; ok {
			candidate = def
		}
		if len(candidate) <= 2 {
			continue
		}
		key := strings.ToLower(candidate)
		if seen[key] {
			continue
		}
		seen[key] = true
		query.Cities = append(query.Cities, candidate)
		if len(query.Cities) == maxCities {
			break
		}
	}

	if len(query.Cities) > 0 {
		query.Primary = query.Cities[0]
	}
	query.MultiCity = len(query.Cities) > 1
	return query
}

func splitFragments(parts []string) []string {
	var out []string
	for _, p := range parts {
		p = strings.Trim(strings.TrimSpace(p), ",")
		if len(p) > 2 {
			out = append(out, p)
		}
	}
	return out
}

func stripStatePrefix(fragment string) string {
	return statePrefixRe.ReplaceAllString(fragment, "")
}

func isRegionName(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if regionNames[s] {
		return true
	}
	// Single-word second halves ("Japan", "France", "Nevada") read as a
	// country or state qualifier, not a second city.
	return !strings.Contains(s, " ")
}
