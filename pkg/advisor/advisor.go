// Package advisor implements the station selection engine: hard filtering,
// mode-aware scoring and priority-aware ordering of fuel stations.
//
// Rank is a pure function. It never fails, never mutates its input stations
// and is safe to call concurrently.
package advisor

import (
	"fmt"
	"sort"
	"strings"
)

// Canonical amenity tags. Station amenity sets and desired-amenity filters
// use these values.
const (
	AmenityFood             = "Food"
	AmenityRestroom         = "Restroom"
	AmenityConvenienceStore = "ConvenienceStore"
)

// BrandAny is the sentinel brand value that disables brand filtering.
const BrandAny = "any"

// Mode selects which scoring formula applies to the surviving stations.
type Mode string

const (
	ModeEmergency Mode = "emergency"
	ModeBudget    Mode = "budget"
	ModeComfort   Mode = "comfort"
)

// ParseMode parses a mode string, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeEmergency:
		return ModeEmergency, nil
	case ModeBudget:
		return ModeBudget, nil
	case ModeComfort:
		return ModeComfort, nil
	}
	return "", fmt.Errorf("invalid mode %q: use emergency, budget or comfort", s)
}

// Priority is the sort directive. Cheapest and Closest bypass the mode score
// entirely; Balanced orders by descending score.
type Priority string

const (
	PriorityCheapest Priority = "cheapest"
	PriorityClosest  Priority = "closest"
	PriorityBalanced Priority = "balanced"
)

// ParsePriority parses a priority string, case-insensitively.
func ParsePriority(s string) (Priority, error) {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityCheapest:
		return PriorityCheapest, nil
	case PriorityClosest:
		return PriorityClosest, nil
	case PriorityBalanced:
		return PriorityBalanced, nil
	}
	return "", fmt.Errorf("invalid priority %q: use cheapest, closest or balanced", s)
}

// Coordinate is a WGS84 position. It is carried for map launching only;
// ranking math uses the precomputed DistanceMiles.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// Station is a read-only candidate record. DistanceMiles is the distance
// from the query location, precomputed by the caller or the storage layer.
type Station struct {
	ID            string
	Name          string
	Brand         string
	Address       string
	Price         float64
	DistanceMiles float64
	IsOpen        bool
	Amenities     []string
	Coordinate    Coordinate
}

// HasAnyAmenity reports whether the station offers at least one of the
// given amenity tags.
func (s Station) HasAnyAmenity(tags []string) bool {
	for _, want := range tags {
		for _, have := range s.Amenities {
			if have == want {
				return true
			}
		}
	}
	return false
}

// SelectionConfig is built fresh from user input for every ranking call.
type SelectionConfig struct {
	Mode     Mode
	Priority Priority

	// Urgency in [0,1]. Only meaningful for Emergency and Comfort scoring.
	Urgency float64

	// MaxDistanceMiles is a hard filter. A non-positive value excludes
	// every station.
	MaxDistanceMiles float64

	// PreferredBrand is an exact-match hard filter. Empty or BrandAny
	// disables it.
	PreferredBrand string

	// DesiredAmenities is a hard filter when non-empty: a station must
	// share at least one tag. All tags are not required.
	DesiredAmenities []string
}

// Normalize clamps Urgency to [0,1] and returns the adjusted config.
func (c SelectionConfig) Normalize() SelectionConfig {
	if c.Urgency < 0 {
		c.Urgency = 0
	}
	if c.Urgency > 1 {
		c.Urgency = 1
	}
	return c
}

// brandFilterActive reports whether the brand hard filter applies.
func (c SelectionConfig) brandFilterActive() bool {
	return c.PreferredBrand != "" && c.PreferredBrand != BrandAny
}

// passes applies the hard filters. Closed stations are not filtered here;
// they are deprioritized by scoring instead.
func (c SelectionConfig) passes(s Station) bool {
	if s.DistanceMiles > c.MaxDistanceMiles {
		return false
	}
	if c.brandFilterActive() && s.Brand != c.PreferredBrand {
		return false
	}
	if len(c.DesiredAmenities) > 0 && !s.HasAnyAmenity(c.DesiredAmenities) {
		return false
	}
	return true
}

// Rank filters, scores and orders candidate stations. The returned slice is
// newly allocated; the input is never modified. Ties preserve input order.
func Rank(stations []Station, cfg SelectionConfig) []Station {
	cfg = cfg.Normalize()

	out := make([]Station, 0, len(stations))
	for _, s := range stations {
		if cfg.passes(s) {
			out = append(out, s)
		}
	}

	switch cfg.Priority {
	case PriorityClosest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].DistanceMiles < out[j].DistanceMiles
		})
	case PriorityCheapest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price < out[j].Price
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return Score(out[i], cfg) > Score(out[j], cfg)
		})
	}

	return out
}

// Top returns at most limit stations from a ranked list.
func Top(ranked []Station, limit int) []Station {
	if limit > 0 && len(ranked) > limit {
		return ranked[:limit]
	}
	return ranked
}
