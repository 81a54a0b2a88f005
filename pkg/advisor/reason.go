package advisor

import (
	"fmt"
	"math"
	"strings"
)

const priceEpsilon = 1e-9

// Explain produces a human-readable "why" line for each station of a ranked
// cohort. budgetCap is the $/gal ceiling when cfg.Mode is Budget; pass 0
// when no cap applies.
func Explain(ranked []Station, cfg SelectionConfig, budgetCap float64) []string {
	if len(ranked) == 0 {
		return nil
	}
	cfg = cfg.Normalize()

	minPrice := ranked[0].Price
	minDist := ranked[0].DistanceMiles
	for _, s := range ranked[1:] {
		minPrice = math.Min(minPrice, s.Price)
		minDist = math.Min(minDist, s.DistanceMiles)
	}

	reasons := make([]string, len(ranked))
	for i, s := range ranked {
		var parts []string
		if math.Abs(s.Price-minPrice) < priceEpsilon {
			parts = append(parts, fmt.Sprintf("Cheapest within %.0f mi", cfg.MaxDistanceMiles))
		}
		if math.Abs(s.DistanceMiles-minDist) < priceEpsilon {
			parts = append(parts, "Closest option")
		}
		if cfg.Mode == ModeBudget && budgetCap > 0 && s.Price <= budgetCap {
			parts = append(parts, fmt.Sprintf("Within budget ($%.2f/gal)", budgetCap))
		}
		if cfg.brandFilterActive() && s.Brand == cfg.PreferredBrand {
			parts = append(parts, "Matches preferred brand")
		}
		if cfg.Mode == ModeEmergency && cfg.Urgency >= 0.7 &&
			s.DistanceMiles <= math.Min(cfg.MaxDistanceMiles, minDist+1.0) {
			parts = append(parts, "Good when urgency is high")
		}
		if len(parts) == 0 {
			parts = append(parts, "Good balance of price + distance")
		}
		reasons[i] = strings.Join(parts, " | ")
	}

	return reasons
}
