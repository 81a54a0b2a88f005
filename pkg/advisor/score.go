package advisor

// Scoring constants. Higher score is better; both price and distance
// contribute negatively, so cheap and close stations float up.
const (
	closedPenalty = -1000.0

	priceFactor    = 10.0
	distanceFactor = 5.0

	// Comfort mode adds a flat bonus to every survivor when amenities were
	// requested. All survivors already satisfy the amenity filter, so the
	// bonus shifts absolute scores without reordering them.
	amenityBonusPlain     = 1.0
	amenityBonusRequested = 8.0
)

// Score computes the mode-specific score for a single station. Closed
// stations receive a flat overriding penalty so they sink below every open
// station but still appear in the results.
func Score(s Station, cfg SelectionConfig) float64 {
	if !s.IsOpen {
		return closedPenalty
	}

	priceScore := -s.Price * priceFactor
	distScore := -s.DistanceMiles * distanceFactor

	switch cfg.Mode {
	case ModeEmergency:
		return distScore*2.0 + priceScore*0.5
	case ModeBudget:
		return priceScore*2.0 + distScore*0.5
	default: // ModeComfort
		urgencyWeight := 0.3 + cfg.Urgency*0.7
		costWeight := 1.0 - cfg.Urgency*0.4
		bonus := amenityBonusPlain
		if len(cfg.DesiredAmenities) > 0 {
			bonus = amenityBonusRequested
		}
		return distScore*urgencyWeight + priceScore*costWeight + bonus
	}
}
