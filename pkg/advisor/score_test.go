package advisor

import (
	"math"
	"strings"
	"testing"
)

func TestScoreClosedPenalty(t *testing.T) {
	closed := Station{Price: 0.01, DistanceMiles: 0.01, IsOpen: false}
	open := Station{Price: 9.99, DistanceMiles: 50, IsOpen: true}
	cfg := SelectionConfig{Mode: ModeEmergency}

	if Score(closed, cfg) >= Score(open, cfg) {
		t.Error("closed station should score below any open station")
	}
	if got := Score(closed, cfg); got != -1000 {
		t.Errorf("Score(closed) = %v, want -1000", got)
	}
}

func TestScoreFormulas(t *testing.T) {
	s := Station{Price: 5.00, DistanceMiles: 2.0, IsOpen: true}
	// priceScore = -50, distScore = -10

	tests := []struct {
		name     string
		cfg      SelectionConfig
		expected float64
	}{
		{
			name:     "emergency favors proximity",
			cfg:      SelectionConfig{Mode: ModeEmergency},
			expected: -10*2.0 + -50*0.5,
		},
		{
			name:     "budget favors price",
			cfg:      SelectionConfig{Mode: ModeBudget},
			expected: -50*2.0 + -10*0.5,
		},
		{
			name: "comfort with zero urgency",
			cfg:  SelectionConfig{Mode: ModeComfort, Urgency: 0},
			// urgencyWeight 0.3, costWeight 1.0, plain bonus 1.0
			expected: -10*0.3 + -50*1.0 + 1.0,
		},
		{
			name: "comfort with full urgency",
			cfg:  SelectionConfig{Mode: ModeComfort, Urgency: 1},
			// urgencyWeight 1.0, costWeight 0.6
			expected: -10*1.0 + -50*0.6 + 1.0,
		},
		{
			name:     "comfort amenity bonus when amenities requested",
			cfg:      SelectionConfig{Mode: ModeComfort, Urgency: 0, DesiredAmenities: []string{AmenityFood}},
			expected: -10*0.3 + -50*1.0 + 8.0,
		},
	}

	for _, test := range tests {
		if got := Score(s, test.cfg); math.Abs(got-test.expected) > 1e-9 {
			t.Errorf("%s: Score() = %v, want %v", test.name, got, test.expected)
		}
	}
}

func TestComfortAmenityBonusIsConstantOffset(t *testing.T) {
	// The bonus applies equally to every survivor, so relative order
	// between two stations must not depend on it.
	a := Station{Price: 4.80, DistanceMiles: 3, IsOpen: true, Amenities: []string{AmenityFood}}
	b := Station{Price: 5.20, DistanceMiles: 1, IsOpen: true, Amenities: []string{AmenityFood}}

	plain := SelectionConfig{Mode: ModeComfort, Urgency: 0.5}
	requested := SelectionConfig{Mode: ModeComfort, Urgency: 0.5, DesiredAmenities: []string{AmenityFood}}

	plainOrder := Score(a, plain) > Score(b, plain)
	requestedOrder := Score(a, requested) > Score(b, requested)
	if plainOrder != requestedOrder {
		t.Error("amenity bonus changed relative order between survivors")
	}
}

func TestExplain(t *testing.T) {
	stations := []Station{
		{ID: "cheap", Brand: "Arco", Price: 4.50, DistanceMiles: 3, IsOpen: true},
		{ID: "close", Brand: "Chevron", Price: 5.10, DistanceMiles: 0.8, IsOpen: true},
	}

	cfg := SelectionConfig{Mode: ModeEmergency, Priority: PriorityBalanced, Urgency: 0.9, MaxDistanceMiles: 6}
	reasons := Explain(stations, cfg, 0)
	if len(reasons) != len(stations) {
		t.Fatalf("Explain() returned %d reasons for %d stations", len(reasons), len(stations))
	}
	if !strings.Contains(reasons[0], "Cheapest within 6 mi") {
		t.Errorf("cheap station reason = %q, want cheapest marker", reasons[0])
	}
	if !strings.Contains(reasons[1], "Closest option") {
		t.Errorf("close station reason = %q, want closest marker", reasons[1])
	}
	if !strings.Contains(reasons[1], "Good when urgency is high") {
		t.Errorf("close station reason = %q, want urgency marker", reasons[1])
	}

	budgetCfg := SelectionConfig{Mode: ModeBudget, Priority: PriorityCheapest, MaxDistanceMiles: 6}
	budgetReasons := Explain(stations, budgetCfg, 5.00)
	if !strings.Contains(budgetReasons[0], "Within budget ($5.00/gal)") {
		t.Errorf("budget reason = %q, want budget marker", budgetReasons[0])
	}
	if strings.Contains(budgetReasons[1], "Within budget") {
		t.Errorf("station above cap got budget marker: %q", budgetReasons[1])
	}

	if got := Explain(nil, cfg, 0); got != nil {
		t.Errorf("Explain(nil) = %v, want nil", got)
	}
}

func TestExplainFallback(t *testing.T) {
	stations := []Station{
		{ID: "min", Price: 4.00, DistanceMiles: 1, IsOpen: true},
		{ID: "mid", Price: 4.50, DistanceMiles: 2, IsOpen: true},
	}
	cfg := SelectionConfig{Mode: ModeComfort, Priority: PriorityBalanced, MaxDistanceMiles: 6}

	reasons := Explain(stations, cfg, 0)
	if reasons[1] != "Good balance of price + distance" {
		t.Errorf("fallback reason = %q", reasons[1])
	}
}
