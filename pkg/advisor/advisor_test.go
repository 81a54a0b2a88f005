package advisor

import (
	"reflect"
	"testing"
)

func stationIDs(stations []Station) []string {
	ids := make([]string, len(stations))
	for i, s := range stations {
		ids[i] = s.ID
	}
	return ids
}

func TestRankExampleScenario(t *testing.T) {
	stations := []Station{
		{ID: "arco", Brand: "Arco", Price: 4.99, DistanceMiles: 2.1, IsOpen: true},
		{ID: "chevron", Brand: "Chevron", Price: 5.09, DistanceMiles: 1.2, IsOpen: true},
		{ID: "shell", Brand: "Shell", Price: 5.05, DistanceMiles: 3.8, IsOpen: true},
		{ID: "76", Brand: "76", Price: 4.89, DistanceMiles: 6.5, IsOpen: false},
	}
	cfg := SelectionConfig{
		Mode:             ModeEmergency,
		Priority:         PriorityBalanced,
		Urgency:          0.8,
		MaxDistanceMiles: 6,
	}

	got := stationIDs(Rank(stations, cfg))
	want := []string{"chevron", "arco", "shell"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Rank() order = %v, want %v", got, want)
	}
}

func TestRankHardFilters(t *testing.T) {
	stations := []Station{
		{ID: "near", Brand: "Shell", DistanceMiles: 1, IsOpen: true, Amenities: []string{AmenityFood}},
		{ID: "far", Brand: "Shell", DistanceMiles: 20, IsOpen: true, Amenities: []string{AmenityFood}},
		{ID: "other-brand", Brand: "Arco", DistanceMiles: 2, IsOpen: true, Amenities: []string{AmenityFood}},
		{ID: "no-amenities", Brand: "Shell", DistanceMiles: 3, IsOpen: true},
		{ID: "restroom-only", Brand: "Shell", DistanceMiles: 4, IsOpen: true, Amenities: []string{AmenityRestroom}},
	}

	tests := []struct {
		name string
		cfg  SelectionConfig
		want []string
	}{
		{
			name: "distance only",
			cfg:  SelectionConfig{Priority: PriorityClosest, MaxDistanceMiles: 5},
			want: []string{"near", "other-brand", "no-amenities", "restroom-only"},
		},
		{
			name: "brand exact match",
			cfg:  SelectionConfig{Priority: PriorityClosest, MaxDistanceMiles: 5, PreferredBrand: "Arco"},
			want: []string{"other-brand"},
		},
		{
			name: "brand sentinel any disables filter",
			cfg:  SelectionConfig{Priority: PriorityClosest, MaxDistanceMiles: 5, PreferredBrand: BrandAny},
			want: []string{"near", "other-brand", "no-amenities", "restroom-only"},
		},
		{
			name: "amenity intersection, not all required",
			cfg: SelectionConfig{
				Priority:         PriorityClosest,
				MaxDistanceMiles: 5,
				DesiredAmenities: []string{AmenityFood, AmenityRestroom},
			},
			want: []string{"near", "other-brand", "restroom-only"},
		},
	}

	for _, test := range tests {
		got := stationIDs(Rank(stations, test.cfg))
		if !reflect.DeepEqual(got, test.want) {
			t.Errorf("%s: Rank() = %v, want %v", test.name, got, test.want)
		}
	}
}

func TestRankClosedStationDeprioritized(t *testing.T) {
	stations := []Station{
		{ID: "closed", Price: 5.00, DistanceMiles: 2, IsOpen: false},
		{ID: "open", Price: 5.00, DistanceMiles: 2, IsOpen: true},
	}
	cfg := SelectionConfig{Mode: ModeBudget, Priority: PriorityBalanced, MaxDistanceMiles: 10}

	got := stationIDs(Rank(stations, cfg))
	want := []string{"open", "closed"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Rank() = %v, want open before closed", got)
	}
}

func TestRankClosedStationNotExcluded(t *testing.T) {
	stations := []Station{
		{ID: "closed", Price: 4.50, DistanceMiles: 1, IsOpen: false},
	}
	cfg := SelectionConfig{Mode: ModeEmergency, Priority: PriorityBalanced, MaxDistanceMiles: 5}

	if got := len(Rank(stations, cfg)); got != 1 {
		t.Errorf("Rank() dropped a closed station, got %d results", got)
	}
}

func TestRankPriorityDominance(t *testing.T) {
	stations := []Station{
		{ID: "a", Price: 5.50, DistanceMiles: 1, IsOpen: true},
		{ID: "b", Price: 4.20, DistanceMiles: 9, IsOpen: true},
		{ID: "c", Price: 4.80, DistanceMiles: 5, IsOpen: true},
	}

	for _, mode := range []Mode{ModeEmergency, ModeBudget, ModeComfort} {
		closest := Rank(stations, SelectionConfig{Mode: mode, Priority: PriorityClosest, MaxDistanceMiles: 10})
		for i := 1; i < len(closest); i++ {
			if closest[i].DistanceMiles < closest[i-1].DistanceMiles {
				t.Errorf("mode %s: closest priority not sorted by distance: %v", mode, stationIDs(closest))
			}
		}

		cheapest := Rank(stations, SelectionConfig{Mode: mode, Priority: PriorityCheapest, MaxDistanceMiles: 10})
		for i := 1; i < len(cheapest); i++ {
			if cheapest[i].Price < cheapest[i-1].Price {
				t.Errorf("mode %s: cheapest priority not sorted by price: %v", mode, stationIDs(cheapest))
			}
		}
	}
}

func TestRankStability(t *testing.T) {
	// Identical comparator keys must keep input order.
	stations := []Station{
		{ID: "first", Price: 5.00, DistanceMiles: 2, IsOpen: true},
		{ID: "second", Price: 5.00, DistanceMiles: 2, IsOpen: true},
		{ID: "third", Price: 5.00, DistanceMiles: 2, IsOpen: true},
	}
	want := []string{"first", "second", "third"}

	for _, priority := range []Priority{PriorityCheapest, PriorityClosest, PriorityBalanced} {
		cfg := SelectionConfig{Mode: ModeComfort, Priority: priority, MaxDistanceMiles: 10}
		got := stationIDs(Rank(stations, cfg))
		if !reflect.DeepEqual(got, want) {
			t.Errorf("priority %s: tie order = %v, want input order %v", priority, got, want)
		}
	}
}

func TestRankIdempotence(t *testing.T) {
	cfg := SelectionConfig{Mode: ModeBudget, Priority: PriorityBalanced, Urgency: 0.3, MaxDistanceMiles: 10}

	once := Rank(DemoStations(), cfg)
	twice := Rank(once, cfg)
	if !reflect.DeepEqual(stationIDs(once), stationIDs(twice)) {
		t.Errorf("Rank(Rank(S)) = %v, want %v", stationIDs(twice), stationIDs(once))
	}
}

func TestRankEmptyResults(t *testing.T) {
	cfg := SelectionConfig{Priority: PriorityBalanced, MaxDistanceMiles: 10}
	if got := Rank(nil, cfg); len(got) != 0 {
		t.Errorf("Rank(nil) = %v, want empty", got)
	}

	stations := []Station{{ID: "a", DistanceMiles: 0.5, IsOpen: true}}
	cfg.MaxDistanceMiles = 0
	if got := Rank(stations, cfg); len(got) != 0 {
		t.Errorf("Rank() with zero max distance = %v, want empty", got)
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	stations := []Station{
		{ID: "b", Price: 5.00, DistanceMiles: 4, IsOpen: true},
		{ID: "a", Price: 4.00, DistanceMiles: 1, IsOpen: true},
	}
	before := stationIDs(stations)

	Rank(stations, SelectionConfig{Priority: PriorityCheapest, MaxDistanceMiles: 10})

	if !reflect.DeepEqual(stationIDs(stations), before) {
		t.Errorf("Rank() reordered its input: %v, want %v", stationIDs(stations), before)
	}
}

func TestNormalizeClampsUrgency(t *testing.T) {
	tests := []struct {
		in       float64
		expected float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.4, 0.4},
		{1, 1},
		{3.7, 1},
	}

	for _, test := range tests {
		cfg := SelectionConfig{Urgency: test.in}.Normalize()
		if cfg.Urgency != test.expected {
			t.Errorf("Normalize() urgency %v = %v, want %v", test.in, cfg.Urgency, test.expected)
		}
	}
}

func TestTop(t *testing.T) {
	ranked := DemoStations()
	if got := len(Top(ranked, 3)); got != 3 {
		t.Errorf("Top(3) returned %d stations", got)
	}
	if got := len(Top(ranked, 100)); got != len(ranked) {
		t.Errorf("Top(100) returned %d stations, want all %d", got, len(ranked))
	}
	if got := len(Top(ranked, 0)); got != len(ranked) {
		t.Errorf("Top(0) returned %d stations, want all %d", got, len(ranked))
	}
}

func TestParseModeAndPriority(t *testing.T) {
	if m, err := ParseMode(" Emergency "); err != nil || m != ModeEmergency {
		t.Errorf("ParseMode(Emergency) = %v, %v", m, err)
	}
	if _, err := ParseMode("panic"); err == nil {
		t.Error("ParseMode(panic) expected error")
	}
	if p, err := ParsePriority("BALANCED"); err != nil || p != PriorityBalanced {
		t.Errorf("ParsePriority(BALANCED) = %v, %v", p, err)
	}
	if _, err := ParsePriority("fastest"); err == nil {
		t.Error("ParsePriority(fastest) expected error")
	}
}
