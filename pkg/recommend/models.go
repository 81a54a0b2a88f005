package recommend

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"fueladvisor/pkg/advisor"
)

// ErrLocationUnavailable is returned by BuildRequest when no position fix
// exists yet. The caller should wait for a location update and retry.
var ErrLocationUnavailable = errors.New("location not ready")

// Position is a WGS84 device position.
type Position struct {
	Latitude  float64
	Longitude float64
}

// Amenities carries the amenity toggles of the request payload.
type Amenities struct {
	Food             bool `json:"food"`
	Restroom         bool `json:"restroom"`
	ConvenienceStore bool `json:"convenienceStore"`
}

// Tags returns the canonical amenity tags for the enabled toggles.
func (a Amenities) Tags() []string {
	var tags []string
	if a.Food {
		tags = append(tags, advisor.AmenityFood)
	}
	if a.Restroom {
		tags = append(tags, advisor.AmenityRestroom)
	}
	if a.ConvenienceStore {
		tags = append(tags, advisor.AmenityConvenienceStore)
	}
	return tags
}

// ModeSetting is the mode together with its mode-specific value. Exactly one
// of urgency, budget price cap or comfort flag exists per setting, keyed by
// the mode, so the wire payload invariant holds by construction.
type ModeSetting struct {
	mode     advisor.Mode
	urgency  float64
	priceCap float64
	dontCare bool
}

// EmergencySetting builds an Emergency mode setting with the given urgency.
func EmergencySetting(urgency float64) ModeSetting {
	return ModeSetting{mode: advisor.ModeEmergency, urgency: urgency}
}

// BudgetSetting builds a Budget mode setting with the given $/gal price cap.
func BudgetSetting(priceCap float64) ModeSetting {
	return ModeSetting{mode: advisor.ModeBudget, priceCap: priceCap}
}

// ComfortSetting builds a Comfort mode setting. dontCare relaxes the amenity
// preference entirely.
func ComfortSetting(dontCare bool) ModeSetting {
	return ModeSetting{mode: advisor.ModeComfort, dontCare: dontCare}
}

// Mode returns the mode of the setting.
func (m ModeSetting) Mode() advisor.Mode { return m.mode }

// Urgency returns the urgency dial. Zero unless the mode is Emergency.
func (m ModeSetting) Urgency() float64 { return m.urgency }

// PriceCap returns the $/gal cap. Zero unless the mode is Budget.
func (m ModeSetting) PriceCap() float64 { return m.priceCap }

// DontCare reports the comfort flag. False unless the mode is Comfort.
func (m ModeSetting) DontCare() bool { return m.dontCare }

// Request is the recommendation request payload.
type Request struct {
	Setting          ModeSetting
	Priority         advisor.Priority
	MaxDistanceMiles int
	Brand            string
	Amenities        Amenities
	Latitude         float64
	Longitude        float64
	Top              int
}

// wireRequest is the JSON shape of Request. Pointer fields let exactly one
// mode-specific value appear; the other two are omitted, not null.
type wireRequest struct {
	Mode             string    `json:"mode"`
	Urgency          *float64  `json:"urgency,omitempty"`
	BudgetPriceCap   *float64  `json:"budgetPriceCap,omitempty"`
	ComfortIDontCare *bool     `json:"comfortIDontCare,omitempty"`
	MaxDistanceMiles int       `json:"maxDistanceMiles"`
	Priority         string    `json:"priority"`
	Brand            string    `json:"brand,omitempty"`
	Amenities        Amenities `json:"amenities"`
	Latitude         float64   `json:"latitude"`
	Longitude        float64   `json:"longitude"`
	Top              int       `json:"top,omitempty"`
}

// MarshalJSON serializes the request with the single mode-specific field
// selected by the mode.
func (r Request) MarshalJSON() ([]byte, error) {
	w := wireRequest{
		Mode:             string(r.Setting.mode),
		MaxDistanceMiles: r.MaxDistanceMiles,
		Priority:         string(r.Priority),
		Brand:            strings.TrimSpace(r.Brand),
		Amenities:        r.Amenities,
		Latitude:         r.Latitude,
		Longitude:        r.Longitude,
		Top:              r.Top,
	}

	switch r.Setting.mode {
	case advisor.ModeEmergency:
		u := r.Setting.urgency
		w.Urgency = &u
	case advisor.ModeBudget:
		pc := r.Setting.priceCap
		w.BudgetPriceCap = &pc
	case advisor.ModeComfort:
		dc := r.Setting.dontCare
		w.ComfortIDontCare = &dc
	default:
		return nil, fmt.Errorf("invalid mode %q", r.Setting.mode)
	}

	return json.Marshal(w)
}

// UnmarshalJSON parses and validates a request payload: known mode and
// priority, and exactly one mode-specific field, matching the mode.
func (r *Request) UnmarshalJSON(data []byte) error {
	var w wireRequest
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("error decoding request: %w", err)
	}

	mode, err := advisor.ParseMode(w.Mode)
	if err != nil {
		return err
	}
	priority, err := advisor.ParsePriority(w.Priority)
	if err != nil {
		return err
	}

	present := 0
	if w.Urgency != nil {
		present++
	}
	if w.BudgetPriceCap != nil {
		present++
	}
	if w.ComfortIDontCare != nil {
		present++
	}
	if present != 1 {
		return fmt.Errorf("exactly one of urgency, budgetPriceCap or comfortIDontCare must be set, got %d", present)
	}

	switch {
	case mode == advisor.ModeEmergency && w.Urgency != nil:
		r.Setting = EmergencySetting(*w.Urgency)
	case mode == advisor.ModeBudget && w.BudgetPriceCap != nil:
		r.Setting = BudgetSetting(*w.BudgetPriceCap)
	case mode == advisor.ModeComfort && w.ComfortIDontCare != nil:
		r.Setting = ComfortSetting(*w.ComfortIDontCare)
	default:
		return fmt.Errorf("mode %q does not match the provided mode-specific field", mode)
	}

	r.Priority = priority
	r.MaxDistanceMiles = w.MaxDistanceMiles
	r.Brand = strings.TrimSpace(w.Brand)
	r.Amenities = w.Amenities
	r.Latitude = w.Latitude
	r.Longitude = w.Longitude
	r.Top = w.Top
	return nil
}

// Options are the user-chosen request inputs, position excluded.
type Options struct {
	Setting          ModeSetting
	Priority         advisor.Priority
	MaxDistanceMiles int
	Brand            string
	Amenities        Amenities
	Top              int
}

// BuildRequest combines user options with the latest known position. A nil
// position fails with ErrLocationUnavailable. The distance bound is raised
// to at least one mile.
func BuildRequest(opts Options, pos *Position) (Request, error) {
	if pos == nil {
		return Request{}, ErrLocationUnavailable
	}

	maxMiles := opts.MaxDistanceMiles
	if maxMiles < 1 {
		maxMiles = 1
	}

	return Request{
		Setting:          opts.Setting,
		Priority:         opts.Priority,
		MaxDistanceMiles: maxMiles,
		Brand:            strings.TrimSpace(opts.Brand),
		Amenities:        opts.Amenities,
		Latitude:         pos.Latitude,
		Longitude:        pos.Longitude,
		Top:              opts.Top,
	}, nil
}

// SelectionConfig maps the request onto the local ranking configuration.
// Comfort's "I don't care" flag clears the amenity preference.
func (r Request) SelectionConfig() advisor.SelectionConfig {
	cfg := advisor.SelectionConfig{
		Mode:             r.Setting.mode,
		Priority:         r.Priority,
		Urgency:          r.Setting.urgency,
		MaxDistanceMiles: float64(r.MaxDistanceMiles),
		PreferredBrand:   r.Brand,
		DesiredAmenities: r.Amenities.Tags(),
	}
	if r.Setting.mode == advisor.ModeComfort && r.Setting.dontCare {
		cfg.DesiredAmenities = nil
	}
	return cfg.Normalize()
}

// Station is a recommended station as returned by the service.
type Station struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Brand         string   `json:"brand"`
	Price         float64  `json:"price"`
	DistanceMiles float64  `json:"distanceMiles"`
	IsOpen        bool     `json:"isOpen"`
	Why           string   `json:"why,omitempty"`
	Nearby        []string `json:"nearby,omitempty"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
}
