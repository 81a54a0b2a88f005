package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"fueladvisor/internal/location"
	"fueladvisor/pkg/advisor"
	"fueladvisor/pkg/recommend"
)

// Mode-aware scale defaults: urgency for emergency, $/gal cap for budget,
// comfort dial otherwise.
const (
	defaultEmergencyScale = 0.7
	defaultBudgetScale    = 5.0
	defaultComfortScale   = 0.5

	defaultMaxDistanceMiles = 6
	defaultTopResults       = 10
)

func queryFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "location",
			Usage: "Location to search, e.g. \"Irvine, CA\"",
		},
		&cli.Float64Flag{
			Name:  "lat",
			Usage: "Latitude of the location",
		},
		&cli.Float64Flag{
			Name:  "long",
			Usage: "Longitude of the location",
		},
		&cli.StringFlag{
			Name:  "mode",
			Usage: "Selection mode: emergency, budget or comfort",
			Value: "emergency",
		},
		&cli.Float64Flag{
			Name:  "scale",
			Usage: "Mode-aware dial: urgency 0-1 (emergency/comfort) or $/gal cap (budget)",
		},
		&cli.Float64Flag{
			Name:    "max-distance",
			Aliases: []string{"r"},
			Usage:   "Max distance in miles",
			Value:   defaultMaxDistanceMiles,
		},
		&cli.StringFlag{
			Name:  "priority",
			Usage: "Sort priority: cheapest, closest or balanced",
			Value: "balanced",
		},
		&cli.StringFlag{
			Name:  "brand",
			Usage: "Optional brand filter, e.g. \"Arco\"",
		},
		&cli.StringSliceFlag{
			Name:  "amenity",
			Usage: "Desired amenity: food, restroom or store (repeatable)",
		},
		&cli.BoolFlag{
			Name:  "dont-care",
			Usage: "Comfort mode: drop the amenity preference entirely",
		},
		&cli.IntFlag{
			Name:  "top",
			Usage: "How many results to display",
			Value: defaultTopResults,
		},
	}
}

// resolveTracker feeds the position tracker from --location (geocoded) or
// --lat/--long. The tracker stays empty when neither is usable.
func resolveTracker(c *cli.Context) (*location.Tracker, error) {
	tracker := location.NewTracker()

	if loc := c.String("location"); loc != "" {
		lat, lng, err := geocodeLocation(loc)
		if err != nil {
			return nil, err
		}
		tracker.Publish(location.Position{Latitude: lat, Longitude: lng})
		return tracker, nil
	}

	lat := c.Float64("lat")
	lng := c.Float64("long")
	if lat == 0 && lng == 0 {
		return tracker, nil
	}
	tracker.Publish(location.Position{Latitude: lat, Longitude: lng})

	return tracker, nil
}

func modeSetting(c *cli.Context) (recommend.ModeSetting, float64, error) {
	mode, err := advisor.ParseMode(c.String("mode"))
	if err != nil {
		return recommend.ModeSetting{}, 0, err
	}

	scale := c.Float64("scale")
	if !c.IsSet("scale") {
		switch mode {
		case advisor.ModeBudget:
			scale = defaultBudgetScale
		case advisor.ModeComfort:
			scale = defaultComfortScale
		default:
			scale = defaultEmergencyScale
		}
	}

	switch mode {
	case advisor.ModeEmergency:
		return recommend.EmergencySetting(scale), scale, nil
	case advisor.ModeBudget:
		return recommend.BudgetSetting(scale), scale, nil
	default:
		return recommend.ComfortSetting(c.Bool("dont-care")), scale, nil
	}
}

func amenityFlags(values []string) (recommend.Amenities, error) {
	var am recommend.Amenities
	for _, v := range values {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "food":
			am.Food = true
		case "restroom":
			am.Restroom = true
		case "store", "convenience", "convenience-store":
			am.ConvenienceStore = true
		default:
			return am, fmt.Errorf("unknown amenity %q: use food, restroom or store", v)
		}
	}
	return am, nil
}

// buildQueryRequest assembles the recommendation request from the shared
// query flags and the tracked position.
func buildQueryRequest(c *cli.Context) (recommend.Request, error) {
	setting, _, err := modeSetting(c)
	if err != nil {
		return recommend.Request{}, err
	}

	priority, err := advisor.ParsePriority(c.String("priority"))
	if err != nil {
		return recommend.Request{}, err
	}

	amenities, err := amenityFlags(c.StringSlice("amenity"))
	if err != nil {
		return recommend.Request{}, err
	}

	tracker, err := resolveTracker(c)
	if err != nil {
		return recommend.Request{}, err
	}

	opts := recommend.Options{
		Setting:          setting,
		Priority:         priority,
		MaxDistanceMiles: int(c.Float64("max-distance")),
		Brand:            c.String("brand"),
		Amenities:        amenities,
		Top:              c.Int("top"),
	}

	pos, ok := tracker.Latest()
	if !ok {
		return recommend.Request{}, errors.New("location or latitude and longitude are required")
	}

	return recommend.BuildRequest(opts, &recommend.Position{
		Latitude:  pos.Latitude,
		Longitude: pos.Longitude,
	})
}
