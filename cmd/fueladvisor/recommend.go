package main

import (
	"fmt"

	"github.com/tkrajina/gpxgo/gpx"
	"github.com/urfave/cli/v2"

	"fueladvisor/pkg/advisor"
	"fueladvisor/pkg/deeplink"
)

const metersPerMile = 1609.344

func recommendCommand() *cli.Command {
	return &cli.Command{
		Name:  "recommend",
		Usage: "Rank nearby stations locally and print recommendations",
		Flags: append(queryFlags(),
			dbFlag(),
			&cli.BoolFlag{
				Name:  "demo",
				Usage: "Use the built-in demo station list instead of the database",
			},
			&cli.BoolFlag{
				Name:  "directions",
				Usage: "Print map direction links for the top pick",
			},
		),
		Action: recommendAction,
	}
}

func recommendAction(c *cli.Context) error {
	req, err := buildQueryRequest(c)
	if err != nil {
		return err
	}

	var candidates []advisor.Station
	if c.Bool("demo") {
		candidates = demoCandidates(req.Latitude, req.Longitude)
	} else {
		storage, err := openStorage(c)
		if err != nil {
			return fmt.Errorf("error initializing storage: %w", err)
		}
		defer storage.Close()

		candidates, err = storage.Nearby(c.Context, req.Latitude, req.Longitude, float64(req.MaxDistanceMiles))
		if err != nil {
			return fmt.Errorf("error fetching nearby stations: %w", err)
		}
	}

	cfg := req.SelectionConfig()
	if cfg.Mode == advisor.ModeComfort {
		// The comfort dial biases distance vs price weighting locally.
		_, scale, err := modeSetting(c)
		if err != nil {
			return err
		}
		cfg.Urgency = scale
		cfg = cfg.Normalize()
	}

	budgetCap := req.Setting.PriceCap()
	if cfg.Mode == advisor.ModeBudget && budgetCap > 0 {
		capped := candidates[:0:0]
		for _, st := range candidates {
			if st.Price <= budgetCap {
				capped = append(capped, st)
			}
		}
		candidates = capped
	}

	ranked := advisor.Top(advisor.Rank(candidates, cfg), req.Top)
	reasons := advisor.Explain(ranked, cfg, budgetCap)

	if len(ranked) == 0 {
		fmt.Println("No stations matched your filters (try increasing max distance or removing brand).")
		return nil
	}

	for i, st := range ranked {
		open := "yes"
		if !st.IsOpen {
			open = "no"
		}
		fmt.Printf("%d. %s (%s)\n", i+1, st.Name, st.Address)
		fmt.Printf("   Distance: %.1f mi\n", st.DistanceMiles)
		fmt.Printf("   Price: $%.2f\n", st.Price)
		fmt.Printf("   Open: %s\n", open)
		fmt.Printf("   Why: %s\n\n", reasons[i])
	}

	fmt.Printf("Found %d stations within %d mi\n", len(ranked), req.MaxDistanceMiles)

	if c.Bool("directions") {
		top := ranked[0]
		links := deeplink.Directions(top.Coordinate.Latitude, top.Coordinate.Longitude, top.Name)
		fmt.Printf("\nDirections to %s:\n", top.Name)
		fmt.Printf("   App: %s\n", links.App)
		fmt.Printf("   Web: %s\n", links.Web)
	}

	return nil
}

// demoCandidates returns the built-in demo list with distances recomputed
// from the query point.
func demoCandidates(lat, lng float64) []advisor.Station {
	stations := advisor.DemoStations()
	for i := range stations {
		meters := gpx.Distance2D(lat, lng,
			stations[i].Coordinate.Latitude, stations[i].Coordinate.Longitude, true)
		stations[i].DistanceMiles = meters / metersPerMile
	}
	return stations
}
