package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"fueladvisor/pkg/deeplink"
	"fueladvisor/pkg/recommend"
)

func askCommand() *cli.Command {
	return &cli.Command{
		Name:  "ask",
		Usage: "Ask a recommendation service for ranked stations",
		Flags: append(queryFlags(),
			&cli.StringFlag{
				Name:  "server",
				Usage: "Recommendation service base URL",
				Value: "http://localhost:8080",
			},
			&cli.BoolFlag{
				Name:  "directions",
				Usage: "Print map direction links for the top pick",
			},
		),
		Action: askAction,
	}
}

func askAction(c *cli.Context) error {
	req, err := buildQueryRequest(c)
	if err != nil {
		return err
	}

	client := recommend.NewClient(c.String("server"))
	stations, err := client.Recommend(c.Context, req)
	if err != nil {
		return err
	}

	if len(stations) == 0 {
		fmt.Println("No stations matched your filters (try increasing max distance or removing brand).")
		return nil
	}

	for i, st := range stations {
		open := "yes"
		if !st.IsOpen {
			open = "no"
		}
		fmt.Printf("%d. %s - %.1f mi - $%.2f\n", i+1, st.Name, st.DistanceMiles, st.Price)
		fmt.Printf("   Open: %s\n", open)
		if st.Why != "" {
			fmt.Printf("   Why: %s\n", st.Why)
		}
		if len(st.Nearby) > 0 {
			fmt.Printf("   Amenities: %v\n", st.Nearby)
		}
		fmt.Println()
	}

	if c.Bool("directions") {
		top := stations[0]
		links := deeplink.Directions(top.Latitude, top.Longitude, top.Name)
		fmt.Printf("Directions to %s:\n", top.Name)
		fmt.Printf("   App: %s\n", links.App)
		fmt.Printf("   Web: %s\n", links.Web)
	}

	return nil
}
