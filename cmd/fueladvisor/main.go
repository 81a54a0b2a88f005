package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/muesli/gominatim"
	"github.com/urfave/cli/v2"

	"fueladvisor/internal/stationdb"
)

const defaultDBPath = "stations.db"

func main() {
	app := &cli.App{
		Name:  "fueladvisor",
		Usage: "Import gas station data and get ranked refueling recommendations",
		Commands: []*cli.Command{
			importCommand(),
			recommendCommand(),
			askCommand(),
			serveCommand(),
			statusCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func dbFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "db",
		Usage: "Database file",
		Value: defaultDBPath,
	}
}

func openStorage(c *cli.Context) (*stationdb.Storage, error) {
	return stationdb.NewStorage(c.Context, c.String("db"), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func geocodeLocation(name string) (lat, lng float64, err error) {
	gominatim.SetServer("https://nominatim.openstreetmap.org/")
	qry := gominatim.SearchQuery{
		Q: name,
	}

	results, err := qry.Get()
	if err != nil {
		return 0, 0, fmt.Errorf("geocoding error: %w", err)
	}
	if len(results) == 0 {
		return 0, 0, fmt.Errorf("no results found for location: %s", name)
	}
	fmt.Println("Location found:", results[0].DisplayName)

	lat, err = strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("error parsing latitude: %w", err)
	}
	lng, err = strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("error parsing longitude: %w", err)
	}

	return lat, lng, nil
}
