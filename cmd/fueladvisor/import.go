package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"
)

func importCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Import stations from a CSV file into the database",
		ArgsUsage: "<stations.csv>",
		Flags: []cli.Flag{
			dbFlag(),
		},
		Action: importAction,
	}
}

func importAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("a single CSV path is required")
	}

	storage, err := openStorage(c)
	if err != nil {
		return fmt.Errorf("error initializing storage: %w", err)
	}
	defer storage.Close()

	imported, err := storage.ImportCSV(c.Context, c.Args().First())
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d stations into %s\n", imported, c.String("db"))
	return nil
}
