package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

func statusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show station database summary",
		Flags: []cli.Flag{
			dbFlag(),
		},
		Action: statusAction,
	}
}

func statusAction(c *cli.Context) error {
	storage, err := openStorage(c)
	if err != nil {
		return fmt.Errorf("error initializing storage: %w", err)
	}
	defer storage.Close()

	count, err := storage.Count(c.Context)
	if err != nil {
		return err
	}

	lastImport, err := storage.LastImport(c.Context)
	if err != nil {
		return err
	}

	fmt.Printf("Stations: %d\n", count)
	if lastImport == nil {
		fmt.Println("Last import: never")
	} else {
		fmt.Printf("Last import: %s\n", lastImport.Format("2006-01-02 15:04:05 MST"))
	}

	return nil
}
