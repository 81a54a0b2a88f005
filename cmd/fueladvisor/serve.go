package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/httplog/v2"
	"github.com/urfave/cli/v2"

	"fueladvisor/internal/server"
	"fueladvisor/internal/stationdb"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the recommendation HTTP service",
		Flags: []cli.Flag{
			dbFlag(),
			&cli.IntFlag{
				Name:  "port",
				Usage: "HTTP server port",
				Value: 8080,
			},
		},
		Action: serveAction,
	}
}

func serveAction(c *cli.Context) error {
	logger := httplog.NewLogger("fueladvisor", httplog.Options{
		JSON:            false,
		LogLevel:        slog.LevelDebug,
		Concise:         true,
		QuietDownPeriod: 10 * time.Second,
	})

	storage, err := stationdb.NewStorage(c.Context, c.String("db"), logger.Logger)
	if err != nil {
		return fmt.Errorf("error initializing storage: %w", err)
	}
	defer storage.Close()

	srv := server.New(storage, logger)

	addr := fmt.Sprintf("127.0.0.1:%d", c.Int("port"))
	logger.Debug("Starting server on", "addr", addr)
	log.Fatal(http.ListenAndServe(addr, srv.Router()))
	return nil
}
