package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"hotel_finder/internal/adapters/observability"
	"hotel_finder/internal/shared"
)

func main() {
	cfg := shared.Load()

	app := &cli.Command{
		Name:  "finder",
		Usage: "Search hotels, cities and countries from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "api",
				Usage: "Base URL of the search API",
				Value: cfg.APIURL,
			},
			&cli.IntFlag{
				Name:  "rps",
				Usage: "Maximum API requests per second",
				Value: cfg.APIRPS,
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			log.Logger = observability.NewCLILogger(c.Bool("debug"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			searchCommand(cfg),
			queryCommand(),
			hotelCommand(),
			cityCommand(),
			countryCommand(),
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, os.Args); err != nil {
		log.Error().Err(err).Msg("finder failed")
		stop()
		os.Exit(1)
	}
}
