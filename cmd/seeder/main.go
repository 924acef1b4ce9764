package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"hotel_finder/internal/adapters/observability"
	"hotel_finder/internal/app"
	"hotel_finder/internal/seeds"
	"hotel_finder/internal/shared"
	"hotel_finder/internal/storage"
)

func main() {
	cfg := shared.Load()

	// initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	cmd := &cli.Command{
		Name:  "seeder",
		Usage: "Load the bundled hotels, cities and countries into the document store",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Insert even when a collection already has documents",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Collections loaded concurrently",
				Value: cfg.SeedWorkers,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return seed(ctx, cfg, c.Int("workers"), c.Bool("force"))
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}
}

func seed(ctx context.Context, cfg shared.Config, workers int, force bool) error {
	log.Info().
		Str("driver", cfg.StoreDriver).
		Str("database", cfg.DatabaseName).
		Int("workers", workers).
		Bool("force", force).
		Msg("seeder starting")

	st, err := storage.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(ctx); err != nil {
			log.Warn().Err(err).Msg("store close failed")
		}
	}()
	log.Info().Msg("store ping ok")

	data, err := seeds.All()
	if err != nil {
		return err
	}
	if err := app.NewSeedService(st).SeedAll(ctx, data, workers, force); err != nil {
		return err
	}
	log.Info().Msg("seeding completed")
	return nil
}
