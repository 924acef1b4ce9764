package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	server "hotel_finder/internal/adapters/http_server"
	"hotel_finder/internal/adapters/observability"
	"hotel_finder/internal/app"
	"hotel_finder/internal/seeds"
	"hotel_finder/internal/shared"
	"hotel_finder/internal/storage"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	reg := observability.InitRegistry()
	if ms := observability.Serve(cfg.MetricsAddr, reg); ms != nil {
		defer ms.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// store
	st, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("failed to connect to document store")
	}
	log.Info().Str("driver", cfg.StoreDriver).Str("database", cfg.DatabaseName).Msg("document store connection ok")

	if cfg.SeedOnStart {
		data, err := seeds.All()
		if err != nil {
			log.Fatal().Err(err).Msg("load seed data failed")
		}
		if err := app.NewSeedService(st).SeedAll(ctx, data, cfg.SeedWorkers, false); err != nil {
			log.Error().Err(err).Msg("seeding failed")
		}
	}

	// deps
	q := app.NewQueryService(st, app.WithLimit(cfg.SearchLimit), app.WithRegexSearch(cfg.SearchRegex))

	// http
	srv := server.New(server.Options{Timeout: cfg.RequestTimeout, CORSOrigins: cfg.CORSOrigins})
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
	if err := st.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("store close failed")
	}
}
