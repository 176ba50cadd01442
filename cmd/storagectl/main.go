package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"hotel_booking/internal/adapters/cli"
	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/adapters/opsserver"
	"hotel_booking/internal/shared"
	"hotel_booking/internal/storage/memory"
)

func main() {
	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	log.Logger = observability.NewLogger(cfg.AppEnv, os.Stderr).Level(observability.ParseLevel(cfg.LogLevel))

	store := memory.New(cfg.Seed(), cfg.Catalogue.CaseInsensitive)
	log.Info().Int("apartments", store.Apartments.Len()).Int("guests", store.Guests.Len()).Msg("storage manager starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)
	menuCtx, menuDone := context.WithCancel(gctx)

	g.Go(func() error {
		defer menuDone()
		p := cli.NewPrompter(gctx, os.Stdin, os.Stdout)
		return cli.NewStorageMenu(p, store, cfg.Currency).Run()
	})
	if cfg.MetricsAddr != "" {
		srv := opsserver.New(observability.InitRegistry())
		g.Go(func() error { return srv.Run(menuCtx, cfg.MetricsAddr) })
	}

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("storage manager failed")
	}
}
