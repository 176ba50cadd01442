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
	"hotel_booking/internal/app"
	"hotel_booking/internal/shared"
	"hotel_booking/internal/storage/memory"
)

func main() {
	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	// logs go to stderr so they stay out of the prompts
	log.Logger = observability.NewLogger(cfg.AppEnv, os.Stderr).Level(observability.ParseLevel(cfg.LogLevel))

	store := memory.New(cfg.Seed(), cfg.Catalogue.CaseInsensitive)
	svc := app.NewBookingService(store.Apartments, store.Guests, store.Items, store.Orders)
	receipt := app.Receipt{Hotel: cfg.HotelName, Currency: cfg.Currency}

	log.Info().
		Int("apartments", store.Apartments.Len()).
		Int("guests", store.Guests.Len()).
		Str("metrics_addr", cfg.MetricsAddr).
		Msg("booking system starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)
	menuCtx, menuDone := context.WithCancel(gctx)

	g.Go(func() error {
		defer menuDone()
		p := cli.NewPrompter(gctx, os.Stdin, os.Stdout)
		return cli.NewBookingMenu(p, svc, store, receipt, cfg.MaxNights).Run()
	})
	if cfg.MetricsAddr != "" {
		srv := opsserver.New(observability.InitRegistry())
		g.Go(func() error { return srv.Run(menuCtx, cfg.MetricsAddr) })
	}

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("booking system failed")
	}
	log.Info().Msg("booking system stopped")
}
