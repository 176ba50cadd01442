// Package opsserver serves /healthz and /metrics next to the interactive CLIs.
package opsserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"hotel_booking/internal/adapters/observability"
)

const shutdownGrace = 5 * time.Second

type Server struct{ mux *chi.Mux }

func New(reg *prometheus.Registry) *Server {
	m := chi.NewRouter()

	m.Use(chimw.RequestID)
	m.Use(chimw.Recoverer)
	m.Use(Timeout(10 * time.Second))
	m.Use(Metrics)
	m.Use(Logger(log.Logger))

	m.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	m.Handle("/metrics", observability.MetricsHandler(reg))

	return &Server{mux: m}
}

func (s *Server) Mux() http.Handler { return s.mux }

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.mux, ReadHeaderTimeout: 5 * time.Second}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("ops server listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		log.Info().Msg("ops server shutting down")
		return srv.Shutdown(sctx)
	}
}
