package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/omarshaarawi/livescore/internal/metrics"
	"github.com/omarshaarawi/livescore/internal/repository/memory"
	"github.com/omarshaarawi/livescore/internal/scheduler"
	"github.com/omarshaarawi/livescore/internal/server"
	"github.com/omarshaarawi/livescore/internal/widget"
)

func serveCmd(opts *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the browser widget and keep it refreshed",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return serve(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address (env HTTP_ADDR)")
	return cmd
}

func serve(parent context.Context, opts *rootOptions) error {
	cfg := opts.cfg
	interval := cfg.Widget.RefreshInterval()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	scoreboard := newScoreboardService(cfg, m)
	repo := memory.NewRepository()
	hub := widget.NewHub(cfg.Server.CORSOrigins, slog.Default())

	sched := scheduler.NewScheduler(scoreboard, widget.Multi{repo, hub}, interval,
		scheduler.WithMetrics(m),
		scheduler.WithLogger(slog.Default()),
	)

	watchdog, err := scheduler.NewWatchdog(repo, interval, cfg.Widget.StaleAfterCycles, nil, slog.Default())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go hub.Run(ctx)

	if err := watchdog.Start(); err != nil {
		return err
	}
	defer func() {
		if err := watchdog.Stop(); err != nil {
			slog.Error("Error stopping watchdog", "error", err)
		}
	}()

	go func() {
		if err := sched.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("Refresh loop stopped", "error", err)
		}
	}()

	router := server.NewRouter(server.Options{
		Handler:        server.NewHandler(repo, sched, cfg.Widget.Theme, slog.Default()),
		WebSocket:      hub.ServeWS,
		Gatherer:       reg,
		AllowedOrigins: cfg.Server.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting widget server",
			"addr", cfg.Server.Addr,
			"league", cfg.Widget.LeagueID,
			"roster", cfg.Widget.RosterID,
			"refresh", interval)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}
	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	return nil
}
