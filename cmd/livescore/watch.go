package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/omarshaarawi/livescore/internal/models"
	"github.com/omarshaarawi/livescore/internal/scheduler"
	"github.com/omarshaarawi/livescore/internal/widget"
)

func watchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Keep the scoreboard refreshed in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			scoreboard := newScoreboardService(cfg, nil)
			sched := scheduler.NewScheduler(scoreboard, widget.NewTerminal(cmd.OutOrStdout()), cfg.Widget.RefreshInterval())
			if err := sched.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}

func onceCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "once",
		Short: "Fetch and print the scoreboard a single time",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			if err := cfg.Validate(); err != nil {
				return err
			}

			term := widget.NewTerminal(cmd.OutOrStdout())
			vm, err := newScoreboardService(cfg, nil).Scoreboard(cmd.Context())
			if err != nil {
				term.SetStatus(models.StatusWarning)
				term.RenderError(err)
				return err
			}
			term.SetStatus(models.StatusOK)
			term.Render(vm)
			return nil
		},
	}
}
