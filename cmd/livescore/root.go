package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/omarshaarawi/livescore/internal/api/fantasy"
	"github.com/omarshaarawi/livescore/internal/api/sleeper"
	"github.com/omarshaarawi/livescore/internal/config"
	"github.com/omarshaarawi/livescore/internal/metrics"
	"github.com/omarshaarawi/livescore/internal/service"
)

type rootOptions struct {
	cfg *config.Config

	league  string
	roster  int
	refresh int
	theme   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "livescore",
		Short:         "Live Sleeper matchup scoreboard",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.league, "league", "", "Sleeper league ID (env LEAGUE_ID)")
	flags.IntVar(&opts.roster, "roster", 0, "Roster ID within the league (env ROSTER_ID)")
	flags.IntVar(&opts.refresh, "refresh", config.DefaultRefreshSeconds, "Refresh interval in seconds, minimum 5 (env REFRESH_SECONDS)")
	flags.StringVar(&opts.theme, "theme", string(config.ThemeDark), "Widget theme: dark or light (env THEME)")

	root.AddCommand(serveCmd(opts))
	root.AddCommand(watchCmd(opts))
	root.AddCommand(onceCmd(opts))
	root.AddCommand(rostersCmd(opts))

	return root
}

// load reads the environment, then lets explicitly set flags win.
func (o *rootOptions) load(cmd *cobra.Command) error {
	cfg, err := config.New()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("league") {
		cfg.Widget.LeagueID = o.league
	}
	if flags.Changed("roster") {
		cfg.Widget.RosterID = o.roster
	}
	if flags.Changed("refresh") {
		cfg.Widget.RefreshSeconds = o.refresh
	}
	if flags.Changed("theme") {
		cfg.Widget.Theme = config.ParseTheme(o.theme)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel.Level(),
	}))
	slog.SetDefault(logger)

	o.cfg = cfg
	return nil
}

func newScoreboardService(cfg *config.Config, m *metrics.Metrics) *service.ScoreboardService {
	sleeperClient := sleeper.NewClient(cfg.SleeperAPI, m, slog.Default())
	sleeperAPI := sleeper.NewAPI(sleeperClient, cfg.SleeperAPI.Sport)
	fantasyAPI := fantasy.NewAPI(sleeperAPI)
	return service.NewScoreboardService(fantasyAPI, cfg.Widget.LeagueID, cfg.Widget.RosterID, nil, slog.Default())
}
