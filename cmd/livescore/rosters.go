package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func rostersCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rosters [team or owner name]",
		Short: "List a league's rosters to find your roster ID",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			if err := cfg.ValidateLeague(); err != nil {
				return err
			}

			query := strings.Join(args, " ")
			rosters, err := newScoreboardService(cfg, nil).FindRosters(cmd.Context(), cfg.Widget.LeagueID, query)
			if err != nil {
				return fmt.Errorf("error listing rosters: %w", err)
			}
			if len(rosters) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "🔍 No roster found matching '%s'.\n", query)
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ROSTER\tTEAM\tOWNER")
			for _, r := range rosters {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", r.RosterID, r.Name, r.OwnerName)
			}
			return tw.Flush()
		},
	}
}
