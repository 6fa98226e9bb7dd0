package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fikri/scorehub/internal/app"
	"github.com/fikri/scorehub/internal/domain/catalog"
	"github.com/fikri/scorehub/internal/interfaces/clirender"
)

type rootOptions struct {
	leagueID string
	noCache  bool
}

func newRootCommand(application *app.App) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "scorehub",
		Short:         "League standings, fixtures, results and player stats in your terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.leagueID, "league", "l", catalog.LeaguePremierLeague,
		"league id ("+leagueIDList()+")")
	root.PersistentFlags().BoolVar(&opts.noCache, "no-cache", false, "bypass the local cache for this read")

	renderer := clirender.New(os.Stdout)

	root.AddCommand(
		newStandingsCommand(application, renderer, opts),
		newMatchesCommand(application, renderer, opts),
		newLeadersCommand(application, renderer, opts, "scorers"),
		newLeadersCommand(application, renderer, opts, "assists"),
		newDashboardCommand(application, renderer, opts),
		newRefreshCommand(application, renderer, opts),
		newWarmCommand(application),
		newConfigCommand(application),
		newQuotaCommand(application, renderer),
		newLeaguesCommand(),
	)
	return root
}

func resolveLeague(opts *rootOptions) (catalog.League, error) {
	league, ok := catalog.Get(strings.TrimSpace(opts.leagueID))
	if !ok {
		return catalog.League{}, fmt.Errorf("unknown league %q, valid ids: %s", opts.leagueID, leagueIDList())
	}
	return league, nil
}

func leagueIDList() string {
	leagues := catalog.Leagues()
	ids := make([]string, 0, len(leagues))
	for _, league := range leagues {
		ids = append(ids, league.ID)
	}
	return strings.Join(ids, ", ")
}

func newLeaguesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "leagues",
		Short: "List supported leagues",
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, league := range catalog.Leagues() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %-8s %s (%s)\n", league.ID, league.Sport, league.Name, league.Season)
			}
			return nil
		},
	}
}
