package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fikri/scorehub/internal/app"
	"github.com/fikri/scorehub/internal/domain/catalog"
	"github.com/fikri/scorehub/internal/domain/feed"
	"github.com/fikri/scorehub/internal/interfaces/clirender"
	"github.com/fikri/scorehub/internal/usecase"
)

func newStandingsCommand(application *app.App, renderer *clirender.Renderer, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "standings",
		Short: "Show the league table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			league, err := resolveLeague(opts)
			if err != nil {
				return err
			}

			resolution, err := application.Resolver.Resolve(cmd.Context(), feed.KindStandings, league.ID, !opts.noCache)
			if err != nil {
				return err
			}
			title := fmt.Sprintf("%s %s standings", league.Name, league.Season)
			if err := renderer.Standings(title, resolution.Payload.Standings, resolution.Origin); err != nil {
				return err
			}
			return renderer.QuotaWarning(resolution.Quota)
		},
	}
}

func newMatchesCommand(application *app.App, renderer *clirender.Renderer, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "matches [upcoming|results]",
		Short:     "Show upcoming fixtures or recent results",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"upcoming", "results"},
		RunE: func(cmd *cobra.Command, args []string) error {
			league, err := resolveLeague(opts)
			if err != nil {
				return err
			}

			kind := feed.KindUpcoming
			label := "upcoming fixtures"
			if len(args) == 1 && args[0] == "results" {
				kind = feed.KindResults
				label = "recent results"
			}

			resolution, err := application.Resolver.Resolve(cmd.Context(), kind, league.ID, !opts.noCache)
			if err != nil {
				return err
			}
			title := fmt.Sprintf("%s %s %s", league.Name, league.Season, label)
			if err := renderer.Matches(title, resolution.Payload.Matches, resolution.Origin); err != nil {
				return err
			}
			return renderer.QuotaWarning(resolution.Quota)
		},
	}
}

func newLeadersCommand(application *app.App, renderer *clirender.Renderer, opts *rootOptions, use string) *cobra.Command {
	kind := feed.KindScorers
	short := "Show the top scorers"
	label := "Goals"
	if use == "assists" {
		kind = feed.KindAssists
		short = "Show the top assist providers"
		label = "Assists"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			league, err := resolveLeague(opts)
			if err != nil {
				return err
			}

			resolution, err := application.Resolver.Resolve(cmd.Context(), kind, league.ID, !opts.noCache)
			if err != nil {
				return err
			}
			title := fmt.Sprintf("%s %s top %s", league.Name, league.Season, use)
			if err := renderer.Leaders(title, label, resolution.Payload.Players, resolution.Origin); err != nil {
				return err
			}
			return renderer.QuotaWarning(resolution.Quota)
		},
	}
}

func newDashboardCommand(application *app.App, renderer *clirender.Renderer, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show every data kind for one league in a single load",
		RunE: func(cmd *cobra.Command, _ []string) error {
			league, err := resolveLeague(opts)
			if err != nil {
				return err
			}

			snapshot, err := application.Snapshot.Load(cmd.Context(), league.ID, !opts.noCache)
			if err != nil {
				return err
			}
			return renderSnapshot(renderer, league, snapshot)
		},
	}
}

func newRefreshCommand(application *app.App, renderer *clirender.Renderer, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Drop all cached data and reload the league from live sources",
		RunE: func(cmd *cobra.Command, _ []string) error {
			league, err := resolveLeague(opts)
			if err != nil {
				return err
			}

			snapshot, err := application.Snapshot.Refresh(cmd.Context(), league.ID)
			if err != nil {
				return err
			}
			return renderSnapshot(renderer, league, snapshot)
		},
	}
}

func renderSnapshot(renderer *clirender.Renderer, league catalog.League, snapshot usecase.Snapshot) error {
	sections := []struct {
		kind  feed.Kind
		label string
	}{
		{kind: feed.KindStandings, label: "standings"},
		{kind: feed.KindUpcoming, label: "upcoming fixtures"},
		{kind: feed.KindResults, label: "recent results"},
		{kind: feed.KindScorers, label: "top scorers"},
		{kind: feed.KindAssists, label: "top assists"},
	}

	for i, section := range sections {
		resolution, ok := snapshot.Resolution(section.kind)
		if !ok {
			return fmt.Errorf("snapshot missing %s", section.kind)
		}

		title := fmt.Sprintf("%s %s %s", league.Name, league.Season, section.label)
		var err error
		switch section.kind {
		case feed.KindStandings:
			err = renderer.Standings(title, resolution.Payload.Standings, resolution.Origin)
		case feed.KindUpcoming, feed.KindResults:
			err = renderer.Matches(title, resolution.Payload.Matches, resolution.Origin)
		case feed.KindScorers:
			err = renderer.Leaders(title, "Goals", resolution.Payload.Players, resolution.Origin)
		case feed.KindAssists:
			err = renderer.Leaders(title, "Assists", resolution.Payload.Players, resolution.Origin)
		}
		if err != nil {
			return err
		}
		if i < len(sections)-1 {
			fmt.Println()
		}
	}

	return renderer.QuotaWarning(snapshot.Quota)
}
