package source

import (
	"context"
	"fmt"
	"time"

	"github.com/fikri/scorehub/external/espnfeed"
	"github.com/fikri/scorehub/internal/domain/catalog"
	"github.com/fikri/scorehub/internal/domain/feed"
	"github.com/fikri/scorehub/internal/normalize"
	"github.com/fikri/scorehub/internal/platform/logging"
	"github.com/fikri/scorehub/internal/usecase"
)

// secondaryClient is the slice of the free-feed client this source consumes.
type secondaryClient interface {
	FetchStandings(ctx context.Context, leagueCode, season string) ([]espnfeed.StandingEntry, error)
	FetchScoreboard(ctx context.Context, leagueCode string, from, to time.Time) ([]espnfeed.Event, error)
	FetchLeaders(ctx context.Context, leagueCode string) ([]espnfeed.LeaderCategory, error)
}

// Secondary serves feed data from the credential-free score site. The
// scoreboard endpoint mixes played and unplayed matches, so an upcoming or
// results request can come back empty even when the fetch itself succeeded;
// that still reads as an empty result so the pipeline can move on.
type Secondary struct {
	client secondaryClient
	now    func() time.Time
	logger *logging.Logger
}

func NewSecondary(client secondaryClient, logger *logging.Logger) *Secondary {
	if logger == nil {
		logger = logging.Default()
	}
	return &Secondary{client: client, now: time.Now, logger: logger}
}

func (s *Secondary) Name() string { return "secondary" }

func (s *Secondary) Cacheable() bool { return true }

func (s *Secondary) Fetch(ctx context.Context, league catalog.League, kind feed.Kind) (feed.Payload, error) {
	if !league.SupportsSecondary() {
		return feed.Payload{}, fmt.Errorf("league %s has no secondary mapping: %w", league.ID, usecase.ErrSourceSkipped)
	}

	payload := feed.Payload{Kind: kind}
	switch kind {
	case feed.KindStandings:
		entries, err := s.client.FetchStandings(ctx, league.SecondaryCode, league.Season)
		if err != nil {
			return feed.Payload{}, err
		}
		payload.Standings = normalize.SecondaryStandings(entries)
	case feed.KindUpcoming, feed.KindResults:
		now := s.now()
		events, err := s.client.FetchScoreboard(ctx, league.SecondaryCode, now.Add(-matchWindow), now.Add(matchWindow))
		if err != nil {
			return feed.Payload{}, err
		}
		payload.Matches = normalize.SecondaryMatches(events, kind)
	case feed.KindScorers, feed.KindAssists:
		categories, err := s.client.FetchLeaders(ctx, league.SecondaryCode)
		if err != nil {
			return feed.Payload{}, err
		}
		payload.Players = normalize.SecondaryLeaders(categories, kind)
	default:
		return feed.Payload{}, fmt.Errorf("kind %q: %w", kind, usecase.ErrInvalidInput)
	}

	if payload.IsEmpty() {
		return feed.Payload{}, fmt.Errorf("secondary returned no %s rows: %w", kind, usecase.ErrEmptyResult)
	}
	return payload, nil
}
