// Package source implements the data-source strategies the resolution
// pipeline walks in priority order. Each strategy maps one upstream into the
// common feed records; failure taxonomy sentinels live in usecase.
package source

import (
	"context"
	"fmt"
	"time"

	"github.com/fikri/scorehub/external/apifootball"
	"github.com/fikri/scorehub/internal/domain/catalog"
	"github.com/fikri/scorehub/internal/domain/feed"
	"github.com/fikri/scorehub/internal/normalize"
	"github.com/fikri/scorehub/internal/platform/logging"
	"github.com/fikri/scorehub/internal/quota"
	"github.com/fikri/scorehub/internal/usecase"
)

// matchWindow bounds fixture queries to ±14 days around now; the display
// truncates harder but the upstream charges per call, not per row.
const matchWindow = 14 * 24 * time.Hour

// primaryClient is the slice of the paid-API client this source consumes.
type primaryClient interface {
	FetchStandings(ctx context.Context, leagueID int, season string) ([]apifootball.StandingItem, error)
	FetchFixtures(ctx context.Context, leagueID int, season string, from, to time.Time) ([]apifootball.FixtureItem, error)
	FetchTopScorers(ctx context.Context, leagueID int, season string) ([]apifootball.PlayerItem, error)
	FetchTopAssists(ctx context.Context, leagueID int, season string) ([]apifootball.PlayerItem, error)
}

// Primary serves feed data from the paid API. Every attempted fetch counts
// against the daily quota, so the credential and league checks run first.
type Primary struct {
	client     primaryClient
	tracker    *quota.Tracker
	credential func(ctx context.Context) string
	now        func() time.Time
	logger     *logging.Logger
}

func NewPrimary(client primaryClient, tracker *quota.Tracker, credential func(ctx context.Context) string, logger *logging.Logger) *Primary {
	if logger == nil {
		logger = logging.Default()
	}
	return &Primary{
		client:     client,
		tracker:    tracker,
		credential: credential,
		now:        time.Now,
		logger:     logger,
	}
}

func (p *Primary) Name() string { return "primary" }

func (p *Primary) Cacheable() bool { return true }

func (p *Primary) Fetch(ctx context.Context, league catalog.League, kind feed.Kind) (feed.Payload, error) {
	if !league.SupportsPrimary() {
		return feed.Payload{}, fmt.Errorf("league %s has no primary mapping: %w", league.ID, usecase.ErrSourceSkipped)
	}
	if p.credential == nil || p.credential(ctx) == "" {
		return feed.Payload{}, fmt.Errorf("no API credential configured: %w", usecase.ErrSourceSkipped)
	}

	// Counted before the request: a failed attempt still spent a call.
	count, err := p.tracker.RecordCall(ctx)
	if err != nil {
		p.logger.WarnContext(ctx, "quota record failed", "error", err)
	} else {
		p.logger.DebugContext(ctx, "primary call recorded", "callsToday", count)
	}

	payload := feed.Payload{Kind: kind}
	switch kind {
	case feed.KindStandings:
		items, err := p.client.FetchStandings(ctx, league.PrimaryID, league.Season)
		if err != nil {
			return feed.Payload{}, err
		}
		payload.Standings = normalize.PrimaryStandings(items)
	case feed.KindUpcoming, feed.KindResults:
		now := p.now()
		items, err := p.client.FetchFixtures(ctx, league.PrimaryID, league.Season, now.Add(-matchWindow), now.Add(matchWindow))
		if err != nil {
			return feed.Payload{}, err
		}
		payload.Matches = normalize.PrimaryMatches(items, kind)
	case feed.KindScorers:
		items, err := p.client.FetchTopScorers(ctx, league.PrimaryID, league.Season)
		if err != nil {
			return feed.Payload{}, err
		}
		payload.Players = normalize.PrimaryLeaders(items, kind)
	case feed.KindAssists:
		items, err := p.client.FetchTopAssists(ctx, league.PrimaryID, league.Season)
		if err != nil {
			return feed.Payload{}, err
		}
		payload.Players = normalize.PrimaryLeaders(items, kind)
	default:
		return feed.Payload{}, fmt.Errorf("kind %q: %w", kind, usecase.ErrInvalidInput)
	}

	if payload.IsEmpty() {
		return feed.Payload{}, fmt.Errorf("primary returned no %s rows: %w", kind, usecase.ErrEmptyResult)
	}
	return payload, nil
}
