package source

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fikri/scorehub/external/apifootball"
	"github.com/fikri/scorehub/external/espnfeed"
	"github.com/fikri/scorehub/internal/domain/catalog"
	"github.com/fikri/scorehub/internal/domain/feed"
	"github.com/fikri/scorehub/internal/platform/kvstore"
	"github.com/fikri/scorehub/internal/platform/logging"
	"github.com/fikri/scorehub/internal/quota"
	"github.com/fikri/scorehub/internal/usecase"
)

type fakePrimaryClient struct {
	standings []apifootball.StandingItem
	fixtures  []apifootball.FixtureItem
	players   []apifootball.PlayerItem
	err       error
	calls     int
}

func (f *fakePrimaryClient) FetchStandings(context.Context, int, string) ([]apifootball.StandingItem, error) {
	f.calls++
	return f.standings, f.err
}

func (f *fakePrimaryClient) FetchFixtures(context.Context, int, string, time.Time, time.Time) ([]apifootball.FixtureItem, error) {
	f.calls++
	return f.fixtures, f.err
}

func (f *fakePrimaryClient) FetchTopScorers(context.Context, int, string) ([]apifootball.PlayerItem, error) {
	f.calls++
	return f.players, f.err
}

func (f *fakePrimaryClient) FetchTopAssists(context.Context, int, string) ([]apifootball.PlayerItem, error) {
	f.calls++
	return f.players, f.err
}

func withCredential(key string) func(context.Context) string {
	return func(context.Context) string { return key }
}

func mustLeague(t *testing.T, id string) catalog.League {
	t.Helper()
	league, ok := catalog.Get(id)
	if !ok {
		t.Fatalf("league %q not in catalog", id)
	}
	return league
}

func TestPrimary_SkipsWithoutCredential(t *testing.T) {
	ctx := context.Background()
	client := &fakePrimaryClient{}
	tracker := quota.NewTracker(kvstore.NewMemory(), logging.NewNop())
	primary := NewPrimary(client, tracker, withCredential(""), logging.NewNop())

	_, err := primary.Fetch(ctx, mustLeague(t, catalog.LeaguePremierLeague), feed.KindStandings)
	if !errors.Is(err, usecase.ErrSourceSkipped) {
		t.Fatalf("expected skip sentinel, got %v", err)
	}
	if client.calls != 0 {
		t.Fatalf("unattempted source must not touch the upstream, calls=%d", client.calls)
	}
	if count, _ := tracker.CurrentCount(ctx); count != 0 {
		t.Fatalf("skipped source must not spend quota, count=%d", count)
	}
}

func TestPrimary_SkipsUnmappedLeague(t *testing.T) {
	ctx := context.Background()
	tracker := quota.NewTracker(kvstore.NewMemory(), logging.NewNop())
	primary := NewPrimary(&fakePrimaryClient{}, tracker, withCredential("key"), logging.NewNop())

	_, err := primary.Fetch(ctx, mustLeague(t, catalog.LeagueSixNations), feed.KindStandings)
	if !errors.Is(err, usecase.ErrSourceSkipped) {
		t.Fatalf("expected skip sentinel, got %v", err)
	}
}

func TestPrimary_RecordsQuotaEvenOnFailure(t *testing.T) {
	ctx := context.Background()
	client := &fakePrimaryClient{err: usecase.ErrTransport}
	tracker := quota.NewTracker(kvstore.NewMemory(), logging.NewNop())
	primary := NewPrimary(client, tracker, withCredential("key"), logging.NewNop())

	if _, err := primary.Fetch(ctx, mustLeague(t, catalog.LeaguePremierLeague), feed.KindStandings); !errors.Is(err, usecase.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if count, _ := tracker.CurrentCount(ctx); count != 1 {
		t.Fatalf("failed attempt must still count, count=%d", count)
	}
}

func TestPrimary_EmptyBodyIsEmptyResult(t *testing.T) {
	ctx := context.Background()
	tracker := quota.NewTracker(kvstore.NewMemory(), logging.NewNop())
	primary := NewPrimary(&fakePrimaryClient{}, tracker, withCredential("key"), logging.NewNop())

	_, err := primary.Fetch(ctx, mustLeague(t, catalog.LeagueLaLiga), feed.KindScorers)
	if !errors.Is(err, usecase.ErrEmptyResult) {
		t.Fatalf("expected empty-result sentinel, got %v", err)
	}
}

func TestPrimary_NormalizesStandings(t *testing.T) {
	ctx := context.Background()
	client := &fakePrimaryClient{
		standings: []apifootball.StandingItem{
			{Rank: 1, Team: apifootball.TeamRef{Name: "Arsenal"}, Points: 9},
		},
	}
	tracker := quota.NewTracker(kvstore.NewMemory(), logging.NewNop())
	primary := NewPrimary(client, tracker, withCredential("key"), logging.NewNop())

	payload, err := primary.Fetch(ctx, mustLeague(t, catalog.LeaguePremierLeague), feed.KindStandings)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(payload.Standings) != 1 || payload.Standings[0].Team != "Arsenal" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if count, _ := tracker.CurrentCount(ctx); count != 1 {
		t.Fatalf("successful attempt must count once, count=%d", count)
	}
}

type fakeSecondaryClient struct {
	standings  []espnfeed.StandingEntry
	events     []espnfeed.Event
	categories []espnfeed.LeaderCategory
	err        error
}

func (f *fakeSecondaryClient) FetchStandings(context.Context, string, string) ([]espnfeed.StandingEntry, error) {
	return f.standings, f.err
}

func (f *fakeSecondaryClient) FetchScoreboard(context.Context, string, time.Time, time.Time) ([]espnfeed.Event, error) {
	return f.events, f.err
}

func (f *fakeSecondaryClient) FetchLeaders(context.Context, string) ([]espnfeed.LeaderCategory, error) {
	return f.categories, f.err
}

func TestSecondary_SkipsLeagueWithoutCode(t *testing.T) {
	secondary := NewSecondary(&fakeSecondaryClient{}, logging.NewNop())

	_, err := secondary.Fetch(context.Background(), mustLeague(t, catalog.LeagueSixNations), feed.KindStandings)
	if !errors.Is(err, usecase.ErrSourceSkipped) {
		t.Fatalf("expected skip sentinel, got %v", err)
	}
}

func TestSecondary_EmptyAfterFilter(t *testing.T) {
	// A successful scoreboard fetch containing only finished matches still
	// reads as empty for the upcoming kind.
	client := &fakeSecondaryClient{
		events: []espnfeed.Event{
			{
				Date:   "2026-08-18T14:00Z",
				Status: espnfeed.EventStatus{Type: espnfeed.EventStatusType{State: "post"}},
				Competitions: []espnfeed.Competition{{
					Competitors: []espnfeed.Competitor{
						{HomeAway: "home", Team: espnfeed.TeamRef{DisplayName: "Roma"}, Score: "2"},
						{HomeAway: "away", Team: espnfeed.TeamRef{DisplayName: "Lazio"}, Score: "1"},
					},
				}},
			},
		},
	}
	secondary := NewSecondary(client, logging.NewNop())

	_, err := secondary.Fetch(context.Background(), mustLeague(t, catalog.LeagueSerieA), feed.KindUpcoming)
	if !errors.Is(err, usecase.ErrEmptyResult) {
		t.Fatalf("expected empty-result sentinel, got %v", err)
	}

	payload, err := secondary.Fetch(context.Background(), mustLeague(t, catalog.LeagueSerieA), feed.KindResults)
	if err != nil {
		t.Fatalf("results fetch: %v", err)
	}
	if len(payload.Matches) != 1 {
		t.Fatalf("unexpected results: %+v", payload.Matches)
	}
}

func TestCurated_SixNationsData(t *testing.T) {
	curated := NewCurated(NewGenerator(1))
	league := mustLeague(t, catalog.LeagueSixNations)

	standings, err := curated.Fetch(context.Background(), league, feed.KindStandings)
	if err != nil {
		t.Fatalf("curated must never fail: %v", err)
	}
	if len(standings.Standings) != 6 {
		t.Fatalf("expected 6 rugby rows, got %d", len(standings.Standings))
	}
	for i, row := range standings.Standings {
		if row.Position != i+1 {
			t.Fatalf("positions must be dense: %+v", standings.Standings)
		}
		if i > 0 && row.Points > standings.Standings[i-1].Points {
			t.Fatalf("points must not increase down the table: %+v", standings.Standings)
		}
	}

	results, err := curated.Fetch(context.Background(), league, feed.KindResults)
	if err != nil {
		t.Fatalf("curated must never fail: %v", err)
	}
	for _, match := range results.Matches {
		if !match.Played() {
			t.Fatalf("result row missing scores: %+v", match)
		}
	}

	if curated.Cacheable() {
		t.Fatal("curated payloads must never be cached")
	}
}

func TestGenerator_StandingsShape(t *testing.T) {
	gen := NewGenerator(42)
	league := mustLeague(t, catalog.LeaguePremierLeague)

	rows := gen.Payload(league, feed.KindStandings).Standings
	if len(rows) != 20 {
		t.Fatalf("expected 20 rows, got %d", len(rows))
	}

	seen := make(map[string]bool, len(rows))
	for i, row := range rows {
		if row.Position != i+1 {
			t.Fatalf("expected dense positions 1..20: %+v", row)
		}
		if i > 0 && row.Points >= rows[i-1].Points {
			t.Fatalf("points must strictly decrease: rows %d,%d", i-1, i)
		}
		if row.Wins+row.Draws+row.Losses != row.Played {
			t.Fatalf("record must sum to games played: %+v", row)
		}
		if row.GoalDiff != row.GoalsFor-row.GoalsAgainst {
			t.Fatalf("goal diff inconsistent: %+v", row)
		}
		if seen[row.Team] {
			t.Fatalf("duplicate team %q", row.Team)
		}
		seen[row.Team] = true
	}
}

func TestGenerator_DeterministicForFixedSeed(t *testing.T) {
	league := mustLeague(t, catalog.LeagueBundesliga)

	first := NewGenerator(7).Payload(league, feed.KindScorers)
	second := NewGenerator(7).Payload(league, feed.KindScorers)

	if len(first.Players) != 5 || len(second.Players) != 5 {
		t.Fatalf("expected 5 scorers, got %d and %d", len(first.Players), len(second.Players))
	}
	for i := range first.Players {
		if first.Players[i] != second.Players[i] {
			t.Fatalf("same seed must reproduce row %d: %+v vs %+v", i, first.Players[i], second.Players[i])
		}
	}

	other := NewGenerator(7).Payload(mustLeague(t, catalog.LeagueLigue1), feed.KindScorers)
	same := true
	for i := range first.Players {
		if first.Players[i] != other.Players[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different leagues should not share a draw under one seed")
	}
}

func TestGenerator_MatchShapes(t *testing.T) {
	gen := NewGenerator(3)
	league := mustLeague(t, catalog.LeagueSerieA)

	upcoming := gen.Payload(league, feed.KindUpcoming).Matches
	if len(upcoming) != 15 {
		t.Fatalf("expected 15 upcoming, got %d", len(upcoming))
	}
	for _, match := range upcoming {
		if match.HomeScore != nil || match.AwayScore != nil {
			t.Fatalf("upcoming match must carry no score: %+v", match)
		}
	}

	results := gen.Payload(league, feed.KindResults).Matches
	if len(results) != 15 {
		t.Fatalf("expected 15 results, got %d", len(results))
	}
	for _, match := range results {
		if match.HomeScore == nil || match.AwayScore == nil {
			t.Fatalf("result must carry both scores: %+v", match)
		}
	}

	assists := gen.Payload(league, feed.KindAssists).Players
	if len(assists) != 3 {
		t.Fatalf("expected 3 assists rows, got %d", len(assists))
	}
}
