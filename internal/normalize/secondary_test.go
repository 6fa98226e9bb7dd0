package normalize

import (
	"testing"

	"github.com/fikri/scorehub/external/espnfeed"
	"github.com/fikri/scorehub/internal/domain/feed"
)

func standingEntry(team string, rank, played, wins, ties, losses, gf, ga, points int) espnfeed.StandingEntry {
	return espnfeed.StandingEntry{
		Team: espnfeed.TeamRef{DisplayName: team},
		Stats: []espnfeed.NamedStat{
			{Name: "rank", Value: float64(rank)},
			{Name: "gamesPlayed", Value: float64(played)},
			{Name: "wins", Value: float64(wins)},
			{Name: "ties", Value: float64(ties)},
			{Name: "losses", Value: float64(losses)},
			{Name: "pointsFor", Value: float64(gf)},
			{Name: "pointsAgainst", Value: float64(ga)},
			{Name: "pointDifferential", Value: float64(gf - ga)},
			{Name: "points", Value: float64(points)},
		},
	}
}

func TestSecondaryStandings_MapsNamedStats(t *testing.T) {
	entries := []espnfeed.StandingEntry{
		standingEntry("Real Madrid", 2, 4, 3, 1, 0, 9, 3, 10),
		standingEntry("Barcelona", 1, 4, 4, 0, 0, 12, 2, 12),
	}

	rows := SecondaryStandings(entries)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Team != "Barcelona" || rows[0].Position != 1 {
		t.Fatalf("rows must be ordered by position: %+v", rows)
	}
	if rows[1].Played != 4 || rows[1].Draws != 1 || rows[1].GoalDiff != 6 || rows[1].Points != 10 {
		t.Fatalf("unexpected mapped row: %+v", rows[1])
	}
}

func TestSecondaryStandings_DensifiesMissingRanks(t *testing.T) {
	entries := []espnfeed.StandingEntry{
		{
			Team: espnfeed.TeamRef{DisplayName: "Atletico"},
			Stats: []espnfeed.NamedStat{
				{Name: "points", Value: 7},
			},
		},
		{
			Team: espnfeed.TeamRef{DisplayName: "Sevilla"},
			Stats: []espnfeed.NamedStat{
				{Name: "points", Value: 9},
			},
		},
	}

	rows := SecondaryStandings(entries)
	if rows[0].Team != "Sevilla" || rows[0].Position != 1 {
		t.Fatalf("expected points order with dense ranks: %+v", rows)
	}
	if rows[1].Team != "Atletico" || rows[1].Position != 2 {
		t.Fatalf("expected dense second rank: %+v", rows)
	}
}

func event(date, state, home, away, homeScore, awayScore string) espnfeed.Event {
	return espnfeed.Event{
		Date: date,
		Status: espnfeed.EventStatus{
			Type: espnfeed.EventStatusType{State: state},
		},
		Competitions: []espnfeed.Competition{{
			Competitors: []espnfeed.Competitor{
				{HomeAway: "home", Team: espnfeed.TeamRef{DisplayName: home}, Score: homeScore},
				{HomeAway: "away", Team: espnfeed.TeamRef{DisplayName: away}, Score: awayScore},
			},
		}},
	}
}

func TestSecondaryMatches_SplitsCombinedScoreboard(t *testing.T) {
	events := []espnfeed.Event{
		event("2026-08-30T14:00Z", "pre", "Inter", "Milan", "0", "0"),
		event("2026-08-18T14:00Z", "post", "Roma", "Lazio", "2", "1"),
		event("2026-08-25T14:00Z", "post", "Napoli", "Torino", "3", "0"),
	}

	upcoming := SecondaryMatches(events, feed.KindUpcoming)
	if len(upcoming) != 1 || upcoming[0].HomeTeam != "Inter" {
		t.Fatalf("unexpected upcoming: %+v", upcoming)
	}
	if upcoming[0].HomeScore != nil {
		t.Fatal("pre-kickoff placeholder score must not leak into upcoming")
	}

	recent := SecondaryMatches(events, feed.KindResults)
	if len(recent) != 2 {
		t.Fatalf("expected 2 results, got %d", len(recent))
	}
	if recent[0].HomeTeam != "Napoli" || recent[1].HomeTeam != "Roma" {
		t.Fatalf("results must be newest first: %+v", recent)
	}
	if recent[0].HomeScore == nil || *recent[0].HomeScore != 3 || *recent[0].AwayScore != 0 {
		t.Fatalf("unexpected result scores: %+v", recent[0])
	}
}

func TestSecondaryMatches_UnparseableScoreBecomesUnplayed(t *testing.T) {
	events := []espnfeed.Event{
		event("2026-08-18T14:00Z", "post", "Genoa", "Parma", "2", "-"),
	}

	if results := SecondaryMatches(events, feed.KindResults); len(results) != 0 {
		t.Fatalf("half-parsed score must not produce a result: %+v", results)
	}
	upcoming := SecondaryMatches(events, feed.KindUpcoming)
	if len(upcoming) != 1 || upcoming[0].HomeScore != nil || upcoming[0].AwayScore != nil {
		t.Fatalf("expected both scores nil: %+v", upcoming)
	}
}

func TestSecondaryMatches_EmptyAfterFilter(t *testing.T) {
	events := []espnfeed.Event{
		event("2026-08-18T14:00Z", "post", "Roma", "Lazio", "2", "1"),
	}

	// The raw fetch succeeded but the requested subset is empty; the
	// pipeline treats that as a fallthrough to the next source.
	if upcoming := SecondaryMatches(events, feed.KindUpcoming); len(upcoming) != 0 {
		t.Fatalf("expected empty upcoming subset: %+v", upcoming)
	}
}

func TestSecondaryLeaders_PicksRequestedCategory(t *testing.T) {
	categories := []espnfeed.LeaderCategory{
		{
			Name: "goals",
			Leaders: []espnfeed.LeaderItem{
				{Athlete: espnfeed.AthleteRef{DisplayName: "Lewandowski"}, Team: espnfeed.TeamRef{DisplayName: "Barcelona"}, Value: 11},
				{Athlete: espnfeed.AthleteRef{DisplayName: "Mbappe"}, Team: espnfeed.TeamRef{DisplayName: "Real Madrid"}, Value: 14},
			},
		},
		{
			Name: "assists",
			Leaders: []espnfeed.LeaderItem{
				{Athlete: espnfeed.AthleteRef{DisplayName: "Pedri"}, Team: espnfeed.TeamRef{DisplayName: "Barcelona"}, Value: 7},
			},
		},
	}

	scorers := SecondaryLeaders(categories, feed.KindScorers)
	if len(scorers) != 2 || scorers[0].Name != "Mbappe" || scorers[0].Rank != 1 || scorers[0].Stat != 14 {
		t.Fatalf("unexpected scorers: %+v", scorers)
	}

	assists := SecondaryLeaders(categories, feed.KindAssists)
	if len(assists) != 1 || assists[0].Name != "Pedri" || assists[0].Stat != 7 {
		t.Fatalf("unexpected assists: %+v", assists)
	}

	if rows := SecondaryLeaders(nil, feed.KindScorers); len(rows) != 0 {
		t.Fatalf("no categories must yield no rows: %+v", rows)
	}
}
