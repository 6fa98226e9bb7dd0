package source

import (
	"context"
	"time"

	"github.com/fikri/scorehub/internal/domain/catalog"
	"github.com/fikri/scorehub/internal/domain/feed"
)

// Curated is the terminal source. It never fails and is never cached: the
// rugby competition gets hand-authored current-tournament data, every other
// league gets a freshly generated placeholder table so callers always have
// something to render.
type Curated struct {
	gen *Generator
}

func NewCurated(gen *Generator) *Curated {
	if gen == nil {
		gen = NewGenerator(0)
	}
	return &Curated{gen: gen}
}

func (c *Curated) Name() string { return "curated" }

func (c *Curated) Cacheable() bool { return false }

func (c *Curated) Fetch(_ context.Context, league catalog.League, kind feed.Kind) (feed.Payload, error) {
	if league.ID == catalog.LeagueSixNations {
		return sixNationsPayload(kind), nil
	}
	return c.gen.Payload(league, kind), nil
}

func sixNationsPayload(kind feed.Kind) feed.Payload {
	payload := feed.Payload{Kind: kind}
	switch kind {
	case feed.KindStandings:
		payload.Standings = sixNationsStandings()
	case feed.KindUpcoming:
		payload.Matches = sixNationsUpcoming()
	case feed.KindResults:
		payload.Matches = sixNationsResults()
	case feed.KindScorers:
		payload.Players = sixNationsScorers()
	case feed.KindAssists:
		payload.Players = sixNationsAssists()
	}
	return payload
}

// Hand-maintained table state after round three. Update alongside the
// upcoming fixtures below when rounds complete.
func sixNationsStandings() []feed.StandingsRow {
	return []feed.StandingsRow{
		{Position: 1, Team: "France", Played: 3, Wins: 3, Draws: 0, Losses: 0, GoalsFor: 98, GoalsAgainst: 45, GoalDiff: 53, Points: 14},
		{Position: 2, Team: "Ireland", Played: 3, Wins: 3, Draws: 0, Losses: 0, GoalsFor: 89, GoalsAgainst: 52, GoalDiff: 37, Points: 13},
		{Position: 3, Team: "England", Played: 3, Wins: 2, Draws: 0, Losses: 1, GoalsFor: 71, GoalsAgainst: 60, GoalDiff: 11, Points: 10},
		{Position: 4, Team: "Scotland", Played: 3, Wins: 1, Draws: 0, Losses: 2, GoalsFor: 58, GoalsAgainst: 66, GoalDiff: -8, Points: 5},
		{Position: 5, Team: "Italy", Played: 3, Wins: 0, Draws: 0, Losses: 3, GoalsFor: 44, GoalsAgainst: 81, GoalDiff: -37, Points: 2},
		{Position: 6, Team: "Wales", Played: 3, Wins: 0, Draws: 0, Losses: 3, GoalsFor: 39, GoalsAgainst: 95, GoalDiff: -56, Points: 0},
	}
}

func sixNationsUpcoming() []feed.MatchRecord {
	return []feed.MatchRecord{
		rugbyFixture("2026-03-07", "14:15", "Ireland", "France"),
		rugbyFixture("2026-03-07", "16:45", "Scotland", "England"),
		rugbyFixture("2026-03-08", "15:00", "Wales", "Italy"),
		rugbyFixture("2026-03-14", "14:15", "France", "Italy"),
		rugbyFixture("2026-03-14", "16:45", "England", "Ireland"),
		rugbyFixture("2026-03-14", "20:00", "Wales", "Scotland"),
	}
}

func sixNationsResults() []feed.MatchRecord {
	return []feed.MatchRecord{
		rugbyResult("2026-02-28", "16:45", "France", 24, "Scotland", 14),
		rugbyResult("2026-02-28", "14:15", "England", 32, "Wales", 18),
		rugbyResult("2026-02-27", "21:00", "Ireland", 25, "Italy", 15),
		rugbyResult("2026-02-14", "16:45", "France", 31, "England", 14),
		rugbyResult("2026-02-14", "14:15", "Scotland", 24, "Italy", 15),
		rugbyResult("2026-02-13", "21:00", "Ireland", 35, "Wales", 12),
		rugbyResult("2026-02-07", "16:45", "France", 43, "Wales", 17),
		rugbyResult("2026-02-07", "14:15", "Ireland", 29, "Scotland", 19),
		rugbyResult("2026-02-06", "21:00", "England", 27, "Italy", 22),
	}
}

func sixNationsScorers() []feed.PlayerStatRow {
	return []feed.PlayerStatRow{
		{Rank: 1, Name: "Louis Bielle-Biarrey", Team: "France", Stat: 6},
		{Rank: 2, Name: "Dan Sheehan", Team: "Ireland", Stat: 5},
		{Rank: 3, Name: "Tommy Freeman", Team: "England", Stat: 4},
		{Rank: 4, Name: "Damian Penaud", Team: "France", Stat: 3},
		{Rank: 5, Name: "Duhan van der Merwe", Team: "Scotland", Stat: 2},
	}
}

func sixNationsAssists() []feed.PlayerStatRow {
	return []feed.PlayerStatRow{
		{Rank: 1, Name: "Antoine Dupont", Team: "France", Stat: 7},
		{Rank: 2, Name: "Jamison Gibson-Park", Team: "Ireland", Stat: 6},
		{Rank: 3, Name: "Finn Russell", Team: "Scotland", Stat: 4},
	}
}

func rugbyFixture(date, clock, home, away string) feed.MatchRecord {
	return feed.MatchRecord{
		Date:      date,
		Time:      clock,
		HomeTeam:  home,
		AwayTeam:  away,
		Status:    "Not Started",
		Timestamp: kickoffMillis(date, clock),
	}
}

func rugbyResult(date, clock, home string, homeScore int, away string, awayScore int) feed.MatchRecord {
	return feed.MatchRecord{
		Date:      date,
		Time:      clock,
		HomeTeam:  home,
		AwayTeam:  away,
		HomeScore: &homeScore,
		AwayScore: &awayScore,
		Status:    "Full Time",
		Timestamp: kickoffMillis(date, clock),
	}
}

func kickoffMillis(date, clock string) int64 {
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, time.Local)
	if err != nil {
		return 0
	}
	return t.UnixMilli()
}
