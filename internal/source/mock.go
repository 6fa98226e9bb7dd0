package source

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/fikri/scorehub/internal/domain/catalog"
	"github.com/fikri/scorehub/internal/domain/feed"
	"github.com/fikri/scorehub/internal/normalize"
)

const (
	mockTableSize  = 20
	mockPlayed     = 16
	mockMatchCount = normalize.MaxMatches
)

var teamPrefixes = []string{
	"Northfield", "Riverton", "Eastbrook", "Westhaven", "Halloway",
	"Silverton", "Marlowe", "Ashford", "Kingsmere", "Redcliffe",
	"Oakdale", "Ferndale", "Granby", "Thornbury", "Lakemont",
	"Harrowgate", "Millbrook", "Stonebridge", "Claremont", "Birchwood",
}

var teamSuffixes = []string{
	"United", "City", "Rovers", "Athletic", "Wanderers", "Town", "Albion", "County",
}

var playerFirstNames = []string{
	"Mateo", "Luca", "Theo", "Jonas", "Rafael", "Emil", "Kai", "Marco",
	"Victor", "Andre", "Pablo", "Hugo", "Bruno", "Felix", "Santi", "Nico",
}

var playerLastNames = []string{
	"Alvarez", "Bergstrom", "Costa", "Dubois", "Ekwueme", "Ferrari",
	"Gruber", "Hansen", "Ibarra", "Jansen", "Kader", "Lindqvist",
	"Moreau", "Nakamura", "Okafor", "Petrov",
}

// Generator synthesizes plausible league data when every real source is
// unavailable. Output is deterministic for a fixed seed; the zero seed picks
// a fresh time seed on every call so repeated views do not freeze one draw.
type Generator struct {
	seed int64
	now  func() time.Time
}

func NewGenerator(seed int64) *Generator {
	return &Generator{seed: seed, now: time.Now}
}

func (g *Generator) Payload(league catalog.League, kind feed.Kind) feed.Payload {
	seed := g.seed
	if seed == 0 {
		seed = g.now().UnixNano()
	}
	// Mixed with the league so two leagues never share a table under a
	// fixed seed.
	hash := fnv.New64a()
	hash.Write([]byte(league.ID))
	rng := rand.New(rand.NewSource(seed ^ int64(hash.Sum64())))

	payload := feed.Payload{Kind: kind}
	switch kind {
	case feed.KindStandings:
		payload.Standings = g.standings(rng)
	case feed.KindUpcoming:
		payload.Matches = g.matches(rng, false)
	case feed.KindResults:
		payload.Matches = g.matches(rng, true)
	case feed.KindScorers:
		payload.Players = g.leaders(rng, normalize.MaxScorers, 14)
	case feed.KindAssists:
		payload.Players = g.leaders(rng, normalize.MaxAssists, 10)
	}
	return payload
}

// standings builds a dense 1..20 table whose points strictly decrease, with
// win/draw/loss splits derived from the points so the rows look earned.
func (g *Generator) standings(rng *rand.Rand) []feed.StandingsRow {
	names := g.teamNames(rng, mockTableSize)

	// High enough that nineteen decrements of at most two never cross zero,
	// so the points column strictly decreases.
	points := (mockTableSize-1)*2 + rng.Intn(8)
	rows := make([]feed.StandingsRow, 0, mockTableSize)
	for i := 0; i < mockTableSize; i++ {
		wins := points / 3
		if wins > mockPlayed {
			wins = mockPlayed
		}
		draws := points - wins*3
		if wins+draws > mockPlayed {
			draws = mockPlayed - wins
		}
		losses := mockPlayed - wins - draws

		goalsFor := wins*2 + draws + rng.Intn(9)
		goalsAgainst := losses*2 + rng.Intn(9)

		rows = append(rows, feed.StandingsRow{
			Position:     i + 1,
			Team:         names[i],
			Played:       mockPlayed,
			Wins:         wins,
			Draws:        draws,
			Losses:       losses,
			GoalsFor:     goalsFor,
			GoalsAgainst: goalsAgainst,
			GoalDiff:     goalsFor - goalsAgainst,
			Points:       points,
		})

		points -= 1 + rng.Intn(2)
		if points < 0 {
			points = 0
		}
	}
	return rows
}

func (g *Generator) matches(rng *rand.Rand, played bool) []feed.MatchRecord {
	names := g.teamNames(rng, mockMatchCount*2)
	base := g.now().Truncate(time.Hour)

	matches := make([]feed.MatchRecord, 0, mockMatchCount)
	for i := 0; i < mockMatchCount; i++ {
		offset := time.Duration(i+1) * 26 * time.Hour
		kickoff := base.Add(offset)
		status := "Not Started"
		var homeScore, awayScore *int
		if played {
			kickoff = base.Add(-offset)
			status = "Full Time"
			home := rng.Intn(5)
			away := rng.Intn(5)
			homeScore, awayScore = &home, &away
		}

		date := kickoff.In(time.Local).Format("2006-01-02")
		clock := kickoff.In(time.Local).Format("15:04")
		matches = append(matches, feed.MatchRecord{
			Date:      date,
			Time:      clock,
			HomeTeam:  names[i*2],
			AwayTeam:  names[i*2+1],
			HomeScore: homeScore,
			AwayScore: awayScore,
			Status:    status,
			Timestamp: kickoff.UnixMilli(),
		})
	}
	return matches
}

func (g *Generator) leaders(rng *rand.Rand, limit, topStat int) []feed.PlayerStatRow {
	teams := g.teamNames(rng, limit)

	stat := topStat + rng.Intn(4)
	rows := make([]feed.PlayerStatRow, 0, limit)
	for i := 0; i < limit; i++ {
		first := playerFirstNames[rng.Intn(len(playerFirstNames))]
		last := playerLastNames[rng.Intn(len(playerLastNames))]
		rows = append(rows, feed.PlayerStatRow{
			Rank: i + 1,
			Name: first + " " + last,
			Team: teams[i],
			Stat: stat,
		})
		stat -= 1 + rng.Intn(2)
		if stat < 0 {
			stat = 0
		}
	}
	return rows
}

// teamNames draws n unique names from the prefix pool; suffixes only
// disambiguate, so two Northfields can never appear in one table.
func (g *Generator) teamNames(rng *rand.Rand, n int) []string {
	order := rng.Perm(len(teamPrefixes))

	names := make([]string, 0, n)
	for i := 0; i < n; i++ {
		prefix := teamPrefixes[order[i%len(order)]]
		suffix := teamSuffixes[rng.Intn(len(teamSuffixes))]
		name := prefix + " " + suffix
		if i >= len(order) {
			name = fmt.Sprintf("%s %s II", prefix, suffix)
		}
		names = append(names, name)
	}
	return names
}
