package normalize

import (
	"sort"
	"time"

	"github.com/fikri/scorehub/external/apifootball"
	"github.com/fikri/scorehub/internal/domain/feed"
)

// PrimaryStandings maps the primary API's table rows onto the common schema,
// keeping the provider's rank and ordering ascending by position.
func PrimaryStandings(items []apifootball.StandingItem) []feed.StandingsRow {
	out := make([]feed.StandingsRow, 0, len(items))
	for _, item := range items {
		out = append(out, feed.StandingsRow{
			Position:     item.Rank,
			Team:         teamName(item.Team.Name),
			Played:       item.All.Played,
			Wins:         item.All.Win,
			Draws:        item.All.Draw,
			Losses:       item.All.Lose,
			GoalsFor:     item.All.Goals.For,
			GoalsAgainst: item.All.Goals.Against,
			GoalDiff:     item.GoalsDiff,
			Points:       item.Points,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

// PrimaryMatches splits the provider's combined fixture window by score
// presence and returns the subset for kind, sorted and truncated for display.
func PrimaryMatches(items []apifootball.FixtureItem, kind feed.Kind) []feed.MatchRecord {
	matches := make([]feed.MatchRecord, 0, len(items))
	for _, item := range items {
		kickoff := kickoffTime(item.Fixture)
		date, clock := splitKickoff(kickoff)
		home, away := pairScores(item.Goals.Home, item.Goals.Away)

		matches = append(matches, feed.MatchRecord{
			Date:      date,
			Time:      clock,
			HomeTeam:  teamName(item.Teams.Home.Name),
			AwayTeam:  teamName(item.Teams.Away.Name),
			HomeScore: home,
			AwayScore: away,
			Status:    primaryStatus(item.Fixture.Status, home != nil),
			Timestamp: kickoff.UnixMilli(),
		})
	}

	return filterMatches(matches, kind)
}

// PrimaryLeaders maps the topscorers/topassists payload; kind selects which
// stat column feeds the row.
func PrimaryLeaders(items []apifootball.PlayerItem, kind feed.Kind) []feed.PlayerStatRow {
	rows := make([]feed.PlayerStatRow, 0, len(items))
	for _, item := range items {
		name := item.Player.Name
		if name == "" {
			name = unknownTeam
		}
		row := feed.PlayerStatRow{
			Name: name,
			Team: unknownTeam,
		}
		if len(item.Statistics) > 0 {
			stats := item.Statistics[0]
			row.Team = teamName(stats.Team.Name)
			if kind == feed.KindAssists {
				if stats.Goals.Assists != nil {
					row.Stat = *stats.Goals.Assists
				}
			} else if stats.Goals.Total != nil {
				row.Stat = *stats.Goals.Total
			}
		}
		rows = append(rows, row)
	}

	return truncateLeaders(rows, kind)
}

func kickoffTime(core apifootball.FixtureCore) time.Time {
	if core.Timestamp > 0 {
		return time.Unix(core.Timestamp, 0)
	}
	if parsed, err := time.Parse(time.RFC3339, core.Date); err == nil {
		return parsed
	}
	return time.Time{}
}

func primaryStatus(status apifootball.FixtureStatus, played bool) string {
	if status.Long != "" {
		return status.Long
	}
	if status.Short != "" {
		return status.Short
	}
	if played {
		return "Match Finished"
	}
	return "Not Started"
}
