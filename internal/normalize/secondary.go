package normalize

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fikri/scorehub/external/espnfeed"
	"github.com/fikri/scorehub/internal/domain/feed"
)

// SecondaryStandings maps the feed's name/value stat lists onto table rows.
// Rows missing a rank stat get dense positions from the points order.
func SecondaryStandings(entries []espnfeed.StandingEntry) []feed.StandingsRow {
	out := make([]feed.StandingsRow, 0, len(entries))
	for _, entry := range entries {
		stats := indexStats(entry.Stats)
		out = append(out, feed.StandingsRow{
			Position:     stats["rank"],
			Team:         teamName(entry.Team.DisplayName),
			Played:       stats["gamesPlayed"],
			Wins:         stats["wins"],
			Draws:        stats["ties"],
			Losses:       stats["losses"],
			GoalsFor:     stats["pointsFor"],
			GoalsAgainst: stats["pointsAgainst"],
			GoalDiff:     stats["pointDifferential"],
			Points:       stats["points"],
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Points > out[j].Points })
	needsRank := false
	for _, row := range out {
		if row.Position <= 0 {
			needsRank = true
			break
		}
	}
	if needsRank {
		for i := range out {
			out[i].Position = i + 1
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

// SecondaryMatches splits the feed's combined scoreboard by score presence
// and returns the subset for kind. A row with an unparseable score on either
// side is treated as unplayed so the pairing invariant holds.
func SecondaryMatches(events []espnfeed.Event, kind feed.Kind) []feed.MatchRecord {
	matches := make([]feed.MatchRecord, 0, len(events))
	for _, event := range events {
		kickoff := eventTime(event.Date)
		date, clock := splitKickoff(kickoff)

		record := feed.MatchRecord{
			Date:      date,
			Time:      clock,
			HomeTeam:  unknownTeam,
			AwayTeam:  unknownTeam,
			Status:    eventStatus(event.Status.Type),
			Timestamp: kickoff.UnixMilli(),
		}

		var homeScore, awayScore *int
		for _, competition := range event.Competitions {
			for _, competitor := range competition.Competitors {
				score := parseScore(competitor.Score, event.Status.Type.State)
				switch competitor.HomeAway {
				case "home":
					record.HomeTeam = teamName(competitor.Team.DisplayName)
					homeScore = score
				case "away":
					record.AwayTeam = teamName(competitor.Team.DisplayName)
					awayScore = score
				}
			}
		}
		record.HomeScore, record.AwayScore = pairScores(homeScore, awayScore)

		matches = append(matches, record)
	}

	return filterMatches(matches, kind)
}

// SecondaryLeaders picks the goals or assists category out of the feed's
// leader board list.
func SecondaryLeaders(categories []espnfeed.LeaderCategory, kind feed.Kind) []feed.PlayerStatRow {
	wanted := "goals"
	if kind == feed.KindAssists {
		wanted = "assists"
	}

	var rows []feed.PlayerStatRow
	for _, category := range categories {
		if !strings.EqualFold(category.Name, wanted) {
			continue
		}
		rows = make([]feed.PlayerStatRow, 0, len(category.Leaders))
		for _, leader := range category.Leaders {
			name := leader.Athlete.DisplayName
			if name == "" {
				name = unknownTeam
			}
			rows = append(rows, feed.PlayerStatRow{
				Name: name,
				Team: teamName(leader.Team.DisplayName),
				Stat: int(leader.Value),
			})
		}
		break
	}

	return truncateLeaders(rows, kind)
}

func indexStats(stats []espnfeed.NamedStat) map[string]int {
	out := make(map[string]int, len(stats))
	for _, stat := range stats {
		value := int(stat.Value)
		if stat.Value == 0 && stat.DisplayValue != "" {
			if parsed, err := strconv.Atoi(strings.TrimSpace(stat.DisplayValue)); err == nil {
				value = parsed
			}
		}
		out[stat.Name] = value
	}
	return out
}

func eventTime(raw string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04Z07:00"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func eventStatus(statusType espnfeed.EventStatusType) string {
	if statusType.Description != "" {
		return statusType.Description
	}
	switch statusType.State {
	case "post":
		return "Full Time"
	case "in":
		return "In Progress"
	default:
		return "Scheduled"
	}
}

// parseScore returns a score only for completed matches; the feed keeps "0"
// in the score field before kickoff.
func parseScore(raw, state string) *int {
	if state != "post" {
		return nil
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value < 0 {
		return nil
	}
	return &value
}
