// Package normalize maps raw source payloads into the common feed schema.
// Everything here is pure: no I/O, no clock reads, no logging. Missing
// optional sub-fields degrade to zero values or the "Unknown" team label
// instead of failing the batch.
package normalize

import (
	"sort"
	"time"

	"github.com/fikri/scorehub/internal/domain/feed"
)

// Display truncation is part of the normalized contract: the rendering layer
// never re-filters, so the counts are enforced here.
const (
	MaxMatches = 15
	MaxScorers = 5
	MaxAssists = 3
)

const unknownTeam = "Unknown"

func teamName(name string) string {
	if name == "" {
		return unknownTeam
	}
	return name
}

// splitKickoff renders an instant as the calendar-date and local
// time-of-day pair the match schema carries.
func splitKickoff(t time.Time) (string, string) {
	local := t.In(time.Local)
	return local.Format("2006-01-02"), local.Format("15:04")
}

// pairScores enforces the both-or-neither score invariant.
func pairScores(home, away *int) (*int, *int) {
	if home == nil || away == nil {
		return nil, nil
	}
	if *home < 0 || *away < 0 {
		return nil, nil
	}
	return home, away
}

// filterMatches keeps the subset matching kind (split by score presence),
// applies the kind's sort direction and truncates for display.
func filterMatches(matches []feed.MatchRecord, kind feed.Kind) []feed.MatchRecord {
	out := make([]feed.MatchRecord, 0, len(matches))
	for _, m := range matches {
		played := m.Played()
		if kind == feed.KindResults && played {
			out = append(out, m)
		}
		if kind == feed.KindUpcoming && !played {
			out = append(out, m)
		}
	}

	if kind == feed.KindResults {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	} else {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp < out[j].Timestamp })
	}

	if len(out) > MaxMatches {
		out = out[:MaxMatches]
	}
	return out
}

func leaderLimit(kind feed.Kind) int {
	if kind == feed.KindAssists {
		return MaxAssists
	}
	return MaxScorers
}

func truncateLeaders(rows []feed.PlayerStatRow, kind feed.Kind) []feed.PlayerStatRow {
	// Dense 1..N ranks over the sorted order.
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Stat > rows[j].Stat })
	for i := range rows {
		rows[i].Rank = i + 1
	}
	if limit := leaderLimit(kind); len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}
