package clirender

import (
	"strings"
	"testing"

	"github.com/fikri/scorehub/internal/domain/feed"
	"github.com/fikri/scorehub/internal/quota"
)

func TestStandings_AlignedTable(t *testing.T) {
	var out strings.Builder
	r := New(&out)

	rows := []feed.StandingsRow{
		{Position: 1, Team: "Borussia Dortmund", Played: 4, Wins: 4, GoalsFor: 12, GoalsAgainst: 2, GoalDiff: 10, Points: 12},
		{Position: 2, Team: "Mainz", Played: 4, Wins: 3, Draws: 1, GoalsFor: 7, GoalsAgainst: 3, GoalDiff: 4, Points: 10},
	}
	if err := r.Standings("Bundesliga", rows, "primary"); err != nil {
		t.Fatalf("render: %v", err)
	}

	text := out.String()
	if !strings.Contains(text, "Bundesliga  [primary]") {
		t.Fatalf("missing title line:\n%s", text)
	}
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected title+header+rule+2 rows... got %d lines:\n%s", len(lines), text)
	}
	// Rows render in the order given; the renderer never re-sorts.
	if !strings.HasPrefix(lines[2], "1") || !strings.Contains(lines[2], "Borussia Dortmund") {
		t.Fatalf("unexpected first row: %q", lines[2])
	}
}

func TestStandings_RowOrderPreserved(t *testing.T) {
	var out strings.Builder
	r := New(&out)

	// Deliberately unsorted input must come out unsorted.
	rows := []feed.StandingsRow{
		{Position: 2, Team: "Second"},
		{Position: 1, Team: "First"},
	}
	if err := r.Standings("", rows, ""); err != nil {
		t.Fatalf("render: %v", err)
	}
	text := out.String()
	if strings.Index(text, "Second") > strings.Index(text, "First") {
		t.Fatalf("renderer must not re-sort rows:\n%s", text)
	}
}

func TestMatches_ScorelinePlaceholder(t *testing.T) {
	var out strings.Builder
	r := New(&out)

	three, one := 3, 1
	rows := []feed.MatchRecord{
		{Date: "2026-08-30", Time: "15:00", HomeTeam: "Inter", AwayTeam: "Milan", Status: "Scheduled"},
		{Date: "2026-08-20", Time: "18:00", HomeTeam: "Roma", AwayTeam: "Lazio", HomeScore: &three, AwayScore: &one, Status: "Full Time"},
	}
	if err := r.Matches("Serie A", rows, "secondary"); err != nil {
		t.Fatalf("render: %v", err)
	}

	text := out.String()
	if !strings.Contains(text, "- : -") {
		t.Fatalf("unplayed match must render a placeholder score:\n%s", text)
	}
	if !strings.Contains(text, "3 : 1") {
		t.Fatalf("played match must render the score:\n%s", text)
	}
}

func TestLeaders_StatLabel(t *testing.T) {
	var out strings.Builder
	r := New(&out)

	rows := []feed.PlayerStatRow{{Rank: 1, Name: "Antoine Dupont", Team: "France", Stat: 7}}
	if err := r.Leaders("Six Nations", "Assists", rows, "curated"); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out.String(), "Assists") {
		t.Fatalf("missing stat column label:\n%s", out.String())
	}
}

func TestQuotaWarning(t *testing.T) {
	var out strings.Builder
	r := New(&out)

	if err := r.QuotaWarning(nil); err != nil {
		t.Fatalf("nil warning: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("nil warning must print nothing, got %q", out.String())
	}

	warning := quota.Assess(85)
	if err := r.QuotaWarning(&warning); err != nil {
		t.Fatalf("render warning: %v", err)
	}
	if !strings.Contains(out.String(), "85 of 100") {
		t.Fatalf("unexpected warning output: %q", out.String())
	}
}
