// Package clirender draws normalized feed records as plain-text tables. It
// receives rows already sorted and truncated upstream and never reorders or
// filters them.
package clirender

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/valyala/bytebufferpool"

	"github.com/fikri/scorehub/internal/domain/feed"
	"github.com/fikri/scorehub/internal/quota"
)

type Renderer struct {
	w io.Writer
}

func New(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

func (r *Renderer) Standings(title string, rows []feed.StandingsRow, origin string) error {
	header := []string{"#", "Team", "P", "W", "D", "L", "GF", "GA", "GD", "Pts"}
	table := make([][]string, 0, len(rows))
	for _, row := range rows {
		table = append(table, []string{
			strconv.Itoa(row.Position),
			row.Team,
			strconv.Itoa(row.Played),
			strconv.Itoa(row.Wins),
			strconv.Itoa(row.Draws),
			strconv.Itoa(row.Losses),
			strconv.Itoa(row.GoalsFor),
			strconv.Itoa(row.GoalsAgainst),
			strconv.Itoa(row.GoalDiff),
			strconv.Itoa(row.Points),
		})
	}
	return r.table(title, origin, header, table)
}

func (r *Renderer) Matches(title string, rows []feed.MatchRecord, origin string) error {
	header := []string{"Date", "Time", "Home", "Score", "Away", "Status"}
	table := make([][]string, 0, len(rows))
	for _, row := range rows {
		table = append(table, []string{
			row.Date,
			row.Time,
			row.HomeTeam,
			scoreline(row),
			row.AwayTeam,
			row.Status,
		})
	}
	return r.table(title, origin, header, table)
}

func (r *Renderer) Leaders(title, statLabel string, rows []feed.PlayerStatRow, origin string) error {
	header := []string{"#", "Player", "Team", statLabel}
	table := make([][]string, 0, len(rows))
	for _, row := range rows {
		table = append(table, []string{
			strconv.Itoa(row.Rank),
			row.Name,
			row.Team,
			strconv.Itoa(row.Stat),
		})
	}
	return r.table(title, origin, header, table)
}

// QuotaWarning prints the advisory line the pipeline attached, if any.
func (r *Renderer) QuotaWarning(warning *quota.Warning) error {
	if warning == nil || warning.Level == quota.WarnNone {
		return nil
	}
	_, err := fmt.Fprintf(r.w, "! %s\n", warning.Message)
	return err
}

func (r *Renderer) QuotaStatus(count int) error {
	_, err := fmt.Fprintf(r.w, "%d of %d daily API calls used\n", count, quota.DailyCeiling)
	return err
}

func scoreline(row feed.MatchRecord) string {
	if !row.Played() {
		return "- : -"
	}
	return fmt.Sprintf("%d : %d", *row.HomeScore, *row.AwayScore)
}

func (r *Renderer) table(title, origin string, header []string, rows [][]string) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	widths := make([]int, len(header))
	for i, cell := range header {
		widths[i] = len(cell)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	if title != "" {
		buf.WriteString(title)
		if origin != "" {
			buf.WriteString("  [")
			buf.WriteString(origin)
			buf.WriteString("]")
		}
		buf.WriteByte('\n')
	}

	writeRow(buf, header, widths)
	total := 3 * (len(widths) - 1)
	for _, width := range widths {
		total += width
	}
	buf.WriteString(strings.Repeat("-", total))
	buf.WriteByte('\n')

	for _, row := range rows {
		writeRow(buf, row, widths)
	}

	_, err := r.w.Write(buf.Bytes())
	return err
}

func writeRow(buf *bytebufferpool.ByteBuffer, cells []string, widths []int) {
	for i, cell := range cells {
		if i > 0 {
			buf.WriteString(" | ")
		}
		buf.WriteString(cell)
		if pad := widths[i] - len(cell); pad > 0 {
			buf.WriteString(strings.Repeat(" ", pad))
		}
	}
	buf.WriteByte('\n')
}
