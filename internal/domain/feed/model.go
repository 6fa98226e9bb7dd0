// Package feed holds the normalized record schema every data source is
// mapped into. The rendering layer consumes these types as-is and never
// re-sorts or re-filters them.
package feed

// Kind identifies one of the five datasets a league exposes.
type Kind string

const (
	KindStandings Kind = "standings"
	KindUpcoming  Kind = "upcoming"
	KindResults   Kind = "results"
	KindScorers   Kind = "scorers"
	KindAssists   Kind = "assists"
)

// Kinds lists every kind in the order a full league load fetches them.
func Kinds() []Kind {
	return []Kind{KindStandings, KindUpcoming, KindResults, KindScorers, KindAssists}
}

func (k Kind) Valid() bool {
	switch k {
	case KindStandings, KindUpcoming, KindResults, KindScorers, KindAssists:
		return true
	}
	return false
}

// StandingsRow is one league-table row. Position is a dense 1..N ranking
// consistent with descending points.
type StandingsRow struct {
	Position     int    `json:"position"`
	Team         string `json:"team"`
	Played       int    `json:"played"`
	Wins         int    `json:"wins"`
	Draws        int    `json:"draws"`
	Losses       int    `json:"losses"`
	GoalsFor     int    `json:"goalsFor"`
	GoalsAgainst int    `json:"goalsAgainst"`
	GoalDiff     int    `json:"goalDiff"`
	Points       int    `json:"points"`
}

// MatchRecord is one fixture or result. HomeScore and AwayScore are both set
// or both nil; nil means the match has not been played.
type MatchRecord struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	HomeTeam  string `json:"homeTeam"`
	AwayTeam  string `json:"awayTeam"`
	HomeScore *int   `json:"homeScore"`
	AwayScore *int   `json:"awayScore"`
	Status    string `json:"status"`
	// Timestamp is the kickoff instant in epoch milliseconds, used as the
	// sort key for upcoming (ascending) and recent (descending) queries.
	Timestamp int64 `json:"timestamp"`
}

// Played reports whether the match has a final score attached.
func (m MatchRecord) Played() bool {
	return m.HomeScore != nil && m.AwayScore != nil
}

// PlayerStatRow is one leaderboard row; Stat is goals or assists depending on
// the requested kind.
type PlayerStatRow struct {
	Rank int    `json:"rank"`
	Name string `json:"name"`
	Team string `json:"team"`
	Stat int    `json:"stat"`
}

// Payload carries the normalized dataset for exactly one kind. Only the slice
// matching Kind is populated.
type Payload struct {
	Kind      Kind            `json:"kind"`
	Standings []StandingsRow  `json:"standings,omitempty"`
	Matches   []MatchRecord   `json:"matches,omitempty"`
	Players   []PlayerStatRow `json:"players,omitempty"`
}

func (p Payload) Size() int {
	switch p.Kind {
	case KindStandings:
		return len(p.Standings)
	case KindUpcoming, KindResults:
		return len(p.Matches)
	case KindScorers, KindAssists:
		return len(p.Players)
	}
	return 0
}

func (p Payload) IsEmpty() bool {
	return p.Size() == 0
}
