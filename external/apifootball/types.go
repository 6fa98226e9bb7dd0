package apifootball

// Envelope shapes for the primary API. Only the fields the normalizers read
// are declared; everything else in the provider payload is ignored.

type standingsEnvelope struct {
	Response []standingsWrapper `json:"response"`
}

type standingsWrapper struct {
	League standingsLeague `json:"league"`
}

type standingsLeague struct {
	ID        int              `json:"id"`
	Standings [][]StandingItem `json:"standings"`
}

// StandingItem is one raw table row as the provider returns it.
type StandingItem struct {
	Rank      int           `json:"rank"`
	Team      TeamRef       `json:"team"`
	Points    int           `json:"points"`
	GoalsDiff int           `json:"goalsDiff"`
	All       StandingSplit `json:"all"`
}

type TeamRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type StandingSplit struct {
	Played int       `json:"played"`
	Win    int       `json:"win"`
	Draw   int       `json:"draw"`
	Lose   int       `json:"lose"`
	Goals  GoalSplit `json:"goals"`
}

type GoalSplit struct {
	For     int `json:"for"`
	Against int `json:"against"`
}

type fixturesEnvelope struct {
	Response []FixtureItem `json:"response"`
}

// FixtureItem is one raw fixture row covering both played and unplayed
// matches; Goals carries nil for matches not yet kicked off.
type FixtureItem struct {
	Fixture FixtureCore  `json:"fixture"`
	Teams   FixtureTeams `json:"teams"`
	Goals   FixtureGoals `json:"goals"`
}

type FixtureCore struct {
	ID        int64         `json:"id"`
	Date      string        `json:"date"`
	Timestamp int64         `json:"timestamp"`
	Status    FixtureStatus `json:"status"`
}

type FixtureStatus struct {
	Long  string `json:"long"`
	Short string `json:"short"`
}

type FixtureTeams struct {
	Home TeamRef `json:"home"`
	Away TeamRef `json:"away"`
}

type FixtureGoals struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

type playersEnvelope struct {
	Response []PlayerItem `json:"response"`
}

// PlayerItem is one leaderboard row; the provider nests season stats in a
// statistics array whose first element is the current league.
type PlayerItem struct {
	Player     PlayerRef          `json:"player"`
	Statistics []PlayerStatistics `json:"statistics"`
}

type PlayerRef struct {
	Name string `json:"name"`
}

type PlayerStatistics struct {
	Team  TeamRef     `json:"team"`
	Goals PlayerGoals `json:"goals"`
}

type PlayerGoals struct {
	Total   *int `json:"total"`
	Assists *int `json:"assists"`
}
