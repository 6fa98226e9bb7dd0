package espnfeed

// Envelope shapes for the free secondary feed. The feed is score-site JSON
// meant for browsers, so numbers arrive as floats or display strings and the
// normalizers coerce them.

type standingsEnvelope struct {
	Children []standingsGroup `json:"children"`
}

type standingsGroup struct {
	Standings standingsBlock `json:"standings"`
}

type standingsBlock struct {
	Entries []StandingEntry `json:"entries"`
}

// StandingEntry is one raw table row: a team plus a flat list of named stats.
type StandingEntry struct {
	Team  TeamRef    `json:"team"`
	Stats []NamedStat `json:"stats"`
}

type TeamRef struct {
	DisplayName string `json:"displayName"`
}

type NamedStat struct {
	Name         string  `json:"name"`
	Value        float64 `json:"value"`
	DisplayValue string  `json:"displayValue"`
}

type scoreboardEnvelope struct {
	Events []Event `json:"events"`
}

// Event is one scoreboard entry covering both played and unplayed matches.
type Event struct {
	Date         string        `json:"date"`
	Status       EventStatus   `json:"status"`
	Competitions []Competition `json:"competitions"`
}

type EventStatus struct {
	Type EventStatusType `json:"type"`
}

type EventStatusType struct {
	State       string `json:"state"`
	Description string `json:"description"`
}

type Competition struct {
	Competitors []Competitor `json:"competitors"`
}

type Competitor struct {
	HomeAway string  `json:"homeAway"`
	Team     TeamRef `json:"team"`
	Score    string  `json:"score"`
}

type leadersEnvelope struct {
	Leaders leadersBlock `json:"leaders"`
}

type leadersBlock struct {
	Categories []LeaderCategory `json:"categories"`
}

// LeaderCategory is one stat leaderboard ("goals", "assists", ...).
type LeaderCategory struct {
	Name    string       `json:"name"`
	Leaders []LeaderItem `json:"leaders"`
}

type LeaderItem struct {
	Athlete AthleteRef `json:"athlete"`
	Team    TeamRef    `json:"team"`
	Value   float64    `json:"value"`
}

type AthleteRef struct {
	DisplayName string `json:"displayName"`
}
