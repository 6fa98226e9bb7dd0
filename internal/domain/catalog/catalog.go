// Package catalog is the static, read-only table of supported competitions
// and their source-specific identifiers.
package catalog

import (
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
)

const (
	SportFootball = "football"
	SportRugby    = "rugby"
)

// League IDs mirror the primary API's numeric league codes for football; the
// rugby competition uses a slug because only curated data serves it.
const (
	LeaguePremierLeague = "39"
	LeagueLaLiga        = "140"
	LeagueSerieA        = "135"
	LeagueBundesliga    = "78"
	LeagueLigue1        = "61"
	LeagueSixNations    = "six-nations"
)

// League describes one competition. PrimaryID zero means the primary API does
// not cover it; an empty SecondaryCode means the secondary feed does not.
type League struct {
	ID            string `validate:"required"`
	Sport         string `validate:"required,oneof=football rugby"`
	Name          string `validate:"required"`
	Season        string `validate:"required"`
	PrimaryID     int    `validate:"gte=0"`
	SecondaryCode string
}

// SupportsPrimary reports whether the primary API can serve this league.
func (l League) SupportsPrimary() bool {
	return l.PrimaryID > 0
}

// SupportsSecondary reports whether the secondary feed has a league code.
func (l League) SupportsSecondary() bool {
	return l.SecondaryCode != ""
}

var leagues = map[string]League{
	LeaguePremierLeague: {
		ID:            LeaguePremierLeague,
		Sport:         SportFootball,
		Name:          "Premier League",
		Season:        "2025",
		PrimaryID:     39,
		SecondaryCode: "eng.1",
	},
	LeagueLaLiga: {
		ID:            LeagueLaLiga,
		Sport:         SportFootball,
		Name:          "La Liga",
		Season:        "2025",
		PrimaryID:     140,
		SecondaryCode: "esp.1",
	},
	LeagueSerieA: {
		ID:            LeagueSerieA,
		Sport:         SportFootball,
		Name:          "Serie A",
		Season:        "2025",
		PrimaryID:     135,
		SecondaryCode: "ita.1",
	},
	LeagueBundesliga: {
		ID:            LeagueBundesliga,
		Sport:         SportFootball,
		Name:          "Bundesliga",
		Season:        "2025",
		PrimaryID:     78,
		SecondaryCode: "ger.1",
	},
	LeagueLigue1: {
		ID:            LeagueLigue1,
		Sport:         SportFootball,
		Name:          "Ligue 1",
		Season:        "2025",
		PrimaryID:     61,
		SecondaryCode: "fra.1",
	},
	LeagueSixNations: {
		ID:     LeagueSixNations,
		Sport:  SportRugby,
		Name:   "Six Nations",
		Season: "2026",
	},
}

func Get(id string) (League, bool) {
	l, ok := leagues[id]
	return l, ok
}

// Leagues returns every league ordered by sport then display name.
func Leagues() []League {
	out := make([]League, 0, len(leagues))
	for _, l := range leagues {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sport != out[j].Sport {
			return out[i].Sport < out[j].Sport
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// BySport returns the leagues for one sport in display order.
func BySport(sport string) []League {
	out := make([]League, 0, len(leagues))
	for _, l := range Leagues() {
		if l.Sport == sport {
			out = append(out, l)
		}
	}
	return out
}

// Validate checks the catalog entries; app startup calls it once so a bad
// edit fails fast rather than mid-request.
func Validate() error {
	v := validator.New()
	for id, l := range leagues {
		if id != l.ID {
			return fmt.Errorf("catalog key %q does not match league id %q", id, l.ID)
		}
		if err := v.Struct(l); err != nil {
			return fmt.Errorf("catalog league %q: %w", id, err)
		}
	}
	return nil
}
