// Package roster maps externally-known team and player records onto the
// internal identities used by the rating store. Provider data is free text
// and inconsistent, so all matching here is normalized and fuzzy.
package roster

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Position is one of the five fixed positions of a League of Legends lineup.
// Players whose role cannot be recognized land in the SUB bucket.
type Position string

const (
	Top Position = "TOP"
	Jgl Position = "JGL"
	Mid Position = "MID"
	Adc Position = "ADC"
	Sup Position = "SUP"
	Sub Position = "SUB"
)

// PositionOrder is the fixed display and storage order of a lineup.
var PositionOrder = []Position{Top, Jgl, Mid, Adc, Sup}

// NormalizeRole maps a free-text provider role ("jungle", "jgl", "sup",
// "support", ...) to a Position. Matching is case-normalized substring
// containment because providers are not consistent about role names.
// The order of checks matters: "bottom" contains "top".
func NormalizeRole(role string) Position {
	r := strings.ToLower(strings.TrimSpace(role))
	switch {
	case strings.Contains(r, "jun"), strings.Contains(r, "jgl"):
		return Jgl
	case strings.Contains(r, "sup"):
		return Sup
	case strings.Contains(r, "adc"), strings.Contains(r, "bot"), strings.Contains(r, "carry"), strings.Contains(r, "marksman"):
		return Adc
	case strings.Contains(r, "mid"):
		return Mid
	case strings.Contains(r, "top"):
		return Top
	default:
		return Sub
	}
}

// Candidate is a provider team record considered during disambiguation.
type Candidate struct {
	ID      string
	Name    string
	Acronym string
	Country string
}

// PickTeam disambiguates a team search that returned multiple candidates.
// Order of precedence: exact name match, exact acronym match, country of
// origin, fuzzy-ranked best, else the first result. An empty candidate list
// is a hard failure.
func PickTeam(query string, candidates []Candidate, country string) (Candidate, error) {
	if len(candidates) == 0 {
		return Candidate{}, fmt.Errorf("team not found: %q", query)
	}

	q := strings.ToLower(strings.TrimSpace(query))

	for _, c := range candidates {
		if strings.ToLower(c.Name) == q {
			return c, nil
		}
	}
	for _, c := range candidates {
		if c.Acronym != "" && strings.ToLower(c.Acronym) == q {
			return c, nil
		}
	}
	if country != "" {
		for _, c := range candidates {
			if strings.EqualFold(c.Country, country) {
				log.Debug("Disambiguated team by country", "query", query, "team", c.Name, "country", country)
				return c, nil
			}
		}
	}

	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.Name
	}
	ranks := fuzzy.RankFindNormalizedFold(query, names)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		best := ranks[0]
		log.Debug("Disambiguated team by fuzzy match", "query", query, "team", best.Target)
		return candidates[best.OriginalIndex], nil
	}

	log.Warn("No disambiguation rule matched; falling back to first candidate", "query", query, "team", candidates[0].Name)
	return candidates[0], nil
}

// Entry is a position candidate within a lineup.
type Entry struct {
	ID       string
	Name     string
	Position Position
	Image    string
	Active   bool
	Starter  bool
}

// Lineup buckets roster entries by position. A bucket can hold more than one
// candidate during squad rotation; the first element is always the default
// representative for the position.
type Lineup map[Position][]Entry

// BuildLineup buckets entries by normalized position, sorting designated
// starters first, then active players, then by name for stability.
func BuildLineup(entries []Entry) Lineup {
	lineup := make(Lineup)
	for _, e := range entries {
		lineup[e.Position] = append(lineup[e.Position], e)
	}
	for pos := range lineup {
		bucket := lineup[pos]
		sort.SliceStable(bucket, func(i, j int) bool {
			if bucket[i].Starter != bucket[j].Starter {
				return bucket[i].Starter
			}
			if bucket[i].Active != bucket[j].Active {
				return bucket[i].Active
			}
			return bucket[i].Name < bucket[j].Name
		})
		lineup[pos] = bucket
	}
	return lineup
}

// PinKey derives the active_players key for a pinned position on one side
// of a sub-game.
func PinKey(side string, pos Position) string {
	return fmt.Sprintf("pinned_%s_%s", strings.ToLower(side), pos)
}

// Representative resolves which candidate stands for a position: the pinned
// player when a pin exists for the game, otherwise the bucket's first entry.
func (l Lineup) Representative(pos Position, side string, pinned map[string]string) (Entry, bool) {
	bucket := l[pos]
	if len(bucket) == 0 {
		return Entry{}, false
	}
	if pinned != nil {
		if id, ok := pinned[PinKey(side, pos)]; ok {
			for _, e := range bucket {
				if e.ID == id {
					return e, true
				}
			}
			log.Warn("Pinned player not in position bucket; using default", "position", pos, "pinnedID", id)
		}
	}
	return bucket[0], true
}
