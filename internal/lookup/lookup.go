// Package lookup finds players by approximate display name.
package lookup

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/aayushbajaj/fits-stats/internal/storage"
)

// Match is a player whose display name matched a query.
type Match struct {
	Player storage.PlayerSummary
	// Matched holds the byte offsets of the query characters in the name.
	Matched []int
	Score   int
}

type byName []storage.PlayerSummary

func (p byName) String(i int) string { return p[i].DisplayName }
func (p byName) Len() int            { return len(p) }

// Find returns players whose display name fuzzily contains query, best match
// first. A blank query returns every player in input order.
func Find(query string, players []storage.PlayerSummary) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		out := make([]Match, len(players))
		for i, p := range players {
			out[i] = Match{Player: p}
		}
		return out
	}

	found := fuzzy.FindFrom(query, byName(players))
	out := make([]Match, 0, len(found))
	for _, m := range found {
		out = append(out, Match{
			Player:  players[m.Index],
			Matched: m.MatchedIndexes,
			Score:   m.Score,
		})
	}
	return out
}
