package match

import (
	"cmp"
	"slices"
)

// MinSimilarity is the lowest score Suggest accepts.
const MinSimilarity = 0.6

// Suggestion is a ranked candidate.
type Suggestion struct {
	Name  string
	Score float64
}

// Rank scores every candidate against name and returns those scoring at
// least MinSimilarity, best first. Ties keep ascending name order. The
// name itself is never suggested.
func Rank(name string, candidates []string) []Suggestion {
	var out []Suggestion

	for _, c := range candidates {
		if c == name {
			continue
		}

		if score := Similarity(name, c); score >= MinSimilarity {
			out = append(out, Suggestion{Name: c, Score: score})
		}
	}

	slices.SortFunc(out, func(a, b Suggestion) int {
		if a.Score != b.Score {
			return cmp.Compare(b.Score, a.Score)
		}

		return cmp.Compare(a.Name, b.Name)
	})

	return slices.CompactFunc(out, func(a, b Suggestion) bool { return a.Name == b.Name })
}

// Suggest returns at most limit candidate names close to name. A limit of
// zero or less returns every match.
func Suggest(name string, candidates []string, limit int) []string {
	ranked := Rank(name, candidates)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	names := make([]string, len(ranked))
	for i, s := range ranked {
		names[i] = s.Name
	}

	return names
}
