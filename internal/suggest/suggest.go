package suggest

import (
	"cmp"
	"slices"
	"strings"

	"proto-schematic/internal/common"
)

// MinScore is the similarity below which a candidate is not suggested.
const MinScore = 0.5

// Normalize folds s to lower case and strips separators (_, -, spaces).
func Normalize(s string) string {
	var sb strings.Builder

	sb.Grow(len(s))

	for _, r := range strings.ToLower(s) {
		if !isSeparator(r) {
			sb.WriteRune(r)
		}
	}

	return sb.String()
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

// Distance computes the Levenshtein distance between a and b.
func Distance(a, b string) int {
	if a == b {
		return 0
	}

	if len(a) == 0 {
		return len(b)
	}

	if len(b) == 0 {
		return len(a)
	}

	// a is the shorter string, two rows are enough.
	if len(a) > len(b) {
		a, b = b, a
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}

			curr[i] = min(
				prev[i]+1,      // deletion
				curr[i-1]+1,    // insertion
				prev[i-1]+cost, // substitution
			)
		}

		prev, curr = curr, prev
	}

	return prev[len(a)]
}

// Score returns the similarity of the normalized names, from 0 to 1.
func Score(a, b string) float64 {
	a, b = Normalize(a), Normalize(b)
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}

	return 1.0 - float64(Distance(a, b))/float64(max(len(a), len(b)))
}

type candidate struct {
	name  string
	score float64
}

// Closest returns up to n candidates scoring at least MinScore against name,
// best first. Ties keep the order of candidates.
func Closest(name string, candidates []string, n int) []string {
	ranked := make([]candidate, 0, len(candidates))

	for _, c := range candidates {
		if c == name {
			continue
		}

		if s := Score(name, c); s >= MinScore {
			ranked = append(ranked, candidate{name: c, score: s})
		}
	}

	slices.SortStableFunc(ranked, func(a, b candidate) int {
		return cmp.Compare(b.score, a.score)
	})

	out := make([]string, 0, min(n, len(ranked)))
	for _, c := range ranked[:min(n, len(ranked))] {
		out = append(out, c.name)
	}

	return out
}

// Hint renders " (did you mean X?)" for the closest candidate, or nothing.
func Hint(name string, candidates []string) string {
	best, ok := common.First(Closest(name, candidates, 1))
	if !ok {
		return ""
	}

	return " (did you mean " + best + "?)"
}
