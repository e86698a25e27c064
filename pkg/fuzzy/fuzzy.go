package fuzzy

import "strings"

// NormalizeTitle lowercases a title and collapses whitespace so that
// cosmetically different titles compare equal.
func NormalizeTitle(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), " ")
}

// TitleSimilarity computes the word-set overlap ratio between two
// normalized titles: |intersection| / max(|A|, |B|).
// Returns 0 when either title is empty.
func TitleSimilarity(a, b string) float64 {
	wordsA := strings.Fields(NormalizeTitle(a))
	wordsB := strings.Fields(NormalizeTitle(b))
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	setA := make(map[string]struct{}, len(wordsA))
	for _, w := range wordsA {
		setA[w] = struct{}{}
	}
	setB := make(map[string]struct{}, len(wordsB))
	for _, w := range wordsB {
		setB[w] = struct{}{}
	}

	overlap := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			overlap++
		}
	}

	maxLen := len(setA)
	if len(setB) > maxLen {
		maxLen = len(setB)
	}
	return float64(overlap) / float64(maxLen)
}

// WordCount returns the number of words in a normalized title.
func WordCount(s string) int {
	return len(strings.Fields(NormalizeTitle(s)))
}

// LevenshteinDistance calculates the edit distance between two strings
// This measures how many single-character edits (insertions, deletions, or substitutions)
// are required to change one string into another
func LevenshteinDistance(s1, s2 string) int {
	s1 = NormalizeTitle(s1)
	s2 = NormalizeTitle(s2)

	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	m := len(r1)
	n := len(r2)

	d := make([][]int, m+1)
	for i := range d {
		d[i] = make([]int, n+1)
	}

	for i := 0; i <= m; i++ {
		d[i][0] = i
	}
	for j := 0; j <= n; j++ {
		d[0][j] = j
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			d[i][j] = min3(
				d[i-1][j]+1,      // deletion
				d[i][j-1]+1,      // insertion
				d[i-1][j-1]+cost, // substitution
			)
		}
	}

	return d[m][n]
}

// ClosestName finds the best match for query among candidate names.
// A candidate matches on exact equality, word or prefix match, or an
// edit distance within the typo tolerance for the query length.
func ClosestName(query string, candidates []string) (int, bool) {
	query = NormalizeTitle(query)
	if query == "" {
		return -1, false
	}

	threshold := 2
	if len(query) <= 3 {
		threshold = 1
	}

	bestIdx := -1
	bestDist := threshold + 1

	for i, cand := range candidates {
		norm := NormalizeTitle(cand)
		if norm == query {
			return i, true
		}
		for _, word := range strings.Fields(norm) {
			if word == query || strings.HasPrefix(word, query) {
				return i, true
			}
			if dist := LevenshteinDistance(query, word); dist < bestDist {
				bestDist = dist
				bestIdx = i
			}
		}
	}

	if bestIdx >= 0 && bestDist <= threshold {
		return bestIdx, true
	}
	return -1, false
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
