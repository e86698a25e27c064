package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTitle(t *testing.T) {
	assert.Equal(t, "fix login bug", NormalizeTitle("  Fix   Login BUG "))
	assert.Equal(t, "", NormalizeTitle("   "))
}

func TestTitleSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "fix login bug", "fix login bug", 1.0},
		{"case and spacing ignored", "Fix Login Bug", "fix  login bug", 1.0},
		{"no overlap", "fix login bug", "update docs site", 0.0},
		{"partial overlap", "fix login bug on staging", "fix login bug on staging server", 5.0 / 6.0},
		{"empty side", "", "fix login bug", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, TitleSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestTitleSimilarityIsSymmetric(t *testing.T) {
	a, b := "deploy the new search service", "deploy search"
	assert.Equal(t, TitleSimilarity(a, b), TitleSimilarity(b, a))
}

func TestLevenshteinDistance(t *testing.T) {
	assert.Equal(t, 0, LevenshteinDistance("john", "john"))
	assert.Equal(t, 1, LevenshteinDistance("john", "jon"))
	assert.Equal(t, 1, LevenshteinDistance("sarah", "sara h"))
	assert.Equal(t, 2, LevenshteinDistance("sarah", "sarha"))
	assert.Equal(t, 4, LevenshteinDistance("", "abcd"))
}

func TestClosestName(t *testing.T) {
	candidates := []string{"John Smith", "sarah.connor", "mike"}

	idx, ok := ClosestName("john", candidates)
	assert.True(t, ok)
	assert.Equal(t, 0, idx)

	// Typo within tolerance
	idx, ok = ClosestName("sareh.connor", candidates)
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	// Prefix match
	idx, ok = ClosestName("mik", candidates)
	assert.True(t, ok)
	assert.Equal(t, 2, idx)

	_, ok = ClosestName("zapdos", candidates)
	assert.False(t, ok)

	_, ok = ClosestName("", candidates)
	assert.False(t, ok)
}
