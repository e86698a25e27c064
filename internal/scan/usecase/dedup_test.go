package usecase

import (
	"testing"

	detectdomain "taskbot-backend/internal/detect/domain"
	"taskbot-backend/pkg/fuzzy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cand(title string, confidence float64) *detectdomain.TaskCandidate {
	return &detectdomain.TaskCandidate{Title: title, Confidence: confidence}
}

func TestDeduplicateKeepsHighestConfidence(t *testing.T) {
	cands := []*detectdomain.TaskCandidate{
		cand("Fix login bug on staging", 0.7),
		cand("Fix login bug on staging server", 0.9),
	}

	require.Greater(t, fuzzy.TitleSimilarity(cands[0].Title, cands[1].Title), 0.8)

	kept := Deduplicate(cands, 0.8)
	require.Len(t, kept, 1)
	assert.Equal(t, 0.9, kept[0].Confidence)
	assert.Equal(t, "Fix login bug on staging server", kept[0].Title)
}

func TestDeduplicateExactTitleAlwaysCollapses(t *testing.T) {
	// Short titles skip the overlap check but exact matches still collapse
	cands := []*detectdomain.TaskCandidate{
		cand("Fix bug", 0.8),
		cand("fix  BUG", 0.6),
	}

	kept := Deduplicate(cands, 0.8)
	require.Len(t, kept, 1)
	assert.Equal(t, 0.8, kept[0].Confidence)
}

func TestDeduplicateShortTitlesNotFuzzyMatched(t *testing.T) {
	// Two-word titles with overlapping words stay distinct
	cands := []*detectdomain.TaskCandidate{
		cand("Fix bug", 0.8),
		cand("Fix deploy", 0.7),
	}

	kept := Deduplicate(cands, 0.8)
	assert.Len(t, kept, 2)
}

func TestDeduplicateDistinctTitlesSurvive(t *testing.T) {
	cands := []*detectdomain.TaskCandidate{
		cand("Fix login bug on staging", 0.9),
		cand("Schedule the quarterly planning meeting", 0.8),
		cand("Review the billing migration PR", 0.7),
	}

	kept := Deduplicate(cands, 0.8)
	assert.Len(t, kept, 3)
}

func TestDeduplicateBelowThresholdSurvives(t *testing.T) {
	// 3 of 5 words shared is 0.6 overlap, under the 0.8 threshold
	cands := []*detectdomain.TaskCandidate{
		cand("fix the login page bug", 0.9),
		cand("fix the login docs typo", 0.8),
	}

	require.Less(t, fuzzy.TitleSimilarity(cands[0].Title, cands[1].Title), 0.8)

	kept := Deduplicate(cands, 0.8)
	assert.Len(t, kept, 2)
}

func TestDeduplicateEmptyAndSingle(t *testing.T) {
	assert.Empty(t, Deduplicate(nil, 0.8))
	one := []*detectdomain.TaskCandidate{cand("Fix bug", 0.5)}
	assert.Len(t, Deduplicate(one, 0.8), 1)
}
