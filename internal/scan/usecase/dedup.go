package usecase

import (
	"sort"

	detectdomain "taskbot-backend/internal/detect/domain"
	"taskbot-backend/pkg/fuzzy"
)

// Deduplicate keeps the highest-confidence candidate among near-duplicate
// titles. Candidates are ordered by confidence first so the survivor of any
// duplicate group is always the most confident one.
func Deduplicate(cands []*detectdomain.TaskCandidate, threshold float64) []*detectdomain.TaskCandidate {
	if len(cands) <= 1 {
		return cands
	}

	ordered := make([]*detectdomain.TaskCandidate, len(cands))
	copy(ordered, cands)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Confidence > ordered[j].Confidence
	})

	var kept []*detectdomain.TaskCandidate
	var keptTitles []string

	for _, cand := range ordered {
		title := fuzzy.NormalizeTitle(cand.Title)
		if !isDuplicate(title, keptTitles, threshold) {
			kept = append(kept, cand)
			keptTitles = append(keptTitles, title)
		}
	}

	return kept
}

func isDuplicate(title string, keptTitles []string, threshold float64) bool {
	for _, kept := range keptTitles {
		if title == kept {
			return true
		}
		// Word overlap is only meaningful on titles with some substance
		if fuzzy.WordCount(title) > 2 && fuzzy.WordCount(kept) > 2 &&
			fuzzy.TitleSimilarity(title, kept) > threshold {
			return true
		}
	}
	return false
}
