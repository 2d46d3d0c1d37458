package service

import "sort"

// Quality-tier boundaries for the matching stats buckets. These are
// presentation-facing thresholds; the buckets always partition the
// pool, so their counts sum to TotalDesigners.
const (
	tierPerfect = 90
	tierGood    = 60
	tierFair    = 30
)

// MatchResult pairs a designer with their compatibility score.
// Computed fresh on every request, never persisted.
type MatchResult struct {
	Designer                DesignerProfile `json:"designer"`
	Score                   int             `json:"score"`
	CompatibilityPercentage int             `json:"compatibilityPercentage"`
}

// MatchingStats buckets the designer pool into quality tiers.
type MatchingStats struct {
	TotalDesigners int `json:"totalDesigners"`
	Perfect        int `json:"perfect"` // score >= 90
	Good           int `json:"good"`    // 60 <= score < 90
	Fair           int `json:"fair"`    // 30 <= score < 60
	Low            int `json:"low"`     // score < 30
}

// MatchSet is the full outcome of ranking a designer pool against one
// set of quiz answers.
type MatchSet struct {
	Matches       []MatchResult `json:"matches"`
	TopMatch      *MatchResult  `json:"topMatch"`
	Stats         MatchingStats `json:"matchingStats"`
	StyleAnalysis string        `json:"styleAnalysis"`
}

// ComputeMatches scores every designer in the pool, ranks them
// descending by score, and buckets them into tiers. Ties keep the
// pool's retrieval order (stable sort). An empty pool yields an empty
// match list and a nil top match, not an error.
func ComputeMatches(answers QuizAnswers, pool []DesignerProfile) MatchSet {
	matches := make([]MatchResult, len(pool))
	for i, designer := range pool {
		score := Score(answers, designer)
		matches[i] = MatchResult{
			Designer: designer,
			Score:    score,
			// The weights sum to 100, so the percentage is the score
			// itself; do not recompute against another denominator.
			CompatibilityPercentage: score,
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	set := MatchSet{
		Matches:       matches,
		Stats:         bucketStats(matches),
		StyleAnalysis: GenerateAnalysis(answers),
	}
	if len(matches) > 0 {
		top := matches[0]
		set.TopMatch = &top
	}
	return set
}

func bucketStats(matches []MatchResult) MatchingStats {
	stats := MatchingStats{TotalDesigners: len(matches)}
	for _, m := range matches {
		switch {
		case m.Score >= tierPerfect:
			stats.Perfect++
		case m.Score >= tierGood:
			stats.Good++
		case m.Score >= tierFair:
			stats.Fair++
		default:
			stats.Low++
		}
	}
	return stats
}
