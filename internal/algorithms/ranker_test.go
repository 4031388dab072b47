package algorithms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(id, matches int, pct, conf float64) CandidateScore {
	return CandidateScore{
		StrainID:        id,
		MatchCount:      matches,
		MatchPercentage: pct,
		ConfidenceScore: conf,
	}
}

func ids(scores []CandidateScore) []int {
	out := make([]int, len(scores))
	for i, s := range scores {
		out[i] = s.StrainID
	}
	return out
}

func TestRankOrdersByConfidenceThenPercentageThenMatches(t *testing.T) {
	scores := []CandidateScore{
		candidate(1, 2, 80, 1.0),
		candidate(2, 2, 90, 1.5),
		candidate(3, 3, 90, 1.0),
		candidate(4, 2, 90, 1.0),
	}

	ranked := Rank(scores, RankOptions{Limit: 20, FilterBeforeLimit: true})
	assert.Equal(t, []int{2, 3, 4, 1}, ids(ranked))
}

func TestRankIsStableAndDeterministic(t *testing.T) {
	scores := []CandidateScore{
		candidate(7, 1, 50, 0.5),
		candidate(8, 1, 50, 0.5),
		candidate(9, 1, 50, 0.5),
	}

	first := Rank(append([]CandidateScore(nil), scores...), RankOptions{Limit: 20, FilterBeforeLimit: true})
	for i := 0; i < 5; i++ {
		again := Rank(append([]CandidateScore(nil), scores...), RankOptions{Limit: 20, FilterBeforeLimit: true})
		assert.Equal(t, ids(first), ids(again))
	}
	// Fully tied candidates keep their input order.
	assert.Equal(t, []int{7, 8, 9}, ids(first))
}

func TestRankDropsCandidatesWithoutAnyMatch(t *testing.T) {
	scores := []CandidateScore{
		candidate(1, 1, 100, 2.0),
		{StrainID: 2, MismatchCount: 4, ConfidenceScore: 5.0, MatchPercentage: 0},
	}

	ranked := Rank(scores, RankOptions{Limit: 20, FilterBeforeLimit: true})
	assert.Equal(t, []int{1}, ids(ranked))
}

func TestRankNegativeConfidenceKeptAndRankedLast(t *testing.T) {
	scores := []CandidateScore{
		{StrainID: 1, MatchCount: 1, PartialMatchCount: 0, MismatchCount: 3, ConfidenceScore: -0.1, MatchPercentage: 25},
		candidate(2, 1, 100, 2.0),
	}

	ranked := Rank(scores, RankOptions{Limit: 20, MinConfidence: -1, FilterBeforeLimit: true})
	require.Len(t, ranked, 2)
	assert.Equal(t, []int{2, 1}, ids(ranked))
}

func TestRankFilterBeforeLimitBackfillsFromBeyondCutoff(t *testing.T) {
	// Three candidates, limit 2, min confidence 1.0. The second-best is
	// below the threshold; filtering first backfills with the third.
	scores := []CandidateScore{
		candidate(1, 3, 100, 3.0),
		candidate(2, 1, 40, 0.2),
		candidate(3, 2, 80, 1.5),
	}

	ranked := Rank(scores, RankOptions{Limit: 2, MinConfidence: 1.0, FilterBeforeLimit: true})
	assert.Equal(t, []int{1, 3}, ids(ranked))
}

func TestRankFilterAfterLimitPreservesHistoricalUnderfill(t *testing.T) {
	// Historical stage order: limit truncates to the top two by
	// confidence (1 and 3), then the filter removes 3, returning a single
	// result even though the limit was 2.
	scores := []CandidateScore{
		candidate(1, 3, 100, 3.0),
		candidate(2, 1, 40, 0.2),
		candidate(3, 2, 80, 0.5),
	}

	ranked := Rank(scores, RankOptions{Limit: 2, MinConfidence: 1.0, FilterBeforeLimit: false})
	assert.Equal(t, []int{1}, ids(ranked))
}

func TestRankLimitBounds(t *testing.T) {
	scores := []CandidateScore{
		candidate(1, 1, 100, 2.0),
		candidate(2, 1, 90, 1.5),
	}

	ranked := Rank(scores, RankOptions{Limit: 1, FilterBeforeLimit: true})
	assert.Equal(t, []int{1}, ids(ranked))

	// Zero limit means no truncation.
	ranked = Rank(scores, RankOptions{Limit: 0, FilterBeforeLimit: true})
	assert.Len(t, ranked, 2)
}
