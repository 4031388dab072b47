package algorithms

import "sort"

// RankOptions controls result filtering and truncation.
//
// FilterBeforeLimit selects the pipeline stage order: when true, candidates
// below MinConfidence are removed before the limit is applied, so the limit
// is always filled from the best remaining candidates. When false the limit
// is applied first, reproducing the historical behavior where the confidence
// filter could under-fill the result list.
type RankOptions struct {
	Limit             int
	MinConfidence     float64
	FilterBeforeLimit bool
}

// Rank sorts qualifying candidates by (confidence desc, percentage desc,
// match count desc) and applies the confidence filter and limit. The sort is
// stable, so equal candidates keep their input order across runs.
func Rank(scores []CandidateScore, opts RankOptions) []CandidateScore {
	ranked := make([]CandidateScore, 0, len(scores))
	for _, s := range scores {
		if s.Qualifies() {
			ranked = append(ranked, s)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.ConfidenceScore != b.ConfidenceScore {
			return a.ConfidenceScore > b.ConfidenceScore
		}
		if a.MatchPercentage != b.MatchPercentage {
			return a.MatchPercentage > b.MatchPercentage
		}
		return a.MatchCount > b.MatchCount
	})

	if opts.FilterBeforeLimit {
		ranked = filterByConfidence(ranked, opts.MinConfidence)
		ranked = truncate(ranked, opts.Limit)
	} else {
		ranked = truncate(ranked, opts.Limit)
		ranked = filterByConfidence(ranked, opts.MinConfidence)
	}
	return ranked
}

func filterByConfidence(scores []CandidateScore, min float64) []CandidateScore {
	kept := scores[:0]
	for _, s := range scores {
		if s.ConfidenceScore >= min {
			kept = append(kept, s)
		}
	}
	return kept
}

func truncate(scores []CandidateScore, limit int) []CandidateScore {
	if limit > 0 && len(scores) > limit {
		return scores[:limit]
	}
	return scores
}
