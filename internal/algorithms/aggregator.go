package algorithms

import "math"

// Outcome weights of the scoring formulas.
const (
	matchWeight     = 1.0
	partialWeight   = 0.85
	confMatchWeight = 2.0
	confPartWeight  = 1.7
	confMissPenalty = 0.5
)

// MatchDetail explains one per-test comparison for a candidate.
type MatchDetail struct {
	TestName     string  `json:"test_name"`
	StrainResult *string `json:"strain_result"`
	QueryResult  string  `json:"query_result"`
	QueryType    string  `json:"query_type"`
	MatchStatus  Outcome `json:"match_status"`
}

// CandidateScore is a strain's aggregate over all observations.
type CandidateScore struct {
	StrainID          int
	MatchCount        int
	PartialMatchCount int
	MismatchCount     int
	NotFoundCount     int
	MatchPercentage   float64
	ConfidenceScore   float64
	Details           []MatchDetail
}

// Qualifies reports whether the candidate may appear in results at all.
func (s CandidateScore) Qualifies() bool {
	return s.MatchCount+s.PartialMatchCount > 0
}

// ScoreCandidate compares every observation against the candidate's stored
// rows and derives the aggregate metrics.
//
// A test with several stored rows (e.g. a minimum and a maximum numeric row)
// contributes exactly one outcome: each row is compared independently and the
// best outcome wins. A test with no stored row contributes one not_found.
// Tallies are therefore order-independent over observations.
func ScoreCandidate(strainID int, observations []Observation, stored map[int][]StoredValue, testNames map[int]string) CandidateScore {
	score := CandidateScore{
		StrainID: strainID,
		Details:  make([]MatchDetail, 0, len(observations)),
	}

	for _, obs := range observations {
		rows := stored[obs.TestID]

		detail := MatchDetail{
			TestName:    testNames[obs.TestID],
			QueryResult: obs.QueryDisplay(),
			QueryType:   obs.QueryType(),
			MatchStatus: OutcomeNotFound,
		}

		if len(rows) == 0 {
			score.NotFoundCount++
			score.Details = append(score.Details, detail)
			continue
		}

		best := OutcomeNotFound
		var bestRow StoredValue
		for _, row := range rows {
			outcome := Compare(obs, &row)
			if outcome.rank() > best.rank() {
				best = outcome
				bestRow = row
			}
		}

		switch best {
		case OutcomeMatch:
			score.MatchCount++
		case OutcomePartialMatch:
			score.PartialMatchCount++
		case OutcomeMismatch:
			score.MismatchCount++
		default:
			score.NotFoundCount++
		}

		raw := bestRow.Raw
		detail.StrainResult = &raw
		if bestRow.TestName != "" {
			detail.TestName = bestRow.TestName
		}
		detail.MatchStatus = best
		score.Details = append(score.Details, detail)
	}

	score.MatchPercentage = matchPercentage(score)
	score.ConfidenceScore = confidenceScore(score)
	return score
}

// matchPercentage weighs partial matches at 0.85 and excludes not_found from
// the denominator. The max(·,1) guard avoids dividing by zero when nothing
// was evaluated.
func matchPercentage(s CandidateScore) float64 {
	evaluated := s.MatchCount + s.PartialMatchCount + s.MismatchCount
	if evaluated < 1 {
		evaluated = 1
	}
	pct := (float64(s.MatchCount)*matchWeight + float64(s.PartialMatchCount)*partialWeight) /
		float64(evaluated) * 100
	return round(pct, 2)
}

// confidenceScore is a weighted net tally, not a probability. Mismatches
// subtract, not_found dilutes the denominator, and the result may be
// negative; negative scores are kept and simply rank last.
func confidenceScore(s CandidateScore) float64 {
	total := s.MatchCount + s.PartialMatchCount + s.MismatchCount + s.NotFoundCount
	if total < 1 {
		total = 1
	}
	conf := (float64(s.MatchCount)*confMatchWeight +
		float64(s.PartialMatchCount)*confPartWeight -
		float64(s.MismatchCount)*confMissPenalty) / float64(total)
	return round(conf, 3)
}

func round(v float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(v*shift) / shift
}
