package algorithms

import (
	"math"
	"strings"

	"lysodata_backend/internal/models"
)

// Compare classifies one stored strain value against one observation.
// A nil stored value means the strain has no recorded result for the test.
//
// Numeric tolerance bands are inclusive. An exact query of 0 (or a
// zero-width range) yields a zero tolerance, collapsing partial_match into
// match-only; that is intentional.
func Compare(obs Observation, stored *StoredValue) Outcome {
	if stored == nil {
		return OutcomeNotFound
	}

	switch obs.TestType {
	case models.TestTypeBoolean:
		if strings.EqualFold(obs.BooleanValue, stored.Raw) {
			return OutcomeMatch
		}
		return OutcomeMismatch

	case models.TestTypeNumeric:
		if stored.Numeric == nil {
			return OutcomeMismatch
		}
		return compareNumeric(obs, *stored.Numeric)

	case models.TestTypeText:
		if strings.Contains(strings.ToLower(stored.Raw), strings.ToLower(obs.TextValue)) {
			return OutcomeMatch
		}
		return OutcomeMismatch
	}

	return OutcomeMismatch
}

func compareNumeric(obs Observation, stored float64) Outcome {
	if obs.NumericMode == ModeRange {
		lo, hi := obs.NumericMin, obs.NumericMax
		if stored >= lo && stored <= hi {
			return OutcomeMatch
		}
		tol := PartialMatchTolerance * (hi - lo)
		if stored >= lo-tol && stored <= hi+tol {
			return OutcomePartialMatch
		}
		return OutcomeMismatch
	}

	q := obs.NumericExact
	if stored == q {
		return OutcomeMatch
	}
	if math.Abs(stored-q) <= PartialMatchTolerance*math.Abs(q) {
		return OutcomePartialMatch
	}
	return OutcomeMismatch
}
