package algorithms

import (
	"fmt"

	"lysodata_backend/internal/models"
)

// Outcome classifies one observation against one stored strain value.
type Outcome string

const (
	OutcomeMatch        Outcome = "match"
	OutcomePartialMatch Outcome = "partial_match"
	OutcomeMismatch     Outcome = "mismatch"
	OutcomeNotFound     Outcome = "not_found"
)

// rank orders outcomes by desirability, for the best-outcome-per-test fold.
func (o Outcome) rank() int {
	switch o {
	case OutcomeMatch:
		return 3
	case OutcomePartialMatch:
		return 2
	case OutcomeMismatch:
		return 1
	default:
		return 0
	}
}

// PartialMatchTolerance is the fractional band around a numeric query inside
// which a stored value still counts as a partial match.
const PartialMatchTolerance = 0.15

// NumericMode selects between an exact numeric query and a closed range.
type NumericMode string

const (
	ModeExact NumericMode = "exact"
	ModeRange NumericMode = "range"
)

// Observation is one normalized query input tied to a test. Exactly one of
// the value groups is meaningful, selected by TestType (and NumericMode for
// numeric observations).
type Observation struct {
	TestID   int
	TestCode string
	TestType models.TestType

	BooleanValue string

	NumericMode  NumericMode
	NumericExact float64
	NumericMin   float64
	NumericMax   float64

	TextValue string
}

// QueryType is the wire label for this observation ("boolean", "numeric",
// "numeric_range" or "text").
func (o Observation) QueryType() string {
	if o.TestType == models.TestTypeNumeric && o.NumericMode == ModeRange {
		return "numeric_range"
	}
	return string(o.TestType)
}

// QueryDisplay renders the queried value for match explanations.
func (o Observation) QueryDisplay() string {
	switch o.TestType {
	case models.TestTypeBoolean:
		return o.BooleanValue
	case models.TestTypeNumeric:
		if o.NumericMode == ModeRange {
			return fmt.Sprintf("%g-%g", o.NumericMin, o.NumericMax)
		}
		return fmt.Sprintf("%g", o.NumericExact)
	default:
		return o.TextValue
	}
}

// StoredValue is one stored result row of a candidate strain for a test.
// Numeric is set for rows from the numeric results table; Raw always carries
// the display form used both for comparison (boolean/text) and explanations.
type StoredValue struct {
	TestID    int
	TestName  string
	ValueType string // minimum/maximum/optimal/single for numeric rows
	Raw       string
	Numeric   *float64
}
