package dto

import "lysodata_backend/internal/algorithms"

// IdentifyRequest carries one identification query. Observations arrive
// either in the structured TestValues form or in the legacy TestResults
// map of test ID to raw string. Both forms may be combined.
type IdentifyRequest struct {
	TestValues  []TestValueInput `json:"test_values" validate:"omitempty,dive"`
	TestResults map[int]string   `json:"test_results" validate:"omitempty"`

	Limit         *int     `json:"limit" validate:"omitempty,gte=1"`
	MinConfidence *float64 `json:"min_confidence" validate:"omitempty,gte=0,lte=1"`
	// Tolerance and NumericToleranceOverride are accepted for wire
	// compatibility but the engine always applies its fixed tolerance band.
	Tolerance                *float64 `json:"tolerance" validate:"omitempty,gte=0,lte=10"`
	NumericToleranceOverride *float64 `json:"numeric_tolerance_override" validate:"omitempty,gte=0,lte=10"`
}

// TestValueInput is one structured observation. Exactly one of the typed
// value blocks must be set, matching the declared test type.
type TestValueInput struct {
	TestID   *int    `json:"test_id" validate:"omitempty,gte=1"`
	TestCode *string `json:"test_code" validate:"omitempty,min=1"`
	TestType string  `json:"test_type" validate:"required,test_type"`

	BooleanValue *BooleanTestValue `json:"boolean_value" validate:"omitempty"`
	NumericValue *NumericTestValue `json:"numeric_value" validate:"omitempty"`
	TextValue    *TextTestValue    `json:"text_value" validate:"omitempty"`
}

type BooleanTestValue struct {
	Value string `json:"value" validate:"required,boolean_code"`
}

// NumericTestValue holds either a single measurement or an observed range.
type NumericTestValue struct {
	Exact *float64      `json:"exact" validate:"omitempty"`
	Range *NumericRange `json:"range" validate:"omitempty"`
}

type NumericRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max" validate:"gtefield=Min"`
}

type TextTestValue struct {
	Value string `json:"value" validate:"required,min=1"`
}

// StrainMatch is one ranked candidate in the identification response.
type StrainMatch struct {
	StrainID             int                      `json:"strain_id"`
	StrainIdentifier     string                   `json:"strain_identifier"`
	ScientificName       *string                  `json:"scientific_name"`
	CommonName           *string                  `json:"common_name"`
	MatchPercentage      float64                  `json:"match_percentage"`
	MatchingTests        int                      `json:"matching_tests"`
	PartialMatchingTests int                      `json:"partial_matching_tests"`
	TotalTests           int                      `json:"total_tests"`
	ConflictingTests     int                      `json:"conflicting_tests"`
	ConfidenceScore      float64                  `json:"confidence_score"`
	MatchingDetails      []algorithms.MatchDetail `json:"matching_details"`
}

// QuerySummary breaks the accepted observations down by test type.
type QuerySummary struct {
	TotalTestsQueried int `json:"total_tests_queried"`
	BooleanTests      int `json:"boolean_tests"`
	NumericTests      int `json:"numeric_tests"`
	TextTests         int `json:"text_tests"`
}

type IdentifyResponse struct {
	Results         []StrainMatch `json:"results"`
	TotalResults    int           `json:"total_results"`
	QuerySummary    QuerySummary  `json:"query_summary"`
	ExecutionTimeMs float64       `json:"execution_time_ms"`
}
