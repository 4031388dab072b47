package algorithms

import (
	"sort"
	"strconv"

	"lysodata_backend/internal/models"
)

// TestInfo is the test metadata the normalizer needs for the legacy request
// form, looked up in bulk from the catalog.
type TestInfo struct {
	TestID   int
	TestCode string
	TestName string
	TestType models.TestType
}

// NormalizeLegacy converts the legacy test_id → raw string map into canonical
// observations. The test's declared type decides the interpretation: boolean
// values pass through unchanged, numeric values are parsed as exact queries,
// anything else is treated as a text substring.
//
// Entries for unknown tests and numeric values that fail to parse are
// dropped; they never reach scoring. Test IDs are visited in ascending order
// so the output is deterministic.
func NormalizeLegacy(results map[int]string, tests map[int]TestInfo) []Observation {
	ids := make([]int, 0, len(results))
	for id := range results {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	observations := make([]Observation, 0, len(ids))
	for _, id := range ids {
		info, ok := tests[id]
		if !ok {
			continue
		}
		value := results[id]

		obs := Observation{
			TestID:   id,
			TestCode: info.TestCode,
			TestType: info.TestType,
		}
		switch info.TestType {
		case models.TestTypeBoolean:
			obs.BooleanValue = value
		case models.TestTypeNumeric:
			parsed, err := strconv.ParseFloat(value, 64)
			if err != nil {
				continue
			}
			obs.NumericMode = ModeExact
			obs.NumericExact = parsed
		default:
			obs.TestType = models.TestTypeText
			obs.TextValue = value
		}
		observations = append(observations, obs)
	}
	return observations
}

// CountByType tallies observations per query type for the response summary.
func CountByType(observations []Observation) (booleans, numerics, texts int) {
	for _, obs := range observations {
		switch obs.TestType {
		case models.TestTypeBoolean:
			booleans++
		case models.TestTypeNumeric:
			numerics++
		default:
			texts++
		}
	}
	return booleans, numerics, texts
}
