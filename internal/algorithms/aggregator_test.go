package algorithms

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lysodata_backend/internal/models"
)

func boolObs(testID int, value string) Observation {
	return Observation{TestID: testID, TestType: models.TestTypeBoolean, BooleanValue: value}
}

func storedBool(testID int, name, code string) StoredValue {
	return StoredValue{TestID: testID, TestName: name, Raw: code}
}

func storedNumeric(testID int, name, valueType string, v float64) StoredValue {
	raw := Observation{TestType: models.TestTypeNumeric, NumericMode: ModeExact, NumericExact: v}.QueryDisplay()
	return StoredValue{TestID: testID, TestName: name, ValueType: valueType, Raw: raw, Numeric: &v}
}

func TestScoreCandidateSingleBooleanMatch(t *testing.T) {
	obs := []Observation{boolObs(1, "+")}
	names := map[int]string{1: "Catalase"}

	score := ScoreCandidate(10, obs, map[int][]StoredValue{1: {storedBool(1, "Catalase", "+")}}, names)
	assert.Equal(t, 1, score.MatchCount)
	assert.Equal(t, 100.0, score.MatchPercentage)
	assert.Equal(t, 2.0, score.ConfidenceScore)
	assert.True(t, score.Qualifies())

	score = ScoreCandidate(11, obs, map[int][]StoredValue{1: {storedBool(1, "Catalase", "-")}}, names)
	assert.Equal(t, 1, score.MismatchCount)
	assert.Equal(t, 0.0, score.MatchPercentage)
	assert.Equal(t, -0.5, score.ConfidenceScore)
	assert.False(t, score.Qualifies())
}

func TestScoreCandidateMissingRowIsNotFound(t *testing.T) {
	obs := []Observation{boolObs(1, "+")}

	score := ScoreCandidate(10, obs, map[int][]StoredValue{}, map[int]string{1: "Oxidase"})
	assert.Equal(t, 1, score.NotFoundCount)
	assert.Zero(t, score.MismatchCount)
	assert.Equal(t, 0.0, score.ConfidenceScore)

	require.Len(t, score.Details, 1)
	assert.Equal(t, OutcomeNotFound, score.Details[0].MatchStatus)
	assert.Nil(t, score.Details[0].StrainResult)
	assert.Equal(t, "Oxidase", score.Details[0].TestName)
}

func TestScoreCandidateTemperatureScenario(t *testing.T) {
	obs := []Observation{{
		TestID: 5, TestType: models.TestTypeNumeric,
		NumericMode: ModeExact, NumericExact: 25,
	}}
	names := map[int]string{5: "Growth temperature"}

	// Candidate A stores 25: exact match, 100%.
	a := ScoreCandidate(1, obs, map[int][]StoredValue{5: {storedNumeric(5, "Growth temperature", models.ValueTypeSingle, 25)}}, names)
	assert.Equal(t, 1, a.MatchCount)
	assert.Equal(t, 100.0, a.MatchPercentage)

	// Candidate B stores 28: inside the 3.75 band, contributes 0.85.
	b := ScoreCandidate(2, obs, map[int][]StoredValue{5: {storedNumeric(5, "Growth temperature", models.ValueTypeSingle, 28)}}, names)
	assert.Equal(t, 1, b.PartialMatchCount)
	assert.Equal(t, 85.0, b.MatchPercentage)
	assert.Equal(t, 1.7, b.ConfidenceScore)

	// Candidate C has no stored temperature: excluded from the percentage
	// denominator, counted in the confidence denominator.
	c := ScoreCandidate(3, obs, map[int][]StoredValue{}, names)
	assert.Equal(t, 1, c.NotFoundCount)
	assert.Equal(t, 0.0, c.MatchPercentage)
	assert.Equal(t, 0.0, c.ConfidenceScore)
}

func TestScoreCandidateBestOutcomePerTest(t *testing.T) {
	// Two numeric rows for the same test: the best outcome wins, and the
	// test contributes exactly one outcome and one detail.
	obs := []Observation{{
		TestID: 7, TestType: models.TestTypeNumeric,
		NumericMode: ModeExact, NumericExact: 25,
	}}
	stored := map[int][]StoredValue{7: {
		storedNumeric(7, "Optimal pH", models.ValueTypeMinimum, 10), // mismatch
		storedNumeric(7, "Optimal pH", models.ValueTypeMaximum, 25), // match
	}}

	score := ScoreCandidate(1, obs, stored, map[int]string{7: "Optimal pH"})
	assert.Equal(t, 1, score.MatchCount)
	assert.Zero(t, score.MismatchCount)
	require.Len(t, score.Details, 1)
	assert.Equal(t, OutcomeMatch, score.Details[0].MatchStatus)
	require.NotNil(t, score.Details[0].StrainResult)
	assert.Equal(t, "25", *score.Details[0].StrainResult)
}

func TestScoreCandidateMixedTally(t *testing.T) {
	obs := []Observation{
		boolObs(1, "+"),
		boolObs(2, "+"),
		boolObs(3, "-"),
		boolObs(4, "+"),
	}
	stored := map[int][]StoredValue{
		1: {storedBool(1, "T1", "+")}, // match
		2: {storedBool(2, "T2", "-")}, // mismatch
		3: {storedBool(3, "T3", "+")}, // mismatch
		// test 4 absent: not_found
	}
	names := map[int]string{1: "T1", 2: "T2", 3: "T3", 4: "T4"}

	score := ScoreCandidate(1, obs, stored, names)
	assert.Equal(t, 1, score.MatchCount)
	assert.Equal(t, 2, score.MismatchCount)
	assert.Equal(t, 1, score.NotFoundCount)

	// (1*1.0 + 0*0.85) / 3 * 100 = 33.33
	assert.Equal(t, 33.33, score.MatchPercentage)
	// (1*2.0 + 0*1.7 - 2*0.5) / 4 = 0.25
	assert.Equal(t, 0.25, score.ConfidenceScore)
}

func TestScoreCandidateOrderIndependent(t *testing.T) {
	obs := []Observation{
		boolObs(1, "+"),
		{TestID: 2, TestType: models.TestTypeNumeric, NumericMode: ModeExact, NumericExact: 30},
		{TestID: 3, TestType: models.TestTypeText, TextValue: "yellow"},
		boolObs(4, "-"),
	}
	stored := map[int][]StoredValue{
		1: {storedBool(1, "T1", "+")},
		2: {storedNumeric(2, "T2", models.ValueTypeSingle, 32)},
		3: {{TestID: 3, TestName: "T3", Raw: "pale yellow"}},
	}
	names := map[int]string{1: "T1", 2: "T2", 3: "T3", 4: "T4"}

	base := ScoreCandidate(1, obs, stored, names)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]Observation, len(obs))
		copy(shuffled, obs)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got := ScoreCandidate(1, shuffled, stored, names)
		assert.Equal(t, base.MatchPercentage, got.MatchPercentage)
		assert.Equal(t, base.ConfidenceScore, got.ConfidenceScore)
		assert.Equal(t, base.MatchCount, got.MatchCount)
		assert.Equal(t, base.NotFoundCount, got.NotFoundCount)
	}
}

func TestScoreCandidateNoObservations(t *testing.T) {
	// The max(·,1) guards keep zero-division out even with nothing evaluated.
	score := ScoreCandidate(1, nil, nil, nil)
	assert.Equal(t, 0.0, score.MatchPercentage)
	assert.Equal(t, 0.0, score.ConfidenceScore)
	assert.False(t, score.Qualifies())
}
