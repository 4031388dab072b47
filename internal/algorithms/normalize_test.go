package algorithms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lysodata_backend/internal/models"
)

func legacyTests() map[int]TestInfo {
	return map[int]TestInfo{
		1: {TestID: 1, TestCode: "catalase", TestName: "Catalase", TestType: models.TestTypeBoolean},
		2: {TestID: 2, TestCode: "growth_temp", TestName: "Growth temperature", TestType: models.TestTypeNumeric},
		3: {TestID: 3, TestCode: "pigment", TestName: "Pigmentation", TestType: models.TestTypeText},
	}
}

func TestNormalizeLegacyByDeclaredType(t *testing.T) {
	obs := NormalizeLegacy(map[int]string{
		1: "+",
		2: "27.5",
		3: "yellow",
	}, legacyTests())
	require.Len(t, obs, 3)

	// Ascending test_id order.
	assert.Equal(t, models.TestTypeBoolean, obs[0].TestType)
	assert.Equal(t, "+", obs[0].BooleanValue)

	assert.Equal(t, models.TestTypeNumeric, obs[1].TestType)
	assert.Equal(t, ModeExact, obs[1].NumericMode)
	assert.Equal(t, 27.5, obs[1].NumericExact)

	assert.Equal(t, models.TestTypeText, obs[2].TestType)
	assert.Equal(t, "yellow", obs[2].TextValue)
}

func TestNormalizeLegacyDropsUnparsableNumeric(t *testing.T) {
	obs := NormalizeLegacy(map[int]string{
		1: "+",
		2: "warm-ish",
	}, legacyTests())
	require.Len(t, obs, 1)
	assert.Equal(t, 1, obs[0].TestID)
}

func TestNormalizeLegacyDropsUnknownTest(t *testing.T) {
	obs := NormalizeLegacy(map[int]string{99: "+"}, legacyTests())
	assert.Empty(t, obs)
}

func TestNormalizeLegacyEmptyInput(t *testing.T) {
	assert.Empty(t, NormalizeLegacy(nil, legacyTests()))
}

func TestCountByType(t *testing.T) {
	obs := NormalizeLegacy(map[int]string{1: "+", 2: "30", 3: "yellow"}, legacyTests())
	booleans, numerics, texts := CountByType(obs)
	assert.Equal(t, 1, booleans)
	assert.Equal(t, 1, numerics)
	assert.Equal(t, 1, texts)
}
