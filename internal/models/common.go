package models

import "time"

// Schema is the PostgreSQL schema all catalog tables live in.
const Schema = "lysobacter"

// Timestamps is embedded by every catalog model.
type Timestamps struct {
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TestType enumerates the three supported result kinds.
type TestType string

const (
	TestTypeBoolean TestType = "boolean"
	TestTypeNumeric TestType = "numeric"
	TestTypeText    TestType = "text"
)

// Boolean result codes stored in test_values.value_code.
const (
	BooleanPositive     = "+"
	BooleanNegative     = "-"
	BooleanIntermediate = "+/-"
	BooleanNoData       = "n.d."
)

// Numeric value types stored in test_results_numeric.value_type.
const (
	ValueTypeMinimum = "minimum"
	ValueTypeMaximum = "maximum"
	ValueTypeOptimal = "optimal"
	ValueTypeSingle  = "single"
)
