package models

import (
	"fmt"
	"time"
)

// TestResultBoolean links strain + test + categorical value.
type TestResultBoolean struct {
	ResultID        int        `gorm:"primaryKey;autoIncrement" json:"result_id"`
	StrainID        int        `gorm:"not null;index" json:"strain_id"`
	TestID          int        `gorm:"not null;index" json:"test_id"`
	ValueID         int        `gorm:"not null;index" json:"value_id"`
	Notes           *string    `json:"notes,omitempty"`
	ConfidenceLevel string     `gorm:"size:20;default:'high';not null" json:"confidence_level"`
	TestedDate      *time.Time `gorm:"type:date" json:"tested_date,omitempty"`
	Timestamps

	Test      *Test      `gorm:"foreignKey:TestID" json:"test,omitempty"`
	TestValue *TestValue `gorm:"foreignKey:ValueID" json:"test_value,omitempty"`
}

func (TestResultBoolean) TableName() string { return Schema + ".test_results_boolean" }

// TestResultNumeric stores one numeric value for a strain/test pair.
// A pair may carry several rows, one per value type (minimum, maximum,
// optimal, single).
type TestResultNumeric struct {
	ResultID        int        `gorm:"primaryKey;autoIncrement" json:"result_id"`
	StrainID        int        `gorm:"not null;index" json:"strain_id"`
	TestID          int        `gorm:"not null;index" json:"test_id"`
	ValueType       string     `gorm:"size:20;not null" json:"value_type"`
	NumericValue    float64    `gorm:"type:decimal(10,4);not null" json:"numeric_value"`
	MeasurementUnit *string    `gorm:"size:20" json:"measurement_unit,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
	ConfidenceLevel string     `gorm:"size:20;default:'high';not null" json:"confidence_level"`
	TestedDate      *time.Time `gorm:"type:date" json:"tested_date,omitempty"`
	Timestamps

	Test *Test `gorm:"foreignKey:TestID" json:"test,omitempty"`
}

func (TestResultNumeric) TableName() string { return Schema + ".test_results_numeric" }

// Display renders the value with its unit when one is recorded.
func (r *TestResultNumeric) Display() string {
	unit := ""
	if r.MeasurementUnit != nil {
		unit = *r.MeasurementUnit
	} else if r.Test != nil && r.Test.MeasurementUnit != nil {
		unit = *r.Test.MeasurementUnit
	}
	if unit != "" {
		return fmt.Sprintf("%g %s", r.NumericValue, unit)
	}
	return fmt.Sprintf("%g", r.NumericValue)
}

// TestResultText stores free-form results that fit neither other table.
type TestResultText struct {
	ResultID        int        `gorm:"primaryKey;autoIncrement" json:"result_id"`
	StrainID        int        `gorm:"not null;index" json:"strain_id"`
	TestID          int        `gorm:"not null;index" json:"test_id"`
	TextValue       string     `gorm:"not null" json:"text_value"`
	Notes           *string    `json:"notes,omitempty"`
	ConfidenceLevel string     `gorm:"size:20;default:'high';not null" json:"confidence_level"`
	TestedDate      *time.Time `gorm:"type:date" json:"tested_date,omitempty"`
	Timestamps

	Test *Test `gorm:"foreignKey:TestID" json:"test,omitempty"`
}

func (TestResultText) TableName() string { return Schema + ".test_results_text" }
