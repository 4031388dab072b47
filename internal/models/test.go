package models

// TestCategory groups related laboratory tests (morphology, biochemistry, ...).
type TestCategory struct {
	CategoryID   int     `gorm:"primaryKey;autoIncrement" json:"category_id"`
	CategoryName string  `gorm:"size:100;uniqueIndex;not null" json:"category_name"`
	Description  *string `json:"description,omitempty"`
	SortOrder    int     `gorm:"default:0;not null" json:"sort_order"`
	Timestamps

	Tests []Test `gorm:"foreignKey:CategoryID" json:"tests,omitempty"`
}

func (TestCategory) TableName() string { return Schema + ".test_categories" }

// Test is one laboratory test strains can be scored against.
type Test struct {
	TestID          int      `gorm:"primaryKey;autoIncrement" json:"test_id"`
	CategoryID      int      `gorm:"not null;index" json:"category_id"`
	TestName        string   `gorm:"size:150;not null" json:"test_name"`
	TestCode        *string  `gorm:"size:50;uniqueIndex" json:"test_code"`
	TestType        TestType `gorm:"size:20;not null;index" json:"test_type"`
	Description     *string  `json:"description,omitempty"`
	MeasurementUnit *string  `gorm:"size:20" json:"measurement_unit,omitempty"`
	IsActive        bool     `gorm:"default:true;not null;index" json:"is_active"`
	SortOrder       int      `gorm:"default:0;not null" json:"sort_order"`
	Timestamps

	Category *TestCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Values   []TestValue   `gorm:"foreignKey:TestID;constraint:OnDelete:CASCADE" json:"values,omitempty"`
}

func (Test) TableName() string { return Schema + ".tests" }

// Code returns the test code, falling back to the name when none is set.
func (t *Test) Code() string {
	if t.TestCode != nil && *t.TestCode != "" {
		return *t.TestCode
	}
	return t.TestName
}

// TestValue is an allowed categorical value for a boolean test ("+", "-", ...).
type TestValue struct {
	ValueID     int     `gorm:"primaryKey;autoIncrement" json:"value_id"`
	TestID      int     `gorm:"not null;index" json:"test_id"`
	ValueCode   string  `gorm:"size:10;not null" json:"value_code"`
	ValueName   string  `gorm:"size:50;not null" json:"value_name"`
	Description *string `json:"description,omitempty"`
	SortOrder   int     `gorm:"default:0;not null" json:"sort_order"`
	Timestamps
}

func (TestValue) TableName() string { return Schema + ".test_values" }
