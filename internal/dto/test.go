package dto

// TestCategoryResponse is one category with its tests, for catalog browsing.
type TestCategoryResponse struct {
	CategoryID   int            `json:"category_id"`
	CategoryName string         `json:"category_name"`
	Description  *string        `json:"description"`
	SortOrder    int            `json:"sort_order"`
	Tests        []TestResponse `json:"tests"`
}

type TestResponse struct {
	TestID          int     `json:"test_id"`
	TestName        string  `json:"test_name"`
	TestCode        *string `json:"test_code"`
	TestType        string  `json:"test_type"`
	Description     *string `json:"description"`
	MeasurementUnit *string `json:"measurement_unit"`
	SortOrder       int     `json:"sort_order"`
}

// TestDetailResponse adds the admissible categorical values for boolean tests.
type TestDetailResponse struct {
	TestResponse
	CategoryName string               `json:"category_name"`
	Options      []TestOptionResponse `json:"options"`
}

type TestOptionResponse struct {
	ValueID   int    `json:"value_id"`
	ValueCode string `json:"value_code"`
	ValueName string `json:"value_name"`
}

// CategorySummary is one category row without its tests expanded.
type CategorySummary struct {
	CategoryID   int     `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Description  *string `json:"description"`
	SortOrder    int     `json:"sort_order"`
	TestCount    int     `json:"test_count"`
}

type CategoryListResponse struct {
	Categories []CategorySummary `json:"categories"`
	Total      int               `json:"total"`
}

type TestListResponse struct {
	Categories []TestCategoryResponse `json:"categories"`
	TotalTests int                    `json:"total_tests"`
}
