package dto

import "time"

// StrainListRequest is parsed from query parameters on the browse endpoint.
type StrainListRequest struct {
	Page     int    `form:"page" validate:"omitempty,gte=1"`
	PageSize int    `form:"page_size" validate:"omitempty,gte=1,lte=200"`
	Search   string `form:"search" validate:"omitempty,max=200"`
	Species  string `form:"species" validate:"omitempty,max=200"`
	// ActiveOnly defaults to true; pass false to include deactivated strains.
	ActiveOnly *bool `form:"active_only"`
}

type CreateStrainRequest struct {
	StrainIdentifier string   `json:"strain_identifier" validate:"required,min=1,max=100"`
	ScientificName   *string  `json:"scientific_name" validate:"omitempty,max=255"`
	CommonName       *string  `json:"common_name" validate:"omitempty,max=255"`
	Description      *string  `json:"description"`
	IsolationSource  *string  `json:"isolation_source" validate:"omitempty,max=500"`
	IsolationDate    *string  `json:"isolation_date" validate:"omitempty,datetime=2006-01-02"`
	GCContentMin     *float64 `json:"gc_content_min" validate:"omitempty,gte=0,lte=100"`
	GCContentMax     *float64 `json:"gc_content_max" validate:"omitempty,gte=0,lte=100"`
	GCContentOptimal *float64 `json:"gc_content_optimal" validate:"omitempty,gte=0,lte=100"`
	NotesText        *string  `json:"notes_text"`
	SourceID         *int     `json:"source_id" validate:"omitempty,gte=1"`
}

// UpdateStrainRequest applies a partial update; nil fields are left as-is.
type UpdateStrainRequest struct {
	ScientificName   *string  `json:"scientific_name" validate:"omitempty,max=255"`
	CommonName       *string  `json:"common_name" validate:"omitempty,max=255"`
	Description      *string  `json:"description"`
	IsolationSource  *string  `json:"isolation_source" validate:"omitempty,max=500"`
	GCContentMin     *float64 `json:"gc_content_min" validate:"omitempty,gte=0,lte=100"`
	GCContentMax     *float64 `json:"gc_content_max" validate:"omitempty,gte=0,lte=100"`
	GCContentOptimal *float64 `json:"gc_content_optimal" validate:"omitempty,gte=0,lte=100"`
	NotesText        *string  `json:"notes_text"`
}

type StrainResponse struct {
	StrainID         int       `json:"strain_id"`
	StrainIdentifier string    `json:"strain_identifier"`
	ScientificName   *string   `json:"scientific_name"`
	CommonName       *string   `json:"common_name"`
	Description      *string   `json:"description"`
	IsolationSource  *string   `json:"isolation_source"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// StrainDetailResponse adds the strain's full catalog card: collection
// numbers and every stored test result grouped by category.
type StrainDetailResponse struct {
	StrainResponse
	GCContentMin      *float64                 `json:"gc_content_min"`
	GCContentMax      *float64                 `json:"gc_content_max"`
	GCContentOptimal  *float64                 `json:"gc_content_optimal"`
	NotesText         *string                  `json:"notes_text"`
	Source            *DataSourceResponse      `json:"source"`
	CollectionNumbers []string                 `json:"collection_numbers"`
	TestResults       []CategoryResultsSection `json:"test_results"`
	TotalResults      int                      `json:"total_results"`
}

type DataSourceResponse struct {
	SourceID   int     `json:"source_id"`
	SourceName string  `json:"source_name"`
	SourceType *string `json:"source_type"`
}

// CategoryResultsSection groups one strain's results under a test category.
type CategoryResultsSection struct {
	CategoryName string             `json:"category_name"`
	Results      []TestResultRecord `json:"results"`
}

type TestResultRecord struct {
	TestID   int     `json:"test_id"`
	TestName string  `json:"test_name"`
	TestType string  `json:"test_type"`
	Value    string  `json:"value"`
	Notes    *string `json:"notes,omitempty"`
}

type StrainListResponse struct {
	Strains    []StrainResponse `json:"strains"`
	Pagination Pagination       `json:"pagination"`
}

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

type SpeciesListResponse struct {
	Species []string `json:"species"`
	Total   int      `json:"total"`
}
