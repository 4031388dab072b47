package models

import "time"

// Strain is a reference bacterial strain with its basic properties.
type Strain struct {
	StrainID          int        `gorm:"primaryKey;autoIncrement" json:"strain_id"`
	StrainIdentifier  string     `gorm:"size:100;uniqueIndex;not null" json:"strain_identifier"`
	ScientificName    *string    `gorm:"size:200" json:"scientific_name"`
	CommonName        *string    `gorm:"size:200" json:"common_name"`
	Description       *string    `json:"description,omitempty"`
	IsolationSource   *string    `json:"isolation_source"`
	IsolationLocation *string    `json:"isolation_location,omitempty"`
	IsolationDate     *time.Time `json:"isolation_date,omitempty"`
	SourceID          *int       `gorm:"index" json:"source_id,omitempty"`
	GCContentMin      *float64   `gorm:"column:gc_content_min;type:decimal(5,2)" json:"gc_content_min,omitempty"`
	GCContentMax      *float64   `gorm:"column:gc_content_max;type:decimal(5,2)" json:"gc_content_max,omitempty"`
	GCContentOptimal  *float64   `gorm:"column:gc_content_optimal;type:decimal(5,2)" json:"gc_content_optimal,omitempty"`
	Notes             *string    `json:"notes,omitempty"`
	IsActive          bool       `gorm:"default:true;not null" json:"is_active"`

	// Duplicate handling: duplicates point at their master record.
	IsDuplicate    bool `gorm:"default:false;not null;index" json:"is_duplicate"`
	MasterStrainID *int `json:"master_strain_id,omitempty"`

	Timestamps

	DataSource     *DataSource         `gorm:"foreignKey:SourceID" json:"data_source,omitempty"`
	Collections    []StrainCollection  `gorm:"foreignKey:StrainID;constraint:OnDelete:CASCADE" json:"collections,omitempty"`
	BooleanResults []TestResultBoolean `gorm:"foreignKey:StrainID;constraint:OnDelete:CASCADE" json:"-"`
	NumericResults []TestResultNumeric `gorm:"foreignKey:StrainID;constraint:OnDelete:CASCADE" json:"-"`
	TextResults    []TestResultText    `gorm:"foreignKey:StrainID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Strain) TableName() string { return Schema + ".strains" }

// StrainCollection links a strain to a culture-collection number (DSM, ATCC, ...).
type StrainCollection struct {
	StrainCollectionID int  `gorm:"primaryKey;autoIncrement" json:"strain_collection_id"`
	StrainID           int  `gorm:"not null;index" json:"strain_id"`
	CollectionNumberID int  `gorm:"not null;index" json:"collection_number_id"`
	IsPrimary          bool `gorm:"default:false;not null" json:"is_primary"`
	Timestamps

	CollectionNumber *CollectionNumber `gorm:"foreignKey:CollectionNumberID" json:"collection_number,omitempty"`
}

func (StrainCollection) TableName() string { return Schema + ".strain_collections" }
