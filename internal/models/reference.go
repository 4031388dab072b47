package models

import "fmt"

// DataSource is where strain data came from (laboratory, publication, ...).
type DataSource struct {
	SourceID    int     `gorm:"primaryKey;autoIncrement" json:"source_id"`
	SourceName  string  `gorm:"size:200;not null" json:"source_name"`
	SourceType  *string `gorm:"size:50" json:"source_type,omitempty"`
	ContactInfo *string `json:"contact_info,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	Timestamps
}

func (DataSource) TableName() string { return Schema + ".data_sources" }

// CollectionNumber is a culture-collection identifier (DSM 1234, ATCC 29482, ...).
type CollectionNumber struct {
	CollectionNumberID int     `gorm:"primaryKey;autoIncrement" json:"collection_number_id"`
	CollectionCode     string  `gorm:"size:50;not null;index" json:"collection_code"`
	CollectionNumber   string  `gorm:"size:100;not null" json:"collection_number"`
	CollectionName     *string `gorm:"size:200" json:"collection_name,omitempty"`
	Notes              *string `json:"notes,omitempty"`
	Timestamps
}

func (CollectionNumber) TableName() string { return Schema + ".collection_numbers" }

// FullIdentifier renders "DSM 1234" style identifiers.
func (c *CollectionNumber) FullIdentifier() string {
	return fmt.Sprintf("%s %s", c.CollectionCode, c.CollectionNumber)
}
