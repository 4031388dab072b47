package models

import (
	"time"

	"gorm.io/datatypes"
)

// Audit operations.
const (
	AuditInsert = "INSERT"
	AuditUpdate = "UPDATE"
	AuditDelete = "DELETE"
)

// AuditLog records changes to catalog records.
type AuditLog struct {
	LogID     int            `gorm:"primaryKey;autoIncrement" json:"log_id"`
	Table     string         `gorm:"column:table_name;size:100;not null;index" json:"table_name"`
	RecordID  int            `gorm:"not null;index" json:"record_id"`
	Operation string         `gorm:"size:20;not null;index" json:"operation"`
	OldValues datatypes.JSON `json:"old_values,omitempty"`
	NewValues datatypes.JSON `json:"new_values,omitempty"`
	ChangedBy *string        `gorm:"size:100" json:"changed_by,omitempty"`
	ChangedAt time.Time      `gorm:"default:now();not null;index" json:"changed_at"`
}

func (AuditLog) TableName() string { return Schema + ".audit_log" }
