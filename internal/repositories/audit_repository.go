package repositories

import (
	"time"

	"lysodata_backend/internal/models"

	"gorm.io/gorm"
)

type AuditRepository interface {
	Record(db *gorm.DB, entry *models.AuditLog) error
	FindRecent(db *gorm.DB, limit int) ([]models.AuditLog, error)
	PruneOlderThan(db *gorm.DB, cutoff time.Time) (int64, error)
}

type AuditRepositoryImpl struct{}

func NewAuditRepository() AuditRepository {
	return &AuditRepositoryImpl{}
}

func (r *AuditRepositoryImpl) Record(db *gorm.DB, entry *models.AuditLog) error {
	return db.Create(entry).Error
}

func (r *AuditRepositoryImpl) FindRecent(db *gorm.DB, limit int) ([]models.AuditLog, error) {
	var entries []models.AuditLog
	err := db.Order("changed_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}

// PruneOlderThan deletes audit entries past the retention window and
// reports how many rows went away.
func (r *AuditRepositoryImpl) PruneOlderThan(db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.Where("changed_at < ?", cutoff).Delete(&models.AuditLog{})
	return result.RowsAffected, result.Error
}
