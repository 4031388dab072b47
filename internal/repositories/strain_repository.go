package repositories

import (
	"errors"
	"strings"

	"lysodata_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrStrainNotFound        = errors.New("strain not found")
	ErrStrainIdentifierTaken = errors.New("strain identifier already exists")
)

// StrainFilter narrows the browse query.
type StrainFilter struct {
	Search     string
	Species    string
	ActiveOnly bool
	Page       int
	PageSize   int
}

type StrainRepository interface {
	FindWithPagination(db *gorm.DB, filter StrainFilter) ([]models.Strain, int64, error)
	FindByID(db *gorm.DB, id int) (*models.Strain, error)
	FindByIdentifier(db *gorm.DB, identifier string) (*models.Strain, error)
	CreateStrain(db *gorm.DB, strain *models.Strain) error
	UpdateStrain(db *gorm.DB, id int, updates map[string]interface{}) error
	DeactivateStrain(db *gorm.DB, id int) error
	ListSpecies(db *gorm.DB) ([]string, error)
	CountStrains(db *gorm.DB, activeOnly bool) (int64, error)
	CountDataSources(db *gorm.DB) (int64, error)
}

type StrainRepositoryImpl struct{}

func NewStrainRepository() StrainRepository {
	return &StrainRepositoryImpl{}
}

func (r *StrainRepositoryImpl) FindWithPagination(db *gorm.DB, filter StrainFilter) ([]models.Strain, int64, error) {
	query := db.Model(&models.Strain{})

	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(strain_identifier) LIKE ? OR LOWER(scientific_name) LIKE ? OR LOWER(common_name) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if filter.Species != "" {
		query = query.Where("LOWER(scientific_name) = ?", strings.ToLower(filter.Species))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var strains []models.Strain
	offset := (filter.Page - 1) * filter.PageSize
	err := query.Order("strain_identifier ASC").
		Limit(filter.PageSize).Offset(offset).
		Find(&strains).Error

	return strains, total, err
}

func (r *StrainRepositoryImpl) FindByID(db *gorm.DB, id int) (*models.Strain, error) {
	var strain models.Strain
	err := db.Preload("DataSource").Preload("Collections").Preload("Collections.CollectionNumber").
		First(&strain, "strain_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStrainNotFound
		}
		return nil, err
	}
	return &strain, nil
}

func (r *StrainRepositoryImpl) FindByIdentifier(db *gorm.DB, identifier string) (*models.Strain, error) {
	var strain models.Strain
	err := db.First(&strain, "strain_identifier = ?", identifier).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStrainNotFound
		}
		return nil, err
	}
	return &strain, nil
}

func (r *StrainRepositoryImpl) CreateStrain(db *gorm.DB, strain *models.Strain) error {
	var existing models.Strain
	err := db.Select("strain_id").First(&existing, "strain_identifier = ?", strain.StrainIdentifier).Error
	if err == nil {
		return ErrStrainIdentifierTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return db.Create(strain).Error
}

func (r *StrainRepositoryImpl) UpdateStrain(db *gorm.DB, id int, updates map[string]interface{}) error {
	result := db.Model(&models.Strain{}).Where("strain_id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStrainNotFound
	}
	return nil
}

// DeactivateStrain soft-deletes: the strain drops out of browsing and
// identification but its results stay in the catalog.
func (r *StrainRepositoryImpl) DeactivateStrain(db *gorm.DB, id int) error {
	return r.UpdateStrain(db, id, map[string]interface{}{"is_active": false})
}

func (r *StrainRepositoryImpl) ListSpecies(db *gorm.DB) ([]string, error) {
	var species []string
	err := db.Model(&models.Strain{}).
		Where("scientific_name IS NOT NULL AND is_active = ?", true).
		Distinct("scientific_name").
		Order("scientific_name ASC").
		Pluck("scientific_name", &species).Error
	return species, err
}

func (r *StrainRepositoryImpl) CountStrains(db *gorm.DB, activeOnly bool) (int64, error) {
	var count int64
	query := db.Model(&models.Strain{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Count(&count).Error
	return count, err
}

func (r *StrainRepositoryImpl) CountDataSources(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.DataSource{}).Count(&count).Error
	return count, err
}
