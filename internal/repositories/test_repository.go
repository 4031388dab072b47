package repositories

import (
	"errors"

	"lysodata_backend/internal/models"

	"gorm.io/gorm"
)

var ErrTestNotFound = errors.New("test not found")

type TestRepository interface {
	FindCategoriesWithTests(db *gorm.DB) ([]models.TestCategory, error)
	FindByID(db *gorm.DB, id int) (*models.Test, error)
	FindByIDs(db *gorm.DB, ids []int) ([]models.Test, error)
	FindByCode(db *gorm.DB, code string) (*models.Test, error)
	FindOptions(db *gorm.DB, testID int) ([]models.TestValue, error)
	CountTests(db *gorm.DB) (int64, error)
}

type TestRepositoryImpl struct{}

func NewTestRepository() TestRepository {
	return &TestRepositoryImpl{}
}

func (r *TestRepositoryImpl) FindCategoriesWithTests(db *gorm.DB) ([]models.TestCategory, error) {
	var categories []models.TestCategory
	err := db.Preload("Tests", func(db *gorm.DB) *gorm.DB {
		return db.Where("is_active = ?", true).Order("sort_order ASC, test_name ASC")
	}).Order("sort_order ASC, category_name ASC").
		Find(&categories).Error
	return categories, err
}

func (r *TestRepositoryImpl) FindByID(db *gorm.DB, id int) (*models.Test, error) {
	var test models.Test
	err := db.Preload("Category").First(&test, "test_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTestNotFound
		}
		return nil, err
	}
	return &test, nil
}

// FindByIDs resolves a batch of test IDs in one query. Missing IDs are
// simply absent from the result, the caller decides whether that matters.
func (r *TestRepositoryImpl) FindByIDs(db *gorm.DB, ids []int) ([]models.Test, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tests []models.Test
	err := db.Where("test_id IN ?", ids).Find(&tests).Error
	return tests, err
}

func (r *TestRepositoryImpl) FindByCode(db *gorm.DB, code string) (*models.Test, error) {
	var test models.Test
	err := db.First(&test, "test_code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTestNotFound
		}
		return nil, err
	}
	return &test, nil
}

func (r *TestRepositoryImpl) FindOptions(db *gorm.DB, testID int) ([]models.TestValue, error) {
	var options []models.TestValue
	err := db.Where("test_id = ?", testID).
		Order("sort_order ASC, value_id ASC").
		Find(&options).Error
	return options, err
}

func (r *TestRepositoryImpl) CountTests(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Test{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}
