package repositories

import (
	"fmt"

	"lysodata_backend/internal/algorithms"
	"lysodata_backend/internal/models"

	"gorm.io/gorm"
)

// StrainIdentity is the slice of a strain the identification response needs.
type StrainIdentity struct {
	StrainID         int
	StrainIdentifier string
	ScientificName   *string
	CommonName       *string
}

// Catalog holds every active strain's stored values for the queried tests,
// fetched up front so scoring runs without further database access.
type Catalog struct {
	Strains map[int]StrainIdentity
	// Values maps strain ID -> test ID -> stored rows. A strain/test pair
	// can carry several numeric rows (minimum, maximum, optimal).
	Values map[int]map[int][]algorithms.StoredValue
}

type ResultRepository interface {
	FetchCatalog(db *gorm.DB, testIDs []int) (*Catalog, error)
	FindByStrainID(db *gorm.DB, strainID int) ([]StrainResultRow, error)
	CountResultsByType(db *gorm.DB) (map[string]int64, error)
}

type ResultRepositoryImpl struct{}

func NewResultRepository() ResultRepository {
	return &ResultRepositoryImpl{}
}

// FetchCatalog bulk-loads the three result tables for the queried tests in
// four queries total. Either the whole catalog loads or the fetch fails.
func (r *ResultRepositoryImpl) FetchCatalog(db *gorm.DB, testIDs []int) (*Catalog, error) {
	catalog := &Catalog{
		Strains: make(map[int]StrainIdentity),
		Values:  make(map[int]map[int][]algorithms.StoredValue),
	}

	var strains []models.Strain
	if err := db.Select("strain_id", "strain_identifier", "scientific_name", "common_name").
		Where("is_active = ?", true).
		Find(&strains).Error; err != nil {
		return nil, fmt.Errorf("load active strains: %w", err)
	}
	for _, s := range strains {
		catalog.Strains[s.StrainID] = StrainIdentity{
			StrainID:         s.StrainID,
			StrainIdentifier: s.StrainIdentifier,
			ScientificName:   s.ScientificName,
			CommonName:       s.CommonName,
		}
	}

	if len(testIDs) == 0 {
		return catalog, nil
	}

	if err := r.loadBooleanResults(db, testIDs, catalog); err != nil {
		return nil, fmt.Errorf("load boolean results: %w", err)
	}
	if err := r.loadNumericResults(db, testIDs, catalog); err != nil {
		return nil, fmt.Errorf("load numeric results: %w", err)
	}
	if err := r.loadTextResults(db, testIDs, catalog); err != nil {
		return nil, fmt.Errorf("load text results: %w", err)
	}

	return catalog, nil
}

type booleanRow struct {
	StrainID  int
	TestID    int
	TestName  string
	ValueCode string
}

func (r *ResultRepositoryImpl) loadBooleanResults(db *gorm.DB, testIDs []int, catalog *Catalog) error {
	var rows []booleanRow
	err := db.Table(models.Schema+".test_results_boolean AS trb").
		Select("trb.strain_id, trb.test_id, t.test_name, tv.value_code").
		Joins("JOIN "+models.Schema+".tests t ON t.test_id = trb.test_id").
		Joins("JOIN "+models.Schema+".test_values tv ON tv.value_id = trb.value_id").
		Where("trb.test_id IN ?", testIDs).
		Scan(&rows).Error
	if err != nil {
		return err
	}
	for _, row := range rows {
		catalog.add(row.StrainID, algorithms.StoredValue{
			TestID:   row.TestID,
			TestName: row.TestName,
			Raw:      row.ValueCode,
		})
	}
	return nil
}

type numericRow struct {
	StrainID        int
	TestID          int
	TestName        string
	ValueType       string
	NumericValue    float64
	MeasurementUnit *string
}

func (r *ResultRepositoryImpl) loadNumericResults(db *gorm.DB, testIDs []int, catalog *Catalog) error {
	var rows []numericRow
	err := db.Table(models.Schema+".test_results_numeric AS trn").
		Select("trn.strain_id, trn.test_id, t.test_name, trn.value_type, trn.numeric_value, COALESCE(trn.measurement_unit, t.measurement_unit) AS measurement_unit").
		Joins("JOIN "+models.Schema+".tests t ON t.test_id = trn.test_id").
		Where("trn.test_id IN ?", testIDs).
		Scan(&rows).Error
	if err != nil {
		return err
	}
	for _, row := range rows {
		value := row.NumericValue
		raw := fmt.Sprintf("%g", value)
		if row.MeasurementUnit != nil && *row.MeasurementUnit != "" {
			raw = fmt.Sprintf("%g %s", value, *row.MeasurementUnit)
		}
		catalog.add(row.StrainID, algorithms.StoredValue{
			TestID:    row.TestID,
			TestName:  row.TestName,
			ValueType: row.ValueType,
			Raw:       raw,
			Numeric:   &value,
		})
	}
	return nil
}

type textRow struct {
	StrainID  int
	TestID    int
	TestName  string
	TextValue string
}

func (r *ResultRepositoryImpl) loadTextResults(db *gorm.DB, testIDs []int, catalog *Catalog) error {
	var rows []textRow
	err := db.Table(models.Schema+".test_results_text AS trt").
		Select("trt.strain_id, trt.test_id, t.test_name, trt.text_value").
		Joins("JOIN "+models.Schema+".tests t ON t.test_id = trt.test_id").
		Where("trt.test_id IN ?", testIDs).
		Scan(&rows).Error
	if err != nil {
		return err
	}
	for _, row := range rows {
		catalog.add(row.StrainID, algorithms.StoredValue{
			TestID:   row.TestID,
			TestName: row.TestName,
			Raw:      row.TextValue,
		})
	}
	return nil
}

// add records a stored value, dropping rows for inactive strains.
func (c *Catalog) add(strainID int, value algorithms.StoredValue) {
	if _, ok := c.Strains[strainID]; !ok {
		return
	}
	byTest, ok := c.Values[strainID]
	if !ok {
		byTest = make(map[int][]algorithms.StoredValue)
		c.Values[strainID] = byTest
	}
	byTest[value.TestID] = append(byTest[value.TestID], value)
}

// StrainResultRow is one stored result on a strain's catalog card.
type StrainResultRow struct {
	CategoryName string
	CategorySort int
	TestID       int
	TestName     string
	TestType     string
	Value        string
	Notes        *string
}

// FindByStrainID returns every stored result for one strain, ordered for
// display by category then test.
func (r *ResultRepositoryImpl) FindByStrainID(db *gorm.DB, strainID int) ([]StrainResultRow, error) {
	var out []StrainResultRow

	var booleans []models.TestResultBoolean
	if err := db.Preload("Test").Preload("Test.Category").Preload("TestValue").
		Where("strain_id = ?", strainID).
		Find(&booleans).Error; err != nil {
		return nil, err
	}
	for _, res := range booleans {
		row := StrainResultRow{TestID: res.TestID, TestType: string(models.TestTypeBoolean), Notes: res.Notes}
		if res.TestValue != nil {
			row.Value = res.TestValue.ValueCode
		}
		fillTestInfo(&row, res.Test)
		out = append(out, row)
	}

	var numerics []models.TestResultNumeric
	if err := db.Preload("Test").Preload("Test.Category").
		Where("strain_id = ?", strainID).
		Order("value_type ASC").
		Find(&numerics).Error; err != nil {
		return nil, err
	}
	for _, res := range numerics {
		row := StrainResultRow{
			TestID:   res.TestID,
			TestType: string(models.TestTypeNumeric),
			Value:    fmt.Sprintf("%s: %s", res.ValueType, res.Display()),
			Notes:    res.Notes,
		}
		fillTestInfo(&row, res.Test)
		out = append(out, row)
	}

	var texts []models.TestResultText
	if err := db.Preload("Test").Preload("Test.Category").
		Where("strain_id = ?", strainID).
		Find(&texts).Error; err != nil {
		return nil, err
	}
	for _, res := range texts {
		row := StrainResultRow{TestID: res.TestID, TestType: string(models.TestTypeText), Value: res.TextValue, Notes: res.Notes}
		fillTestInfo(&row, res.Test)
		out = append(out, row)
	}

	return out, nil
}

func fillTestInfo(row *StrainResultRow, test *models.Test) {
	if test == nil {
		return
	}
	row.TestName = test.TestName
	if test.Category != nil {
		row.CategoryName = test.Category.CategoryName
		row.CategorySort = test.Category.SortOrder
	}
}

func (r *ResultRepositoryImpl) CountResultsByType(db *gorm.DB) (map[string]int64, error) {
	counts := make(map[string]int64, 3)

	var n int64
	if err := db.Model(&models.TestResultBoolean{}).Count(&n).Error; err != nil {
		return nil, err
	}
	counts[string(models.TestTypeBoolean)] = n

	if err := db.Model(&models.TestResultNumeric{}).Count(&n).Error; err != nil {
		return nil, err
	}
	counts[string(models.TestTypeNumeric)] = n

	if err := db.Model(&models.TestResultText{}).Count(&n).Error; err != nil {
		return nil, err
	}
	counts[string(models.TestTypeText)] = n

	return counts, nil
}
