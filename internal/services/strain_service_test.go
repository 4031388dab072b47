package services

import (
	"context"
	"testing"
	"time"

	"lysodata_backend/internal/appErrors"
	"lysodata_backend/internal/dto"
	"lysodata_backend/internal/models"
	"lysodata_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubStrainRepo struct {
	strains    map[int]*models.Strain
	listOut    []models.Strain
	listTotal  int64
	lastFilter repositories.StrainFilter
	updates    map[string]interface{}
	created    *models.Strain
}

func (r *stubStrainRepo) FindWithPagination(db *gorm.DB, filter repositories.StrainFilter) ([]models.Strain, int64, error) {
	r.lastFilter = filter
	return r.listOut, r.listTotal, nil
}

func (r *stubStrainRepo) FindByID(db *gorm.DB, id int) (*models.Strain, error) {
	if strain, ok := r.strains[id]; ok {
		return strain, nil
	}
	return nil, repositories.ErrStrainNotFound
}

func (r *stubStrainRepo) FindByIdentifier(db *gorm.DB, identifier string) (*models.Strain, error) {
	for _, strain := range r.strains {
		if strain.StrainIdentifier == identifier {
			return strain, nil
		}
	}
	return nil, repositories.ErrStrainNotFound
}

func (r *stubStrainRepo) CreateStrain(db *gorm.DB, strain *models.Strain) error {
	for _, existing := range r.strains {
		if existing.StrainIdentifier == strain.StrainIdentifier {
			return repositories.ErrStrainIdentifierTaken
		}
	}
	strain.StrainID = len(r.strains) + 100
	r.strains[strain.StrainID] = strain
	r.created = strain
	return nil
}

func (r *stubStrainRepo) UpdateStrain(db *gorm.DB, id int, updates map[string]interface{}) error {
	if _, ok := r.strains[id]; !ok {
		return repositories.ErrStrainNotFound
	}
	r.updates = updates
	return nil
}

func (r *stubStrainRepo) DeactivateStrain(db *gorm.DB, id int) error {
	strain, ok := r.strains[id]
	if !ok {
		return repositories.ErrStrainNotFound
	}
	strain.IsActive = false
	return nil
}

func (r *stubStrainRepo) ListSpecies(db *gorm.DB) ([]string, error) {
	return []string{"Lysobacter antibioticus", "Lysobacter enzymogenes"}, nil
}

func (r *stubStrainRepo) CountStrains(db *gorm.DB, activeOnly bool) (int64, error) {
	return int64(len(r.strains)), nil
}

func (r *stubStrainRepo) CountDataSources(db *gorm.DB) (int64, error) {
	return 1, nil
}

type stubAuditRepo struct {
	entries []*models.AuditLog
}

func (r *stubAuditRepo) Record(db *gorm.DB, entry *models.AuditLog) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *stubAuditRepo) FindRecent(db *gorm.DB, limit int) ([]models.AuditLog, error) {
	return nil, nil
}

func (r *stubAuditRepo) PruneOlderThan(db *gorm.DB, cutoff time.Time) (int64, error) {
	return 0, nil
}

func newStrainService(strainRepo *stubStrainRepo, auditRepo *stubAuditRepo) StrainService {
	db := &gorm.DB{Config: &gorm.Config{}}
	db.Statement = &gorm.Statement{DB: db}
	return NewStrainService(db, strainRepo, &stubResultRepo{}, auditRepo)
}

func TestGetStrainNotFound(t *testing.T) {
	svc := newStrainService(&stubStrainRepo{strains: map[int]*models.Strain{}}, &stubAuditRepo{})

	_, err := svc.GetStrain(context.Background(), 42)
	requireAppError(t, err, appErrors.CodeStrainNotFound)
}

func TestCreateStrainRecordsAudit(t *testing.T) {
	strainRepo := &stubStrainRepo{strains: map[int]*models.Strain{}}
	auditRepo := &stubAuditRepo{}
	svc := newStrainService(strainRepo, auditRepo)

	resp, err := svc.CreateStrain(context.Background(), &dto.CreateStrainRequest{
		StrainIdentifier: "LYS-100",
		ScientificName:   strPtr("Lysobacter gummosus"),
		IsolationDate:    strPtr("2019-06-14"),
	})
	require.NoError(t, err)

	assert.Equal(t, "LYS-100", resp.StrainIdentifier)
	assert.True(t, resp.IsActive)
	require.NotNil(t, strainRepo.created.IsolationDate)
	assert.Equal(t, 2019, strainRepo.created.IsolationDate.Year())

	require.Len(t, auditRepo.entries, 1)
	entry := auditRepo.entries[0]
	assert.Equal(t, models.AuditInsert, entry.Operation)
	assert.Equal(t, models.Strain{}.TableName(), entry.Table)
	assert.Nil(t, entry.OldValues)
	assert.NotEmpty(t, entry.NewValues)
}

func TestCreateStrainDuplicateIdentifier(t *testing.T) {
	strainRepo := &stubStrainRepo{strains: map[int]*models.Strain{
		1: {StrainID: 1, StrainIdentifier: "LYS-100"},
	}}
	svc := newStrainService(strainRepo, &stubAuditRepo{})

	_, err := svc.CreateStrain(context.Background(), &dto.CreateStrainRequest{
		StrainIdentifier: "LYS-100",
	})
	requireAppError(t, err, appErrors.CodeStrainIdentifierInUse)
}

func TestCreateStrainRejectsBadInput(t *testing.T) {
	svc := newStrainService(&stubStrainRepo{strains: map[int]*models.Strain{}}, &stubAuditRepo{})

	_, err := svc.CreateStrain(context.Background(), &dto.CreateStrainRequest{
		StrainIdentifier: "LYS-101",
		IsolationDate:    strPtr("14/06/2019"),
	})
	requireAppError(t, err, appErrors.CodeInvalidRequest)

	_, err = svc.CreateStrain(context.Background(), &dto.CreateStrainRequest{
		StrainIdentifier: "LYS-102",
		GCContentMin:     floatPtr(70),
		GCContentMax:     floatPtr(65),
	})
	requireAppError(t, err, appErrors.CodeInvalidRequest)
}

func TestUpdateStrainAppliesOnlyProvidedFields(t *testing.T) {
	strainRepo := &stubStrainRepo{strains: map[int]*models.Strain{
		5: {StrainID: 5, StrainIdentifier: "LYS-005", IsActive: true},
	}}
	auditRepo := &stubAuditRepo{}
	svc := newStrainService(strainRepo, auditRepo)

	_, err := svc.UpdateStrain(context.Background(), 5, &dto.UpdateStrainRequest{
		CommonName: strPtr("yellow colony isolate"),
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]interface{}{"common_name": "yellow colony isolate"}, strainRepo.updates)

	require.Len(t, auditRepo.entries, 1)
	assert.Equal(t, models.AuditUpdate, auditRepo.entries[0].Operation)
	assert.Equal(t, 5, auditRepo.entries[0].RecordID)
}

func TestUpdateStrainRejectsEmptyPatch(t *testing.T) {
	strainRepo := &stubStrainRepo{strains: map[int]*models.Strain{
		5: {StrainID: 5, StrainIdentifier: "LYS-005"},
	}}
	svc := newStrainService(strainRepo, &stubAuditRepo{})

	_, err := svc.UpdateStrain(context.Background(), 5, &dto.UpdateStrainRequest{})
	requireAppError(t, err, appErrors.CodeInvalidRequest)
}

func TestDeactivateStrain(t *testing.T) {
	strain := &models.Strain{StrainID: 7, StrainIdentifier: "LYS-007", IsActive: true}
	strainRepo := &stubStrainRepo{strains: map[int]*models.Strain{7: strain}}
	auditRepo := &stubAuditRepo{}
	svc := newStrainService(strainRepo, auditRepo)

	require.NoError(t, svc.DeactivateStrain(context.Background(), 7))
	assert.False(t, strain.IsActive)
	require.Len(t, auditRepo.entries, 1)

	err := svc.DeactivateStrain(context.Background(), 99)
	requireAppError(t, err, appErrors.CodeStrainNotFound)
}

func TestListStrainsPagination(t *testing.T) {
	strainRepo := &stubStrainRepo{
		listOut: []models.Strain{
			{StrainID: 1, StrainIdentifier: "LYS-001"},
			{StrainID: 2, StrainIdentifier: "LYS-002"},
		},
		listTotal: 5,
	}
	svc := newStrainService(strainRepo, &stubAuditRepo{})

	resp, err := svc.ListStrains(context.Background(), &dto.StrainListRequest{Page: 2, PageSize: 2})
	require.NoError(t, err)

	assert.Len(t, resp.Strains, 2)
	assert.Equal(t, int64(5), resp.Pagination.Total)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
	assert.Equal(t, 2, resp.Pagination.Page)

	// Browsing defaults to active strains only.
	assert.True(t, strainRepo.lastFilter.ActiveOnly)
}
