package services

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"lysodata_backend/internal/appErrors"
	"lysodata_backend/internal/dto"
	"lysodata_backend/internal/logger"
	"lysodata_backend/internal/models"
	"lysodata_backend/internal/repositories"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type StrainService interface {
	ListStrains(ctx context.Context, req *dto.StrainListRequest) (*dto.StrainListResponse, error)
	GetStrain(ctx context.Context, id int) (*dto.StrainDetailResponse, error)
	CreateStrain(ctx context.Context, req *dto.CreateStrainRequest) (*dto.StrainResponse, error)
	UpdateStrain(ctx context.Context, id int, req *dto.UpdateStrainRequest) (*dto.StrainResponse, error)
	DeactivateStrain(ctx context.Context, id int) error
	ListSpecies(ctx context.Context) (*dto.SpeciesListResponse, error)
}

type strainService struct {
	db         *gorm.DB
	strainRepo repositories.StrainRepository
	resultRepo repositories.ResultRepository
	auditRepo  repositories.AuditRepository
}

func NewStrainService(
	db *gorm.DB,
	strainRepo repositories.StrainRepository,
	resultRepo repositories.ResultRepository,
	auditRepo repositories.AuditRepository,
) StrainService {
	return &strainService{
		db:         db,
		strainRepo: strainRepo,
		resultRepo: resultRepo,
		auditRepo:  auditRepo,
	}
}

func (s *strainService) ListStrains(ctx context.Context, req *dto.StrainListRequest) (*dto.StrainListResponse, error) {
	filter := repositories.StrainFilter{
		Search:     req.Search,
		Species:    req.Species,
		ActiveOnly: req.ActiveOnly == nil || *req.ActiveOnly,
		Page:       req.Page,
		PageSize:   req.PageSize,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 50
	}

	strains, total, err := s.strainRepo.FindWithPagination(s.db.WithContext(ctx), filter)
	if err != nil {
		return nil, appErrors.DatabaseError(err)
	}

	resp := &dto.StrainListResponse{
		Strains: make([]dto.StrainResponse, 0, len(strains)),
		Pagination: dto.Pagination{
			Page:       filter.Page,
			PageSize:   filter.PageSize,
			Total:      total,
			TotalPages: int((total + int64(filter.PageSize) - 1) / int64(filter.PageSize)),
		},
	}
	for i := range strains {
		resp.Strains = append(resp.Strains, toStrainResponse(&strains[i]))
	}
	return resp, nil
}

func (s *strainService) GetStrain(ctx context.Context, id int) (*dto.StrainDetailResponse, error) {
	db := s.db.WithContext(ctx)

	strain, err := s.strainRepo.FindByID(db, id)
	if err != nil {
		if appErrors.Is(err, repositories.ErrStrainNotFound) {
			return nil, appErrors.StrainNotFound(id)
		}
		return nil, appErrors.DatabaseError(err)
	}

	rows, err := s.resultRepo.FindByStrainID(db, id)
	if err != nil {
		return nil, appErrors.DatabaseError(err)
	}

	resp := &dto.StrainDetailResponse{
		StrainResponse:   toStrainResponse(strain),
		GCContentMin:     strain.GCContentMin,
		GCContentMax:     strain.GCContentMax,
		GCContentOptimal: strain.GCContentOptimal,
		NotesText:        strain.Notes,
		TestResults:      groupResultsByCategory(rows),
		TotalResults:     len(rows),
	}
	if strain.DataSource != nil {
		resp.Source = &dto.DataSourceResponse{
			SourceID:   strain.DataSource.SourceID,
			SourceName: strain.DataSource.SourceName,
			SourceType: strain.DataSource.SourceType,
		}
	}
	resp.CollectionNumbers = make([]string, 0, len(strain.Collections))
	for _, link := range strain.Collections {
		if link.CollectionNumber != nil {
			resp.CollectionNumbers = append(resp.CollectionNumbers, link.CollectionNumber.FullIdentifier())
		}
	}
	return resp, nil
}

func (s *strainService) CreateStrain(ctx context.Context, req *dto.CreateStrainRequest) (*dto.StrainResponse, error) {
	strain := &models.Strain{
		StrainIdentifier: req.StrainIdentifier,
		ScientificName:   req.ScientificName,
		CommonName:       req.CommonName,
		Description:      req.Description,
		IsolationSource:  req.IsolationSource,
		SourceID:         req.SourceID,
		GCContentMin:     req.GCContentMin,
		GCContentMax:     req.GCContentMax,
		GCContentOptimal: req.GCContentOptimal,
		Notes:            req.NotesText,
		IsActive:         true,
	}
	if req.IsolationDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.IsolationDate)
		if err != nil {
			return nil, appErrors.InvalidRequest("isolation_date must be YYYY-MM-DD")
		}
		strain.IsolationDate = &parsed
	}
	if req.GCContentMin != nil && req.GCContentMax != nil && *req.GCContentMin > *req.GCContentMax {
		return nil, appErrors.InvalidRequest("gc_content_min must not exceed gc_content_max")
	}

	db := s.db.WithContext(ctx)
	if err := s.strainRepo.CreateStrain(db, strain); err != nil {
		if appErrors.Is(err, repositories.ErrStrainIdentifierTaken) {
			return nil, appErrors.StrainIdentifierInUse(req.StrainIdentifier)
		}
		return nil, appErrors.DatabaseError(err)
	}

	s.audit(ctx, db, models.AuditInsert, strain.StrainID, nil, strain)

	resp := toStrainResponse(strain)
	return &resp, nil
}

func (s *strainService) UpdateStrain(ctx context.Context, id int, req *dto.UpdateStrainRequest) (*dto.StrainResponse, error) {
	db := s.db.WithContext(ctx)

	before, err := s.strainRepo.FindByID(db, id)
	if err != nil {
		if appErrors.Is(err, repositories.ErrStrainNotFound) {
			return nil, appErrors.StrainNotFound(id)
		}
		return nil, appErrors.DatabaseError(err)
	}

	updates := map[string]interface{}{}
	setIfPresent(updates, "scientific_name", req.ScientificName)
	setIfPresent(updates, "common_name", req.CommonName)
	setIfPresent(updates, "description", req.Description)
	setIfPresent(updates, "isolation_source", req.IsolationSource)
	setIfPresent(updates, "notes", req.NotesText)
	setIfPresentFloat(updates, "gc_content_min", req.GCContentMin)
	setIfPresentFloat(updates, "gc_content_max", req.GCContentMax)
	setIfPresentFloat(updates, "gc_content_optimal", req.GCContentOptimal)
	if len(updates) == 0 {
		return nil, appErrors.InvalidRequest("no fields to update")
	}

	if err := s.strainRepo.UpdateStrain(db, id, updates); err != nil {
		return nil, appErrors.DatabaseError(err)
	}

	after, err := s.strainRepo.FindByID(db, id)
	if err != nil {
		return nil, appErrors.DatabaseError(err)
	}

	s.audit(ctx, db, models.AuditUpdate, id, before, after)

	resp := toStrainResponse(after)
	return &resp, nil
}

func (s *strainService) DeactivateStrain(ctx context.Context, id int) error {
	db := s.db.WithContext(ctx)

	before, err := s.strainRepo.FindByID(db, id)
	if err != nil {
		if appErrors.Is(err, repositories.ErrStrainNotFound) {
			return appErrors.StrainNotFound(id)
		}
		return appErrors.DatabaseError(err)
	}
	if err := s.strainRepo.DeactivateStrain(db, id); err != nil {
		return appErrors.DatabaseError(err)
	}

	s.audit(ctx, db, models.AuditUpdate, id, before, nil)
	return nil
}

func (s *strainService) ListSpecies(ctx context.Context) (*dto.SpeciesListResponse, error) {
	species, err := s.strainRepo.ListSpecies(s.db.WithContext(ctx))
	if err != nil {
		return nil, appErrors.DatabaseError(err)
	}
	return &dto.SpeciesListResponse{Species: species, Total: len(species)}, nil
}

// audit records a catalog change. Audit failures are logged, never returned:
// the change itself already happened.
func (s *strainService) audit(ctx context.Context, db *gorm.DB, operation string, recordID int, oldValue, newValue interface{}) {
	entry := &models.AuditLog{
		Table:     models.Strain{}.TableName(),
		RecordID:  recordID,
		Operation: operation,
		ChangedAt: time.Now(),
	}
	if oldValue != nil {
		if data, err := json.Marshal(oldValue); err == nil {
			entry.OldValues = datatypes.JSON(data)
		}
	}
	if newValue != nil {
		if data, err := json.Marshal(newValue); err == nil {
			entry.NewValues = datatypes.JSON(data)
		}
	}
	if err := s.auditRepo.Record(db, entry); err != nil {
		logger.CtxWithError(ctx, "audit record failed", err, "table", entry.Table, "record_id", recordID)
	}
}

func toStrainResponse(strain *models.Strain) dto.StrainResponse {
	return dto.StrainResponse{
		StrainID:         strain.StrainID,
		StrainIdentifier: strain.StrainIdentifier,
		ScientificName:   strain.ScientificName,
		CommonName:       strain.CommonName,
		Description:      strain.Description,
		IsolationSource:  strain.IsolationSource,
		IsActive:         strain.IsActive,
		CreatedAt:        strain.CreatedAt,
		UpdatedAt:        strain.UpdatedAt,
	}
}

// groupResultsByCategory folds flat result rows into display sections,
// keeping the catalog's category sort order.
func groupResultsByCategory(rows []repositories.StrainResultRow) []dto.CategoryResultsSection {
	type section struct {
		sort    int
		results []dto.TestResultRecord
	}
	byCategory := make(map[string]*section)

	for _, row := range rows {
		name := row.CategoryName
		if name == "" {
			name = "Uncategorized"
		}
		sec, ok := byCategory[name]
		if !ok {
			sec = &section{sort: row.CategorySort}
			byCategory[name] = sec
		}
		sec.results = append(sec.results, dto.TestResultRecord{
			TestID:   row.TestID,
			TestName: row.TestName,
			TestType: row.TestType,
			Value:    row.Value,
			Notes:    row.Notes,
		})
	}

	names := make([]string, 0, len(byCategory))
	for name := range byCategory {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := byCategory[names[i]], byCategory[names[j]]
		if a.sort != b.sort {
			return a.sort < b.sort
		}
		return names[i] < names[j]
	})

	out := make([]dto.CategoryResultsSection, 0, len(names))
	for _, name := range names {
		out = append(out, dto.CategoryResultsSection{
			CategoryName: name,
			Results:      byCategory[name].results,
		})
	}
	return out
}

func setIfPresent(updates map[string]interface{}, column string, value *string) {
	if value != nil {
		updates[column] = *value
	}
}

func setIfPresentFloat(updates map[string]interface{}, column string, value *float64) {
	if value != nil {
		updates[column] = *value
	}
}
