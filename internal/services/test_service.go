package services

import (
	"context"

	"lysodata_backend/internal/appErrors"
	"lysodata_backend/internal/dto"
	"lysodata_backend/internal/models"
	"lysodata_backend/internal/repositories"

	"gorm.io/gorm"
)

type TestService interface {
	ListTests(ctx context.Context) (*dto.TestListResponse, error)
	ListCategories(ctx context.Context) (*dto.CategoryListResponse, error)
	GetTest(ctx context.Context, id int) (*dto.TestDetailResponse, error)
	GetTestOptions(ctx context.Context, id int) ([]dto.TestOptionResponse, error)
}

type testService struct {
	db       *gorm.DB
	testRepo repositories.TestRepository
}

func NewTestService(db *gorm.DB, testRepo repositories.TestRepository) TestService {
	return &testService{db: db, testRepo: testRepo}
}

func (s *testService) ListTests(ctx context.Context) (*dto.TestListResponse, error) {
	categories, err := s.testRepo.FindCategoriesWithTests(s.db.WithContext(ctx))
	if err != nil {
		return nil, appErrors.DatabaseError(err)
	}

	resp := &dto.TestListResponse{
		Categories: make([]dto.TestCategoryResponse, 0, len(categories)),
	}
	for i := range categories {
		cat := &categories[i]
		out := dto.TestCategoryResponse{
			CategoryID:   cat.CategoryID,
			CategoryName: cat.CategoryName,
			Description:  cat.Description,
			SortOrder:    cat.SortOrder,
			Tests:        make([]dto.TestResponse, 0, len(cat.Tests)),
		}
		for j := range cat.Tests {
			out.Tests = append(out.Tests, toTestResponse(&cat.Tests[j]))
			resp.TotalTests++
		}
		resp.Categories = append(resp.Categories, out)
	}
	return resp, nil
}

func (s *testService) ListCategories(ctx context.Context) (*dto.CategoryListResponse, error) {
	categories, err := s.testRepo.FindCategoriesWithTests(s.db.WithContext(ctx))
	if err != nil {
		return nil, appErrors.DatabaseError(err)
	}

	resp := &dto.CategoryListResponse{
		Categories: make([]dto.CategorySummary, 0, len(categories)),
		Total:      len(categories),
	}
	for i := range categories {
		cat := &categories[i]
		resp.Categories = append(resp.Categories, dto.CategorySummary{
			CategoryID:   cat.CategoryID,
			CategoryName: cat.CategoryName,
			Description:  cat.Description,
			SortOrder:    cat.SortOrder,
			TestCount:    len(cat.Tests),
		})
	}
	return resp, nil
}

func (s *testService) GetTestOptions(ctx context.Context, id int) ([]dto.TestOptionResponse, error) {
	db := s.db.WithContext(ctx)

	if _, err := s.testRepo.FindByID(db, id); err != nil {
		if appErrors.Is(err, repositories.ErrTestNotFound) {
			return nil, appErrors.TestNotFound(id)
		}
		return nil, appErrors.DatabaseError(err)
	}

	options, err := s.testRepo.FindOptions(db, id)
	if err != nil {
		return nil, appErrors.DatabaseError(err)
	}
	out := make([]dto.TestOptionResponse, 0, len(options))
	for _, opt := range options {
		out = append(out, dto.TestOptionResponse{
			ValueID:   opt.ValueID,
			ValueCode: opt.ValueCode,
			ValueName: opt.ValueName,
		})
	}
	return out, nil
}

func (s *testService) GetTest(ctx context.Context, id int) (*dto.TestDetailResponse, error) {
	db := s.db.WithContext(ctx)

	test, err := s.testRepo.FindByID(db, id)
	if err != nil {
		if appErrors.Is(err, repositories.ErrTestNotFound) {
			return nil, appErrors.TestNotFound(id)
		}
		return nil, appErrors.DatabaseError(err)
	}

	resp := &dto.TestDetailResponse{TestResponse: toTestResponse(test)}
	if test.Category != nil {
		resp.CategoryName = test.Category.CategoryName
	}

	// Only boolean tests carry an admissible value list.
	if test.TestType == models.TestTypeBoolean {
		options, err := s.testRepo.FindOptions(db, id)
		if err != nil {
			return nil, appErrors.DatabaseError(err)
		}
		resp.Options = make([]dto.TestOptionResponse, 0, len(options))
		for _, opt := range options {
			resp.Options = append(resp.Options, dto.TestOptionResponse{
				ValueID:   opt.ValueID,
				ValueCode: opt.ValueCode,
				ValueName: opt.ValueName,
			})
		}
	}
	return resp, nil
}

func toTestResponse(test *models.Test) dto.TestResponse {
	return dto.TestResponse{
		TestID:          test.TestID,
		TestName:        test.TestName,
		TestCode:        test.TestCode,
		TestType:        string(test.TestType),
		Description:     test.Description,
		MeasurementUnit: test.MeasurementUnit,
		SortOrder:       test.SortOrder,
	}
}
