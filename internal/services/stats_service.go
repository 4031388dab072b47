package services

import (
	"context"

	"lysodata_backend/internal/appErrors"
	"lysodata_backend/internal/dto"
	"lysodata_backend/internal/repositories"

	"gorm.io/gorm"
)

type StatsService interface {
	GetStats(ctx context.Context) (*dto.StatsResponse, error)
	GetIdentificationStats(ctx context.Context) (*dto.IdentificationStatsResponse, error)
}

type statsService struct {
	db         *gorm.DB
	strainRepo repositories.StrainRepository
	testRepo   repositories.TestRepository
	resultRepo repositories.ResultRepository
}

func NewStatsService(
	db *gorm.DB,
	strainRepo repositories.StrainRepository,
	testRepo repositories.TestRepository,
	resultRepo repositories.ResultRepository,
) StatsService {
	return &statsService{
		db:         db,
		strainRepo: strainRepo,
		testRepo:   testRepo,
		resultRepo: resultRepo,
	}
}

func (s *statsService) GetStats(ctx context.Context) (*dto.StatsResponse, error) {
	db := s.db.WithContext(ctx)
	resp := &dto.StatsResponse{}

	var err error
	if resp.TotalStrains, err = s.strainRepo.CountStrains(db, false); err != nil {
		return nil, appErrors.DatabaseError(err)
	}
	if resp.ActiveStrains, err = s.strainRepo.CountStrains(db, true); err != nil {
		return nil, appErrors.DatabaseError(err)
	}
	if resp.TotalTests, err = s.testRepo.CountTests(db); err != nil {
		return nil, appErrors.DatabaseError(err)
	}
	if resp.DataSources, err = s.strainRepo.CountDataSources(db); err != nil {
		return nil, appErrors.DatabaseError(err)
	}

	counts, err := s.resultRepo.CountResultsByType(db)
	if err != nil {
		return nil, appErrors.DatabaseError(err)
	}
	resp.ResultsByType = counts
	for _, n := range counts {
		resp.TotalResults += n
	}

	species, err := s.strainRepo.ListSpecies(db)
	if err != nil {
		return nil, appErrors.DatabaseError(err)
	}
	resp.TotalSpecies = len(species)

	return resp, nil
}

// GetIdentificationStats reports the searchable surface: only active strains
// take part in identification.
func (s *statsService) GetIdentificationStats(ctx context.Context) (*dto.IdentificationStatsResponse, error) {
	db := s.db.WithContext(ctx)
	resp := &dto.IdentificationStatsResponse{}

	var err error
	if resp.SearchableStrains, err = s.strainRepo.CountStrains(db, true); err != nil {
		return nil, appErrors.DatabaseError(err)
	}
	if resp.AvailableTests, err = s.testRepo.CountTests(db); err != nil {
		return nil, appErrors.DatabaseError(err)
	}
	if resp.ResultsByType, err = s.resultRepo.CountResultsByType(db); err != nil {
		return nil, appErrors.DatabaseError(err)
	}
	return resp, nil
}
