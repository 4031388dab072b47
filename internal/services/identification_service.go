package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"lysodata_backend/internal/algorithms"
	"lysodata_backend/internal/appErrors"
	"lysodata_backend/internal/config"
	"lysodata_backend/internal/dto"
	"lysodata_backend/internal/logger"
	"lysodata_backend/internal/models"
	"lysodata_backend/internal/repositories"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// scoringConcurrency caps the worker count for parallel candidate scoring.
const scoringConcurrency = 8

type IdentificationService interface {
	Identify(ctx context.Context, req *dto.IdentifyRequest) (*dto.IdentifyResponse, error)
}

type identificationService struct {
	db         *gorm.DB
	testRepo   repositories.TestRepository
	resultRepo repositories.ResultRepository
	cfg        config.IdentificationConfig
}

func NewIdentificationService(
	db *gorm.DB,
	testRepo repositories.TestRepository,
	resultRepo repositories.ResultRepository,
	cfg config.IdentificationConfig,
) IdentificationService {
	return &identificationService{
		db:         db,
		testRepo:   testRepo,
		resultRepo: resultRepo,
		cfg:        cfg,
	}
}

// Identify normalizes the request's observations, scores every active strain
// against them and returns the ranked matches.
func (s *identificationService) Identify(ctx context.Context, req *dto.IdentifyRequest) (*dto.IdentifyResponse, error) {
	start := time.Now()

	limit := s.cfg.DefaultLimit
	if req.Limit != nil {
		if *req.Limit > s.cfg.MaxLimit {
			return nil, appErrors.InvalidRequest(fmt.Sprintf("limit must not exceed %d", s.cfg.MaxLimit))
		}
		limit = *req.Limit
	}
	minConfidence := s.cfg.DefaultMinConfidence
	if req.MinConfidence != nil {
		minConfidence = *req.MinConfidence
	}

	db := s.db.WithContext(ctx)

	observations, testNames, err := s.normalize(db, req)
	if err != nil {
		return nil, err
	}
	if len(observations) == 0 {
		return nil, appErrors.NoObservations()
	}

	testIDs := make([]int, 0, len(observations))
	seen := make(map[int]struct{}, len(observations))
	for _, obs := range observations {
		if _, ok := seen[obs.TestID]; ok {
			continue
		}
		seen[obs.TestID] = struct{}{}
		testIDs = append(testIDs, obs.TestID)
	}

	catalog, err := s.resultRepo.FetchCatalog(db, testIDs)
	if err != nil {
		return nil, appErrors.CatalogUnavailable(err)
	}

	scores, err := s.scoreAll(ctx, catalog, observations, testNames)
	if err != nil {
		return nil, err
	}

	ranked := algorithms.Rank(scores, algorithms.RankOptions{
		Limit:             limit,
		MinConfidence:     minConfidence,
		FilterBeforeLimit: s.cfg.FilterBeforeLimit,
	})

	booleans, numerics, texts := algorithms.CountByType(observations)
	resp := &dto.IdentifyResponse{
		Results:      make([]dto.StrainMatch, 0, len(ranked)),
		TotalResults: len(ranked),
		QuerySummary: dto.QuerySummary{
			TotalTestsQueried: len(observations),
			BooleanTests:      booleans,
			NumericTests:      numerics,
			TextTests:         texts,
		},
	}
	for _, score := range ranked {
		identity := catalog.Strains[score.StrainID]
		resp.Results = append(resp.Results, dto.StrainMatch{
			StrainID:             identity.StrainID,
			StrainIdentifier:     identity.StrainIdentifier,
			ScientificName:       identity.ScientificName,
			CommonName:           identity.CommonName,
			MatchPercentage:      score.MatchPercentage,
			MatchingTests:        score.MatchCount,
			PartialMatchingTests: score.PartialMatchCount,
			TotalTests:           len(observations),
			ConflictingTests:     score.MismatchCount,
			ConfidenceScore:      score.ConfidenceScore,
			MatchingDetails:      score.Details,
		})
	}

	duration := time.Since(start)
	resp.ExecutionTimeMs = float64(duration.Microseconds()) / 1000
	logger.IdentifyLog(len(observations), len(catalog.Strains), len(ranked), duration)

	return resp, nil
}

// normalize merges the structured and legacy request forms into canonical
// observations and resolves test names for match explanations.
func (s *identificationService) normalize(db *gorm.DB, req *dto.IdentifyRequest) ([]algorithms.Observation, map[int]string, error) {
	testNames := make(map[int]string)
	observations := make([]algorithms.Observation, 0, len(req.TestValues)+len(req.TestResults))

	for i, input := range req.TestValues {
		test, err := s.resolveTest(db, &input)
		if err != nil {
			return nil, nil, err
		}
		if string(test.TestType) != input.TestType {
			return nil, nil, appErrors.InvalidRequest(fmt.Sprintf(
				"test_values[%d]: test %d is %s, not %s", i, test.TestID, test.TestType, input.TestType))
		}

		obs, err := buildObservation(i, test, &input)
		if err != nil {
			return nil, nil, err
		}
		observations = append(observations, obs)
		testNames[test.TestID] = test.TestName
	}

	if len(req.TestResults) > 0 {
		ids := make([]int, 0, len(req.TestResults))
		for id := range req.TestResults {
			ids = append(ids, id)
		}
		tests, err := s.testRepo.FindByIDs(db, ids)
		if err != nil {
			return nil, nil, appErrors.DatabaseError(err)
		}

		infos := make(map[int]algorithms.TestInfo, len(tests))
		for _, test := range tests {
			infos[test.TestID] = algorithms.TestInfo{
				TestID:   test.TestID,
				TestCode: test.Code(),
				TestName: test.TestName,
				TestType: test.TestType,
			}
			testNames[test.TestID] = test.TestName
		}
		observations = append(observations, algorithms.NormalizeLegacy(req.TestResults, infos)...)
	}

	return observations, testNames, nil
}

func (s *identificationService) resolveTest(db *gorm.DB, input *dto.TestValueInput) (*models.Test, error) {
	if input.TestID != nil {
		test, err := s.testRepo.FindByID(db, *input.TestID)
		if err != nil {
			if appErrors.Is(err, repositories.ErrTestNotFound) {
				return nil, appErrors.TestNotFound(*input.TestID)
			}
			return nil, appErrors.DatabaseError(err)
		}
		return test, nil
	}
	if input.TestCode != nil {
		test, err := s.testRepo.FindByCode(db, *input.TestCode)
		if err != nil {
			if appErrors.Is(err, repositories.ErrTestNotFound) {
				return nil, appErrors.InvalidRequest(fmt.Sprintf("unknown test code %q", *input.TestCode))
			}
			return nil, appErrors.DatabaseError(err)
		}
		return test, nil
	}
	return nil, appErrors.InvalidRequest("each test value needs test_id or test_code")
}

func buildObservation(idx int, test *models.Test, input *dto.TestValueInput) (algorithms.Observation, error) {
	obs := algorithms.Observation{
		TestID:   test.TestID,
		TestCode: test.Code(),
		TestType: test.TestType,
	}

	switch test.TestType {
	case models.TestTypeBoolean:
		if input.BooleanValue == nil {
			return obs, appErrors.InvalidRequest(fmt.Sprintf("test_values[%d]: boolean_value is required", idx))
		}
		obs.BooleanValue = input.BooleanValue.Value

	case models.TestTypeNumeric:
		if input.NumericValue == nil {
			return obs, appErrors.InvalidRequest(fmt.Sprintf("test_values[%d]: numeric_value is required", idx))
		}
		switch {
		case input.NumericValue.Range != nil:
			obs.NumericMode = algorithms.ModeRange
			obs.NumericMin = input.NumericValue.Range.Min
			obs.NumericMax = input.NumericValue.Range.Max
		case input.NumericValue.Exact != nil:
			obs.NumericMode = algorithms.ModeExact
			obs.NumericExact = *input.NumericValue.Exact
		default:
			return obs, appErrors.InvalidRequest(fmt.Sprintf("test_values[%d]: numeric_value needs exact or range", idx))
		}

	default:
		if input.TextValue == nil {
			return obs, appErrors.InvalidRequest(fmt.Sprintf("test_values[%d]: text_value is required", idx))
		}
		obs.TextValue = input.TextValue.Value
	}

	return obs, nil
}

// scoreAll scores every catalog strain concurrently. Strain IDs are walked in
// ascending order and results land at fixed indexes, so the output order is
// deterministic regardless of goroutine scheduling.
func (s *identificationService) scoreAll(
	ctx context.Context,
	catalog *repositories.Catalog,
	observations []algorithms.Observation,
	testNames map[int]string,
) ([]algorithms.CandidateScore, error) {
	strainIDs := make([]int, 0, len(catalog.Strains))
	for id := range catalog.Strains {
		strainIDs = append(strainIDs, id)
	}
	sort.Ints(strainIDs)

	scores := make([]algorithms.CandidateScore, len(strainIDs))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(scoringConcurrency)
	for i, strainID := range strainIDs {
		i, strainID := i, strainID
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			scores[i] = algorithms.ScoreCandidate(strainID, observations, catalog.Values[strainID], testNames)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, appErrors.InternalError(err)
	}
	return scores, nil
}
