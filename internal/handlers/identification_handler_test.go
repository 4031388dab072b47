package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lysodata_backend/internal/appErrors"
	"lysodata_backend/internal/dto"
	"lysodata_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubIdentService struct {
	resp *dto.IdentifyResponse
	err  error
	got  *dto.IdentifyRequest
}

func (s *stubIdentService) Identify(ctx context.Context, req *dto.IdentifyRequest) (*dto.IdentifyResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

type stubStatsService struct{}

func (s *stubStatsService) GetStats(ctx context.Context) (*dto.StatsResponse, error) {
	return &dto.StatsResponse{}, nil
}

func (s *stubStatsService) GetIdentificationStats(ctx context.Context) (*dto.IdentificationStatsResponse, error) {
	return &dto.IdentificationStatsResponse{
		SearchableStrains: 3,
		AvailableTests:    12,
	}, nil
}

func identRouter(svc *stubIdentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewIdentificationHandler(NewBaseHandler(validator.New()), svc, &stubStatsService{})
	handler.RegisterRoutes(router.Group("/api"))
	return router
}

func postIdentify(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/identification/identify", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestIdentifyEndpointSuccess(t *testing.T) {
	svc := &stubIdentService{
		resp: &dto.IdentifyResponse{
			Results: []dto.StrainMatch{{
				StrainID:         10,
				StrainIdentifier: "LYS-001",
				MatchPercentage:  100,
				ConfidenceScore:  2.0,
			}},
			TotalResults: 1,
		},
	}
	router := identRouter(svc)

	rec := postIdentify(router, `{
		"test_values": [
			{"test_id": 1, "test_type": "boolean", "boolean_value": {"value": "+"}}
		],
		"limit": 10
	}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.IdentifyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "LYS-001", resp.Results[0].StrainIdentifier)

	require.NotNil(t, svc.got)
	require.NotNil(t, svc.got.Limit)
	assert.Equal(t, 10, *svc.got.Limit)
}

func TestIdentifyEndpointAcceptsLegacyTolerance(t *testing.T) {
	// Legacy clients send the historical default tolerance of 2.0; the value
	// is accepted and handed through untouched, never rejected.
	svc := &stubIdentService{resp: &dto.IdentifyResponse{}}
	router := identRouter(svc)

	rec := postIdentify(router, `{"test_results": {"1": "+"}, "tolerance": 2.0}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got)
	require.NotNil(t, svc.got.Tolerance)
	assert.Equal(t, 2.0, *svc.got.Tolerance)
}

func TestIdentifyEndpointRejectsMalformedJSON(t *testing.T) {
	svc := &stubIdentService{}
	router := identRouter(svc)

	rec := postIdentify(router, `{"test_values": [`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.got, "service must not be called for malformed bodies")

	var envelope map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, string(appErrors.CodeInvalidRequest), envelope["error"]["code"])
}

func TestIdentifyEndpointValidationFailure(t *testing.T) {
	router := identRouter(&stubIdentService{})

	// "maybe" is not an admissible boolean code.
	rec := postIdentify(router, `{
		"test_values": [
			{"test_id": 1, "test_type": "boolean", "boolean_value": {"value": "maybe"}}
		]
	}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, string(appErrors.CodeValidationFailed), envelope["error"]["code"])
	assert.NotNil(t, envelope["error"]["details"])
}

func TestIdentificationStatsEndpoint(t *testing.T) {
	router := identRouter(&stubIdentService{})

	req := httptest.NewRequest(http.MethodGet, "/api/identification/stats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.IdentificationStatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(3), resp.SearchableStrains)
	assert.Equal(t, int64(12), resp.AvailableTests)
}

func TestIdentifyEndpointMapsServiceErrors(t *testing.T) {
	svc := &stubIdentService{err: appErrors.NoObservations()}
	router := identRouter(svc)

	rec := postIdentify(router, `{"test_results": {}}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var envelope map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, string(appErrors.CodeNoObservations), envelope["error"]["code"])
}
