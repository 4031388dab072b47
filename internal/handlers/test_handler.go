package handlers

import (
	"net/http"
	"strconv"

	"lysodata_backend/internal/appErrors"
	"lysodata_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type TestHandler struct {
	*BaseHandler
	testService services.TestService
}

func NewTestHandler(base *BaseHandler, testService services.TestService) *TestHandler {
	return &TestHandler{
		BaseHandler: base,
		testService: testService,
	}
}

func (h *TestHandler) RegisterRoutes(r *gin.RouterGroup) {
	tests := r.Group("/tests")
	{
		tests.GET("", h.ListTests)
		tests.GET("/categories", h.ListCategories)
		tests.GET("/:testId", h.GetTest)
		tests.GET("/:testId/options", h.GetTestOptions)
	}
}

// ListTests returns the full test catalog grouped by category, the form the
// identification UI consumes.
func (h *TestHandler) ListTests(c *gin.Context) {
	resp, err := h.testService.ListTests(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListCategories returns category summaries without expanding their tests.
func (h *TestHandler) ListCategories(c *gin.Context) {
	resp, err := h.testService.ListCategories(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TestHandler) GetTest(c *gin.Context) {
	id, ok := h.testID(c)
	if !ok {
		return
	}

	resp, err := h.testService.GetTest(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetTestOptions lists the admissible categorical values of one test.
func (h *TestHandler) GetTestOptions(c *gin.Context) {
	id, ok := h.testID(c)
	if !ok {
		return
	}

	options, err := h.testService.GetTestOptions(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"test_id": id, "options": options})
}

func (h *TestHandler) testID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("testId"))
	if err != nil || id < 1 {
		appErrors.HandleError(c, appErrors.InvalidRequest("testId must be a positive integer"))
		return 0, false
	}
	return id, true
}
