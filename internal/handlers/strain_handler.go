package handlers

import (
	"net/http"
	"strconv"

	"lysodata_backend/internal/appErrors"
	"lysodata_backend/internal/dto"
	"lysodata_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type StrainHandler struct {
	*BaseHandler
	strainService services.StrainService
}

func NewStrainHandler(base *BaseHandler, strainService services.StrainService) *StrainHandler {
	return &StrainHandler{
		BaseHandler:   base,
		strainService: strainService,
	}
}

func (h *StrainHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/species", h.ListSpecies)

	strains := r.Group("/strains")
	{
		strains.GET("", h.ListStrains)
		strains.GET("/:strainId", h.GetStrain)
		strains.POST("", h.CreateStrain)
		strains.PUT("/:strainId", h.UpdateStrain)
		strains.DELETE("/:strainId", h.DeactivateStrain)
	}
}

func (h *StrainHandler) ListStrains(c *gin.Context) {
	var req dto.StrainListRequest
	if !h.BindQueryAndValidate(c, &req) {
		return
	}

	resp, err := h.strainService.ListStrains(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StrainHandler) GetStrain(c *gin.Context) {
	id, ok := h.strainID(c)
	if !ok {
		return
	}

	resp, err := h.strainService.GetStrain(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StrainHandler) CreateStrain(c *gin.Context) {
	var req dto.CreateStrainRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	resp, err := h.strainService.CreateStrain(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *StrainHandler) UpdateStrain(c *gin.Context) {
	id, ok := h.strainID(c)
	if !ok {
		return
	}

	var req dto.UpdateStrainRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	resp, err := h.strainService.UpdateStrain(c.Request.Context(), id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StrainHandler) DeactivateStrain(c *gin.Context) {
	id, ok := h.strainID(c)
	if !ok {
		return
	}

	if err := h.strainService.DeactivateStrain(c.Request.Context(), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *StrainHandler) ListSpecies(c *gin.Context) {
	resp, err := h.strainService.ListSpecies(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StrainHandler) strainID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("strainId"))
	if err != nil || id < 1 {
		appErrors.HandleError(c, appErrors.InvalidRequest("strainId must be a positive integer"))
		return 0, false
	}
	return id, true
}
