package handlers

import (
	"net/http"

	"lysodata_backend/internal/dto"
	"lysodata_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type IdentificationHandler struct {
	*BaseHandler
	identService services.IdentificationService
	statsService services.StatsService
}

func NewIdentificationHandler(base *BaseHandler, identService services.IdentificationService, statsService services.StatsService) *IdentificationHandler {
	return &IdentificationHandler{
		BaseHandler:  base,
		identService: identService,
		statsService: statsService,
	}
}

func (h *IdentificationHandler) RegisterRoutes(r *gin.RouterGroup) {
	ident := r.Group("/identification")
	{
		ident.POST("/identify", h.Identify)
		ident.GET("/stats", h.Stats)
	}
}

// Identify runs one identification query against the strain catalog.
func (h *IdentificationHandler) Identify(c *gin.Context) {
	var req dto.IdentifyRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	resp, err := h.identService.Identify(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Stats describes what the identify endpoint can match against.
func (h *IdentificationHandler) Stats(c *gin.Context) {
	resp, err := h.statsService.GetIdentificationStats(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
