package handlers

import (
	"net/http"

	"lysodata_backend/internal/dto"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/health", h.Health)
	r.GET("/health/db", h.HealthDB)
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Version: Version})
}

// HealthDB additionally pings the database, for readiness probes.
func (h *HealthHandler) HealthDB(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "degraded", Database: "unreachable"})
		return
	}
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Database: "ok", Version: Version})
}
