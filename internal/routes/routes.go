package routes

import (
	"lysodata_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Identification *handlers.IdentificationHandler
	Strains        *handlers.StrainHandler
	Tests          *handlers.TestHandler
	Stats          *handlers.StatsHandler
	Health         *handlers.HealthHandler
}

// RegisterRoutes mounts the API under /api.
func RegisterRoutes(router *gin.Engine, h Handlers) {
	api := router.Group("/api")
	{
		h.Identification.RegisterRoutes(api)
		h.Strains.RegisterRoutes(api)
		h.Tests.RegisterRoutes(api)
		h.Stats.RegisterRoutes(api)
		h.Health.RegisterRoutes(api)
	}
}
