package app

import (
	"context"
	"fmt"

	"lysodata_backend/internal/config"
	"lysodata_backend/internal/handlers"
	"lysodata_backend/internal/logger"
	"lysodata_backend/internal/middleware"
	"lysodata_backend/internal/repositories"
	"lysodata_backend/internal/routes"
	"lysodata_backend/internal/services"
	"lysodata_backend/internal/validator"
	"lysodata_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Run loads configuration, connects to the catalog database and serves the
// API until the process is stopped.
func Run() {
	if err := config.LoadConfig(); err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}
	cfg := config.GetConfig()

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	router := SetupRouter(cfg, gormDB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	auditWorker := workers.NewAuditWorker(gormDB, repositories.NewAuditRepository(), cfg.Audit)
	auditWorker.Start(ctx)

	address := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := router.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter wires repositories, services and handlers onto a gin engine.
// Split out from Run so tests can mount the full API in-process.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	strainRepo := repositories.NewStrainRepository()
	testRepo := repositories.NewTestRepository()
	resultRepo := repositories.NewResultRepository()
	auditRepo := repositories.NewAuditRepository()

	identService := services.NewIdentificationService(gormDB, testRepo, resultRepo, cfg.Identification)
	strainService := services.NewStrainService(gormDB, strainRepo, resultRepo, auditRepo)
	testService := services.NewTestService(gormDB, testRepo)
	statsService := services.NewStatsService(gormDB, strainRepo, testRepo, resultRepo)

	base := handlers.NewBaseHandler(validator.New())

	if cfg.Server.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))

	routes.RegisterRoutes(router, routes.Handlers{
		Identification: handlers.NewIdentificationHandler(base, identService, statsService),
		Strains:        handlers.NewStrainHandler(base, strainService),
		Tests:          handlers.NewTestHandler(base, testService),
		Stats:          handlers.NewStatsHandler(base, statsService),
		Health:         handlers.NewHealthHandler(gormDB),
	})

	return router
}
