package api

import (
	"github.com/afandian/folktunefinder-go/internal/api/handlers"
	"github.com/afandian/folktunefinder-go/internal/api/middleware"
	"github.com/afandian/folktunefinder-go/internal/config"
	"github.com/afandian/folktunefinder-go/internal/llm"
	"github.com/afandian/folktunefinder-go/internal/metrics"
	"github.com/afandian/folktunefinder-go/internal/search"
	"github.com/afandian/folktunefinder-go/internal/storage"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Dependencies bundles everything the router needs to wire handlers:
// the database, the on-disk tune cache, the in-memory search index,
// an optional LLM description provider, and the metrics sinks.
type Dependencies struct {
	DB         *gorm.DB
	Cache      *storage.TuneCache
	Index      *search.Index
	LLM        llm.Provider
	CloudWatch *metrics.Client
	Render     *handlers.RenderStats
}

func SetupRouter(cfg *config.Config, version string, deps Dependencies) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(middleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(middleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(middleware.RequestTracking())

	// CORS middleware
	router.Use(middleware.CORS())

	healthHandler := handlers.NewHealthHandler(deps.DB, deps.Cache)
	router.GET("/health", healthHandler.HealthCheck)

	metricsHandler := handlers.NewMetricsHandler(version, deps.Cache, deps.Render)
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	tunesHandler := handlers.NewTunesHandler(deps.DB, deps.Cache, deps.LLM, deps.Render, deps.CloudWatch)
	searchHandler := handlers.NewSearchHandler(deps.Index)
	adminHandler := handlers.NewAdminHandler(deps.Cache, deps.Index, cfg.CorpusDir, deps.CloudWatch)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/tunes/:id", tunesHandler.GetTune)
		v1.GET("/tunes/:id/svg", tunesHandler.GetSVG)
		v1.GET("/tunes/:id/errors", tunesHandler.GetErrors)
		v1.GET("/tunes/:id/describe", tunesHandler.Describe)

		v1.GET("/search", searchHandler.Search)

		admin := v1.Group("/admin")
		admin.Use(middleware.AdminAuth(deps.DB, cfg))
		{
			admin.POST("/reindex", adminHandler.Reindex)
		}
	}

	return router
}
