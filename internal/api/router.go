package api

import (
	"github.com/gin-gonic/gin"
	"github.com/timmy/cobuy/internal/api/handler"
	"github.com/timmy/cobuy/internal/api/middleware"
	"github.com/timmy/cobuy/internal/config"
	"github.com/timmy/cobuy/internal/logger"
	"github.com/timmy/cobuy/internal/service"
)

// SetupRouter configures the Gin router with all routes
func SetupRouter(
	svc *service.RecommendationService,
	cfg *config.ServerConfig,
	log *logger.Logger,
) *gin.Engine {
	switch cfg.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware(log))
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:  cfg.CORS.AllowedOrigins,
		AllowAllOrigins: cfg.CORS.AllowAllOrigins,
	}))

	healthHandler := handler.NewHealthHandler(svc)
	recommendationHandler := handler.NewRecommendationHandler(svc)
	modelHandler := handler.NewModelHandler(svc)

	r.GET("/health", healthHandler.Health)

	v1 := r.Group("/api/v1")
	{
		// Recommendations
		v1.POST("/recommendations", recommendationHandler.Recommend)
		v1.GET("/recommendations", recommendationHandler.History)

		// Model lifecycle
		v1.GET("/train", modelHandler.Train)
		v1.POST("/upload-csv", modelHandler.UploadCSV)
		v1.GET("/products", modelHandler.Products)
		v1.GET("/stats", modelHandler.Stats)
	}

	return r
}
