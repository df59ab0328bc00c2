package routes

import (
	"qrguard/internal/config"
	"qrguard/internal/handlers"
	"qrguard/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// InitRouter wires the HTTP API. CORS is open to the configured frontend
// origins so the scanner client can call the API from the browser.
func InitRouter(cfg *config.Config, scanService services.ScanServiceMethods) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowOrigins
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	scanHandlers := handlers.NewScanHandler(scanService)

	router.GET("/health", scanHandlers.Health)

	api := router.Group("/api")
	{
		InitScanRoutes(api, scanHandlers)
	}

	return router
}
