package routes

import (
	"qrguard/internal/handlers"

	"github.com/gin-gonic/gin"
)

func InitScanRoutes(router *gin.RouterGroup, scanHandlers *handlers.ScanHandler) {
	router.POST("/scan", scanHandlers.Scan)
	router.POST("/decode", scanHandlers.Decode)
}
