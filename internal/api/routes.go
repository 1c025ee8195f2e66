package api

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up the API endpoints and groups them logically.
func RegisterRoutes(router *gin.Engine, h *APIHandler) {
	// --- Image-to-Code Pipeline ---
	apiGroup := router.Group("/api")
	{
		apiGroup.POST("/vision", h.AnalyzeScreenshot)   // Screenshot -> UI description
		apiGroup.POST("/generate-code", h.GenerateCode) // UI description -> code in every format
		apiGroup.POST("/preview", h.RenderPreview)      // Code bundle -> single sandboxed HTML page
		apiGroup.POST("/export", h.ExportBundle)        // Code bundle -> zip download
	}

	// --- Simple Health Check ---
	router.GET("/health", h.Health)
}
