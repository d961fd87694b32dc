package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-metadata-registry/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authenticator *middleware.Authenticator) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	auth := middleware.Auth(authenticator)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Metadata endpoints (public read access)
		v1.GET("/metadata", handler.ListMetadata)
		v1.GET("/metadata/:token_id", handler.GetMetadata)

		// Metadata mutations (requires authentication, the registry enforces the owner)
		v1.POST("/metadata", auth, handler.RegisterMetadata)
		v1.POST("/metadata/bulk", auth, handler.BulkRegisterMetadata)
		v1.PUT("/metadata/:token_id", auth, handler.ReviseMetadata)

		// Token URI endpoints
		v1.GET("/token-uris/:token_id", handler.GetTokenURI)
		v1.PUT("/token-uris/:token_id", auth, handler.SetTokenURI)
	}
}
