package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-metadata-registry/internal/api/shared/constants"
)

// SetupCORS configures CORS middleware. Reads are public; writes still need an Authorization header.
func SetupCORS() gin.HandlerFunc {
	config := cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "If-None-Match", constants.HEADER_REQUEST_ID},
		ExposeHeaders:    []string{"Content-Length", constants.HEADER_ETAG, constants.HEADER_REQUEST_ID},
		AllowCredentials: false,
		MaxAge:           time.Hour,
	}
	return cors.New(config)
}
