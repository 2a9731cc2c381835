package middlewares

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCors allows every origin when origins is empty.
func NewCors(origins []string) gin.HandlerFunc {
	config := cors.DefaultConfig()
	if len(origins) == 0 {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
	}
	config.AllowHeaders = []string{"*"}
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}

	return cors.New(config)
}
