package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows every origin when origins is empty or contains "*", and only the
// listed origins otherwise.
func CORS(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Authorization", "Content-Type", "X-Request-ID", "X-Webhook-Secret"},
		ExposeHeaders: []string{"X-Request-ID", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	all := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			all = true
		}
	}
	if all {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}
