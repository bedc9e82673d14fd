package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/locality-resolver/app/controllers"
)

// SetupWebRoutes registers the informational pages.
func SetupWebRoutes(router *gin.Engine) {
	web := router.Group("/")
	{
		web.GET("/", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"message": "Locality Resolver Service",
				"version": controllers.Version,
				"docs":    "/docs",
			})
		})

		web.GET("/docs", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"api": "Locality Resolver API v1",
				"endpoints": map[string]string{
					"resolve":       "POST /v1/locality/resolve",
					"resolve_batch": "POST /v1/locality/resolve/batch",
					"policy":        "GET /v1/locality/policy",
					"health":        "GET /v1/health",
					"metrics":       "GET /metrics",
				},
			})
		})
	}
}
