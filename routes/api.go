package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/locality-resolver/app/controllers"
)

// SetupAPIRoutes registers the /v1 API.
func SetupAPIRoutes(router *gin.Engine, localityController *controllers.LocalityController) {
	v1 := router.Group("/v1")
	{
		loc := v1.Group("/locality")
		{
			loc.POST("/resolve", localityController.ResolveAddress)
			loc.POST("/resolve/batch", localityController.BatchResolve)
			loc.GET("/policy", localityController.GetPolicy)
		}

		v1.GET("/health", localityController.HealthCheck)
	}
}

// SetupHealthRoutes registers the probe endpoints.
func SetupHealthRoutes(router *gin.Engine, localityController *controllers.LocalityController) {
	router.GET("/health", localityController.HealthCheck)
	router.GET("/ready", localityController.ReadinessCheck)
	router.GET("/live", localityController.HealthCheck)
}

// SetupMetricsRoutes exposes Prometheus metrics.
func SetupMetricsRoutes(router *gin.Engine) {
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// SetupAllRoutes wires middleware and every route group.
func SetupAllRoutes(router *gin.Engine, localityController *controllers.LocalityController) {
	setupMiddleware(router)

	SetupWebRoutes(router)
	SetupHealthRoutes(router, localityController)
	SetupAPIRoutes(router, localityController)
	SetupMetricsRoutes(router)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":  "Route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})
}
