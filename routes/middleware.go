package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/locality-resolver/helpers/utils"
)

func setupMiddleware(router *gin.Engine) {
	router.Use(RequestID())
}

// RequestID echoes a valid incoming X-Request-ID or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(utils.RequestIDHeader)
		if !utils.ValidRequestID(id) {
			id = utils.GenerateUUID()
		}
		c.Writer.Header().Set(utils.RequestIDHeader, id)
		c.Next()
	}
}

// ZapLogger logs one line per request through logger.
func ZapLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", c.Writer.Header().Get(utils.RequestIDHeader)))
	}
}
