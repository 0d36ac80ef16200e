// Package middleware contains the HTTP middleware chain: request logging,
// session resolution and route guarding.
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/veriflow/kyc-server/internal/logger"
)

// Logging logs every request with method, path, status and duration.
func Logging(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		l.Info("request handled",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
