package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/grandshipper/grandshipper-api/pkg/logger"
)

// RequestLogging logs one line per request at debug level; 5xx responses are
// logged at warn.
func RequestLogging(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		status := c.Writer.Status()
		kv := []interface{}{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration", time.Since(start),
			"ip", c.ClientIP(),
		}
		if status >= 500 {
			log.Warnw("request", kv...)
			return
		}
		log.Debugw("request", kv...)
	}
}
