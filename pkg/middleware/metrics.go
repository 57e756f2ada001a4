package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/grandshipper/grandshipper-api/pkg/metrics"
)

// Metrics counts requests by method, matched route and final status.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
