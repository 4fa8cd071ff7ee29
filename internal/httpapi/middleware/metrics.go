package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wonwomen07/prompt-engineering/internal/metrics"
)

// Metrics records request counts and latency by route template.
func Metrics(m metrics.Collector) gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		m.RecordRequest(c.Request.Context(), c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
