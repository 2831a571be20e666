package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"taskboard/internal/pkg/metrics"
)

// unmatchedRoute 未命中路由统一使用的标签
const unmatchedRoute = "unmatched"

// PrometheusMiddleware 记录请求数, 耗时与在途请求
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = unmatchedRoute
		}
		metrics.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			path,
		).Observe(time.Since(start).Seconds())
	}
}
