package middlewares

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"storefront/internal/app/pkg/metrics"
)

// Metrics 记录 HTTP 请求指标，route 标签使用路由模板避免基数膨胀
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
