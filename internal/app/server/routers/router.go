package routers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"storefront/internal/app/pkg/logger"
	"storefront/internal/app/pkg/metrics"
	"storefront/internal/app/server/handlers/order"
	"storefront/internal/app/server/middlewares"
)

// SetupRoutes 配置所有路由，使用 Route Group 分类
func SetupRoutes(
	orderHandler *order.OrderHandler,
	log logger.Logger,
	m *metrics.Metrics,
	gatherer prometheus.Gatherer,
) *gin.Engine {
	r := gin.New()

	// Logger 在最外层，panic 恢复后的 500 也有 request_id 和访问日志
	r.Use(middlewares.Logger(log))
	r.Use(middlewares.Metrics(m))
	r.Use(middlewares.ErrorHandler(log))
	r.Use(middlewares.CORS())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "storefront",
			"message": "Service is running",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	v1 := r.Group("/api/v1")
	{
		admin := v1.Group("/admin")
		{
			orders := admin.Group("/orders")
			{
				orders.GET("", orderHandler.List)
				orders.GET("/:id", orderHandler.Get)
				orders.PATCH("/:id", orderHandler.UpdateStatus)
				orders.PUT("/:id", orderHandler.UpdateStatus)
				orders.GET("/:id/wait", orderHandler.WaitStatus)
			}
		}
	}

	return r
}
