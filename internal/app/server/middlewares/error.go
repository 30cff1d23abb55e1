package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/app/pkg/ginx"
	"storefront/internal/app/pkg/logger"
)

// ErrorHandler 统一错误处理中间件
// 捕获 panic 以及 handler 通过 c.Error 记录但未写响应的错误，统一输出 ginx 结构
func ErrorHandler(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.ErrorContext(c.Request.Context(), "Panic recovered",
					"panic", r,
					"path", c.Request.URL.Path,
				)
				c.Abort()
				ginx.InternalError(c, "internal server error")
			}
		}()

		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			err := c.Errors.Last()
			log.ErrorContext(c.Request.Context(), "Unhandled request error", "error", err.Err)
			ginx.Error(c, http.StatusInternalServerError, "internal server error")
		}
	}
}
