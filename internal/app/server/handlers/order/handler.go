package order

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"storefront/common/model"
	"storefront/internal/app/domains/entity/etorder"
	"storefront/internal/app/domains/repo/rporder"
	"storefront/internal/app/pkg/errorx"
	"storefront/internal/app/pkg/ginx"
	"storefront/internal/app/pkg/logger"
)

// OrderService handler 依赖的订单服务（svorder.OrderService 实现）
type OrderService interface {
	GetOrder(ctx context.Context, orderID string) (*etorder.Order, error)
	ListOrders(ctx context.Context, filter rporder.ListFilter, page, limit int) ([]*etorder.Order, int64, error)
	UpdateStatus(ctx context.Context, orderID string, update etorder.StatusUpdate) (*etorder.Order, error)
	WaitForStatusChange(ctx context.Context, orderID string, timeout time.Duration) (*model.OrderStatusEvent, error)
}

// OrderHandler 后台订单 HTTP 处理器
type OrderHandler struct {
	orderService OrderService
	logger       logger.Logger
}

// NewOrderHandler 创建订单处理器实例
func NewOrderHandler(orderService OrderService, log logger.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       log,
	}
}

// writeError 领域错误 -> HTTP 响应
// 校验失败 400（附带允许值集合），订单不存在 404，其余 500
func (h *OrderHandler) writeError(c *gin.Context, err error) {
	if ve, ok := etorder.AsValidationError(err); ok {
		bizErr := errorx.InvalidParam(ve.Err.Error(), ve).WithDetail(ve.Field, ve.Error())
		ginx.BusinessError(c, bizErr, gin.H{"allowed": ve.Allowed})
		return
	}
	if errors.Is(err, errorx.ErrOrderNotFound) {
		ginx.NotFound(c, "order not found")
		return
	}

	h.logger.ErrorContext(c.Request.Context(), "Order request failed",
		"path", c.FullPath(),
		"order_id", c.Param("id"),
		"error", err,
	)
	ginx.InternalError(c, "internal server error")
}
