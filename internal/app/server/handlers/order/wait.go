package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"storefront/internal/app/domains/apimodel/request"
	"storefront/internal/app/domains/apimodel/response"
	"storefront/internal/app/pkg/ginx"
)

const defaultWaitSeconds = 10

// WaitStatus godoc
// @Summary      等待订单状态变更（Smart Wait）
// @Description  阻塞直到订单下一次状态变更或超时；超时返回 code=3001 和轮询地址
// @Tags         admin-orders
// @Produce      json
// @Param        id      path  string true  "订单ID"
// @Param        timeout query int    false "最长等待秒数（1-30）" default(10)
// @Success      200 {object} ginx.Response{data=response.StatusEventResponse} "状态已变更"
// @Success      200 {object} ginx.Response{data=ginx.WaitingData} "code=3001 超时，继续轮询"
// @Failure      404 {object} ginx.Response "订单不存在"
// @Router       /admin/orders/{id}/wait [get]
func (h *OrderHandler) WaitStatus(c *gin.Context) {
	orderID := c.Param("id")

	var req request.WaitStatusRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}
	timeout := time.Duration(req.Timeout) * time.Second
	if timeout == 0 {
		timeout = defaultWaitSeconds * time.Second
	}

	event, err := h.orderService.WaitForStatusChange(c.Request.Context(), orderID, timeout)
	if errors.Is(err, context.DeadlineExceeded) {
		ginx.Waiting(c, orderID, fmt.Sprintf("/api/v1/admin/orders/%s", orderID))
		return
	}
	if errors.Is(err, context.Canceled) {
		// 客户端已断开
		return
	}
	if err != nil {
		h.writeError(c, err)
		return
	}

	ginx.Success(c, response.FromStatusEvent(event))
}
