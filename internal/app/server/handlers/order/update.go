package order

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"storefront/internal/app/domains/apimodel/request"
	"storefront/internal/app/domains/apimodel/response"
	"storefront/internal/app/pkg/ginx"
)

// UpdateStatus godoc
// @Summary      后台更新订单状态
// @Description  所有字段可选。action=cancel 取消订单，action=refund 退款；
// @Description  空请求不做任何修改并返回当前订单。
// @Tags         admin-orders
// @Accept       json
// @Produce      json
// @Param        id      path string                           true "订单ID"
// @Param        request body request.UpdateOrderStatusRequest false "状态变更"
// @Success      200 {object} ginx.Response{data=response.OrderResponse} "更新成功"
// @Failure      400 {object} ginx.Response "参数错误（data.allowed 为允许值集合）"
// @Failure      404 {object} ginx.Response "订单不存在"
// @Failure      500 {object} ginx.Response "服务器错误"
// @Router       /admin/orders/{id} [patch]
// @Router       /admin/orders/{id} [put]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID := c.Param("id")
	if orderID == "" {
		ginx.BadRequest(c, "order id required")
		return
	}

	var req request.UpdateOrderStatusRequest
	// 空 body 等同于空请求（no-op），不是参数错误
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), orderID, req.ToStatusUpdate())
	if err != nil {
		h.writeError(c, err)
		return
	}

	ginx.Success(c, response.FromOrderEntity(order))
}
