package order

import (
	"github.com/gin-gonic/gin"

	"storefront/internal/app/domains/apimodel/response"
	"storefront/internal/app/pkg/ginx"
)

// Get godoc
// @Summary      获取订单详情
// @Description  返回归一化后的订单（orderStatus/paymentStatus/paymentMethod 一定有值）
// @Tags         admin-orders
// @Produce      json
// @Param        id path string true "订单ID"
// @Success      200 {object} ginx.Response{data=response.OrderResponse} "查询成功"
// @Failure      404 {object} ginx.Response "订单不存在"
// @Failure      500 {object} ginx.Response "服务器错误"
// @Router       /admin/orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	orderID := c.Param("id")
	if orderID == "" {
		ginx.BadRequest(c, "order id required")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	ginx.Success(c, response.FromOrderEntity(order))
}
