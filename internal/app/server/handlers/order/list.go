package order

import (
	"github.com/gin-gonic/gin"

	"storefront/internal/app/domains/apimodel/request"
	"storefront/internal/app/domains/apimodel/response"
	"storefront/internal/app/pkg/ginx"
)

const (
	defaultPage  = 1
	defaultLimit = 20
)

// List godoc
// @Summary      后台订单列表
// @Tags         admin-orders
// @Produce      json
// @Param        orderStatus   query string false "订单状态"
// @Param        paymentStatus query string false "支付状态"
// @Param        userId        query string false "用户ID"
// @Param        page          query int    false "页码" default(1)
// @Param        limit         query int    false "每页数量" default(20)
// @Success      200 {object} ginx.Response{data=response.OrderListResponse} "查询成功"
// @Failure      400 {object} ginx.Response "参数错误"
// @Router       /admin/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var req request.ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	filter, err := req.ToListFilter()
	if err != nil {
		h.writeError(c, err)
		return
	}

	page, limit := req.Page, req.Limit
	if page == 0 {
		page = defaultPage
	}
	if limit == 0 {
		limit = defaultLimit
	}

	orders, total, err := h.orderService.ListOrders(c.Request.Context(), filter, page, limit)
	if err != nil {
		h.writeError(c, err)
		return
	}

	ginx.Success(c, response.FromOrderList(orders, total, page, limit))
}
