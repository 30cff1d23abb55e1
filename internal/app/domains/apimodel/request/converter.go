package request

import (
	"storefront/internal/app/domains/entity/etorder"
	"storefront/internal/app/domains/repo/rporder"
)

// ToStatusUpdate 将 Request DTO 转换为领域请求
func (r *UpdateOrderStatusRequest) ToStatusUpdate() etorder.StatusUpdate {
	if r == nil {
		return etorder.StatusUpdate{}
	}
	return etorder.StatusUpdate{
		LegacyStatus:  r.Status,
		OrderStatus:   r.OrderStatus,
		PaymentStatus: r.PaymentStatus,
		PaymentMethod: r.PaymentMethod,
		TransactionID: r.TransactionID,
		Action:        r.Action,
		AdminNote:     r.AdminNote,
	}
}

// ToListFilter 将查询参数转换为仓储过滤条件，状态值非法时返回校验错误
func (r *ListOrdersRequest) ToListFilter() (rporder.ListFilter, error) {
	filter := rporder.ListFilter{UserID: r.UserID}

	if r.OrderStatus != "" {
		s, err := etorder.ParseOrderStatus(r.OrderStatus)
		if err != nil {
			return filter, err
		}
		filter.OrderStatus = s
	}
	if r.PaymentStatus != "" {
		s, err := etorder.ParsePaymentStatus(r.PaymentStatus)
		if err != nil {
			return filter, err
		}
		filter.PaymentStatus = s
	}
	return filter, nil
}
