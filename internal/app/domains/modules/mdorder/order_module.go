package mdorder

import (
	"context"
	"time"

	"storefront/internal/app/domains/entity/etorder"
	"storefront/internal/app/domains/repo/rporder"
)

// OrderModule 订单模块（数据操作）
type OrderModule struct {
	orderRepo rporder.OrderRepository
}

// NewOrderModule 创建订单模块
func NewOrderModule(orderRepo rporder.OrderRepository) *OrderModule {
	return &OrderModule{
		orderRepo: orderRepo,
	}
}

// GetOrder 查询订单
func (m *OrderModule) GetOrder(ctx context.Context, orderID string) (*etorder.Order, error) {
	return m.orderRepo.GetByID(ctx, orderID)
}

// ListOrders 查询订单列表
func (m *OrderModule) ListOrders(ctx context.Context, filter rporder.ListFilter, page, limit int) ([]*etorder.Order, int64, error) {
	return m.orderRepo.List(ctx, filter, page, limit)
}

// ApplyStatusPatch 持久化状态补丁
func (m *OrderModule) ApplyStatusPatch(ctx context.Context, orderID string, patch *etorder.StatusPatch, updatedAt time.Time) error {
	return m.orderRepo.ApplyStatusPatch(ctx, orderID, patch, updatedAt)
}
