package rporder

import (
	"context"
	"time"

	"storefront/internal/app/domains/entity/etorder"
)

// ListFilter 后台订单列表过滤条件，空值表示不过滤
type ListFilter struct {
	OrderStatus   etorder.OrderStatus
	PaymentStatus etorder.PaymentStatus
	UserID        string
}

// OrderRepository 订单仓储接口（只定义，不实现）
type OrderRepository interface {
	// GetByID 根据ID查询订单（含后台备注），不存在时返回 errorx.ErrOrderNotFound
	GetByID(ctx context.Context, orderID string) (*etorder.Order, error)

	// List 分页查询订单列表，按创建时间倒序
	List(ctx context.Context, filter ListFilter, page, limit int) ([]*etorder.Order, int64, error)

	// ApplyStatusPatch 在一个事务内 set 补丁字段、updated_at 并追加备注
	// 订单不存在时返回 errorx.ErrOrderNotFound
	ApplyStatusPatch(ctx context.Context, orderID string, patch *etorder.StatusPatch, updatedAt time.Time) error
}
