package svorder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/common/model"
	"storefront/internal/app/domains/entity/etorder"
	"storefront/internal/app/domains/modules/mdnotify"
	"storefront/internal/app/domains/modules/mdorder"
	"storefront/internal/app/domains/repo/rporder"
	"storefront/internal/app/pkg/errorx"
	"storefront/internal/app/pkg/idgen"
	"storefront/internal/app/pkg/logger"
	"storefront/internal/app/pkg/metrics"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	maxWait         = 30 * time.Second
)

// OrderService 订单服务，负责后台订单状态变更的业务编排
type OrderService struct {
	orderModule  *mdorder.OrderModule
	notifyModule *mdnotify.NotifyModule
	idGen        idgen.Generator
	metrics      *metrics.Metrics
	logger       logger.Logger
	now          func() time.Time
}

// NewOrderService 创建订单服务实例
func NewOrderService(
	orderModule *mdorder.OrderModule,
	notifyModule *mdnotify.NotifyModule,
	idGen idgen.Generator,
	m *metrics.Metrics,
	log logger.Logger,
) *OrderService {
	return &OrderService{
		orderModule:  orderModule,
		notifyModule: notifyModule,
		idGen:        idGen,
		metrics:      m,
		logger:       log,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// UpdateStatus 后台更新订单状态（完整业务流程）
// 1. 计算补丁，校验失败直接返回，不触碰存储
// 2. 空补丁按 no-op 处理，返回当前订单
// 3. 加载订单，单事务写入字段与备注，再在内存中应用同一个补丁作为返回值
// 4. 广播状态事件，状态有变化时投递客户通知（失败只记日志）
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, update etorder.StatusUpdate) (*etorder.Order, error) {
	action := actionLabel(update.Action)
	now := s.now()

	patch, err := etorder.Reconcile(update, now)
	if errors.Is(err, etorder.ErrEmptyUpdate) {
		s.metrics.ObserveStatusUpdate(action, metrics.ResultNoop)
		order, err := s.orderModule.GetOrder(ctx, orderID)
		if err != nil {
			return nil, fmt.Errorf("get order failed: %w", err)
		}
		return order.Normalize(), nil
	}
	if err != nil {
		s.metrics.ObserveStatusUpdate(action, metrics.ResultRejected)
		s.logger.WarnContext(ctx, "Rejected order status update", "order_id", orderID, "error", err)
		return nil, err
	}

	order, err := s.orderModule.GetOrder(ctx, orderID)
	if err != nil {
		s.observeFailure(action, err)
		return nil, fmt.Errorf("get order failed: %w", err)
	}

	if patch.Note != nil {
		patch.Note.ID = s.idGen.NextID()
	}

	if err := s.orderModule.ApplyStatusPatch(ctx, orderID, patch, now); err != nil {
		s.observeFailure(action, err)
		return nil, fmt.Errorf("apply status patch failed: %w", err)
	}
	s.metrics.ObserveStatusUpdate(action, metrics.ResultApplied)
	order.ApplyPatch(patch, now)

	s.logger.InfoContext(ctx, "Order status updated",
		"order_id", orderID,
		"action", action,
		"order_status", string(order.OrderStatus),
		"payment_status", string(order.PaymentStatus),
	)

	s.publishChange(ctx, order, patch, action)

	return order.Normalize(), nil
}

func (s *OrderService) observeFailure(action string, err error) {
	if errors.Is(err, errorx.ErrOrderNotFound) {
		s.metrics.ObserveStatusUpdate(action, metrics.ResultNotFound)
		return
	}
	s.metrics.ObserveStatusUpdate(action, metrics.ResultError)
}

// publishChange 通知失败不影响主流程（DB 已更新成功）
func (s *OrderService) publishChange(ctx context.Context, order *etorder.Order, patch *etorder.StatusPatch, action string) {
	note := ""
	if patch.Note != nil {
		note = patch.Note.Note
	}

	if err := s.notifyModule.PublishStatusEvent(ctx, order, action, note); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish status event", "order_id", order.ID, "error", err)
	}

	if !patch.StatusChanged() {
		return
	}
	jobID, err := s.notifyModule.EnqueueCustomerNotification(ctx, order)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to enqueue customer notification", "order_id", order.ID, "error", err)
		return
	}
	s.logger.DebugContext(ctx, "Customer notification enqueued", "order_id", order.ID, "job_id", jobID)
}

// GetOrder 查询订单（归一化表示）
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*etorder.Order, error) {
	order, err := s.orderModule.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return order.Normalize(), nil
}

// ListOrders 查询订单列表（归一化表示）
func (s *OrderService) ListOrders(ctx context.Context, filter rporder.ListFilter, page, limit int) ([]*etorder.Order, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	orders, total, err := s.orderModule.ListOrders(ctx, filter, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders failed: %w", err)
	}

	normalized := make([]*etorder.Order, 0, len(orders))
	for _, o := range orders {
		normalized = append(normalized, o.Normalize())
	}
	return normalized, total, nil
}

// WaitForStatusChange 等待订单下一次状态变更（Smart Wait）
// 超时返回 context.DeadlineExceeded，调用方据此提示客户端继续轮询
func (s *OrderService) WaitForStatusChange(ctx context.Context, orderID string, timeout time.Duration) (*model.OrderStatusEvent, error) {
	if _, err := s.orderModule.GetOrder(ctx, orderID); err != nil {
		return nil, err
	}
	if timeout <= 0 || timeout > maxWait {
		timeout = maxWait
	}
	return s.notifyModule.WaitForStatusEvent(ctx, orderID, timeout)
}

// actionLabel 指标标签，非法值统一记为 invalid 避免标签基数膨胀
func actionLabel(raw string) string {
	a, err := etorder.ParseAction(raw)
	if err != nil {
		return "invalid"
	}
	return string(a)
}
