package mdnotify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"storefront/common/model"
	"storefront/internal/app/domains/entity/etorder"
)

// EventBus 状态事件广播（Redis Pub/Sub）
type EventBus interface {
	Publish(ctx context.Context, channel string, message string) error
	Subscribe(ctx context.Context, channel string, timeout time.Duration) (string, error)
}

// JobQueue 通知任务队列（lmstfy）
type JobQueue interface {
	Publish(queue string, data []byte, ttl uint32, tries uint16, delay uint32) (string, error)
}

// Config 通知模块配置
type Config struct {
	StatusChannel string // 频道前缀，完整频道为 {StatusChannel}:{orderID}
	Queue         string
	TTL           uint32
	Tries         uint16
}

// NotifyModule 通知模块
// 职责：
// 1. 订单状态变更后向 Redis 频道广播事件
// 2. 构造客户通知任务并投递到 lmstfy
// 3. 等待某个订单的下一次状态变更
type NotifyModule struct {
	bus   EventBus
	queue JobQueue
	cfg   Config
}

// NewNotifyModule 创建通知模块实例
func NewNotifyModule(bus EventBus, queue JobQueue, cfg Config) *NotifyModule {
	return &NotifyModule{
		bus:   bus,
		queue: queue,
		cfg:   cfg,
	}
}

// StatusChannel 频道命名规则：{prefix}:{orderID}
func (m *NotifyModule) StatusChannel(orderID string) string {
	return fmt.Sprintf("%s:%s", m.cfg.StatusChannel, orderID)
}

// PublishStatusEvent 广播订单最新状态
func (m *NotifyModule) PublishStatusEvent(ctx context.Context, order *etorder.Order, action string, note string) error {
	n := order.Normalize()
	event := model.OrderStatusEvent{
		OrderID:       n.ID,
		UserID:        n.UserID,
		Status:        n.Status,
		OrderStatus:   string(n.OrderStatus),
		PaymentStatus: string(n.PaymentStatus),
		PaymentMethod: string(n.PaymentMethod),
		TransactionID: n.TransactionID,
		Action:        action,
		Note:          note,
		ChangedAt:     n.UpdatedAt,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal status event failed: %w", err)
	}
	return m.bus.Publish(ctx, m.StatusChannel(order.ID), string(payload))
}

// WaitForStatusEvent 阻塞等待订单的下一次状态变更，超时返回 context.DeadlineExceeded
func (m *NotifyModule) WaitForStatusEvent(ctx context.Context, orderID string, timeout time.Duration) (*model.OrderStatusEvent, error) {
	payload, err := m.bus.Subscribe(ctx, m.StatusChannel(orderID), timeout)
	if err != nil {
		return nil, err
	}

	var event model.OrderStatusEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return nil, fmt.Errorf("unmarshal status event failed: %w", err)
	}
	return &event, nil
}

// EnqueueCustomerNotification 投递客户通知任务，返回 lmstfy job id
func (m *NotifyModule) EnqueueCustomerNotification(ctx context.Context, order *etorder.Order) (string, error) {
	n := order.Normalize()
	job := model.StatusNotificationJob{
		RequestID:     uuid.New().String(),
		OrderID:       n.ID,
		UserID:        n.UserID,
		OrderStatus:   string(n.OrderStatus),
		PaymentStatus: string(n.PaymentStatus),
		CreatedAt:     n.UpdatedAt,
	}

	data, err := json.Marshal(job)
	if err != nil {
		return "", fmt.Errorf("marshal notification job failed: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}
	return m.queue.Publish(m.cfg.Queue, data, m.cfg.TTL, m.cfg.Tries, 0)
}
