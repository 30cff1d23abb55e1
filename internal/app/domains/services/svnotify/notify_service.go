package svnotify

import (
	"context"
	"fmt"

	"storefront/common/model"
	"storefront/internal/app/domains/entity/etorder"
	"storefront/internal/app/pkg/logger"
	"storefront/internal/app/pkg/metrics"
)

// 通知结果（指标标签）
const (
	ResultSent    = "sent"
	ResultSkipped = "skipped"
	ResultFailed  = "failed"
	ResultDropped = "dropped"
)

// Message 发送给客户的通知
type Message struct {
	UserID  string
	OrderID string
	Subject string
	Body    string
}

// Sender 通知发送通道（SMS 网关等外部系统）
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// LogSender 只记录日志的发送器，未接入短信网关时使用
type LogSender struct {
	logger logger.Logger
}

// NewLogSender 创建日志发送器
func NewLogSender(log logger.Logger) *LogSender {
	return &LogSender{logger: log}
}

// Send 实现 Sender
func (s *LogSender) Send(ctx context.Context, msg *Message) error {
	s.logger.InfoContext(ctx, "Customer notification",
		"user_id", msg.UserID,
		"order_id", msg.OrderID,
		"subject", msg.Subject,
		"body", msg.Body,
	)
	return nil
}

// 订单状态 -> 文案，未列出的状态不通知客户
var orderStatusTemplates = map[etorder.OrderStatus]struct{ subject, body string }{
	etorder.OrderStatusConfirmed: {"Order confirmed", "Your order %s has been confirmed."},
	etorder.OrderStatusPacked:    {"Order packed", "Your order %s has been packed and will ship soon."},
	etorder.OrderStatusShipped:   {"Order shipped", "Your order %s is on its way."},
	etorder.OrderStatusOnTheWay:  {"Order on the way", "Your order %s is out for delivery."},
	etorder.OrderStatusDelivered: {"Order delivered", "Your order %s has been delivered."},
	etorder.OrderStatusCancelled: {"Order cancelled", "Your order %s has been cancelled."},
	etorder.OrderStatusReturned:  {"Order returned", "The return for order %s has been received."},
}

// Render 根据任务生成通知文案，返回 false 表示该状态无需通知
// 退款优先于订单状态
func Render(job *model.StatusNotificationJob) (*Message, bool) {
	msg := &Message{UserID: job.UserID, OrderID: job.OrderID}

	if etorder.PaymentStatus(job.PaymentStatus) == etorder.PaymentStatusRefunded {
		msg.Subject = "Refund issued"
		msg.Body = fmt.Sprintf("The payment for order %s has been refunded.", job.OrderID)
		return msg, true
	}
	if etorder.PaymentStatus(job.PaymentStatus) == etorder.PaymentStatusFailed {
		msg.Subject = "Payment failed"
		msg.Body = fmt.Sprintf("The payment for order %s could not be completed.", job.OrderID)
		return msg, true
	}

	tpl, ok := orderStatusTemplates[etorder.OrderStatus(job.OrderStatus)]
	if !ok {
		return nil, false
	}
	msg.Subject = tpl.subject
	msg.Body = fmt.Sprintf(tpl.body, job.OrderID)
	return msg, true
}

// NotifyService 客户通知服务
type NotifyService struct {
	sender  Sender
	metrics *metrics.Metrics
	logger  logger.Logger
}

// NewNotifyService 创建通知服务实例
func NewNotifyService(sender Sender, m *metrics.Metrics, log logger.Logger) *NotifyService {
	return &NotifyService{
		sender:  sender,
		metrics: m,
		logger:  log,
	}
}

// HandleJob 处理一条通知任务
// 返回 error 表示发送失败（需要重试）
func (s *NotifyService) HandleJob(ctx context.Context, job *model.StatusNotificationJob) error {
	ctx = logger.WithRequestID(ctx, job.RequestID)

	msg, ok := Render(job)
	if !ok {
		s.metrics.ObserveNotification(ResultSkipped)
		s.logger.DebugContext(ctx, "No notification for status",
			"order_id", job.OrderID,
			"order_status", job.OrderStatus,
		)
		return nil
	}

	if err := s.sender.Send(ctx, msg); err != nil {
		s.metrics.ObserveNotification(ResultFailed)
		return fmt.Errorf("send notification failed: %w", err)
	}

	s.metrics.ObserveNotification(ResultSent)
	return nil
}

// Dropped 记录一条被丢弃的任务（消息体无法解析）
func (s *NotifyService) Dropped() {
	s.metrics.ObserveNotification(ResultDropped)
}
