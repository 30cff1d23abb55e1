package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/atomic"

	"storefront/common/model"
	"storefront/internal/app/infra/mq/lmstfy"
	"storefront/internal/app/pkg/logger"
)

// JobSource 通知任务来源（lmstfy）
type JobSource interface {
	Consume(queue string, timeout, ttr time.Duration) (*lmstfy.Job, error)
	Ack(queue, jobID string) error
}

// JobHandler 通知任务处理器
type JobHandler interface {
	HandleJob(ctx context.Context, job *model.StatusNotificationJob) error
	Dropped()
}

// Config 消费者配置
type Config struct {
	QueueName    string        // 队列名称
	Timeout      time.Duration // 拉取消息超时
	TTR          time.Duration // Time-To-Run
	PollInterval time.Duration // 出错后的等待间隔
}

// NotifyConsumer 客户通知消费者
// 职责：
// 1. 从 lmstfy 队列消费通知任务
// 2. 解析任务并交给通知服务发送
// 3. 确认消息（ACK），发送失败不 ACK，由 TTR 机制重投
type NotifyConsumer struct {
	source    JobSource
	handler   JobHandler
	cfg       Config
	logger    logger.Logger
	closing   *atomic.Bool
	processed *atomic.Int64
}

// NewNotifyConsumer 创建通知消费者实例
func NewNotifyConsumer(source JobSource, handler JobHandler, cfg Config, log logger.Logger) *NotifyConsumer {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 100 * time.Millisecond
	}
	return &NotifyConsumer{
		source:    source,
		handler:   handler,
		cfg:       cfg,
		logger:    log,
		closing:   atomic.NewBool(false),
		processed: atomic.NewInt64(0),
	}
}

// Start 启动消费循环，ctx 取消或调用 Shutdown 后返回
func (c *NotifyConsumer) Start(ctx context.Context) error {
	c.logger.Info("Notify consumer started",
		"queue", c.cfg.QueueName,
		"timeout", c.cfg.Timeout.String(),
		"ttr", c.cfg.TTR.String(),
	)

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("Notify consumer stopped", "processed", c.processed.Load())
			return ctx.Err()
		default:
		}
		if c.closing.Load() {
			c.logger.Info("Notify consumer stopped", "processed", c.processed.Load())
			return nil
		}

		if err := c.consumeOne(ctx); err != nil {
			c.logger.Error("Failed to consume message", "error", err)
			select {
			case <-ctx.Done():
			case <-time.After(c.cfg.PollInterval):
			}
		}
	}
}

// Shutdown 停止拉取新消息，当前消息处理完后 Start 返回
func (c *NotifyConsumer) Shutdown() {
	if c.closing.CAS(false, true) {
		c.logger.Info("Notify consumer closing")
	}
}

// Processed 已成功确认的消息数
func (c *NotifyConsumer) Processed() int64 {
	return c.processed.Load()
}

// consumeOne 消费一条消息
func (c *NotifyConsumer) consumeOne(ctx context.Context) error {
	msg, err := c.source.Consume(c.cfg.QueueName, c.cfg.Timeout, c.cfg.TTR)
	if err != nil {
		return fmt.Errorf("consume message failed: %w", err)
	}
	if msg == nil {
		return nil
	}

	job, err := parseMessage(msg.Data)
	if err != nil {
		c.logger.Error("Failed to parse message", "job_id", msg.ID, "error", err)
		c.handler.Dropped()
		// 解析失败，直接 ACK（避免死循环）
		if ackErr := c.source.Ack(c.cfg.QueueName, msg.ID); ackErr != nil {
			return fmt.Errorf("ack malformed message failed: %w", ackErr)
		}
		return nil
	}

	if err := c.handler.HandleJob(ctx, job); err != nil {
		c.logger.Error("Failed to handle notification",
			"job_id", msg.ID,
			"order_id", job.OrderID,
			"error", err,
		)
		return err
	}

	if err := c.source.Ack(c.cfg.QueueName, msg.ID); err != nil {
		return fmt.Errorf("ack message failed: %w", err)
	}
	c.processed.Inc()

	c.logger.Debug("Notification processed",
		"job_id", msg.ID,
		"order_id", job.OrderID,
	)
	return nil
}

func parseMessage(data []byte) (*model.StatusNotificationJob, error) {
	var job model.StatusNotificationJob
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("unmarshal notification job failed: %w", err)
	}
	if job.OrderID == "" {
		return nil, errors.New("order_id is required")
	}
	if job.OrderStatus == "" && job.PaymentStatus == "" {
		return nil, errors.New("order_status or payment_status is required")
	}
	return &job, nil
}
