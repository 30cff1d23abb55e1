package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dialTimeout = 3 * time.Second

// PubSubClient 订单状态事件总线（Redis Pub/Sub）
// 每个订单一个频道，事件只在线投递，不做持久化
type PubSubClient struct {
	rdb *redis.Client
}

// NewPubSubClient 连接 Redis，启动时 Ping 一次确认可用
func NewPubSubClient(addr, password string, db int) (*PubSubClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: dialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s failed: %w", addr, err)
	}

	return &PubSubClient{rdb: rdb}, nil
}

// Publish 广播一条事件，没有订阅者时消息直接丢弃
func (c *PubSubClient) Publish(ctx context.Context, channel string, message string) error {
	if err := c.rdb.Publish(ctx, channel, message).Err(); err != nil {
		return fmt.Errorf("publish to %s failed: %w", channel, err)
	}
	return nil
}

// Subscribe 订阅频道并等待下一条事件
// 先确认订阅生效再开始计时，超时返回 context.DeadlineExceeded
func (c *PubSubClient) Subscribe(ctx context.Context, channel string, timeout time.Duration) (string, error) {
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	sub := c.rdb.Subscribe(waitCtx, channel)
	defer sub.Close()

	if _, err := sub.Receive(waitCtx); err != nil {
		if waitCtx.Err() != nil {
			return "", waitCtx.Err()
		}
		return "", fmt.Errorf("subscribe %s failed: %w", channel, err)
	}

	select {
	case msg, ok := <-sub.Channel():
		if !ok {
			return "", fmt.Errorf("subscription %s closed", channel)
		}
		return msg.Payload, nil
	case <-waitCtx.Done():
		return "", waitCtx.Err()
	}
}

// Close 关闭连接
func (c *PubSubClient) Close() error {
	return c.rdb.Close()
}
