package lmstfy

import (
	"fmt"
	"time"

	"github.com/bitleak/lmstfy/client"
)

// Job 队列消息
type Job struct {
	ID    string
	Queue string
	Data  []byte
}

// Client Lmstfy 客户端封装
type Client struct {
	cli       *client.LmstfyClient
	namespace string
}

// NewClient 创建 Lmstfy 客户端
func NewClient(host string, port int, namespace, token string) *Client {
	return &Client{
		cli:       client.NewLmstfyClient(host, port, namespace, token),
		namespace: namespace,
	}
}

// Publish 发布消息，返回 job id
// ttl: 消息存活时间（秒），tries: 最大投递次数，delay: 延迟投递（秒）
func (c *Client) Publish(queue string, data []byte, ttl uint32, tries uint16, delay uint32) (string, error) {
	jobID, err := c.cli.Publish(queue, data, ttl, tries, delay)
	if err != nil {
		return "", fmt.Errorf("lmstfy publish failed: %w", err)
	}
	return jobID, nil
}

// Consume 拉取一条消息，超时未拉到时返回 nil, nil
func (c *Client) Consume(queue string, timeout, ttr time.Duration) (*Job, error) {
	job, err := c.cli.Consume(queue, uint32(ttr.Seconds()), uint32(timeout.Seconds()))
	if err != nil {
		return nil, fmt.Errorf("lmstfy consume failed: %w", err)
	}
	if job == nil {
		return nil, nil
	}

	return &Job{
		ID:    job.ID,
		Queue: job.Queue,
		Data:  job.Data,
	}, nil
}

// Ack 确认消息已处理
func (c *Client) Ack(queue, jobID string) error {
	if err := c.cli.Ack(queue, jobID); err != nil {
		return fmt.Errorf("lmstfy ack failed: %w", err)
	}
	return nil
}
