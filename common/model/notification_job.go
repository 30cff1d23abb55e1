package model

import "time"

// StatusNotificationJob 客户状态通知任务（lmstfy 消息体）
type StatusNotificationJob struct {
	RequestID     string    `json:"request_id"`
	OrderID       string    `json:"order_id"`
	UserID        string    `json:"user_id"`
	OrderStatus   string    `json:"order_status"`
	PaymentStatus string    `json:"payment_status"`
	CreatedAt     time.Time `json:"created_at"`
}
