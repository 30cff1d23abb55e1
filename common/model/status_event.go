package model

import "time"

// OrderStatusEvent 订单状态变更事件，通过 Redis 频道 {status_channel}:{order_id} 广播
type OrderStatusEvent struct {
	OrderID       string    `json:"order_id"`
	UserID        string    `json:"user_id"`
	Status        string    `json:"status"`
	OrderStatus   string    `json:"order_status"`
	PaymentStatus string    `json:"payment_status"`
	PaymentMethod string    `json:"payment_method"`
	TransactionID string    `json:"transaction_id,omitempty"`
	Action        string    `json:"action,omitempty"`
	Note          string    `json:"note,omitempty"`
	ChangedAt     time.Time `json:"changed_at"`
}
