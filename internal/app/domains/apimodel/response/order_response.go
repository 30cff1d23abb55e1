package response

import "time"

// OrderResponse 订单响应（DTO），状态字段一定是归一化后的值
type OrderResponse struct {
	ID              string               `json:"id"`
	UserID          string               `json:"userId"`
	Status          string               `json:"status"`
	OrderStatus     string               `json:"orderStatus"`
	PaymentStatus   string               `json:"paymentStatus"`
	PaymentMethod   string               `json:"paymentMethod"`
	TransactionID   string               `json:"transactionId,omitempty"`
	TotalAmount     float64              `json:"totalAmount"`
	Items           []*OrderItem         `json:"items"`
	ShippingAddress *Address             `json:"shippingAddress,omitempty"`
	AdminNotes      []*AdminNoteResponse `json:"adminNotes"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

// OrderItem 订单商品（DTO）
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Size      string  `json:"size,omitempty"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Address 收货地址（DTO）
type Address struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// AdminNoteResponse 后台备注（DTO）
type AdminNoteResponse struct {
	ID        string    `json:"id"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"createdAt"`
}

// OrderListResponse 订单列表响应
type OrderListResponse struct {
	Items []*OrderResponse `json:"items"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

// StatusEventResponse Smart Wait 返回的状态变更事件
type StatusEventResponse struct {
	OrderID       string    `json:"orderId"`
	Status        string    `json:"status"`
	OrderStatus   string    `json:"orderStatus"`
	PaymentStatus string    `json:"paymentStatus"`
	PaymentMethod string    `json:"paymentMethod"`
	TransactionID string    `json:"transactionId,omitempty"`
	Action        string    `json:"action,omitempty"`
	Note          string    `json:"note,omitempty"`
	ChangedAt     time.Time `json:"changedAt"`
}
