package etorder

import "time"

// Order 订单聚合根（领域对象）
type Order struct {
	ID              string
	UserID          string
	Status          string        // 旧版单字段状态，与 OrderStatus 保持镜像
	OrderStatus     OrderStatus   // 履约状态，老订单可能为空
	PaymentStatus   PaymentStatus // 支付状态，老订单可能为空
	PaymentMethod   PaymentMethod // 支付方式，老订单可能为空
	TransactionID   string        // 支付网关流水号
	TotalAmount     float64
	Items           []*Item
	ShippingAddress *Address
	AdminNotes      []AdminNote // 只追加，不修改不删除
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Item 订单商品（值对象）
type Item struct {
	ProductID string
	Name      string
	Size      string
	Quantity  int
	Price     float64
}

// Address 收货地址（值对象）
type Address struct {
	Name       string
	Phone      string
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
}

// AdminNote 后台备注
type AdminNote struct {
	ID        int64
	Note      string
	CreatedAt time.Time
}

// Normalize 返回归一化后的副本：orderStatus/paymentStatus/paymentMethod 一定有值，
// 缺失时按旧 status 推导，与 Reconcile 使用同一张映射表
func (o *Order) Normalize() *Order {
	n := *o
	n.AdminNotes = append([]AdminNote(nil), o.AdminNotes...)

	if n.OrderStatus == "" {
		n.OrderStatus = OrderStatusFromLegacy(o.Status)
	}
	if n.PaymentStatus == "" {
		n.PaymentStatus = PaymentStatusFromLegacy(o.Status)
	}
	if n.PaymentMethod == "" {
		n.PaymentMethod = DefaultPaymentMethod
	}
	return &n
}

// ApplyPatch 在内存中应用补丁（领域行为），持久化由仓储负责
func (o *Order) ApplyPatch(patch *StatusPatch, now time.Time) {
	if patch == nil || patch.IsEmpty() {
		return
	}
	if patch.Status != nil {
		o.Status = *patch.Status
	}
	if patch.OrderStatus != nil {
		o.OrderStatus = *patch.OrderStatus
	}
	if patch.PaymentStatus != nil {
		o.PaymentStatus = *patch.PaymentStatus
	}
	if patch.PaymentMethod != nil {
		o.PaymentMethod = *patch.PaymentMethod
	}
	if patch.TransactionID != nil {
		o.TransactionID = *patch.TransactionID
	}
	if patch.Note != nil {
		o.AdminNotes = append(o.AdminNotes, *patch.Note)
	}
	o.UpdatedAt = now
}
