package entity

import (
	"time"

	"gorm.io/datatypes"
)

// Order 订单表
// order_status / payment_status / payment_method 为后加字段，老数据为空串，读取时按 status 归一化
type Order struct {
	// 基础字段
	ID     string `gorm:"column:id;primaryKey;type:varchar(64)"`
	UserID string `gorm:"column:user_id;type:varchar(64);not null;index:idx_user_created"`

	// 旧版单字段状态
	Status string `gorm:"column:status;type:varchar(32);not null;default:'created'"`

	// 履约/支付状态
	OrderStatus   string `gorm:"column:order_status;type:varchar(32);not null;default:'';index:idx_order_status"`
	PaymentStatus string `gorm:"column:payment_status;type:varchar(16);not null;default:'';index:idx_payment_status"`
	PaymentMethod string `gorm:"column:payment_method;type:varchar(16);not null;default:''"`
	TransactionID string `gorm:"column:transaction_id;type:varchar(128);not null;default:''"`

	// 订单数据
	TotalAmount     float64        `gorm:"column:total_amount;type:decimal(12,2);not null;default:0"`
	Items           datatypes.JSON `gorm:"column:items;type:json;not null"`
	ShippingAddress datatypes.JSON `gorm:"column:shipping_address;type:json"`

	AdminNotes []OrderAdminNote `gorm:"foreignKey:OrderID;references:ID"`

	// 时间戳
	CreatedAt time.Time `gorm:"column:created_at;not null;index:idx_user_created"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// OrderAdminNote 后台备注表，只插入不更新
type OrderAdminNote struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement:false"`
	OrderID   string    `gorm:"column:order_id;type:varchar(64);not null;index:idx_order_created"`
	Note      string    `gorm:"column:note;type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null;index:idx_order_created"`
}

// TableName 指定表名
func (OrderAdminNote) TableName() string {
	return "order_admin_notes"
}
