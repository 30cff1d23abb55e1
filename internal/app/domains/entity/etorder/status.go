package etorder

import "strings"

// OrderStatus 订单履约状态（规范值）
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPacked    OrderStatus = "packed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusReturned  OrderStatus = "returned"
	OrderStatusCreated   OrderStatus = "created"
	OrderStatusOnTheWay  OrderStatus = "on_the_way"
)

// orderStatuses 允许的订单状态，顺序即返回给前端的顺序
var orderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusPacked,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
	OrderStatusReturned,
	OrderStatusCreated,
	OrderStatusOnTheWay,
}

// PaymentStatus 支付状态
type PaymentStatus string

const (
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

var paymentStatuses = []PaymentStatus{
	PaymentStatusPaid,
	PaymentStatusPending,
	PaymentStatusFailed,
	PaymentStatusRefunded,
}

// PaymentMethod 支付方式
type PaymentMethod string

const (
	PaymentMethodRazorpay PaymentMethod = "razorpay"
	PaymentMethodCOD      PaymentMethod = "cod"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodUPI      PaymentMethod = "upi"
)

var paymentMethods = []PaymentMethod{
	PaymentMethodRazorpay,
	PaymentMethodCOD,
	PaymentMethodCard,
	PaymentMethodUPI,
}

// DefaultPaymentMethod 老订单没有 paymentMethod 字段时的默认值（商城最初只接入了 Razorpay）
const DefaultPaymentMethod = PaymentMethodRazorpay

// Action 后台快捷操作
type Action string

const (
	ActionNone   Action = "none"
	ActionCancel Action = "cancel"
	ActionRefund Action = "refund"
)

var actions = []Action{ActionNone, ActionCancel, ActionRefund}

// legacyOrderStatus 旧 status 字段 -> 规范订单状态，未命中的一律视为 pending
var legacyOrderStatus = map[string]OrderStatus{
	"delivered":  OrderStatusDelivered,
	"on_the_way": OrderStatusConfirmed,
	"paid":       OrderStatusConfirmed,
	"failed":     OrderStatusCancelled,
	"created":    OrderStatusPending,
	"pending":    OrderStatusPending,
}

// legacyPaymentStatus 旧 status 字段 -> 支付状态，仅用于老订单的展示归一化
var legacyPaymentStatus = map[string]PaymentStatus{
	"paid":   PaymentStatusPaid,
	"failed": PaymentStatusFailed,
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ParseOrderStatus 大小写不敏感地解析订单状态
func ParseOrderStatus(s string) (OrderStatus, error) {
	v := normalize(s)
	for _, st := range orderStatuses {
		if string(st) == v {
			return st, nil
		}
	}
	return "", newValidationError(ErrInvalidOrderStatus, "orderStatus", s, AllowedOrderStatuses())
}

// ParsePaymentStatus 大小写不敏感地解析支付状态
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	v := normalize(s)
	for _, st := range paymentStatuses {
		if string(st) == v {
			return st, nil
		}
	}
	return "", newValidationError(ErrInvalidPaymentStatus, "paymentStatus", s, AllowedPaymentStatuses())
}

// ParsePaymentMethod 大小写不敏感地解析支付方式
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	v := normalize(s)
	for _, m := range paymentMethods {
		if string(m) == v {
			return m, nil
		}
	}
	return "", newValidationError(ErrInvalidPaymentMethod, "paymentMethod", s, AllowedPaymentMethods())
}

// ParseAction 解析快捷操作，空字符串等同于 none
func ParseAction(s string) (Action, error) {
	v := normalize(s)
	if v == "" {
		return ActionNone, nil
	}
	for _, a := range actions {
		if string(a) == v {
			return a, nil
		}
	}
	return "", newValidationError(ErrInvalidAction, "action", s, AllowedActions())
}

// OrderStatusFromLegacy 旧 status 映射为规范订单状态
func OrderStatusFromLegacy(legacy string) OrderStatus {
	if st, ok := legacyOrderStatus[normalize(legacy)]; ok {
		return st
	}
	return OrderStatusPending
}

// PaymentStatusFromLegacy 旧 status 映射为支付状态
func PaymentStatusFromLegacy(legacy string) PaymentStatus {
	if st, ok := legacyPaymentStatus[normalize(legacy)]; ok {
		return st
	}
	return PaymentStatusPending
}

func AllowedOrderStatuses() []string {
	out := make([]string, 0, len(orderStatuses))
	for _, st := range orderStatuses {
		out = append(out, string(st))
	}
	return out
}

func AllowedPaymentStatuses() []string {
	out := make([]string, 0, len(paymentStatuses))
	for _, st := range paymentStatuses {
		out = append(out, string(st))
	}
	return out
}

func AllowedPaymentMethods() []string {
	out := make([]string, 0, len(paymentMethods))
	for _, m := range paymentMethods {
		out = append(out, string(m))
	}
	return out
}

func AllowedActions() []string {
	out := make([]string, 0, len(actions))
	for _, a := range actions {
		out = append(out, string(a))
	}
	return out
}
