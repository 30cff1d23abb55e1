package etorder

import (
	"strings"
	"time"
)

// StatusUpdate 后台状态变更请求，全部字段可选，均为客户端原始字符串
type StatusUpdate struct {
	LegacyStatus  string // 旧 status，仅在未提供 OrderStatus 时生效
	OrderStatus   string
	PaymentStatus string
	PaymentMethod string
	TransactionID string
	Action        string // none / cancel / refund
	AdminNote     string
}

// StatusPatch 需要写入订单的最小字段集合，nil 表示不修改
type StatusPatch struct {
	Status        *string
	OrderStatus   *OrderStatus
	PaymentStatus *PaymentStatus
	PaymentMethod *PaymentMethod
	TransactionID *string
	Note          *AdminNote // 追加一条备注
}

// IsEmpty 补丁既没有字段也没有备注
func (p *StatusPatch) IsEmpty() bool {
	return !p.HasFields() && p.Note == nil
}

// HasFields 是否存在需要 set 的字段
func (p *StatusPatch) HasFields() bool {
	return p.Status != nil || p.OrderStatus != nil || p.PaymentStatus != nil ||
		p.PaymentMethod != nil || p.TransactionID != nil
}

// StatusChanged 订单状态或支付状态是否发生变化（用于决定是否通知用户）
func (p *StatusPatch) StatusChanged() bool {
	return p.OrderStatus != nil || p.PaymentStatus != nil
}

func (p *StatusPatch) setOrderStatus(st OrderStatus) {
	p.OrderStatus = &st
	legacy := string(st)
	p.Status = &legacy
}

func (p *StatusPatch) setPaymentStatus(st PaymentStatus) {
	p.PaymentStatus = &st
}

// Reconcile 将一次部分指定的状态变更请求计算为一致的补丁。
// 纯函数：不做 I/O，校验失败时不返回任何补丁。
// 规则优先级：显式字段 > 其他字段推导出的默认值；快捷操作 > 同一请求中的一切推导。
func Reconcile(req StatusUpdate, now time.Time) (*StatusPatch, error) {
	patch := &StatusPatch{}

	// 1. 订单状态：显式值优先，否则由旧 status 推导
	var candidate OrderStatus
	if strings.TrimSpace(req.OrderStatus) != "" {
		st, err := ParseOrderStatus(req.OrderStatus)
		if err != nil {
			return nil, err
		}
		candidate = st
	} else if strings.TrimSpace(req.LegacyStatus) != "" {
		candidate = OrderStatusFromLegacy(req.LegacyStatus)
	}
	if candidate != "" {
		patch.setOrderStatus(candidate)
	}

	// 2/3. 显式 paymentStatus 胜过取消带来的 refunded 默认值
	if strings.TrimSpace(req.PaymentStatus) != "" {
		st, err := ParsePaymentStatus(req.PaymentStatus)
		if err != nil {
			return nil, err
		}
		patch.setPaymentStatus(st)
	} else if candidate == OrderStatusCancelled {
		patch.setPaymentStatus(PaymentStatusRefunded)
	}

	// 4. 只改支付状态时，同步旧 status
	if patch.Status == nil && patch.PaymentStatus != nil {
		switch *patch.PaymentStatus {
		case PaymentStatusPaid, PaymentStatusFailed:
			legacy := string(*patch.PaymentStatus)
			patch.Status = &legacy
		}
	}

	// 5. 支付方式
	if strings.TrimSpace(req.PaymentMethod) != "" {
		m, err := ParsePaymentMethod(req.PaymentMethod)
		if err != nil {
			return nil, err
		}
		patch.PaymentMethod = &m
	}

	// 6. 流水号原样透传
	if req.TransactionID != "" {
		txID := req.TransactionID
		patch.TransactionID = &txID
	}

	// 7. 快捷操作最后执行
	action, err := ParseAction(req.Action)
	if err != nil {
		return nil, err
	}
	switch action {
	case ActionCancel:
		patch.setOrderStatus(OrderStatusCancelled)
		if patch.PaymentStatus == nil {
			patch.setPaymentStatus(PaymentStatusPending)
		}
	case ActionRefund:
		patch.setPaymentStatus(PaymentStatusRefunded)
		if patch.OrderStatus == nil {
			patch.setOrderStatus(OrderStatusCancelled)
		}
	}

	// 8. 备注只追加，原文保存，纯空白视为没有备注
	if strings.TrimSpace(req.AdminNote) != "" {
		patch.Note = &AdminNote{Note: req.AdminNote, CreatedAt: now}
	}

	if patch.IsEmpty() {
		return patch, ErrEmptyUpdate
	}
	return patch, nil
}
