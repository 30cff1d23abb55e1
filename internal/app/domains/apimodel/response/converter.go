package response

import (
	"strconv"

	"storefront/common/model"
	"storefront/internal/app/domains/entity/etorder"
)

// FromOrderEntity 从领域对象转换为响应 DTO（先归一化）
func FromOrderEntity(order *etorder.Order) *OrderResponse {
	n := order.Normalize()

	resp := &OrderResponse{
		ID:              n.ID,
		UserID:          n.UserID,
		Status:          n.Status,
		OrderStatus:     string(n.OrderStatus),
		PaymentStatus:   string(n.PaymentStatus),
		PaymentMethod:   string(n.PaymentMethod),
		TransactionID:   n.TransactionID,
		TotalAmount:     n.TotalAmount,
		Items:           fromItemsEntity(n.Items),
		ShippingAddress: fromAddressEntity(n.ShippingAddress),
		AdminNotes:      fromNotesEntity(n.AdminNotes),
		CreatedAt:       n.CreatedAt,
		UpdatedAt:       n.UpdatedAt,
	}
	return resp
}

// FromOrderList 列表转换
func FromOrderList(orders []*etorder.Order, total int64, page, limit int) *OrderListResponse {
	items := make([]*OrderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, FromOrderEntity(o))
	}
	return &OrderListResponse{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
	}
}

// FromStatusEvent 事件转换
func FromStatusEvent(event *model.OrderStatusEvent) *StatusEventResponse {
	return &StatusEventResponse{
		OrderID:       event.OrderID,
		Status:        event.Status,
		OrderStatus:   event.OrderStatus,
		PaymentStatus: event.PaymentStatus,
		PaymentMethod: event.PaymentMethod,
		TransactionID: event.TransactionID,
		Action:        event.Action,
		Note:          event.Note,
		ChangedAt:     event.ChangedAt,
	}
}

func fromItemsEntity(entities []*etorder.Item) []*OrderItem {
	items := make([]*OrderItem, 0, len(entities))
	for _, it := range entities {
		if it == nil {
			continue
		}
		items = append(items, &OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Size:      it.Size,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}
	return items
}

func fromAddressEntity(addr *etorder.Address) *Address {
	if addr == nil {
		return nil
	}
	return &Address{
		Name:       addr.Name,
		Phone:      addr.Phone,
		Street:     addr.Street,
		City:       addr.City,
		State:      addr.State,
		PostalCode: addr.PostalCode,
		Country:    addr.Country,
	}
}

// 备注 ID 是 snowflake，转成字符串避免前端丢精度
func fromNotesEntity(notes []etorder.AdminNote) []*AdminNoteResponse {
	out := make([]*AdminNoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, &AdminNoteResponse{
			ID:        strconv.FormatInt(n.ID, 10),
			Note:      n.Note,
			CreatedAt: n.CreatedAt,
		})
	}
	return out
}
