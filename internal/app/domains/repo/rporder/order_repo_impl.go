package rporder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront/common/entity"
	"storefront/internal/app/domains/entity/etorder"
	"storefront/internal/app/pkg/errorx"

	"gorm.io/gorm"
)

var errMissingNoteID = errors.New("admin note id is required")

// OrderRepositoryImpl 订单仓储实现（MySQL）
type OrderRepositoryImpl struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储实例
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &OrderRepositoryImpl{db: db}
}

// GetByID 根据ID查询订单，备注按写入顺序返回
func (r *OrderRepositoryImpl) GetByID(ctx context.Context, orderID string) (*etorder.Order, error) {
	var po entity.Order
	err := r.db.WithContext(ctx).
		Preload("AdminNotes", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Where("id = ?", orderID).
		First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.ErrOrderNotFound
		}
		return nil, err
	}
	return toDomainModel(&po)
}

// List 分页查询订单列表
func (r *OrderRepositoryImpl) List(ctx context.Context, filter ListFilter, page, limit int) ([]*etorder.Order, int64, error) {
	var total int64
	var pos []entity.Order

	query := r.db.WithContext(ctx).Model(&entity.Order{})
	if filter.OrderStatus != "" {
		query = query.Where("order_status = ?", string(filter.OrderStatus))
	}
	if filter.PaymentStatus != "" {
		query = query.Where("payment_status = ?", string(filter.PaymentStatus))
	}
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("created_at DESC").Find(&pos).Error; err != nil {
		return nil, 0, err
	}

	orders := make([]*etorder.Order, 0, len(pos))
	for i := range pos {
		order, err := toDomainModel(&pos[i])
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, order)
	}

	return orders, total, nil
}

// ApplyStatusPatch set 字段与追加备注在同一事务中完成，任何一步失败整体回滚
func (r *OrderRepositoryImpl) ApplyStatusPatch(ctx context.Context, orderID string, patch *etorder.StatusPatch, updatedAt time.Time) error {
	if patch == nil || patch.IsEmpty() {
		return nil
	}
	if patch.Note != nil && patch.Note.ID == 0 {
		return errMissingNoteID
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := patchColumns(patch)
		updates["updated_at"] = updatedAt

		res := tx.Model(&entity.Order{}).Where("id = ?", orderID).Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("update order failed: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			// MySQL 在值未变化时也会返回 0，需要再确认一次订单是否存在
			var count int64
			if err := tx.Model(&entity.Order{}).Where("id = ?", orderID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return errorx.ErrOrderNotFound
			}
		}

		if patch.Note != nil {
			note := &entity.OrderAdminNote{
				ID:        patch.Note.ID,
				OrderID:   orderID,
				Note:      patch.Note.Note,
				CreatedAt: patch.Note.CreatedAt,
			}
			if err := tx.Create(note).Error; err != nil {
				return fmt.Errorf("append admin note failed: %w", err)
			}
		}
		return nil
	})
}

// patchColumns 补丁字段 -> 列名
func patchColumns(patch *etorder.StatusPatch) map[string]interface{} {
	updates := make(map[string]interface{}, 6)
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}
	if patch.OrderStatus != nil {
		updates["order_status"] = string(*patch.OrderStatus)
	}
	if patch.PaymentStatus != nil {
		updates["payment_status"] = string(*patch.PaymentStatus)
	}
	if patch.PaymentMethod != nil {
		updates["payment_method"] = string(*patch.PaymentMethod)
	}
	if patch.TransactionID != nil {
		updates["transaction_id"] = *patch.TransactionID
	}
	return updates
}

// toDomainModel GORM 模型转换为领域对象
func toDomainModel(po *entity.Order) (*etorder.Order, error) {
	order := &etorder.Order{
		ID:            po.ID,
		UserID:        po.UserID,
		Status:        po.Status,
		OrderStatus:   etorder.OrderStatus(po.OrderStatus),
		PaymentStatus: etorder.PaymentStatus(po.PaymentStatus),
		PaymentMethod: etorder.PaymentMethod(po.PaymentMethod),
		TransactionID: po.TransactionID,
		TotalAmount:   po.TotalAmount,
		CreatedAt:     po.CreatedAt,
		UpdatedAt:     po.UpdatedAt,
	}

	if len(po.Items) > 0 {
		if err := json.Unmarshal(po.Items, &order.Items); err != nil {
			return nil, fmt.Errorf("unmarshal items failed: %w", err)
		}
	}
	if len(po.ShippingAddress) > 0 {
		var addr etorder.Address
		if err := json.Unmarshal(po.ShippingAddress, &addr); err != nil {
			return nil, fmt.Errorf("unmarshal shipping address failed: %w", err)
		}
		order.ShippingAddress = &addr
	}

	order.AdminNotes = make([]etorder.AdminNote, 0, len(po.AdminNotes))
	for _, n := range po.AdminNotes {
		order.AdminNotes = append(order.AdminNotes, etorder.AdminNote{
			ID:        n.ID,
			Note:      n.Note,
			CreatedAt: n.CreatedAt,
		})
	}

	return order, nil
}
