package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/coffee_shop/internal/models"
)

// CreateOrder stores the order with its items and, when given, the
// confirmation notification in the same transaction.
func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order, confirm *models.Notification) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		if confirm == nil {
			return nil
		}
		return tx.Create(confirm).Error
	})
}

func (r *GormRepo) ListOrders(ctx context.Context, userID uint, limit, offset int) ([]models.Order, int64, error) {
	tx := r.DB.WithContext(ctx)

	var total int64
	if err := tx.Model(&models.Order{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	if err := tx.Where("user_id = ?", userID).Preload("Items").
		Order("created_at DESC").Order("id DESC").
		Limit(limit).Offset(offset).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}
