package repo

import (
	"context"

	"github.com/Skotchmaster/coffee_shop/internal/models"
)

func (r *GormRepo) CreateNotifications(ctx context.Context, items []models.Notification) error {
	if len(items) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Create(&items).Error
}

func (r *GormRepo) ListNotifications(ctx context.Context, userID uint, limit, offset int) ([]models.Notification, int64, error) {
	tx := r.DB.WithContext(ctx)

	var total int64
	if err := tx.Model(&models.Notification{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Notification
	if err := tx.Where("user_id = ?", userID).Order("created_at DESC").Order("id DESC").
		Limit(limit).Offset(offset).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *GormRepo) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&n).Error
	return n, err
}

// MarkRead returns gorm.ErrRecordNotFound when the notification is not the user's.
func (r *GormRepo) MarkRead(ctx context.Context, userID, id uint) error {
	var n models.Notification
	if err := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&n).Error; err != nil {
		return err
	}
	if n.Read {
		return nil
	}
	return r.DB.WithContext(ctx).Model(&n).Update("is_read", true).Error
}

func (r *GormRepo) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

