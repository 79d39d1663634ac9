package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/coffee_shop/internal/models"
)

func (r *GormRepo) GetProfile(ctx context.Context, userID uint) (map[string]string, error) {
	var fields []models.ProfileField
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&fields).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		out[f.Field] = f.Value
	}
	return out, nil
}

func (r *GormRepo) UpsertProfileFields(ctx context.Context, userID uint, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	rows := make([]models.ProfileField, 0, len(values))
	for k, v := range values {
		rows = append(rows, models.ProfileField{UserID: userID, Field: k, Value: v})
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "field"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&rows).Error
	})
}
