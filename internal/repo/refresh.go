package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/coffee_shop/internal/models"
)

func (r *GormRepo) AddRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	return r.DB.WithContext(ctx).Create(token).Error
}

// RotationGrace is how long a rotated token is reported as a rotation
// conflict instead of a plain revocation.
const RotationGrace = 30 * time.Second

func findRefreshByJTI(db *gorm.DB, jti string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	if err := db.Where("jti = ?", jti).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

func refreshUsable(db *gorm.DB, jti, tokenHash string, now time.Time) error {
	refresh, err := findRefreshByJTI(db, jti)
	if err != nil {
		return err
	}
	if refresh.TokenHash != tokenHash {
		return gorm.ErrRecordNotFound
	}
	if refresh.Revoked && refresh.RotatedAt != nil && now.Sub(*refresh.RotatedAt) < RotationGrace {
		return ErrTokenRotated
	}
	if refresh.Revoked || refresh.ExpiresAt.Before(now) {
		return ErrTokenRevoked
	}
	return nil
}

// RotateRefreshToken revokes the presented token and stores its successor in
// one transaction. A token can be rotated at most once; presenting it again
// within RotationGrace yields ErrTokenRotated.
func (r *GormRepo) RotateRefreshToken(ctx context.Context, oldJTI, oldHash string, next *models.RefreshToken) error {
	now := time.Now()
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := refreshUsable(tx, oldJTI, oldHash, now); err != nil {
			return err
		}

		res := tx.Model(&models.RefreshToken{}).
			Where("jti = ? AND revoked = ?", oldJTI, false).
			Updates(map[string]any{"revoked": true, "rotated_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrTokenRotated
		}

		return tx.Create(next).Error
	})
}

func (r *GormRepo) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	return r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
}
