// Package repo holds the gorm repositories of the shop.
package repo

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/coffee_shop/internal/models"
	"github.com/Skotchmaster/coffee_shop/pkg/tokens"
)

var (
	ErrUserAlreadyExist = errors.New("user already exist")
	ErrTokenRevoked     = errors.New("token expired or revoked")
	// ErrTokenRotated is both a revocation and a rotation conflict.
	ErrTokenRotated = fmt.Errorf("%w: %w", ErrTokenRevoked, tokens.ErrRotationConflict)
)

type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Order{},
		&models.OrderItem{},
		&models.Notification{},
		&models.ProfileField{},
	)
}
