package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	CreatedAt    time.Time `                                json:"created_at"`
}

type RefreshToken struct {
	ID        uint      `gorm:"primaryKey"          json:"id"`
	TokenHash string    `gorm:"uniqueIndex;not null" json:"-"`
	JTI       string    `gorm:"uniqueIndex;not null" json:"jti"`
	UserID    uint      `gorm:"index;not null"      json:"user_id"`
	ExpiresAt time.Time `gorm:"not null"            json:"expires_at"`
	Revoked   bool      `gorm:"default:false"       json:"revoked"`
	// RotatedAt is set when rotation, not sign-out, revoked the token.
	RotatedAt *time.Time `json:"rotated_at,omitempty"`
}

const (
	OrderStatusConfirmed = "confirmed"
)

type Order struct {
	ID            uint            `gorm:"primaryKey"                     json:"id"`
	UserID        uint            `gorm:"index;not null"                 json:"user_id"`
	PaymentMethod string          `gorm:"not null"                       json:"payment_method"`
	Status        string          `gorm:"not null"                       json:"status"`
	Total         decimal.Decimal `gorm:"type:numeric(12,2);not null"    json:"total"`
	CreatedAt     time.Time       `gorm:"index"                          json:"created_at"`
	Items         []OrderItem     `gorm:"constraint:OnDelete:CASCADE"    json:"items"`
}

type OrderItem struct {
	ID        uint            `gorm:"primaryKey"                   json:"id"`
	OrderID   uint            `gorm:"index;not null"               json:"order_id"`
	ProductID int             `gorm:"not null"                     json:"product_id"`
	Name      string          `gorm:"not null"                     json:"name"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"  json:"unit_price"`
	Quantity  int             `gorm:"not null;check:quantity > 0"  json:"quantity"`
	LineTotal decimal.Decimal `gorm:"type:numeric(12,2);not null"  json:"line_total"`
}

type NotificationType string

const (
	NotificationOrder     NotificationType = "order"
	NotificationPromotion NotificationType = "promotion"
	NotificationGeneral   NotificationType = "general"
)

type Notification struct {
	ID        uint             `gorm:"primaryKey"             json:"id"`
	UserID    uint             `gorm:"index;not null"         json:"user_id"`
	Title     string           `gorm:"not null"               json:"title"`
	Message   string           `gorm:"not null"               json:"message"`
	Type      NotificationType `gorm:"type:varchar(16);not null" json:"type"`
	Read      bool             `gorm:"column:is_read;default:false;not null" json:"read"`
	CreatedAt time.Time        `gorm:"index"                  json:"created_at"`
}

// ProfileField is one key-value entry of a user's profile.
type ProfileField struct {
	UserID    uint      `gorm:"primaryKey"        json:"user_id"`
	Field     string    `gorm:"primaryKey;size:32" json:"field"`
	Value     string    `gorm:"not null"          json:"value"`
	UpdatedAt time.Time `                         json:"updated_at"`
}
