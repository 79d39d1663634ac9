package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/coffee_shop/internal/models"
	"github.com/Skotchmaster/coffee_shop/internal/repo"
	"github.com/Skotchmaster/coffee_shop/internal/util"
)

type NotificationPage struct {
	Items  []models.Notification
	Total  int64
	Unread int64
	Page   int
	Size   int
}

type NotificationService struct {
	Repo *repo.GormRepo
}

func welcomeNotifications(userID uint) []models.Notification {
	return []models.Notification{
		{
			UserID:  userID,
			Title:   "Special Offer",
			Message: "Get 20% off on all Cold Brew coffees today only!",
			Type:    models.NotificationPromotion,
		},
		{
			UserID:  userID,
			Title:   "New Menu Item",
			Message: "Try our new Pumpkin Spice Latte - available now!",
			Type:    models.NotificationGeneral,
		},
	}
}

func (s *NotificationService) Welcome(ctx context.Context, userID uint) error {
	return s.Repo.CreateNotifications(ctx, welcomeNotifications(userID))
}

func (s *NotificationService) List(ctx context.Context, userID uint, page, size int) (*NotificationPage, error) {
	from, limit := util.Calculate(page, size)

	items, total, err := s.Repo.ListNotifications(ctx, userID, limit, from)
	if err != nil {
		return nil, err
	}
	unread, err := s.Repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	return &NotificationPage{Items: items, Total: total, Unread: unread, Page: page, Size: limit}, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id uint) error {
	if id == 0 {
		return fmt.Errorf("notification id required: %w", ErrValidation)
	}
	err := s.Repo.MarkRead(ctx, userID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("notification %d: %w", id, ErrNotFound)
	}
	return err
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	return s.Repo.MarkAllRead(ctx, userID)
}

// orderConfirmation builds the message shown after checkout, e.g.
// "Your Cappuccino order has been confirmed and is being prepared."
func orderConfirmation(userID uint, order *models.Order) *models.Notification {
	var what string
	switch n := len(order.Items); {
	case n == 0:
		what = "coffee"
	case n == 1:
		what = order.Items[0].Name
	default:
		what = fmt.Sprintf("%s and %d more", order.Items[0].Name, n-1)
	}
	return &models.Notification{
		UserID:  userID,
		Title:   "Order Confirmed!",
		Message: fmt.Sprintf("Your %s order has been confirmed and is being prepared.", what),
		Type:    models.NotificationOrder,
	}
}
