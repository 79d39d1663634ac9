package service

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/coffee_shop/internal/logging"
	"github.com/Skotchmaster/coffee_shop/internal/models"
	"github.com/Skotchmaster/coffee_shop/internal/mykafka"
	"github.com/Skotchmaster/coffee_shop/internal/repo"
	"github.com/Skotchmaster/coffee_shop/internal/util"
)

type PaymentMethod struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var PaymentMethods = []PaymentMethod{
	{ID: "wallet", Label: "Wallet"},
	{ID: "amazon_pay", Label: "Amazon Pay"},
	{ID: "apple_pay", Label: "Apple Pay"},
	{ID: "google_pay", Label: "Google Pay"},
}

func validPaymentMethod(id string) bool {
	for _, m := range PaymentMethods {
		if m.ID == id {
			return true
		}
	}
	return false
}

type CheckoutService struct {
	Repo   *repo.GormRepo
	Carts  *CartService
	Events mykafka.Publisher
}

// Checkout turns the user's cart into a confirmed order. The order, its items
// and the confirmation notification are stored together; the cart is cleared
// only after that succeeds.
func (s *CheckoutService) Checkout(ctx context.Context, userID uint, method string) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "checkout")

	if !validPaymentMethod(method) {
		return nil, fmt.Errorf("unknown payment method %q: %w", method, ErrValidation)
	}

	var order *models.Order
	err := s.Carts.Drain(ctx, userID, func(view CartView) error {
		o := &models.Order{
			UserID:        userID,
			PaymentMethod: method,
			Status:        models.OrderStatusConfirmed,
			Total:         view.TotalPrice,
			Items:         make([]models.OrderItem, 0, len(view.Lines)),
		}
		for _, line := range view.Lines {
			o.Items = append(o.Items, models.OrderItem{
				ProductID: line.Product.ID,
				Name:      line.Product.Name,
				UnitPrice: line.Product.Price,
				Quantity:  line.Quantity,
				LineTotal: line.Total(),
			})
		}
		if err := s.Repo.CreateOrder(ctx, o, orderConfirmation(userID, o)); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		l.Warn("checkout_failed", "user_id", userID, "error", err)
		return nil, err
	}

	publish(ctx, s.Events, mykafka.TopicOrderEvents, userID, map[string]any{
		"type":          "order_created",
		"orderID":       order.ID,
		"total":         order.Total.StringFixed(2),
		"paymentMethod": method,
		"items":         len(order.Items),
	})
	l.Info("order_created", "order_id", order.ID, "total", order.Total.StringFixed(2))
	return order, nil
}

func (s *CheckoutService) ListOrders(ctx context.Context, userID uint, page, size int) ([]models.Order, int64, error) {
	from, limit := util.Calculate(page, size)
	return s.Repo.ListOrders(ctx, userID, limit, from)
}
