package service

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/coffee_shop/internal/cart"
	"github.com/Skotchmaster/coffee_shop/internal/catalog"
	"github.com/Skotchmaster/coffee_shop/internal/mykafka"
)

type CartView struct {
	Lines      []cart.Line
	TotalItems int
	TotalPrice decimal.Decimal
}

type cartSession struct {
	mu      sync.Mutex
	cart    *cart.Cart
	pending []cart.Change
	// dead is set once the session has been pruned from the map.
	dead bool
}

func (s *cartSession) view() CartView {
	return CartView{
		Lines:      s.cart.Lines(),
		TotalItems: s.cart.TotalItemCount(),
		TotalPrice: s.cart.TotalPrice(),
	}
}

// CartService keeps one cart per signed-in user while the cart holds lines;
// an emptied cart is dropped. Access to a single cart is serialized;
// different users do not contend.
type CartService struct {
	Catalog *catalog.Provider
	Events  mykafka.Publisher

	mu       sync.Mutex
	sessions map[uint]*cartSession
}

func NewCartService(cat *catalog.Provider, events mykafka.Publisher) *CartService {
	return &CartService{Catalog: cat, Events: events, sessions: make(map[uint]*cartSession)}
}

// lock returns the user's live session with its lock held. The caller
// releases it with unlock.
func (s *CartService) lock(userID uint) *cartSession {
	for {
		s.mu.Lock()
		if s.sessions == nil {
			s.sessions = make(map[uint]*cartSession)
		}
		sess, ok := s.sessions[userID]
		if !ok {
			sess = &cartSession{cart: cart.New()}
			sess.cart.Subscribe(cart.ObserverFunc(func(ch cart.Change) {
				sess.pending = append(sess.pending, ch)
			}))
			s.sessions[userID] = sess
		}
		s.mu.Unlock()

		sess.mu.Lock()
		if !sess.dead {
			return sess
		}
		sess.mu.Unlock()
	}
}

// unlock drops an empty session from the map before releasing it. Lock order
// is session then service.
func (s *CartService) unlock(userID uint, sess *cartSession) {
	if sess.cart.IsEmpty() {
		s.mu.Lock()
		if s.sessions[userID] == sess {
			delete(s.sessions, userID)
			sess.dead = true
		}
		s.mu.Unlock()
	}
	sess.mu.Unlock()
}

// mutate applies fn to the user's cart and publishes the resulting changes
// once the cart lock is released.
func (s *CartService) mutate(ctx context.Context, userID uint, fn func(*cart.Cart) error) (CartView, error) {
	sess := s.lock(userID)
	err := fn(sess.cart)
	changes := sess.pending
	sess.pending = nil
	view := sess.view()
	s.unlock(userID, sess)

	for _, ch := range changes {
		publish(ctx, s.Events, mykafka.TopicCartEvents, userID, map[string]any{
			"type":      "cart_" + ch.Kind.String(),
			"productID": ch.ProductID,
			"quantity":  ch.Quantity,
		})
	}
	return view, err
}

func (s *CartService) Get(ctx context.Context, userID uint) CartView {
	sess := s.lock(userID)
	defer s.unlock(userID, sess)
	return sess.view()
}

func (s *CartService) product(productID int) (catalog.Product, error) {
	p, ok := s.Catalog.Get(productID)
	if !ok {
		return catalog.Product{}, ErrProductNotFound
	}
	return p, nil
}

func (s *CartService) Add(ctx context.Context, userID uint, productID int) (CartView, error) {
	p, err := s.product(productID)
	if err != nil {
		return CartView{}, err
	}
	return s.mutate(ctx, userID, func(c *cart.Cart) error {
		c.Add(p)
		return nil
	})
}

// SetQuantity removes the line for quantity <= 0 and never creates one.
func (s *CartService) SetQuantity(ctx context.Context, userID uint, productID, quantity int) (CartView, error) {
	if _, err := s.product(productID); err != nil {
		return CartView{}, err
	}
	return s.mutate(ctx, userID, func(c *cart.Cart) error {
		c.SetQuantity(productID, quantity)
		return nil
	})
}

func (s *CartService) Remove(ctx context.Context, userID uint, productID int) (CartView, error) {
	return s.mutate(ctx, userID, func(c *cart.Cart) error {
		c.Remove(productID)
		return nil
	})
}

func (s *CartService) Clear(ctx context.Context, userID uint) CartView {
	view, _ := s.mutate(ctx, userID, func(c *cart.Cart) error {
		c.Clear()
		return nil
	})
	return view
}

// Drain hands the current cart to fn while holding the cart lock and clears
// the cart only when fn succeeds.
func (s *CartService) Drain(ctx context.Context, userID uint, fn func(CartView) error) error {
	_, err := s.mutate(ctx, userID, func(c *cart.Cart) error {
		if c.IsEmpty() {
			return ErrEmptyCart
		}
		view := CartView{Lines: c.Lines(), TotalItems: c.TotalItemCount(), TotalPrice: c.TotalPrice()}
		if err := fn(view); err != nil {
			return err
		}
		c.Clear()
		return nil
	})
	return err
}
