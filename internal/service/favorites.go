package service

import (
	"context"
	"sync"

	"github.com/Skotchmaster/coffee_shop/internal/catalog"
	"github.com/Skotchmaster/coffee_shop/internal/favorites"
	"github.com/Skotchmaster/coffee_shop/internal/mykafka"
)

type favoritesSession struct {
	mu   sync.Mutex
	list *favorites.List
	dead bool
}

type FavoritesService struct {
	Catalog *catalog.Provider
	Carts   *CartService
	Events  mykafka.Publisher

	mu       sync.Mutex
	sessions map[uint]*favoritesSession
}

func NewFavoritesService(cat *catalog.Provider, carts *CartService, events mykafka.Publisher) *FavoritesService {
	return &FavoritesService{Catalog: cat, Carts: carts, Events: events, sessions: make(map[uint]*favoritesSession)}
}

// lock mirrors CartService.lock: it returns a live session with its lock
// held, and an empty list is dropped on unlock.
func (s *FavoritesService) lock(userID uint) *favoritesSession {
	for {
		s.mu.Lock()
		if s.sessions == nil {
			s.sessions = make(map[uint]*favoritesSession)
		}
		sess, ok := s.sessions[userID]
		if !ok {
			sess = &favoritesSession{list: favorites.New()}
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

func (s *FavoritesService) unlock(userID uint, sess *favoritesSession) {
	if sess.list.Count() == 0 {
		s.mu.Lock()
		if s.sessions[userID] == sess {
			delete(s.sessions, userID)
			sess.dead = true
		}
		s.mu.Unlock()
	}
	sess.mu.Unlock()
}

func (s *FavoritesService) List(ctx context.Context, userID uint) []catalog.Product {
	sess := s.lock(userID)
	defer s.unlock(userID, sess)
	return sess.list.Entries()
}

func (s *FavoritesService) Add(ctx context.Context, userID uint, productID int) ([]catalog.Product, error) {
	p, ok := s.Catalog.Get(productID)
	if !ok {
		return nil, ErrProductNotFound
	}

	sess := s.lock(userID)
	sess.list.Add(p)
	entries := sess.list.Entries()
	s.unlock(userID, sess)

	publish(ctx, s.Events, mykafka.TopicUserEvents, userID, map[string]any{
		"type":      "favorite_added",
		"productID": productID,
	})
	return entries, nil
}

// Remove deletes the first entry for productID. Removing a product that is not
// a favorite is not an error.
func (s *FavoritesService) Remove(ctx context.Context, userID uint, productID int) []catalog.Product {
	sess := s.lock(userID)
	removed := sess.list.Remove(productID)
	entries := sess.list.Entries()
	s.unlock(userID, sess)

	if removed {
		publish(ctx, s.Events, mykafka.TopicUserEvents, userID, map[string]any{
			"type":      "favorite_removed",
			"productID": productID,
		})
	}
	return entries
}

func (s *FavoritesService) Clear(ctx context.Context, userID uint) {
	sess := s.lock(userID)
	sess.list.Clear()
	s.unlock(userID, sess)
}

// AddToCart puts one unit of a favorite product into the user's cart. The
// favorite entry stays.
func (s *FavoritesService) AddToCart(ctx context.Context, userID uint, productID int) (CartView, error) {
	sess := s.lock(userID)
	ok := sess.list.Contains(productID)
	s.unlock(userID, sess)
	if !ok {
		return CartView{}, ErrNotFound
	}
	return s.Carts.Add(ctx, userID, productID)
}
