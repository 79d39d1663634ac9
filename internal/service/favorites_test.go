package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/coffee_shop/internal/catalog"
	"github.com/Skotchmaster/coffee_shop/internal/mykafka"
)

func newFavorites(pub mykafka.Publisher) *FavoritesService {
	cat := catalog.Default()
	return NewFavoritesService(cat, NewCartService(cat, pub), pub)
}

func TestFavoritesService_AddAllowsDuplicates(t *testing.T) {
	pub := &recordingPublisher{}
	svc := newFavorites(pub)
	ctx := context.Background()

	_, err := svc.Add(ctx, 1, 4)
	require.NoError(t, err)
	entries, err := svc.Add(ctx, 1, 4)
	require.NoError(t, err)

	assert.Len(t, entries, 2)
	assert.Equal(t, []string{"favorite_added", "favorite_added"}, pub.types(mykafka.TopicUserEvents))

	_, err = svc.Add(ctx, 1, 404)
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestFavoritesService_RemoveFirstAndClear(t *testing.T) {
	pub := &recordingPublisher{}
	svc := newFavorites(pub)
	ctx := context.Background()

	_, _ = svc.Add(ctx, 1, 4)
	_, _ = svc.Add(ctx, 1, 7)
	_, _ = svc.Add(ctx, 1, 4)

	entries := svc.Remove(ctx, 1, 4)
	require.Len(t, entries, 2)
	assert.Equal(t, 7, entries[0].ID)
	assert.Equal(t, 4, entries[1].ID)

	svc.Remove(ctx, 1, 99)
	assert.Equal(t, []string{"favorite_added", "favorite_added", "favorite_added", "favorite_removed"},
		pub.types(mykafka.TopicUserEvents))

	svc.Clear(ctx, 1)
	assert.Empty(t, svc.List(ctx, 1))
}

func TestFavoritesService_AddToCart(t *testing.T) {
	svc := newFavorites(mykafka.NopPublisher{})
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, 1, 9)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Add(ctx, 1, 9)
	require.NoError(t, err)

	view, err := svc.AddToCart(ctx, 1, 9)
	require.NoError(t, err)
	assert.Equal(t, 1, view.TotalItems)
	assert.Len(t, svc.List(ctx, 1), 1)
}

func (s *FavoritesService) sessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func TestFavoritesService_EmptyListsAreDropped(t *testing.T) {
	svc := newFavorites(mykafka.NopPublisher{})
	ctx := context.Background()

	assert.Empty(t, svc.List(ctx, 3))
	_, err := svc.AddToCart(ctx, 3, 9)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, svc.sessionCount())

	_, err = svc.Add(ctx, 1, 4)
	require.NoError(t, err)
	_, err = svc.Add(ctx, 2, 4)
	require.NoError(t, err)
	assert.Equal(t, 2, svc.sessionCount())

	svc.Remove(ctx, 1, 4)
	svc.Clear(ctx, 2)
	assert.Equal(t, 0, svc.sessionCount())

	entries, err := svc.Add(ctx, 1, 7)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
