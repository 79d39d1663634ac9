package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/coffee_shop/internal/catalog"
	"github.com/Skotchmaster/coffee_shop/internal/mykafka"
)

func TestCartService_AddAndTotals(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewCartService(catalog.Default(), pub)
	ctx := context.Background()

	_, err := svc.Add(ctx, 1, 1)
	require.NoError(t, err)
	_, err = svc.Add(ctx, 1, 1)
	require.NoError(t, err)
	view, err := svc.Add(ctx, 1, 9)
	require.NoError(t, err)

	require.Len(t, view.Lines, 2)
	assert.Equal(t, 3, view.TotalItems)
	assert.Equal(t, "30.00", view.TotalPrice.StringFixed(2))

	assert.Equal(t,
		[]string{"cart_line_added", "cart_quantity_changed", "cart_line_added"},
		pub.types(mykafka.TopicCartEvents))
	assert.Equal(t, "1", pub.events[0].Key)
	assert.EqualValues(t, 1, pub.events[0].Event["userID"])
}

func TestCartService_UsersAreIsolated(t *testing.T) {
	svc := NewCartService(catalog.Default(), mykafka.NopPublisher{})
	ctx := context.Background()

	_, err := svc.Add(ctx, 1, 2)
	require.NoError(t, err)

	assert.Equal(t, 1, svc.Get(ctx, 1).TotalItems)
	assert.Equal(t, 0, svc.Get(ctx, 2).TotalItems)
}

func TestCartService_UnknownProduct(t *testing.T) {
	svc := NewCartService(catalog.Default(), nil)
	ctx := context.Background()

	_, err := svc.Add(ctx, 1, 404)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.SetQuantity(ctx, 1, 404, 2)
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestCartService_SetQuantityAndRemove(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewCartService(catalog.Default(), pub)
	ctx := context.Background()

	view, err := svc.SetQuantity(ctx, 1, 3, 4)
	require.NoError(t, err)
	assert.Empty(t, view.Lines)

	_, err = svc.Add(ctx, 1, 3)
	require.NoError(t, err)
	view, err = svc.SetQuantity(ctx, 1, 3, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, view.TotalItems)

	view, err = svc.SetQuantity(ctx, 1, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, view.TotalItems)

	view, err = svc.Remove(ctx, 1, 3)
	require.NoError(t, err)
	assert.Empty(t, view.Lines)

	assert.Equal(t,
		[]string{"cart_line_added", "cart_quantity_changed", "cart_line_removed"},
		pub.types(mykafka.TopicCartEvents))
}

func TestCartService_Clear(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewCartService(catalog.Default(), pub)
	ctx := context.Background()

	svc.Clear(ctx, 1)
	_, err := svc.Add(ctx, 1, 1)
	require.NoError(t, err)
	view := svc.Clear(ctx, 1)

	assert.Equal(t, 0, view.TotalItems)
	assert.True(t, view.TotalPrice.IsZero())
	assert.Equal(t, []string{"cart_line_added", "cart_cleared"}, pub.types(mykafka.TopicCartEvents))
}

func TestCartService_ConcurrentAdds(t *testing.T) {
	svc := NewCartService(catalog.Default(), &recordingPublisher{})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Add(ctx, uint(i%2)+1, 1)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 25, svc.Get(ctx, 1).TotalItems)
	assert.Equal(t, 25, svc.Get(ctx, 2).TotalItems)
	assert.Len(t, svc.Get(ctx, 1).Lines, 1)
}

func TestCartService_DrainKeepsCartOnFailure(t *testing.T) {
	svc := NewCartService(catalog.Default(), nil)
	ctx := context.Background()

	require.ErrorIs(t, svc.Drain(ctx, 1, func(CartView) error { return nil }), ErrEmptyCart)

	_, err := svc.Add(ctx, 1, 1)
	require.NoError(t, err)

	boom := assert.AnError
	require.ErrorIs(t, svc.Drain(ctx, 1, func(CartView) error { return boom }), boom)
	assert.Equal(t, 1, svc.Get(ctx, 1).TotalItems)

	require.NoError(t, svc.Drain(ctx, 1, func(v CartView) error {
		assert.Equal(t, "10.00", v.TotalPrice.StringFixed(2))
		return nil
	}))
	assert.Equal(t, 0, svc.Get(ctx, 1).TotalItems)
}

func (s *CartService) sessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func TestCartService_EmptyCartsAreDropped(t *testing.T) {
	svc := NewCartService(catalog.Default(), nil)
	ctx := context.Background()

	svc.Get(ctx, 7)
	assert.Equal(t, 0, svc.sessionCount())

	_, err := svc.Add(ctx, 1, 1)
	require.NoError(t, err)
	_, err = svc.Add(ctx, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, svc.sessionCount())

	_, err = svc.Remove(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, svc.sessionCount())

	require.NoError(t, svc.Drain(ctx, 2, func(CartView) error { return nil }))
	assert.Equal(t, 0, svc.sessionCount())

	view, err := svc.Add(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, view.TotalItems)
}

func TestCartService_ConcurrentAddAndClearKeepsLastState(t *testing.T) {
	svc := NewCartService(catalog.Default(), nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := svc.Add(ctx, 1, 1)
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			svc.Clear(ctx, 1)
		}()
	}
	wg.Wait()

	_, err := svc.Add(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, svc.sessionCount())
	assert.Positive(t, svc.Get(ctx, 1).TotalItems)
}
