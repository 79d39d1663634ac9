package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/coffee_shop/internal/catalog"
)

func product(id int, price string) catalog.Product {
	return catalog.Product{ID: id, Name: "p", Price: decimal.RequireFromString(price)}
}

func TestCart_AddTwiceIncrementsSingleLine(t *testing.T) {
	c := New()
	p := product(1, "10.00")

	c.Add(p)
	c.Add(p)

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 2, c.QuantityOf(1))
}

func TestCart_DistinctProductsKeepInsertionOrder(t *testing.T) {
	c := New()

	c.Add(product(2, "5.00"))
	c.Add(product(1, "10.00"))

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 2, lines[0].Product.ID)
	assert.Equal(t, 1, lines[1].Product.ID)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, 1, lines[1].Quantity)
	assert.Equal(t, 2, c.TotalItemCount())
}

func TestCart_SetQuantityNonPositiveRemoves(t *testing.T) {
	for _, q := range []int{0, -1, -50} {
		c := New()
		c.Add(product(1, "10.00"))
		c.Add(product(2, "5.00"))

		c.SetQuantity(1, q)

		assert.Equal(t, 0, c.QuantityOf(1), "quantity %d", q)
		assert.Equal(t, 1, c.Len())
	}
}

func TestCart_SetQuantityOnAbsentProductIsNoop(t *testing.T) {
	c := New()

	c.SetQuantity(7, 3)

	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.QuantityOf(7))
}

func TestCart_RemoveAbsentIsNoop(t *testing.T) {
	c := New()
	c.Add(product(1, "10.00"))

	c.Remove(99)

	assert.Equal(t, 1, c.Len())
}

func TestCart_TotalPrice(t *testing.T) {
	c := New()
	assert.True(t, c.TotalPrice().IsZero())

	c.Add(product(1, "10.00"))
	c.Add(product(2, "2.35"))
	c.Add(product(2, "2.35"))

	assert.Equal(t, "14.70", c.TotalPrice().StringFixed(2))

	sum := decimal.Zero
	for _, l := range c.Lines() {
		sum = sum.Add(l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	assert.True(t, sum.Equal(c.TotalPrice()))
}

func TestCart_ClearResetsTotals(t *testing.T) {
	c := New()
	c.Add(product(1, "10.00"))
	c.Add(product(2, "5.00"))
	c.SetQuantity(2, 4)

	c.Clear()

	assert.Equal(t, 0, c.TotalItemCount())
	assert.True(t, c.TotalPrice().IsZero())
	assert.True(t, c.IsEmpty())
}

func TestCart_ScenarioAddThreeThenRemove(t *testing.T) {
	c := New()
	p := product(1, "10.00")

	c.Add(p)
	c.Add(p)
	c.Add(p)
	assert.Equal(t, 3, c.QuantityOf(1))
	assert.Equal(t, "30.00", c.TotalPrice().StringFixed(2))

	c.Remove(1)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.TotalItemCount())
}

func TestCart_ScenarioSetQuantity(t *testing.T) {
	c := New()

	c.Add(product(1, "10.00"))
	c.Add(product(2, "5.00"))
	c.SetQuantity(1, 5)

	assert.Equal(t, 6, c.TotalItemCount())
	assert.Equal(t, "55.00", c.TotalPrice().StringFixed(2))
}

func TestCart_LinesIsACopy(t *testing.T) {
	c := New()
	c.Add(product(1, "10.00"))

	lines := c.Lines()
	lines[0].Quantity = 42

	assert.Equal(t, 1, c.QuantityOf(1))
}

func TestCart_ObserverSeesAppliedChanges(t *testing.T) {
	c := New()
	var got []Change
	unsubscribe := c.Subscribe(ObserverFunc(func(ch Change) {
		got = append(got, ch)
		// state is already updated when observers run
		if ch.Kind != Cleared && ch.Kind != LineRemoved {
			assert.Equal(t, ch.Quantity, c.QuantityOf(ch.ProductID))
		}
	}))

	c.Add(product(1, "10.00"))
	c.Add(product(1, "10.00"))
	c.SetQuantity(1, 2) // unchanged
	c.SetQuantity(9, 2) // absent
	c.Remove(9)         // absent
	c.SetQuantity(1, 5)
	c.Remove(1)
	c.Clear() // already empty
	c.Add(product(3, "1.00"))
	c.Clear()

	want := []Change{
		{Kind: LineAdded, ProductID: 1, Quantity: 1},
		{Kind: QuantityChanged, ProductID: 1, Quantity: 2},
		{Kind: QuantityChanged, ProductID: 1, Quantity: 5},
		{Kind: LineRemoved, ProductID: 1},
		{Kind: LineAdded, ProductID: 3, Quantity: 1},
		{Kind: Cleared},
	}
	assert.Equal(t, want, got)

	unsubscribe()
	c.Add(product(4, "1.00"))
	assert.Len(t, got, len(want))
}

func TestCart_ObserverAddedDuringCallbackSeesLaterChangesOnly(t *testing.T) {
	c := New()
	var late []Change
	subscribed := false
	c.Subscribe(ObserverFunc(func(Change) {
		if !subscribed {
			subscribed = true
			c.Subscribe(ObserverFunc(func(ch Change) { late = append(late, ch) }))
		}
	}))

	c.Add(product(1, "10.00"))
	assert.Empty(t, late)

	c.Add(product(1, "10.00"))
	assert.Equal(t, []Change{{Kind: QuantityChanged, ProductID: 1, Quantity: 2}}, late)
}

func TestChangeKind_String(t *testing.T) {
	assert.Equal(t, "line_added", LineAdded.String())
	assert.Equal(t, "cleared", Cleared.String())
	assert.Equal(t, "unknown", ChangeKind(0).String())
}
