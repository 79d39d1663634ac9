// Package cart implements the shopping-cart aggregate.
//
// A Cart keeps at most one Line per product id, in insertion order. It is not
// safe for concurrent use; the owner serializes access.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/coffee_shop/internal/catalog"
)

type Line struct {
	Product  catalog.Product
	Quantity int
}

func (l Line) Total() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type ChangeKind int

const (
	LineAdded ChangeKind = iota + 1
	QuantityChanged
	LineRemoved
	Cleared
)

func (k ChangeKind) String() string {
	switch k {
	case LineAdded:
		return "line_added"
	case QuantityChanged:
		return "quantity_changed"
	case LineRemoved:
		return "line_removed"
	case Cleared:
		return "cleared"
	}
	return "unknown"
}

// Change describes one applied mutation. Quantity is the line's quantity
// after the change, 0 for removals and clears.
type Change struct {
	Kind      ChangeKind
	ProductID int
	Quantity  int
}

type Observer interface {
	CartChanged(Change)
}

type ObserverFunc func(Change)

func (f ObserverFunc) CartChanged(c Change) { f(c) }

type Cart struct {
	lines     []Line
	observers map[int]Observer
	nextObs   int
}

func New() *Cart {
	return &Cart{}
}

// Subscribe registers o and returns a function that unregisters it.
func (c *Cart) Subscribe(o Observer) (unsubscribe func()) {
	if c.observers == nil {
		c.observers = make(map[int]Observer)
	}
	id := c.nextObs
	c.nextObs++
	c.observers[id] = o
	return func() { delete(c.observers, id) }
}

// notify delivers ch to the observers registered when the change was made.
func (c *Cart) notify(ch Change) {
	n := c.nextObs
	for id := 0; id < n; id++ {
		if o, ok := c.observers[id]; ok {
			o.CartChanged(ch)
		}
	}
}

func (c *Cart) index(productID int) int {
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) Add(p catalog.Product) {
	if i := c.index(p.ID); i >= 0 {
		c.lines[i].Quantity++
		c.notify(Change{Kind: QuantityChanged, ProductID: p.ID, Quantity: c.lines[i].Quantity})
		return
	}
	c.lines = append(c.lines, Line{Product: p, Quantity: 1})
	c.notify(Change{Kind: LineAdded, ProductID: p.ID, Quantity: 1})
}

func (c *Cart) Remove(productID int) {
	i := c.index(productID)
	if i < 0 {
		return
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	c.notify(Change{Kind: LineRemoved, ProductID: productID})
}

// SetQuantity removes the line when quantity <= 0. For a product that is not
// in the cart it does nothing; Add is the only way to create a line.
func (c *Cart) SetQuantity(productID, quantity int) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}
	i := c.index(productID)
	if i < 0 || c.lines[i].Quantity == quantity {
		return
	}
	c.lines[i].Quantity = quantity
	c.notify(Change{Kind: QuantityChanged, ProductID: productID, Quantity: quantity})
}

func (c *Cart) Clear() {
	if len(c.lines) == 0 {
		return
	}
	c.lines = nil
	c.notify(Change{Kind: Cleared})
}

func (c *Cart) TotalItemCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Total())
	}
	return total
}

func (c *Cart) QuantityOf(productID int) int {
	if i := c.index(productID); i >= 0 {
		return c.lines[i].Quantity
	}
	return 0
}

func (c *Cart) Lines() []Line {
	return append([]Line(nil), c.lines...)
}

func (c *Cart) Len() int      { return len(c.lines) }
func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }
