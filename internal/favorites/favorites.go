// Package favorites holds a user's favorite products. Unlike the cart, the
// list permits duplicates and keeps no quantities.
package favorites

import "github.com/Skotchmaster/coffee_shop/internal/catalog"

type List struct {
	entries []catalog.Product
}

func New() *List {
	return &List{}
}

func (l *List) Add(p catalog.Product) {
	l.entries = append(l.entries, p)
}

// Remove deletes the first entry for productID and reports whether one was found.
func (l *List) Remove(productID int) bool {
	for i, p := range l.entries {
		if p.ID == productID {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveAll deletes every entry for productID and returns how many were removed.
func (l *List) RemoveAll(productID int) int {
	kept := l.entries[:0]
	for _, p := range l.entries {
		if p.ID != productID {
			kept = append(kept, p)
		}
	}
	n := len(l.entries) - len(kept)
	l.entries = kept
	return n
}

func (l *List) Clear() {
	l.entries = nil
}

func (l *List) Count() int {
	return len(l.entries)
}

func (l *List) Contains(productID int) bool {
	for _, p := range l.entries {
		if p.ID == productID {
			return true
		}
	}
	return false
}

func (l *List) Entries() []catalog.Product {
	return append([]catalog.Product(nil), l.entries...)
}
