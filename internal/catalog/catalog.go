// Package catalog exposes the fixed coffee menu and its display views.
//
// A Provider is immutable once built: every accessor returns a fresh slice,
// so callers may sort or trim results without affecting other readers.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidCatalog = errors.New("invalid catalog")

type Temperature int

const (
	Hot Temperature = iota
	Cold
)

func (t Temperature) String() string {
	if t == Cold {
		return "cold"
	}
	return "hot"
}

func ParseTemperature(s string) (Temperature, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hot":
		return Hot, nil
	case "cold":
		return Cold, nil
	}
	return Hot, fmt.Errorf("unknown temperature %q", s)
}

func (t Temperature) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Temperature) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseTemperature(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Rating      float32         `json:"rating"`
	Image       string          `json:"image"`
	Temperature Temperature     `json:"temperature"`
}

func (p Product) IsHot() bool { return p.Temperature == Hot }

type Category struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	ItemCount int    `json:"item_count"`
}

type SpecialOffer struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Discount    string `json:"discount"`
	Image       string `json:"image"`
}

type Provider struct {
	products   []Product
	byID       map[int]int
	featured   []int
	categories []Category
	offers     []SpecialOffer
}

// New validates the dataset and builds a Provider. Featured ids must refer to
// products in the set; their order is the curated display order.
func New(products []Product, featuredIDs []int, categories []Category, offers []SpecialOffer) (*Provider, error) {
	p := &Provider{
		products:   append([]Product(nil), products...),
		byID:       make(map[int]int, len(products)),
		categories: append([]Category(nil), categories...),
		offers:     append([]SpecialOffer(nil), offers...),
	}

	for i, prod := range p.products {
		if prod.ID <= 0 {
			return nil, fmt.Errorf("product %q: id must be positive: %w", prod.Name, ErrInvalidCatalog)
		}
		if _, dup := p.byID[prod.ID]; dup {
			return nil, fmt.Errorf("product id %d is duplicated: %w", prod.ID, ErrInvalidCatalog)
		}
		if prod.Price.IsNegative() {
			return nil, fmt.Errorf("product %d: price cannot be negative: %w", prod.ID, ErrInvalidCatalog)
		}
		if prod.Rating < 0 || prod.Rating > 5 {
			return nil, fmt.Errorf("product %d: rating %.1f out of range: %w", prod.ID, prod.Rating, ErrInvalidCatalog)
		}
		p.byID[prod.ID] = i
	}

	for _, id := range featuredIDs {
		if _, ok := p.byID[id]; !ok {
			return nil, fmt.Errorf("featured id %d is not in the catalog: %w", id, ErrInvalidCatalog)
		}
		p.featured = append(p.featured, id)
	}

	return p, nil
}

func (p *Provider) ListAll() []Product {
	return append([]Product(nil), p.products...)
}

func (p *Provider) Filter(t Temperature) []Product {
	out := make([]Product, 0, len(p.products))
	for _, prod := range p.products {
		if prod.Temperature == t {
			out = append(out, prod)
		}
	}
	return out
}

func (p *Provider) ListHot() []Product  { return p.Filter(Hot) }
func (p *Provider) ListCold() []Product { return p.Filter(Cold) }

func (p *Provider) ListFeatured() []Product {
	out := make([]Product, 0, len(p.featured))
	for _, id := range p.featured {
		out = append(out, p.products[p.byID[id]])
	}
	return out
}

func (p *Provider) ListCategories() []Category {
	return append([]Category(nil), p.categories...)
}

func (p *Provider) ListSpecialOffers() []SpecialOffer {
	return append([]SpecialOffer(nil), p.offers...)
}

func (p *Provider) Get(id int) (Product, bool) {
	i, ok := p.byID[id]
	if !ok {
		return Product{}, false
	}
	return p.products[i], true
}
