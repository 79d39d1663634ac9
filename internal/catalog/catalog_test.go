package catalog

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(products []Product) []int {
	out := make([]int, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestDefault_ListAllIsDeterministic(t *testing.T) {
	p := Default()

	first := p.ListAll()
	second := p.ListAll()

	require.Len(t, first, 12)
	assert.Equal(t, ids(first), ids(second))
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, ids(first))
}

func TestDefault_HotAndColdPreserveOrder(t *testing.T) {
	p := Default()

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, ids(p.ListHot()))
	assert.Equal(t, []int{7, 8, 9, 10, 11, 12}, ids(p.ListCold()))

	for _, prod := range p.ListHot() {
		assert.True(t, prod.IsHot())
	}
	for _, prod := range p.ListCold() {
		assert.False(t, prod.IsHot())
	}
}

func TestDefault_FeaturedSpansBothTemperatures(t *testing.T) {
	featured := Default().ListFeatured()

	require.Equal(t, []int{1, 4, 9}, ids(featured))
	assert.Equal(t, Hot, featured[0].Temperature)
	assert.Equal(t, Cold, featured[2].Temperature)
}

func TestDefault_AuxiliaryViews(t *testing.T) {
	p := Default()

	cats := p.ListCategories()
	require.Len(t, cats, 4)
	assert.Equal(t, "Coffee", cats[0].Name)
	assert.Equal(t, 24, cats[0].ItemCount)

	offers := p.ListSpecialOffers()
	require.Len(t, offers, 3)
	assert.Equal(t, "Happy Hour", offers[1].Title)
}

func TestProvider_ResultsAreCopies(t *testing.T) {
	p := Default()

	all := p.ListAll()
	all[0].Name = "changed"
	all[0].Price = decimal.NewFromInt(999)

	got, ok := p.Get(1)
	require.True(t, ok)
	assert.Equal(t, "Cappuccino", got.Name)
	assert.Equal(t, "10.00", got.Price.StringFixed(2))
}

func TestProvider_Get(t *testing.T) {
	p := Default()

	prod, ok := p.Get(9)
	require.True(t, ok)
	assert.Equal(t, "Cold Brew", prod.Name)

	_, ok = p.Get(404)
	assert.False(t, ok)
}

func TestNew_Validation(t *testing.T) {
	ten := decimal.NewFromInt(10)

	tests := []struct {
		name     string
		products []Product
		featured []int
	}{
		{name: "zero id", products: []Product{{ID: 0, Name: "x", Price: ten}}},
		{name: "duplicate id", products: []Product{{ID: 1, Name: "a", Price: ten}, {ID: 1, Name: "b", Price: ten}}},
		{name: "negative price", products: []Product{{ID: 1, Name: "a", Price: decimal.NewFromInt(-1)}}},
		{name: "rating too high", products: []Product{{ID: 1, Name: "a", Price: ten, Rating: 5.5}}},
		{name: "unknown featured", products: []Product{{ID: 1, Name: "a", Price: ten}}, featured: []int{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.products, tt.featured, nil, nil)
			require.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}
}

func TestTemperature_JSON(t *testing.T) {
	b, err := json.Marshal(Cold)
	require.NoError(t, err)
	assert.JSONEq(t, `"cold"`, string(b))

	var got Temperature
	require.NoError(t, json.Unmarshal([]byte(`"HOT"`), &got))
	assert.Equal(t, Hot, got)

	assert.Error(t, json.Unmarshal([]byte(`"lukewarm"`), &got))
}
