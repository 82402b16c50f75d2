package facets

import (
	"testing"

	"github.com/matst80/slask-facets/pkg/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var definitions = []FilterDefinition{
	{
		Id: "filter.v.option.color", Label: "Color", Type: List,
		Values: []FilterOptionValue{
			{Id: "red", Label: "Red", Count: 3, Input: `{"variantOption":{"name":"Color","value":"Red"}}`},
			{Id: "blue", Label: "Blue", Count: 1, Input: `{"variantOption":{"name":"Color","value":"Blue"}}`},
		},
	},
	{
		Id: "filter.p.vendor", Label: "Vendor", Type: List,
		Values: []FilterOptionValue{{Id: "acme", Label: "Acme", Count: 4, Input: `{"productVendor":"Acme"}`}},
	},
	{Id: "filter.p.product_type", Label: "Product type", Type: List},
	{
		Id: "filter.v.price", Label: "Price", Type: PriceRange,
		Values: []FilterOptionValue{{Id: "price", Label: "Price", Input: `{"price":{"min":0,"max":100}}`}},
	},
}

func TestBuildView(t *testing.T) {
	params := query.Parse("variantOption=Color:Red&minPrice=10")
	active := ExtractActiveFilters(params, KnownListKeys)

	view, err := BuildView(definitions, active, params, basePath, []string{"Price", "Product type", "Color"}, 4)
	require.NoError(t, err)

	require.Len(t, view.Filters, 2)
	color := view.Filters[0]
	assert.Equal(t, 1, color.Selected)
	assert.Equal(t, basePath+"?minPrice=10", color.ResetHref)
	assert.Equal(t, []OptionView{
		{Id: "red", Label: "Red", Count: 3, Href: basePath + "?minPrice=10", Active: true},
		{Id: "blue", Label: "Blue", Count: 1, Href: basePath + "?variantOption=Color%3ARed&minPrice=10&variantOption=Color%3ABlue"},
	}, color.Options)

	price := view.Filters[1]
	assert.Equal(t, PriceRange, price.Type)
	assert.Equal(t, 1, price.Selected)
	assert.Equal(t, basePath+"?variantOption=Color%3ARed", price.ResetHref)
	assert.Equal(t, &PriceRangeView{Min: ptr(10)}, price.Price)

	require.Len(t, view.Active, 2)
	assert.Equal(t, "Red", view.Active[0].Label)
	assert.Equal(t, basePath+"?minPrice=10", view.Active[0].Href)
	assert.Equal(t, "Min: $10", view.Active[1].Label)
	assert.Equal(t, basePath+"?variantOption=Color%3ARed", view.Active[1].Href)
	assert.Equal(t, 4, view.ProductCount)
}

func TestBuildViewAllVisible(t *testing.T) {
	view, err := BuildView(definitions, nil, query.Params{}, basePath, nil, 0)
	require.NoError(t, err)
	assert.Len(t, view.Filters, 3)
	assert.Empty(t, view.Active)
	assert.Equal(t, 0, view.Filters[1].Selected)
	assert.Empty(t, view.Filters[1].ResetHref)
}

func TestBuildViewMalformedInput(t *testing.T) {
	broken := []FilterDefinition{{
		Id: "broken", Label: "Color", Type: List,
		Values: []FilterOptionValue{{Id: "x", Input: `{"variantOption":`}},
	}}
	_, err := BuildView(broken, nil, query.Params{}, basePath, nil, 0)
	assert.ErrorIs(t, err, ErrMalformedInput)
}
