package facets

import (
	"testing"

	"github.com/matst80/slask-facets/pkg/query"
	"github.com/stretchr/testify/assert"
)

func ptr(f float64) *float64 {
	return &f
}

func TestExtractKeepsUrlOrder(t *testing.T) {
	params := query.Parse("maxPrice=50&productType=Shoes&variantOption=Color:Red&sort=price&productVendor=Acme&minPrice=abc")
	result := Extract(params, KnownListKeys)

	assert.Equal(t, []ActiveFilter{
		{Label: "Shoes", Name: "Product type", UrlParam: UrlParam{Key: ProductTypeKey, Value: "Shoes"}},
		{Label: "Red", Name: "Color", UrlParam: UrlParam{Key: VariantOptionKey, Value: "Color:Red"}},
		{Label: "Acme", Name: "Vendor", UrlParam: UrlParam{Key: ProductVendorKey, Value: "Acme"}},
		{Label: "Min: $0", Name: MinPriceKey, UrlParam: UrlParam{Key: MinPriceKey, Value: "abc"}},
		{Label: "Max: $50", Name: MaxPriceKey, UrlParam: UrlParam{Key: MaxPriceKey, Value: "50"}},
	}, result.Active)

	assert.Equal(t, []ProductFilter{
		{ProductType: "Shoes"},
		{VariantOption: &VariantOption{Name: "Color", Value: "Red"}},
		{ProductVendor: "Acme"},
		{Price: &PriceFilter{Min: ptr(0), Max: ptr(50)}},
	}, result.Filters)
}

func TestExtractMultiValuedVariants(t *testing.T) {
	params := query.Parse("variantOption=Color:Red&variantOption=Color:Blue&variantOption=Size:M")
	active := ExtractActiveFilters(params, KnownListKeys)

	assert.Len(t, active, 3)
	assert.Equal(t, "Blue", active[1].Label)
	assert.Equal(t, "Color", active[1].Name)
	assert.Equal(t, "Size", active[2].Name)
}

func TestExtractVariantValueWithColon(t *testing.T) {
	active := ExtractActiveFilters(query.Parse("variantOption=Ratio:16:9"), KnownListKeys)
	assert.Equal(t, "Ratio", active[0].Name)
	assert.Equal(t, "16:9", active[0].Label)
}

func TestExtractMalformedPrice(t *testing.T) {
	active := ExtractActiveFilters(query.Parse("minPrice=abc&maxPrice=-4"), KnownListKeys)
	assert.Equal(t, "Min: $0", active[0].Label)
	assert.Equal(t, "Max: $0", active[1].Label)
	assert.Equal(t, "abc", active[0].UrlParam.Value)
}

func TestExtractFormatsPrices(t *testing.T) {
	active := ExtractActiveFilters(query.Parse("minPrice=12.50"), KnownListKeys)
	assert.Equal(t, "Min: $12.5", active[0].Label)
}

func TestExtractEmpty(t *testing.T) {
	result := Extract(query.Parse("sort=price&page=2"), KnownListKeys)
	assert.Empty(t, result.Active)
	assert.Empty(t, result.Filters)
}

func TestPriceBounds(t *testing.T) {
	min, max := PriceBounds(query.Parse("minPrice=10&maxPrice=abc"))
	assert.Equal(t, ptr(10), min)
	assert.Nil(t, max)
}
