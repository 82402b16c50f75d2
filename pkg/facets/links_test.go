package facets

import (
	"strings"
	"testing"

	"github.com/matst80/slask-facets/pkg/query"
	"github.com/stretchr/testify/assert"
)

const basePath = "/collections/shoes"

func variantFilter(name, value string) ActiveFilter {
	return ActiveFilter{
		Label:    value,
		Name:     name,
		UrlParam: UrlParam{Key: VariantOptionKey, Value: name + ":" + value},
	}
}

func TestResetAndRemoveScope(t *testing.T) {
	params := query.Parse("variantOption=Color:Red&variantOption=Color:Blue&variantOption=Size:M")
	red := variantFilter("Color", "Red")

	assert.Equal(t, basePath+"?variantOption=Size%3AM", ResetLink(red, params, basePath))
	assert.Equal(t, basePath+"?variantOption=Color%3ABlue&variantOption=Size%3AM", RemoveLink(red, params, basePath))
	assert.Equal(t, "variantOption=Color%3ARed&variantOption=Color%3ABlue&variantOption=Size%3AM", params.Encode())
}

func TestResetMatchesOptionNameOnly(t *testing.T) {
	params := query.Parse("variantOption=Color:Red&variantOption=Size:Color-block")
	assert.Equal(t, basePath+"?variantOption=Size%3AColor-block", ResetLink(variantFilter("Color", "Red"), params, basePath))
}

func TestResetAndRemoveScalarKeys(t *testing.T) {
	params := query.Parse("productVendor=Acme&productType=Shoes")
	vendor := ActiveFilter{Label: "Acme", Name: "Vendor", UrlParam: UrlParam{Key: ProductVendorKey, Value: "Acme"}}

	assert.Equal(t, basePath+"?productType=Shoes", ResetLink(vendor, params, basePath))
	assert.Equal(t, basePath+"?productType=Shoes", RemoveLink(vendor, params, basePath))
}

func TestPriceResetLink(t *testing.T) {
	params := query.Parse("minPrice=10&productType=Shoes&maxPrice=50")
	assert.Equal(t, basePath+"?productType=Shoes", PriceResetLink(params, basePath))
	assert.Equal(t, basePath+"?", PriceResetLink(query.Parse("minPrice=1"), basePath))
}

func TestOptionLinkRoundTrip(t *testing.T) {
	filter := FilterDefinition{Id: "filter.v.option.color", Label: "Color", Type: List}
	params := query.Parse("productType=Shoes")

	href := OptionLink(filter, red, params, basePath)
	assert.Equal(t, basePath+"?productType=Shoes&variantOption=Color%3ARed", href)

	_, rawQuery, _ := strings.Cut(href, "?")
	active := ExtractActiveFilters(query.Parse(rawQuery), KnownListKeys)
	assert.Contains(t, active, variantFilter("Color", "Red"))
}

func TestOptionLinksFromOneBaseDoNotInterfere(t *testing.T) {
	filter := FilterDefinition{Id: "color", Label: "Color", Type: List}
	params := query.Parse("variantOption=Size:M")

	first := OptionLink(filter, red, params, basePath)
	second := OptionLink(filter, Input{VariantFacet{Name: "Color", Value: "Blue"}}, params, basePath)

	assert.Equal(t, basePath+"?variantOption=Size%3AM&variantOption=Color%3ARed", first)
	assert.Equal(t, basePath+"?variantOption=Size%3AM&variantOption=Color%3ABlue", second)
}
