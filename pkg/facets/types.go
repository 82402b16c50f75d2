package facets

type FilterType string

const (
	List       FilterType = "LIST"
	Boolean    FilterType = "BOOLEAN"
	PriceRange FilterType = "PRICE_RANGE"
)

// Query parameter keys understood by the storefront.
const (
	ProductVendorKey = "productVendor"
	ProductTypeKey   = "productType"
	VariantOptionKey = "variantOption"
	MinPriceKey      = "minPrice"
	MaxPriceKey      = "maxPrice"
)

// KnownListKeys are the single valued list parameters surfaced as active filters.
var KnownListKeys = []string{ProductVendorKey, ProductTypeKey}

// FilterDefinition is a facet as reported by the backend for one page load.
type FilterDefinition struct {
	Id     string              `json:"id"`
	Label  string              `json:"label"`
	Type   FilterType          `json:"type"`
	Values []FilterOptionValue `json:"values"`
}

// FilterOptionValue is one selectable value of a facet. Input is the
// serialized JSON filter input exactly as the backend returned it.
type FilterOptionValue struct {
	Id    string `json:"id"`
	Label string `json:"label"`
	Count int    `json:"count"`
	Input string `json:"input"`
}

type UrlParam struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ActiveFilter is a currently applied filter reconstructed from the URL.
type ActiveFilter struct {
	Label    string   `json:"label"`
	Name     string   `json:"name"`
	UrlParam UrlParam `json:"urlParam"`
}

func (a ActiveFilter) IsPrice() bool {
	return a.UrlParam.Key == MinPriceKey || a.UrlParam.Key == MaxPriceKey
}

func displayName(key string) string {
	switch key {
	case ProductVendorKey:
		return "Vendor"
	case ProductTypeKey:
		return "Product type"
	}
	return key
}
