package facets

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/matst80/slask-facets/pkg/query"
)

// ProductFilter is the filter list entry sent to the commerce backend. Only
// one of the fields is set.
type ProductFilter struct {
	ProductVendor string         `json:"productVendor,omitempty"`
	ProductType   string         `json:"productType,omitempty"`
	VariantOption *VariantOption `json:"variantOption,omitempty"`
	Price         *PriceFilter   `json:"price,omitempty"`
}

type VariantOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type PriceFilter struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// Extraction is the decoded filter state of one URL.
type Extraction struct {
	Active  []ActiveFilter
	Filters []ProductFilter
}

// Extract decodes the active filters and the backend filter list from params
// in a single pass, keeping URL order.
func Extract(params query.Params, knownListKeys []string) Extraction {
	result := Extraction{
		Active:  []ActiveFilter{},
		Filters: []ProductFilter{},
	}
	for _, entry := range params.Entries() {
		switch {
		case slices.Contains(knownListKeys, entry.Key):
			result.Active = append(result.Active, ActiveFilter{
				Label:    entry.Value,
				Name:     displayName(entry.Key),
				UrlParam: UrlParam{Key: entry.Key, Value: entry.Value},
			})
			result.Filters = append(result.Filters, listFilter(entry))
		case strings.Contains(entry.Key, VariantOptionKey):
			name, value := splitVariant(entry.Value)
			result.Active = append(result.Active, ActiveFilter{
				Label:    value,
				Name:     name,
				UrlParam: UrlParam{Key: entry.Key, Value: entry.Value},
			})
			result.Filters = append(result.Filters, ProductFilter{
				VariantOption: &VariantOption{Name: name, Value: value},
			})
		}
	}

	var price *PriceFilter
	if raw, ok := params.Get(MinPriceKey); ok {
		n := LenientPrice(raw)
		price = &PriceFilter{Min: &n}
		result.Active = append(result.Active, ActiveFilter{
			Label:    "Min: $" + FormatPrice(n),
			Name:     MinPriceKey,
			UrlParam: UrlParam{Key: MinPriceKey, Value: raw},
		})
	}
	if raw, ok := params.Get(MaxPriceKey); ok {
		n := LenientPrice(raw)
		if price == nil {
			price = &PriceFilter{}
		}
		price.Max = &n
		result.Active = append(result.Active, ActiveFilter{
			Label:    "Max: $" + FormatPrice(n),
			Name:     MaxPriceKey,
			UrlParam: UrlParam{Key: MaxPriceKey, Value: raw},
		})
	}
	if price != nil {
		result.Filters = append(result.Filters, ProductFilter{Price: price})
	}
	return result
}

// ExtractActiveFilters returns the active filter descriptors of params.
func ExtractActiveFilters(params query.Params, knownListKeys []string) []ActiveFilter {
	return Extract(params, knownListKeys).Active
}

func listFilter(entry query.Param) ProductFilter {
	switch entry.Key {
	case ProductVendorKey:
		return ProductFilter{ProductVendor: entry.Value}
	case ProductTypeKey:
		return ProductFilter{ProductType: entry.Value}
	}
	return ProductFilter{}
}

// ParsePrice parses a price parameter. Negative and non finite numbers are
// rejected. An empty string is zero.
func ParsePrice(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, true
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
		return 0, false
	}
	return n, true
}

// LenientPrice is ParsePrice with 0 for anything unparsable.
func LenientPrice(raw string) float64 {
	n, _ := ParsePrice(raw)
	return n
}

func FormatPrice(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// PriceBounds returns the current bounds of the price range filter, nil when
// a bound is absent or cannot be parsed.
func PriceBounds(params query.Params) (min *float64, max *float64) {
	if raw, ok := params.Get(MinPriceKey); ok {
		if n, valid := ParsePrice(raw); valid {
			min = &n
		}
	}
	if raw, ok := params.Get(MaxPriceKey); ok {
		if n, valid := ParsePrice(raw); valid {
			max = &n
		}
	}
	return min, max
}
