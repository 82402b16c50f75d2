package facets

import (
	"strconv"
	"strings"

	"github.com/matst80/slask-facets/pkg/query"
)

// ApplyInput returns a copy of params with input applied for a filter of the
// given type. The params argument is never modified.
//
// LIST and BOOLEAN entries set single valued keys and toggle variantOption
// entries. PRICE_RANGE only ever sets minPrice/maxPrice; an unset bound keeps
// whatever value params already had.
func ApplyInput(filterType FilterType, input Input, params query.Params) query.Params {
	result := params.Clone()
	switch filterType {
	case PriceRange:
		for _, entry := range input {
			if price, ok := entry.(PriceFacet); ok {
				applyPrice(price, &result)
			}
		}
	case List, Boolean:
		for _, entry := range input {
			applyListEntry(entry, &result)
		}
	}
	return result
}

// ApplyRawInput decodes raw and applies it, see ParseInput and ApplyInput.
func ApplyRawInput(filterType FilterType, raw string, params query.Params) (query.Params, error) {
	input, err := ParseInput(filterType, raw)
	if err != nil {
		return query.Params{}, err
	}
	return ApplyInput(filterType, input, params), nil
}

func applyPrice(price PriceFacet, params *query.Params) {
	if price.Min.IsSet() {
		params.Set(MinPriceKey, strings.TrimSpace(string(price.Min)))
	}
	if price.Max.IsSet() {
		params.Set(MaxPriceKey, strings.TrimSpace(string(price.Max)))
	}
}

func applyListEntry(entry FacetInput, params *query.Params) {
	switch e := entry.(type) {
	case StringFacet:
		params.Set(e.Key, e.Value)
	case BooleanFacet:
		params.Set(e.Key, strconv.FormatBool(e.Value))
	case VariantFacet:
		toggleVariant(e.Encoded(), params)
	case PriceFacet:
		applyPrice(e, params)
	}
}

func toggleVariant(encoded string, params *query.Params) {
	if !params.Contains(VariantOptionKey, encoded) {
		params.Append(VariantOptionKey, encoded)
		return
	}
	rewriteVariants(params, func(v string) bool { return v != encoded })
}

// rewriteVariants drops every variantOption entry and appends back the ones
// keep accepts, in their original order.
func rewriteVariants(params *query.Params, keep func(string) bool) {
	all := params.GetAll(VariantOptionKey)
	params.Delete(VariantOptionKey)
	for _, v := range all {
		if keep(v) {
			params.Append(VariantOptionKey, v)
		}
	}
}

// IsOptionActive reports whether input is applied in params. With several
// entries only the last one decides.
func IsOptionActive(input Input, params query.Params) bool {
	active := false
	for _, entry := range input {
		switch e := entry.(type) {
		case StringFacet:
			current, ok := params.Get(e.Key)
			active = ok && strings.Contains(current, e.Value)
		case BooleanFacet:
			current, ok := params.Get(e.Key)
			active = ok && strings.Contains(current, strconv.FormatBool(e.Value))
		case VariantFacet:
			active = params.Contains(VariantOptionKey, e.Encoded())
		case PriceFacet:
			active = priceActive(e, params)
		}
	}
	return active
}

func priceActive(price PriceFacet, params query.Params) bool {
	if !price.Min.IsSet() && !price.Max.IsSet() {
		return false
	}
	if price.Min.IsSet() && !params.Contains(MinPriceKey, strings.TrimSpace(string(price.Min))) {
		return false
	}
	if price.Max.IsSet() && !params.Contains(MaxPriceKey, strings.TrimSpace(string(price.Max))) {
		return false
	}
	return true
}
