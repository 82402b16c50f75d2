package catalog

import (
	"github.com/matst80/slask-facets/pkg/facets"
)

type predicate func(p *Product) bool

// groupFilters groups filters so that values of the same dimension are
// alternatives and different dimensions must all match.
func groupFilters(filters []facets.ProductFilter) map[string][]predicate {
	groups := map[string][]predicate{}
	add := func(key string, fn predicate) {
		groups[key] = append(groups[key], fn)
	}
	for _, f := range filters {
		switch {
		case f.ProductVendor != "":
			vendor := f.ProductVendor
			add("vendor", func(p *Product) bool { return p.Vendor == vendor })
		case f.ProductType != "":
			productType := f.ProductType
			add("type", func(p *Product) bool { return p.ProductType == productType })
		case f.VariantOption != nil:
			option := *f.VariantOption
			add("option:"+option.Name, func(p *Product) bool { return hasOption(p, option) })
		case f.Price != nil:
			price := *f.Price
			add("price", func(p *Product) bool { return inPriceRange(p, price) })
		}
	}
	return groups
}

func hasOption(p *Product, option facets.VariantOption) bool {
	for _, v := range p.Variants {
		for _, o := range v.Options {
			if o.Name == option.Name && o.Value == option.Value {
				return true
			}
		}
	}
	return false
}

func inPriceRange(p *Product, price facets.PriceFilter) bool {
	for _, v := range p.Variants {
		if price.Min != nil && v.Price < *price.Min {
			continue
		}
		if price.Max != nil && v.Price > *price.Max {
			continue
		}
		return true
	}
	return false
}

func matchAll(p *Product, groups map[string][]predicate) bool {
	for _, group := range groups {
		matched := false
		for _, fn := range group {
			if fn(p) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// Filter returns the products matching filters, in catalog order.
func Filter(products []Product, filters []facets.ProductFilter) []Product {
	groups := groupFilters(filters)
	result := make([]Product, 0, len(products))
	for i := range products {
		if matchAll(&products[i], groups) {
			result = append(result, products[i])
		}
	}
	return result
}
