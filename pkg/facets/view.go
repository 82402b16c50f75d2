package facets

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matst80/slask-facets/pkg/query"
)

type OptionView struct {
	Id     string `json:"id"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
	Href   string `json:"href"`
	Active bool   `json:"active,omitempty"`
}

type PriceRangeView struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

type FilterView struct {
	Id        string          `json:"id"`
	Label     string          `json:"label"`
	Type      FilterType      `json:"type"`
	Selected  int             `json:"selected"`
	ResetHref string          `json:"resetHref,omitempty"`
	Options   []OptionView    `json:"options,omitempty"`
	Price     *PriceRangeView `json:"price,omitempty"`
}

// Chip is an applied filter with the link removing it.
type Chip struct {
	ActiveFilter
	Href string `json:"href"`
}

type View struct {
	Filters      []FilterView `json:"filters"`
	Active       []Chip       `json:"active"`
	ProductCount int          `json:"productCount"`
}

// BuildView prepares the facet controls for one page. Filters without values
// are left out, and when visible is non empty only filters with one of those
// labels are kept.
func BuildView(filters []FilterDefinition, active []ActiveFilter, params query.Params, basePath string, visible []string, productCount int) (*View, error) {
	view := &View{
		Filters:      []FilterView{},
		Active:       make([]Chip, 0, len(active)),
		ProductCount: productCount,
	}
	for _, filter := range filters {
		if len(filter.Values) == 0 {
			continue
		}
		if len(visible) > 0 && !slices.Contains(visible, filter.Label) {
			continue
		}
		fv, err := buildFilterView(filter, active, params, basePath)
		if err != nil {
			return nil, err
		}
		view.Filters = append(view.Filters, fv)
	}
	for _, a := range active {
		view.Active = append(view.Active, Chip{ActiveFilter: a, Href: RemoveLink(a, params, basePath)})
	}
	return view, nil
}

func buildFilterView(filter FilterDefinition, active []ActiveFilter, params query.Params, basePath string) (FilterView, error) {
	fv := FilterView{
		Id:    filter.Id,
		Label: filter.Label,
		Type:  filter.Type,
	}
	if filter.Type == PriceRange {
		related := relatedPrice(active)
		fv.Selected = len(related)
		if len(related) > 0 {
			fv.ResetHref = PriceResetLink(params, basePath)
		}
		min, max := PriceBounds(params)
		fv.Price = &PriceRangeView{Min: min, Max: max}
		return fv, nil
	}

	related := relatedTo(filter, active)
	fv.Selected = len(related)
	if len(related) > 0 {
		fv.ResetHref = ResetLink(related[0], params, basePath)
	}
	fv.Options = make([]OptionView, 0, len(filter.Values))
	for _, option := range filter.Values {
		input, err := ParseInput(filter.Type, option.Input)
		if err != nil {
			return fv, fmt.Errorf("filter %s option %s: %w", filter.Id, option.Id, err)
		}
		fv.Options = append(fv.Options, OptionView{
			Id:     option.Id,
			Label:  option.Label,
			Count:  option.Count,
			Href:   OptionLink(filter, input, params, basePath),
			Active: IsOptionActive(input, params),
		})
	}
	return fv, nil
}

func relatedPrice(active []ActiveFilter) []ActiveFilter {
	result := []ActiveFilter{}
	for _, a := range active {
		if a.IsPrice() {
			result = append(result, a)
		}
	}
	return result
}

func relatedTo(filter FilterDefinition, active []ActiveFilter) []ActiveFilter {
	result := []ActiveFilter{}
	for _, a := range active {
		if strings.EqualFold(a.Name, filter.Label) {
			result = append(result, a)
		}
	}
	return result
}
