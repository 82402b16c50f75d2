package catalog

import (
	"context"
	"errors"

	"github.com/matst80/slask-facets/pkg/facets"
)

var ErrCollectionNotFound = errors.New("collection not found")

type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Variant struct {
	Id        string           `json:"id"`
	Price     float64          `json:"price"`
	Available bool             `json:"available"`
	Options   []SelectedOption `json:"options"`
}

type Product struct {
	Id          string    `json:"id"`
	Handle      string    `json:"handle"`
	Title       string    `json:"title"`
	Vendor      string    `json:"vendor"`
	ProductType string    `json:"productType"`
	Variants    []Variant `json:"variants"`
}

type Collection struct {
	Id          string                    `json:"id"`
	Handle      string                    `json:"handle"`
	Title       string                    `json:"title"`
	Description string                    `json:"description,omitempty"`
	Products    []Product                 `json:"products"`
	Filters     []facets.FilterDefinition `json:"filters"`
}

type Query struct {
	Filters []facets.ProductFilter
	First   int
}

type Result struct {
	Id          string                    `json:"id"`
	Handle      string                    `json:"handle"`
	Title       string                    `json:"title"`
	Description string                    `json:"description,omitempty"`
	Products    []Product                 `json:"products"`
	Filters     []facets.FilterDefinition `json:"-"`
	HasNextPage bool                      `json:"hasNextPage"`
}

// Backend runs collection queries for the storefront.
type Backend interface {
	Collection(ctx context.Context, handle string, q Query) (*Result, error)
}
