package server

import (
	"net/url"

	"github.com/gorilla/schema"
)

// CollectionRequest holds the non filter parameters of a collection page.
// Filter parameters are read by the facets package.
type CollectionRequest struct {
	First int `schema:"first"`
}

const maxProductCount = 250

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func GetCollectionRequest(values url.Values, defaultCount int) (*CollectionRequest, error) {
	req := &CollectionRequest{}
	if err := decoder.Decode(req, values); err != nil {
		return nil, err
	}
	if req.First == 0 {
		req.First = defaultCount
	}
	req.First = clamp(req.First, 1, maxProductCount)
	return req, nil
}
