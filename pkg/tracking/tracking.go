package tracking

import (
	"net/http"

	"github.com/matst80/slask-facets/pkg/facets"
)

type Tracking interface {
	TrackSession(sessionId int, r *http.Request)
	TrackFilters(sessionId int, view FilterView, r *http.Request)
	Close() error
}

// FilterView is what a visitor was shown for one collection page.
type FilterView struct {
	Handle       string
	Active       []facets.ActiveFilter
	Filters      []facets.ProductFilter
	ProductCount int
}
