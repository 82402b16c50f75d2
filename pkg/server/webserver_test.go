package server

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/matst80/slask-facets/pkg/catalog"
	"github.com/matst80/slask-facets/pkg/facets"
	"github.com/matst80/slask-facets/pkg/tracking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	mu     sync.Mutex
	result *catalog.Result
	err    error
	last   catalog.Query
}

func (f *fakeBackend) Collection(ctx context.Context, handle string, q catalog.Query) (*catalog.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.last = q
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeTracker struct {
	mu    sync.Mutex
	views []tracking.FilterView
}

func (f *fakeTracker) TrackSession(int, *http.Request) {}

func (f *fakeTracker) TrackFilters(sessionId int, view tracking.FilterView, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.views = append(f.views, view)
}

func (f *fakeTracker) Close() error { return nil }

func (f *fakeTracker) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.views)
}

var colorFilter = facets.FilterDefinition{
	Id: "filter.v.option.color", Label: "Color", Type: facets.List,
	Values: []facets.FilterOptionValue{
		{Id: "red", Label: "Red", Count: 2, Input: `{"variantOption":{"name":"Color","value":"Red"}}`},
	},
}

func newTestServer(backend catalog.Backend, tracker tracking.Tracking) *WebServer {
	return &WebServer{
		Backend:        backend,
		Tracking:       tracker,
		ProductCount:   24,
		VisibleFilters: []string{"Color"},
	}
}

func TestGetCollection(t *testing.T) {
	backend := &fakeBackend{result: &catalog.Result{
		Handle:      "shoes",
		Title:       "Shoes",
		Products:    []catalog.Product{{Id: "1"}, {Id: "2"}},
		Filters:     []facets.FilterDefinition{colorFilter},
		HasNextPage: true,
	}}
	tracker := &fakeTracker{}
	mux := newTestServer(backend, tracker).ClientHandler()

	r := httptest.NewRequest("GET", "/api/collections/shoes?productVendor=Acme&first=2", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Handle      string      `json:"handle"`
		HasNextPage bool        `json:"hasNextPage"`
		Facets      facets.View `json:"facets"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "shoes", body.Handle)
	assert.True(t, body.HasNextPage)
	assert.Equal(t, 2, body.Facets.ProductCount)
	require.Len(t, body.Facets.Filters, 1)
	assert.Equal(t, "/collections/shoes?productVendor=Acme&first=2&variantOption=Color%3ARed", body.Facets.Filters[0].Options[0].Href)
	require.Len(t, body.Facets.Active, 1)
	assert.Equal(t, "Vendor", body.Facets.Active[0].Name)
	assert.Equal(t, "/collections/shoes?first=2", body.Facets.Active[0].Href)

	assert.Equal(t, 2, backend.last.First)
	assert.Equal(t, []facets.ProductFilter{{ProductVendor: "Acme"}}, backend.last.Filters)
	assert.Eventually(t, func() bool { return tracker.count() == 1 }, time.Second, 5*time.Millisecond)
}

func TestGetCollectionNotFound(t *testing.T) {
	backend := &fakeBackend{err: catalog.ErrCollectionNotFound}
	mux := newTestServer(backend, nil).ClientHandler()

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/api/collections/hats", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetCollectionBackendFailure(t *testing.T) {
	backend := &fakeBackend{err: errors.New("backend down")}
	mux := newTestServer(backend, nil).ClientHandler()

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/api/collections/shoes", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetCollectionEncodeFailure(t *testing.T) {
	backend := &fakeBackend{result: &catalog.Result{
		Handle:   "shoes",
		Products: []catalog.Product{{Id: "1", Variants: []catalog.Variant{{Price: math.NaN()}}}},
	}}
	mux := newTestServer(backend, nil).ClientHandler()

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/api/collections/shoes", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal error\n", w.Body.String())
}

func TestGetCollectionBadRequest(t *testing.T) {
	mux := newTestServer(&fakeBackend{}, nil).ClientHandler()

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/api/collections/shoes?first=many", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCollectionEmptyState(t *testing.T) {
	backend := &fakeBackend{result: &catalog.Result{Handle: "shoes", Products: []catalog.Product{}}}
	mux := newTestServer(backend, nil).ClientHandler()

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/api/collections/shoes", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"products":[]`)
	assert.Equal(t, 24, backend.last.First)
}

func TestGetCollectionRequest(t *testing.T) {
	req, err := GetCollectionRequest(url.Values{"first": {"9999"}, "variantOption": {"Color:Red"}}, 24)
	require.NoError(t, err)
	assert.Equal(t, maxProductCount, req.First)

	req, err = GetCollectionRequest(url.Values{}, 24)
	require.NoError(t, err)
	assert.Equal(t, 24, req.First)
}
