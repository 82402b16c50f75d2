package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"path"

	"github.com/matst80/slask-facets/pkg/catalog"
	"github.com/matst80/slask-facets/pkg/common"
	"github.com/matst80/slask-facets/pkg/facets"
	"github.com/matst80/slask-facets/pkg/query"
	"github.com/matst80/slask-facets/pkg/tracking"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	collectionViews = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_collection_views_total",
		Help: "The total number of rendered collection facet views",
	})
	collectionErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_collection_errors_total",
		Help: "The total number of failed collection requests",
	}, []string{"reason"})
	activeFilterCount = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "storefront_active_filters",
		Help:    "Number of active filters per collection view",
		Buckets: []float64{0, 1, 2, 3, 5, 8, 13},
	})
)

type WebServer struct {
	Backend        catalog.Backend
	Tracking       tracking.Tracking
	PagePath       string
	ProductCount   int
	VisibleFilters []string
}

type CollectionResponse struct {
	*catalog.Result
	Facets *facets.View `json:"facets"`
}

func (ws *WebServer) basePath(handle string) string {
	root := ws.PagePath
	if root == "" {
		root = "/collections"
	}
	return path.Join(root, handle)
}

func (ws *WebServer) GetCollection(w http.ResponseWriter, r *http.Request, sessionId int, enc *json.Encoder) error {
	handle := r.PathValue("handle")
	req, err := GetCollectionRequest(r.URL.Query(), ws.ProductCount)
	if err != nil {
		collectionErrors.WithLabelValues("request").Inc()
		return common.NewHttpError(http.StatusBadRequest, err.Error())
	}

	params := query.Parse(r.URL.RawQuery)
	extraction := facets.Extract(params, facets.KnownListKeys)
	res, err := ws.Backend.Collection(r.Context(), handle, catalog.Query{
		Filters: extraction.Filters,
		First:   req.First,
	})
	if errors.Is(err, catalog.ErrCollectionNotFound) {
		collectionErrors.WithLabelValues("not_found").Inc()
		return common.NewHttpError(http.StatusNotFound, "collection not found")
	}
	if err != nil {
		collectionErrors.WithLabelValues("backend").Inc()
		return err
	}

	view, err := facets.BuildView(res.Filters, extraction.Active, params, ws.basePath(handle), ws.VisibleFilters, len(res.Products))
	if err != nil {
		collectionErrors.WithLabelValues("filter_input").Inc()
		return err
	}
	collectionViews.Inc()
	activeFilterCount.Observe(float64(len(extraction.Active)))

	if ws.Tracking != nil {
		go ws.Tracking.TrackFilters(sessionId, tracking.FilterView{
			Handle:       handle,
			Active:       extraction.Active,
			Filters:      extraction.Filters,
			ProductCount: len(res.Products),
		}, r)
	}

	w.Header().Set("Cache-Control", "private, max-age=60")
	return enc.Encode(CollectionResponse{Result: res, Facets: view})
}

// ClientHandler registers the storefront routes on a new mux.
func (ws *WebServer) ClientHandler() *http.ServeMux {
	mux := http.NewServeMux()
	var tracker common.SessionTracker
	if ws.Tracking != nil {
		tracker = ws.Tracking
	}
	mux.HandleFunc("GET /api/collections/{handle}", common.JsonHandler(tracker, ws.GetCollection))
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return mux
}
