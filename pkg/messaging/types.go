package messaging

type ChangeTopic string

const (
	CatalogChanged ChangeTopic = "catalog_changed"
	FilterTracking ChangeTopic = "filter_tracking"
)

// CatalogChange announces that the collection data of a country was replaced
// on disk. Handles is empty when every collection changed.
type CatalogChange struct {
	Handles []string `json:"handles,omitempty"`
}
