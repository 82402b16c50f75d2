package catalog

import (
	"context"
	"fmt"
	"log"
	"os"
	"path"
	"sync"
	"time"

	"github.com/matst80/slask-facets/pkg/common/jsoncompat"
)

const collectionsFile = "collections.json"

// FileCatalog serves collections stored as JSON under RootFolder/Country.
type FileCatalog struct {
	mu          sync.RWMutex
	Country     string
	RootFolder  string
	collections map[string]*Collection
}

func NewFileCatalog(country, rootFolder string) *FileCatalog {
	return &FileCatalog{
		Country:     country,
		RootFolder:  rootFolder,
		collections: map[string]*Collection{},
	}
}

func (c *FileCatalog) GetFileName(name string) (string, string) {
	fileName := path.Join(c.RootFolder, c.Country, name)
	tmpFileName := fileName + ".tmp-" + fmt.Sprintf("%d", time.Now().UnixMilli())
	return fileName, tmpFileName
}

// Load replaces the in memory collections with the file contents.
func (c *FileCatalog) Load() error {
	name, _ := c.GetFileName(collectionsFile)
	data, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	var stored []Collection
	if err := jsoncompat.Unmarshal(data, &stored); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	collections := make(map[string]*Collection, len(stored))
	for i := range stored {
		collections[stored[i].Handle] = &stored[i]
	}
	c.mu.Lock()
	c.collections = collections
	c.mu.Unlock()
	log.Printf("Loaded %d collections from %s", len(collections), name)
	return nil
}

// Save writes collections through a temporary file and makes them current.
func (c *FileCatalog) Save(collections []Collection) error {
	fileName, tmpFileName := c.GetFileName(collectionsFile)
	if err := os.MkdirAll(path.Dir(fileName), 0o755); err != nil {
		return err
	}
	data, err := jsoncompat.Marshal(collections)
	if err != nil {
		return err
	}
	if err := os.WriteFile(tmpFileName, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmpFileName, fileName); err != nil {
		return err
	}
	return c.Load()
}

func (c *FileCatalog) Collection(ctx context.Context, handle string, q Query) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	col, ok := c.collections[handle]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCollectionNotFound, handle)
	}

	matching := Filter(col.Products, q.Filters)
	hasNext := false
	if q.First > 0 && len(matching) > q.First {
		matching = matching[:q.First]
		hasNext = true
	}
	return &Result{
		Id:          col.Id,
		Handle:      col.Handle,
		Title:       col.Title,
		Description: col.Description,
		Products:    matching,
		Filters:     col.Filters,
		HasNextPage: hasNext,
	}, nil
}
