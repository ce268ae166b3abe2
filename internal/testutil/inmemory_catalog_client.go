package testutil

import (
	"context"
	"sync"

	"github.com/samber/lo"
	"github.com/shopkit/productgroups/internal/domain/catalog"
)

// InMemoryCatalogClient implements catalog.Client backed by a fixed
// per-shop product list
type InMemoryCatalogClient struct {
	mu       sync.RWMutex
	products map[string]map[string]catalog.Item
	err      error
}

// NewInMemoryCatalogClient creates a new in-memory catalog client
func NewInMemoryCatalogClient() *InMemoryCatalogClient {
	return &InMemoryCatalogClient{
		products: make(map[string]map[string]catalog.Item),
	}
}

// AddProduct registers a catalog product for a shop
func (c *InMemoryCatalogClient) AddProduct(shop string, item catalog.Item) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.products[shop] == nil {
		c.products[shop] = make(map[string]catalog.Item)
	}
	c.products[shop][item.Handle] = item
}

// SetError makes every subsequent fetch fail with the given error
func (c *InMemoryCatalogClient) SetError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

func (c *InMemoryCatalogClient) FetchItems(ctx context.Context, shop string, handles []string) ([]catalog.Item, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.err != nil {
		return nil, c.err
	}

	shopProducts := c.products[shop]
	return lo.FilterMap(handles, func(handle string, _ int) (catalog.Item, bool) {
		item, ok := shopProducts[handle]
		return item, ok
	}), nil
}

// Clear removes all products and resets the error
func (c *InMemoryCatalogClient) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = make(map[string]map[string]catalog.Item)
	c.err = nil
}
