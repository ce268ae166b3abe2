package catalog

import "context"

// Item is a live product record from the shop's catalog
type Item struct {
	Handle   string `json:"handle"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url,omitempty"`
	URL      string `json:"url,omitempty"`
}

// Client looks up live catalog data for a set of product handles.
// Implementations are best effort read paths; stored items render without
// image/link when the catalog has no match.
type Client interface {
	FetchItems(ctx context.Context, shop string, handles []string) ([]Item, error)
}
