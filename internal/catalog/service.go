// internal/catalog/service.go
package catalog

import (
	"context"
)

// FeedSource fetches the raw rows of the tabular feed published at url.
type FeedSource interface {
	FetchRows(ctx context.Context, url string) ([]Row, error)
}

// Service defines the interface for the catalog service.
type Service interface {
	Refresh(ctx context.Context) error
	Browse(search, category string) []Item
	Categories() []string
	Lookup(id string) (Item, error)
	Status() Status
}
