package item

import "context"

// Repository defines the storage interface for the item collection.
type Repository interface {
	// CreateItem adds a new item. An empty ID is filled in.
	CreateItem(ctx context.Context, it *Item) error

	// CreateItems adds multiple items in a batch.
	CreateItems(ctx context.Context, items []*Item) error

	// GetItem retrieves an item by ID. Returns ErrNotFound if missing.
	GetItem(ctx context.Context, id string) (*Item, error)

	// ListItems returns every item in insertion order.
	ListItems(ctx context.Context) ([]Item, error)

	// ListItemsByYear returns items overlapping the given year.
	ListItemsByYear(ctx context.Context, year int) ([]Item, error)

	// UpdateItem replaces the stored title and dates of an item.
	// Returns ErrNotFound if no item has the given ID.
	UpdateItem(ctx context.Context, it Item) error

	// DeleteItem removes an item by ID.
	DeleteItem(ctx context.Context, id string) error

	// Close releases any resources held by the repository.
	Close() error
}
