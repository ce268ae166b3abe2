package group

import (
	"context"
	"time"

	"github.com/shopkit/productgroups/internal/types"
)

// ProductGroup is a named, ordered collection of catalog product references
// owned by a single shop. Items never outlive their group.
type ProductGroup struct {
	ID        string    `db:"id" json:"id"`
	Shop      string    `db:"shop" json:"shop"`
	Title     string    `db:"title" json:"title"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	Items []*GroupItem `db:"-" json:"items"`
}

// GroupItem is one (handle, display title) pair belonging to exactly one group.
// The title is denormalized from the catalog at selection time.
type GroupItem struct {
	ID        string    `db:"id" json:"id"`
	GroupID   string    `db:"group_id" json:"group_id"`
	Handle    string    `db:"handle" json:"handle"`
	Title     string    `db:"title" json:"title"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ItemInput is a single product reference in a create/replace request
type ItemInput struct {
	Handle string `json:"handle"`
	Title  string `json:"title"`
}

// GroupInput is the full input for creating or replacing a group
type GroupInput struct {
	Shop  string      `json:"shop"`
	Title string      `json:"title"`
	Items []ItemInput `json:"items"`
}

// NewProductGroup builds a group row from validated input
func NewProductGroup(input GroupInput) *ProductGroup {
	now := time.Now().UTC()
	return &ProductGroup{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PRODUCT_GROUP),
		Shop:      input.Shop,
		Title:     input.Title,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewGroupItems mints fresh item rows for a group. Creation timestamps are
// strictly increasing so the insertion order survives the created_at sort.
func NewGroupItems(groupID string, items []ItemInput) []*GroupItem {
	now := time.Now().UTC()
	result := make([]*GroupItem, len(items))
	for i, item := range items {
		result[i] = &GroupItem{
			ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_GROUP_ITEM),
			Handle:    item.Handle,
			Title:     item.Title,
			CreatedAt: now.Add(time.Duration(i) * time.Microsecond),
		}
		result[i].GroupID = groupID
	}
	return result
}

// Handles returns the item handles of a group in item order
func (g *ProductGroup) Handles() []string {
	handles := make([]string, len(g.Items))
	for i, item := range g.Items {
		handles[i] = item.Handle
	}
	return handles
}

// Repository defines the data access surface for product groups.
// Every operation is scoped to the shop carried in the context; atomicity
// across operations belongs to the caller via postgres.DB.WithTx.
type Repository interface {
	// Create inserts the group row only; items go through CreateItems
	Create(ctx context.Context, g *ProductGroup) error
	// CreateItems bulk-inserts item rows bound to an existing group
	CreateItems(ctx context.Context, items []*GroupItem) error
	// Get returns the group with its items in insertion order, or ErrNotFound.
	// A group owned by another shop is indistinguishable from a missing one.
	Get(ctx context.Context, id string) (*ProductGroup, error)
	// List returns all groups of the shop, newest first, each with items
	List(ctx context.Context) ([]*ProductGroup, error)
	// ListByHandle returns the shop's groups containing the given product
	// handle, newest first, each with all of its items
	ListByHandle(ctx context.Context, handle string) ([]*ProductGroup, error)
	// UpdateTitle updates the title of a group owned by the shop
	UpdateTitle(ctx context.Context, id string, title string) error
	// DeleteItems removes every item of the group
	DeleteItems(ctx context.Context, groupID string) error
	// Delete removes the group row; items cascade at the storage level
	Delete(ctx context.Context, id string) error
	// AddItem appends a single item to an existing group
	AddItem(ctx context.Context, item *GroupItem) error
	// RemoveItem deletes a single item by id. Removing a missing item is
	// not an error.
	RemoveItem(ctx context.Context, itemID string) error
}
