package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopkit/productgroups/internal/domain/group"
	ierr "github.com/shopkit/productgroups/internal/errors"
	"github.com/shopkit/productgroups/internal/types"
)

// InMemoryGroupStore implements group.Repository
type InMemoryGroupStore struct {
	mu     sync.RWMutex
	groups map[string]*group.ProductGroup
	items  map[string]*group.GroupItem
}

// NewInMemoryGroupStore creates a new in-memory product group store
func NewInMemoryGroupStore() *InMemoryGroupStore {
	return &InMemoryGroupStore{
		groups: make(map[string]*group.ProductGroup),
		items:  make(map[string]*group.GroupItem),
	}
}

func copyGroup(g *group.ProductGroup) *group.ProductGroup {
	c := *g
	c.Items = nil
	return &c
}

func copyItem(i *group.GroupItem) *group.GroupItem {
	c := *i
	return &c
}

func (s *InMemoryGroupStore) Create(ctx context.Context, g *group.ProductGroup) error {
	if g == nil {
		return ierr.NewError("group cannot be nil").Mark(ierr.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups[g.ID] = copyGroup(g)
	return nil
}

func (s *InMemoryGroupStore) CreateItems(ctx context.Context, items []*group.GroupItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range items {
		s.items[item.ID] = copyItem(item)
	}
	return nil
}

func (s *InMemoryGroupStore) Get(ctx context.Context, id string) (*group.ProductGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.groups[id]
	if !ok || g.Shop != types.GetShopDomain(ctx) {
		return nil, ierr.NewError("product group not found").
			WithHint("Product group not found").
			Mark(ierr.ErrNotFound)
	}

	result := copyGroup(g)
	result.Items = s.itemsForGroup(g.ID)
	return result, nil
}

func (s *InMemoryGroupStore) List(ctx context.Context) ([]*group.ProductGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listGroups(ctx, func(g *group.ProductGroup) bool { return true }), nil
}

func (s *InMemoryGroupStore) ListByHandle(ctx context.Context, handle string) ([]*group.ProductGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.listGroups(ctx, func(g *group.ProductGroup) bool {
		for _, item := range s.items {
			if item.GroupID == g.ID && item.Handle == handle {
				return true
			}
		}
		return false
	}), nil
}

// listGroups returns the shop's matching groups newest first, items attached.
// Callers hold the lock.
func (s *InMemoryGroupStore) listGroups(ctx context.Context, match func(*group.ProductGroup) bool) []*group.ProductGroup {
	shop := types.GetShopDomain(ctx)

	result := make([]*group.ProductGroup, 0)
	for _, g := range s.groups {
		if g.Shop != shop || !match(g) {
			continue
		}
		c := copyGroup(g)
		c.Items = s.itemsForGroup(g.ID)
		result = append(result, c)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})

	return result
}

// itemsForGroup returns the group's items in insertion order. Callers hold the lock.
func (s *InMemoryGroupStore) itemsForGroup(groupID string) []*group.GroupItem {
	items := make([]*group.GroupItem, 0)
	for _, item := range s.items {
		if item.GroupID == groupID {
			items = append(items, copyItem(item))
		}
	}

	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})

	return items
}

func (s *InMemoryGroupStore) UpdateTitle(ctx context.Context, id string, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.groups[id]
	if !ok || g.Shop != types.GetShopDomain(ctx) {
		return ierr.NewError("product group not found").
			WithHint("Product group not found").
			Mark(ierr.ErrNotFound)
	}

	g.Title = title
	g.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *InMemoryGroupStore) DeleteItems(ctx context.Context, groupID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, item := range s.items {
		if item.GroupID == groupID {
			delete(s.items, id)
		}
	}
	return nil
}

func (s *InMemoryGroupStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.groups[id]
	if !ok || g.Shop != types.GetShopDomain(ctx) {
		return ierr.NewError("product group not found").
			WithHint("Product group not found").
			Mark(ierr.ErrNotFound)
	}

	delete(s.groups, id)
	for itemID, item := range s.items {
		if item.GroupID == id {
			delete(s.items, itemID)
		}
	}
	return nil
}

func (s *InMemoryGroupStore) AddItem(ctx context.Context, item *group.GroupItem) error {
	if item == nil {
		return ierr.NewError("item cannot be nil").Mark(ierr.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = copyItem(item)
	return nil
}

func (s *InMemoryGroupStore) RemoveItem(ctx context.Context, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[itemID]
	if !ok {
		return nil
	}

	g, ok := s.groups[item.GroupID]
	if !ok || g.Shop != types.GetShopDomain(ctx) {
		return nil
	}

	delete(s.items, itemID)
	return nil
}

// Clear removes all groups and items from the store
func (s *InMemoryGroupStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups = make(map[string]*group.ProductGroup)
	s.items = make(map[string]*group.GroupItem)
}
