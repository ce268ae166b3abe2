package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/shopkit/productgroups/internal/domain/group"
	ierr "github.com/shopkit/productgroups/internal/errors"
	"github.com/shopkit/productgroups/internal/logger"
	"github.com/shopkit/productgroups/internal/postgres"
	"github.com/shopkit/productgroups/internal/types"
)

type groupRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewGroupRepository(db *postgres.DB, logger *logger.Logger) group.Repository {
	return &groupRepository{db: db, logger: logger}
}

func (r *groupRepository) Create(ctx context.Context, g *group.ProductGroup) error {
	query := `
		INSERT INTO product_groups (
			id,
			shop,
			title,
			created_at,
			updated_at
		)
		VALUES (
			:id,
			:shop,
			:title,
			:created_at,
			:updated_at
		)
	`

	r.logger.Debugw("creating product group",
		"group_id", g.ID,
		"shop", g.Shop,
	)

	_, err := r.db.NamedExecContext(ctx, query, g)
	if err != nil {
		r.logger.Errorw("failed to create product group", "error", err, "group_id", g.ID)
		return ierr.WithError(err).
			WithHint("Failed to create product group").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *groupRepository) CreateItems(ctx context.Context, items []*group.GroupItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO product_group_items (
			id,
			group_id,
			handle,
			title,
			created_at
		)
		VALUES (
			:id,
			:group_id,
			:handle,
			:title,
			:created_at
		)
	`

	// sqlx expands a named exec over a slice into a bulk insert
	_, err := r.db.NamedExecContext(ctx, query, items)
	if err != nil {
		r.logger.Errorw("failed to create group items", "error", err, "group_id", items[0].GroupID)
		return ierr.WithError(err).
			WithHint("Failed to create group items").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *groupRepository) Get(ctx context.Context, id string) (*group.ProductGroup, error) {
	query := `
		SELECT id, shop, title, created_at, updated_at
		FROM product_groups
		WHERE id = $1
		AND shop = $2
	`

	var g group.ProductGroup
	q := r.db.GetQuerier(ctx)
	err := q.GetContext(ctx, &g, query, id, types.GetShopDomain(ctx))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.WithError(err).
				WithHint("Product group not found").
				Mark(ierr.ErrNotFound)
		}
		r.logger.Errorw("failed to get product group", "error", err, "group_id", id)
		return nil, ierr.WithError(err).
			WithHint("Failed to get product group").
			Mark(ierr.ErrDatabase)
	}

	items, err := r.itemsForGroups(ctx, []string{g.ID})
	if err != nil {
		return nil, err
	}
	g.Items = items[g.ID]

	return &g, nil
}

func (r *groupRepository) List(ctx context.Context) ([]*group.ProductGroup, error) {
	query := `
		SELECT id, shop, title, created_at, updated_at
		FROM product_groups
		WHERE shop = $1
		ORDER BY created_at DESC, id DESC
	`

	return r.listGroups(ctx, query, types.GetShopDomain(ctx))
}

func (r *groupRepository) ListByHandle(ctx context.Context, handle string) ([]*group.ProductGroup, error) {
	query := `
		SELECT g.id, g.shop, g.title, g.created_at, g.updated_at
		FROM product_groups g
		WHERE g.shop = $1
		AND EXISTS (
			SELECT 1 FROM product_group_items i
			WHERE i.group_id = g.id AND i.handle = $2
		)
		ORDER BY g.created_at DESC, g.id DESC
	`

	return r.listGroups(ctx, query, types.GetShopDomain(ctx), handle)
}

func (r *groupRepository) listGroups(ctx context.Context, query string, args ...interface{}) ([]*group.ProductGroup, error) {
	var groups []*group.ProductGroup
	q := r.db.GetQuerier(ctx)
	if err := q.SelectContext(ctx, &groups, query, args...); err != nil {
		r.logger.Errorw("failed to list product groups", "error", err)
		return nil, ierr.WithError(err).
			WithHint("Failed to list product groups").
			Mark(ierr.ErrDatabase)
	}

	if len(groups) == 0 {
		return []*group.ProductGroup{}, nil
	}

	ids := make([]string, len(groups))
	for i, g := range groups {
		ids[i] = g.ID
	}

	items, err := r.itemsForGroups(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, g := range groups {
		g.Items = items[g.ID]
	}

	return groups, nil
}

// itemsForGroups loads the items of the given groups in insertion order,
// keyed by group id. Groups without items map to an empty slice.
func (r *groupRepository) itemsForGroups(ctx context.Context, groupIDs []string) (map[string][]*group.GroupItem, error) {
	query, args, err := sqlx.In(`
		SELECT id, group_id, handle, title, created_at
		FROM product_group_items
		WHERE group_id IN (?)
		ORDER BY created_at ASC, id ASC
	`, groupIDs)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to load group items").
			Mark(ierr.ErrDatabase)
	}
	query = sqlx.Rebind(sqlx.DOLLAR, query)

	var items []*group.GroupItem
	q := r.db.GetQuerier(ctx)
	if err := q.SelectContext(ctx, &items, query, args...); err != nil {
		r.logger.Errorw("failed to load group items", "error", err)
		return nil, ierr.WithError(err).
			WithHint("Failed to load group items").
			Mark(ierr.ErrDatabase)
	}

	result := make(map[string][]*group.GroupItem, len(groupIDs))
	for _, id := range groupIDs {
		result[id] = []*group.GroupItem{}
	}
	for _, item := range items {
		result[item.GroupID] = append(result[item.GroupID], item)
	}

	return result, nil
}

func (r *groupRepository) UpdateTitle(ctx context.Context, id string, title string) error {
	query := `
		UPDATE product_groups
		SET title = $1,
		updated_at = now()
		WHERE id = $2
		AND shop = $3
	`

	q := r.db.GetQuerier(ctx)
	result, err := q.ExecContext(ctx, query, title, id, types.GetShopDomain(ctx))
	if err != nil {
		r.logger.Errorw("failed to update product group", "error", err, "group_id", id)
		return ierr.WithError(err).
			WithHint("Failed to update product group").
			Mark(ierr.ErrDatabase)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update product group").
			Mark(ierr.ErrDatabase)
	}
	if rows == 0 {
		return ierr.NewError("product group not found").
			WithHint("Product group not found").
			Mark(ierr.ErrNotFound)
	}

	return nil
}

func (r *groupRepository) DeleteItems(ctx context.Context, groupID string) error {
	query := `DELETE FROM product_group_items WHERE group_id = $1`

	q := r.db.GetQuerier(ctx)
	if _, err := q.ExecContext(ctx, query, groupID); err != nil {
		r.logger.Errorw("failed to delete group items", "error", err, "group_id", groupID)
		return ierr.WithError(err).
			WithHint("Failed to delete group items").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *groupRepository) Delete(ctx context.Context, id string) error {
	query := `
		DELETE FROM product_groups
		WHERE id = $1
		AND shop = $2
	`

	q := r.db.GetQuerier(ctx)
	result, err := q.ExecContext(ctx, query, id, types.GetShopDomain(ctx))
	if err != nil {
		r.logger.Errorw("failed to delete product group", "error", err, "group_id", id)
		return ierr.WithError(err).
			WithHint("Failed to delete product group").
			Mark(ierr.ErrDatabase)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete product group").
			Mark(ierr.ErrDatabase)
	}
	if rows == 0 {
		return ierr.NewError("product group not found").
			WithHint("Product group not found").
			Mark(ierr.ErrNotFound)
	}

	return nil
}

func (r *groupRepository) AddItem(ctx context.Context, item *group.GroupItem) error {
	query := `
		INSERT INTO product_group_items (
			id,
			group_id,
			handle,
			title,
			created_at
		)
		VALUES (
			:id,
			:group_id,
			:handle,
			:title,
			:created_at
		)
	`

	_, err := r.db.NamedExecContext(ctx, query, item)
	if err != nil {
		r.logger.Errorw("failed to add group item", "error", err, "group_id", item.GroupID)
		return ierr.WithError(err).
			WithHint("Failed to add group item").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *groupRepository) RemoveItem(ctx context.Context, itemID string) error {
	query := `
		DELETE FROM product_group_items i
		USING product_groups g
		WHERE i.id = $1
		AND i.group_id = g.id
		AND g.shop = $2
	`

	// no rows affected check: removing a missing item is not an error
	q := r.db.GetQuerier(ctx)
	if _, err := q.ExecContext(ctx, query, itemID, types.GetShopDomain(ctx)); err != nil {
		r.logger.Errorw("failed to remove group item", "error", err, "item_id", itemID)
		return ierr.WithError(err).
			WithHint("Failed to remove group item").
			Mark(ierr.ErrDatabase)
	}

	return nil
}
