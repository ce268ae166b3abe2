package dto

import (
	"context"
	"time"

	"github.com/shopkit/productgroups/internal/domain/group"
	ierr "github.com/shopkit/productgroups/internal/errors"
	"github.com/shopkit/productgroups/internal/types"
	"github.com/shopkit/productgroups/internal/validator"
)

// GroupItemRequest is a single product reference in a create/replace request
type GroupItemRequest struct {
	Handle string `json:"handle"`
	Title  string `json:"title"`
}

// CreateGroupRequest represents the request to create a product group
type CreateGroupRequest struct {
	Title string             `json:"title"`
	Items []GroupItemRequest `json:"items"`
}

// ToGroupInput binds the request to the tenant in the context
func (r *CreateGroupRequest) ToGroupInput(ctx context.Context) group.GroupInput {
	items := make([]group.ItemInput, len(r.Items))
	for i, item := range r.Items {
		items[i] = group.ItemInput{Handle: item.Handle, Title: item.Title}
	}
	return group.GroupInput{
		Shop:  types.GetShopDomain(ctx),
		Title: r.Title,
		Items: items,
	}
}

// Validate runs the pure field validation and returns a validation error
// carrying the field-path map, or nil. No I/O happens here.
func (r *CreateGroupRequest) Validate(ctx context.Context) error {
	if errs := group.Validate(r.ToGroupInput(ctx)); errs != nil {
		return ierr.NewError("product group validation failed").
			WithHint("Please fix the highlighted fields").
			WithReportableDetails(errs.ToDetails()).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ReplaceGroupRequest fully replaces a group's title and item list
type ReplaceGroupRequest struct {
	Title string             `json:"title"`
	Items []GroupItemRequest `json:"items"`
}

func (r *ReplaceGroupRequest) ToGroupInput(ctx context.Context) group.GroupInput {
	return (&CreateGroupRequest{Title: r.Title, Items: r.Items}).ToGroupInput(ctx)
}

func (r *ReplaceGroupRequest) Validate(ctx context.Context) error {
	return (&CreateGroupRequest{Title: r.Title, Items: r.Items}).Validate(ctx)
}

// AddItemRequest appends a single item to an existing group
type AddItemRequest struct {
	Handle string `json:"handle" validate:"required"`
	Title  string `json:"title" validate:"required"`
}

func (r *AddItemRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// GroupItemResponse represents a stored group item
type GroupItemResponse struct {
	ID        string    `json:"id"`
	Handle    string    `json:"handle"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// GroupResponse represents the product group response
type GroupResponse struct {
	ID        string              `json:"id"`
	Shop      string              `json:"shop"`
	Title     string              `json:"title"`
	Items     []GroupItemResponse `json:"items"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// NewGroupResponse creates a new group response
func NewGroupResponse(g *group.ProductGroup) *GroupResponse {
	items := make([]GroupItemResponse, len(g.Items))
	for i, item := range g.Items {
		items[i] = GroupItemResponse{
			ID:        item.ID,
			Handle:    item.Handle,
			Title:     item.Title,
			CreatedAt: item.CreatedAt,
		}
	}
	return &GroupResponse{
		ID:        g.ID,
		Shop:      g.Shop,
		Title:     g.Title,
		Items:     items,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

// ListGroupsResponse represents the response for listing product groups
type ListGroupsResponse struct {
	Groups []*GroupResponse `json:"groups"`
	Total  int              `json:"total"`
}
