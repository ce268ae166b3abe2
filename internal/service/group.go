package service

import (
	"context"

	"github.com/shopkit/productgroups/internal/api/dto"
	"github.com/shopkit/productgroups/internal/domain/group"
	ierr "github.com/shopkit/productgroups/internal/errors"
	"github.com/shopkit/productgroups/internal/types"
)

// GroupService owns the transactional contract for product groups: input is
// validated before any I/O, and every mutation commits the group row and its
// items as one atomic unit.
type GroupService interface {
	ListGroups(ctx context.Context) (*dto.ListGroupsResponse, error)
	GetGroup(ctx context.Context, id string) (*dto.GroupResponse, error)
	CreateGroup(ctx context.Context, req dto.CreateGroupRequest) (*dto.GroupResponse, error)
	ReplaceGroup(ctx context.Context, id string, req dto.ReplaceGroupRequest) (*dto.GroupResponse, error)
	DeleteGroup(ctx context.Context, id string) error
	AddItem(ctx context.Context, groupID string, req dto.AddItemRequest) (*dto.GroupItemResponse, error)
	RemoveItem(ctx context.Context, itemID string) error
}

type groupService struct {
	ServiceParams
}

func NewGroupService(params ServiceParams) GroupService {
	return &groupService{
		ServiceParams: params,
	}
}

// ListGroups returns every group of the shop, newest first. An empty result
// is a valid response, not an error.
func (s *groupService) ListGroups(ctx context.Context) (*dto.ListGroupsResponse, error) {
	if err := types.ValidateTenantContext(ctx); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Shop could not be resolved for this request").
			Mark(ierr.ErrPermissionDenied)
	}

	groups, err := s.GroupRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.GroupResponse, len(groups))
	for i, g := range groups {
		responses[i] = dto.NewGroupResponse(g)
	}

	return &dto.ListGroupsResponse{
		Groups: responses,
		Total:  len(responses),
	}, nil
}

func (s *groupService) GetGroup(ctx context.Context, id string) (*dto.GroupResponse, error) {
	g, err := s.GroupRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return dto.NewGroupResponse(g), nil
}

// CreateGroup validates the input and then atomically inserts the group row
// and its items. If the item insert fails nothing persists.
func (s *groupService) CreateGroup(ctx context.Context, req dto.CreateGroupRequest) (*dto.GroupResponse, error) {
	if err := req.Validate(ctx); err != nil {
		return nil, err
	}

	input := req.ToGroupInput(ctx)
	g := group.NewProductGroup(input)

	var created *group.ProductGroup
	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.GroupRepo.Create(txCtx, g); err != nil {
			return err
		}

		if err := s.GroupRepo.CreateItems(txCtx, group.NewGroupItems(g.ID, input.Items)); err != nil {
			return err
		}

		// re-read inside the transaction so the caller sees the committed shape
		var err error
		created, err = s.GroupRepo.Get(txCtx, g.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("created product group",
		"request_id", types.GetRequestID(ctx),
		"group_id", created.ID,
		"shop", created.Shop,
		"items", len(created.Items),
	)

	return dto.NewGroupResponse(created), nil
}

// ReplaceGroup swaps a group's title and entire item list in one
// transaction. Item ids are minted fresh on every replace; two concurrent
// replaces race with last-writer-wins under the default isolation level.
func (s *groupService) ReplaceGroup(ctx context.Context, id string, req dto.ReplaceGroupRequest) (*dto.GroupResponse, error) {
	if err := req.Validate(ctx); err != nil {
		return nil, err
	}

	input := req.ToGroupInput(ctx)

	var replaced *group.ProductGroup
	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		// existence + tenant check; a foreign group is NotFound
		if _, err := s.GroupRepo.Get(txCtx, id); err != nil {
			return err
		}

		if err := s.GroupRepo.UpdateTitle(txCtx, id, input.Title); err != nil {
			return err
		}

		if err := s.GroupRepo.DeleteItems(txCtx, id); err != nil {
			return err
		}

		if err := s.GroupRepo.CreateItems(txCtx, group.NewGroupItems(id, input.Items)); err != nil {
			return err
		}

		var err error
		replaced, err = s.GroupRepo.Get(txCtx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("replaced product group",
		"request_id", types.GetRequestID(ctx),
		"group_id", id,
		"shop", types.GetShopDomain(ctx),
		"items", len(replaced.Items),
	)

	return dto.NewGroupResponse(replaced), nil
}

// DeleteGroup removes the group and every item it owns. The explicit item
// delete keeps the contract independent of the storage level cascade.
func (s *groupService) DeleteGroup(ctx context.Context, id string) error {
	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := s.GroupRepo.Get(txCtx, id); err != nil {
			return err
		}

		if err := s.GroupRepo.DeleteItems(txCtx, id); err != nil {
			return err
		}

		return s.GroupRepo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	s.Logger.Infow("deleted product group",
		"request_id", types.GetRequestID(ctx),
		"group_id", id,
		"shop", types.GetShopDomain(ctx),
	)

	return nil
}

// AddItem appends a single item to an existing group. This is the narrow
// item-level API: it does not re-run group-level validation, so a group can
// grow without a full replace.
func (s *groupService) AddItem(ctx context.Context, groupID string, req dto.AddItemRequest) (*dto.GroupItemResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.GroupRepo.Get(ctx, groupID); err != nil {
		if ierr.IsNotFound(err) {
			// fresh error, not a wrap: the chain must match a single sentinel
			return nil, ierr.NewError("product group does not exist").
				WithHint("Product group does not exist").
				Mark(ierr.ErrFailedPrecondition)
		}
		return nil, err
	}

	items := group.NewGroupItems(groupID, []group.ItemInput{{Handle: req.Handle, Title: req.Title}})
	if err := s.GroupRepo.AddItem(ctx, items[0]); err != nil {
		return nil, err
	}

	return &dto.GroupItemResponse{
		ID:        items[0].ID,
		Handle:    items[0].Handle,
		Title:     items[0].Title,
		CreatedAt: items[0].CreatedAt,
	}, nil
}

// RemoveItem deletes a single item by id. It is idempotent and performs no
// group-level re-validation, so removing the last item leaves a valid empty
// group.
func (s *groupService) RemoveItem(ctx context.Context, itemID string) error {
	return s.GroupRepo.RemoveItem(ctx, itemID)
}
