package service

import (
	"context"

	"github.com/samber/lo"
	"github.com/shopkit/productgroups/internal/api/dto"
	"github.com/shopkit/productgroups/internal/domain/catalog"
	"github.com/shopkit/productgroups/internal/domain/group"
	ierr "github.com/shopkit/productgroups/internal/errors"
	"github.com/shopkit/productgroups/internal/types"
)

// StorefrontService serves the app-proxy read path: the groups containing a
// given product, merged with live catalog data.
type StorefrontService interface {
	GroupsForProduct(ctx context.Context, productHandle string) (*dto.StorefrontGroupsResponse, error)
}

type storefrontService struct {
	ServiceParams
}

func NewStorefrontService(params ServiceParams) StorefrontService {
	return &storefrontService{
		ServiceParams: params,
	}
}

// GroupsForProduct loads every group of the shop that contains the product
// handle and merges the stored items against the live catalog by handle.
// Stored titles win; image/url are filled only when the catalog matches.
// The catalog lookup is best effort: when it fails the groups still render,
// just without images and links.
func (s *storefrontService) GroupsForProduct(ctx context.Context, productHandle string) (*dto.StorefrontGroupsResponse, error) {
	if err := types.ValidateTenantContext(ctx); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Shop could not be resolved for this request").
			Mark(ierr.ErrPermissionDenied)
	}

	shop := types.GetShopDomain(ctx)

	groups, err := s.GroupRepo.ListByHandle(ctx, productHandle)
	if err != nil {
		return nil, err
	}

	resp := &dto.StorefrontGroupsResponse{
		Shop:          shop,
		ProductHandle: productHandle,
		Groups:        []*dto.StorefrontGroup{},
	}
	if len(groups) == 0 {
		return resp, nil
	}

	handles := lo.Uniq(lo.FlatMap(groups, func(g *group.ProductGroup, _ int) []string {
		return g.Handles()
	}))

	liveItems, err := s.CatalogClient.FetchItems(ctx, shop, handles)
	if err != nil {
		s.Logger.Warnw("catalog lookup failed, rendering stored items only",
			"error", err,
			"shop", shop,
		)
		liveItems = nil
	}

	byHandle := lo.KeyBy(liveItems, func(item catalog.Item) string {
		return item.Handle
	})

	for _, g := range groups {
		rendered := &dto.StorefrontGroup{
			ID:       g.ID,
			Title:    g.Title,
			Products: make([]dto.StorefrontProduct, len(g.Items)),
		}
		for i, item := range g.Items {
			product := dto.StorefrontProduct{
				ID:     item.ID,
				Handle: item.Handle,
				Title:  item.Title,
			}
			if live, ok := byHandle[item.Handle]; ok {
				product.Image = live.ImageURL
				product.URL = live.URL
			}
			rendered.Products[i] = product
		}
		resp.Groups = append(resp.Groups, rendered)
	}

	return resp, nil
}
