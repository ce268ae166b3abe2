package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/shopkit/productgroups/internal/api/dto"
	"github.com/shopkit/productgroups/internal/domain/catalog"
	ierr "github.com/shopkit/productgroups/internal/errors"
	"github.com/shopkit/productgroups/internal/testutil"
	"github.com/stretchr/testify/suite"
)

type StorefrontServiceSuite struct {
	testutil.BaseServiceTestSuite
	groupService      GroupService
	storefrontService StorefrontService
}

func TestStorefrontService(t *testing.T) {
	suite.Run(t, new(StorefrontServiceSuite))
}

func (s *StorefrontServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := ServiceParams{
		Logger:        s.GetLogger(),
		Config:        s.GetConfig(),
		DB:            s.GetDB(),
		GroupRepo:     s.GetStores().GroupRepo,
		CatalogClient: s.GetCatalogClient(),
	}
	s.groupService = NewGroupService(params)
	s.storefrontService = NewStorefrontService(params)
}

func (s *StorefrontServiceSuite) createGroup(title string, items ...dto.GroupItemRequest) *dto.GroupResponse {
	resp, err := s.groupService.CreateGroup(s.GetContext(), dto.CreateGroupRequest{
		Title: title,
		Items: items,
	})
	s.NoError(err)
	return resp
}

func (s *StorefrontServiceSuite) TestGroupsForProduct() {
	s.Run("Product Not In Any Group", func() {
		resp, err := s.storefrontService.GroupsForProduct(s.GetContext(), "lonely-product")
		s.NoError(err)
		s.Equal(testutil.DefaultShopDomain, resp.Shop)
		s.Equal("lonely-product", resp.ProductHandle)
		s.Empty(resp.Groups)
	})

	s.Run("Merges Live Catalog Data By Handle", func() {
		s.ClearStores()
		s.GetCatalogClient().AddProduct(testutil.DefaultShopDomain, catalog.Item{
			Handle:   "summer-sandal",
			Title:    "Summer Sandal (live)",
			ImageURL: "https://cdn.example.com/sandal.jpg",
			URL:      "https://acme-demo.myshopify.com/products/summer-sandal",
		})

		s.createGroup("Summer picks",
			dto.GroupItemRequest{Handle: "summer-sandal", Title: "Summer Sandal"},
			dto.GroupItemRequest{Handle: "straw-hat", Title: "Straw Hat"},
		)

		resp, err := s.storefrontService.GroupsForProduct(s.GetContext(), "summer-sandal")
		s.NoError(err)
		s.Len(resp.Groups, 1)
		s.Equal("Summer picks", resp.Groups[0].Title)
		s.Len(resp.Groups[0].Products, 2)

		matched := resp.Groups[0].Products[0]
		s.Equal("summer-sandal", matched.Handle)
		// the stored title wins over the live catalog title
		s.Equal("Summer Sandal", matched.Title)
		s.Equal("https://cdn.example.com/sandal.jpg", matched.Image)
		s.NotEmpty(matched.URL)

		unmatched := resp.Groups[0].Products[1]
		s.Equal("straw-hat", unmatched.Handle)
		s.Empty(unmatched.Image)
		s.Empty(unmatched.URL)
	})

	s.Run("Groups Are Newest First", func() {
		s.ClearStores()
		first := s.createGroup("First",
			dto.GroupItemRequest{Handle: "summer-sandal", Title: "Summer Sandal"},
		)
		second := s.createGroup("Second",
			dto.GroupItemRequest{Handle: "summer-sandal", Title: "Summer Sandal"},
		)

		resp, err := s.storefrontService.GroupsForProduct(s.GetContext(), "summer-sandal")
		s.NoError(err)
		s.Len(resp.Groups, 2)
		s.Equal(second.ID, resp.Groups[0].ID)
		s.Equal(first.ID, resp.Groups[1].ID)
	})

	s.Run("Catalog Failure Renders Stored Items Only", func() {
		s.ClearStores()
		s.createGroup("Summer picks",
			dto.GroupItemRequest{Handle: "summer-sandal", Title: "Summer Sandal"},
		)
		s.GetCatalogClient().SetError(errors.New("storefront api unavailable"))

		resp, err := s.storefrontService.GroupsForProduct(s.GetContext(), "summer-sandal")
		s.NoError(err)
		s.Len(resp.Groups, 1)
		s.Len(resp.Groups[0].Products, 1)
		s.Equal("Summer Sandal", resp.Groups[0].Products[0].Title)
		s.Empty(resp.Groups[0].Products[0].Image)
	})

	s.Run("Missing Shop In Context Is Rejected", func() {
		_, err := s.storefrontService.GroupsForProduct(context.Background(), "summer-sandal")
		s.Error(err)
		s.Equal(http.StatusForbidden, ierr.HTTPStatusFromErr(err))
	})

	s.Run("Scoped To The Shop", func() {
		s.ClearStores()
		s.createGroup("Summer picks",
			dto.GroupItemRequest{Handle: "summer-sandal", Title: "Summer Sandal"},
		)

		otherCtx := testutil.SetupContextForShop("other-shop.myshopify.com")
		resp, err := s.storefrontService.GroupsForProduct(otherCtx, "summer-sandal")
		s.NoError(err)
		s.Empty(resp.Groups)
	})
}
