package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/samber/lo"
	"github.com/shopkit/productgroups/internal/api/dto"
	ierr "github.com/shopkit/productgroups/internal/errors"
	"github.com/shopkit/productgroups/internal/testutil"
	"github.com/stretchr/testify/suite"
)

type GroupServiceSuite struct {
	testutil.BaseServiceTestSuite
	groupService GroupService
}

func TestGroupService(t *testing.T) {
	suite.Run(t, new(GroupServiceSuite))
}

func (s *GroupServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.groupService = NewGroupService(ServiceParams{
		Logger:        s.GetLogger(),
		Config:        s.GetConfig(),
		DB:            s.GetDB(),
		GroupRepo:     s.GetStores().GroupRepo,
		CatalogClient: s.GetCatalogClient(),
	})
}

func (s *GroupServiceSuite) createGroup(title string, handles ...string) *dto.GroupResponse {
	items := make([]dto.GroupItemRequest, len(handles))
	for i, handle := range handles {
		items[i] = dto.GroupItemRequest{Handle: handle, Title: lo.Capitalize(handle)}
	}

	resp, err := s.groupService.CreateGroup(s.GetContext(), dto.CreateGroupRequest{
		Title: title,
		Items: items,
	})
	s.NoError(err)
	s.NotNil(resp)
	return resp
}

func (s *GroupServiceSuite) TestCreateGroup() {
	s.Run("Valid Group", func() {
		resp := s.createGroup("Summer picks", "summer-sandal", "straw-hat")

		s.NotEmpty(resp.ID)
		s.Equal(testutil.DefaultShopDomain, resp.Shop)
		s.Equal("Summer picks", resp.Title)
		s.Len(resp.Items, 2)
		s.Equal("summer-sandal", resp.Items[0].Handle)
		s.Equal("straw-hat", resp.Items[1].Handle)
	})

	s.Run("Item Order Is Preserved", func() {
		resp := s.createGroup("Ordered", "c-handle", "a-handle", "b-handle")

		handles := lo.Map(resp.Items, func(i dto.GroupItemResponse, _ int) string {
			return i.Handle
		})
		s.Equal([]string{"c-handle", "a-handle", "b-handle"}, handles)
	})

	s.Run("Invalid Group Is Rejected Before Any Write", func() {
		s.ClearStores()

		_, err := s.groupService.CreateGroup(s.GetContext(), dto.CreateGroupRequest{
			Title: "",
			Items: []dto.GroupItemRequest{{Handle: "summer-sandal", Title: "Summer Sandal"}},
		})
		s.Error(err)
		s.True(ierr.IsValidation(err))

		list, err := s.groupService.ListGroups(s.GetContext())
		s.NoError(err)
		s.Equal(0, list.Total)
	})

	s.Run("Group Without Items Is Rejected", func() {
		_, err := s.groupService.CreateGroup(s.GetContext(), dto.CreateGroupRequest{
			Title: "No items",
		})
		s.Error(err)
		s.True(ierr.IsValidation(err))
	})
}

func (s *GroupServiceSuite) TestGetGroup() {
	s.Run("Existing Group", func() {
		created := s.createGroup("Summer picks", "summer-sandal")

		got, err := s.groupService.GetGroup(s.GetContext(), created.ID)
		s.NoError(err)
		s.Equal(created.ID, got.ID)
		s.Equal(created.Title, got.Title)
		s.Len(got.Items, 1)
	})

	s.Run("Missing Group", func() {
		_, err := s.groupService.GetGroup(s.GetContext(), "pg_missing")
		s.Error(err)
		s.True(ierr.IsNotFound(err))
	})

	s.Run("Group Of Another Shop Is Not Found", func() {
		created := s.createGroup("Summer picks", "summer-sandal")

		otherCtx := testutil.SetupContextForShop("other-shop.myshopify.com")
		_, err := s.groupService.GetGroup(otherCtx, created.ID)
		s.Error(err)
		s.True(ierr.IsNotFound(err))
	})
}

func (s *GroupServiceSuite) TestListGroups() {
	s.Run("Empty List", func() {
		list, err := s.groupService.ListGroups(s.GetContext())
		s.NoError(err)
		s.Equal(0, list.Total)
		s.Empty(list.Groups)
	})

	s.Run("Newest First", func() {
		first := s.createGroup("First", "summer-sandal")
		second := s.createGroup("Second", "straw-hat")

		list, err := s.groupService.ListGroups(s.GetContext())
		s.NoError(err)
		s.Equal(2, list.Total)
		s.Equal(second.ID, list.Groups[0].ID)
		s.Equal(first.ID, list.Groups[1].ID)
	})

	s.Run("Scoped To The Shop", func() {
		s.createGroup("Mine", "summer-sandal")

		otherCtx := testutil.SetupContextForShop("other-shop.myshopify.com")
		list, err := s.groupService.ListGroups(otherCtx)
		s.NoError(err)
		s.Equal(0, list.Total)
	})

	s.Run("Missing Shop In Context Is Rejected", func() {
		_, err := s.groupService.ListGroups(context.Background())
		s.Error(err)
		s.Equal(http.StatusForbidden, ierr.HTTPStatusFromErr(err))
	})
}

func (s *GroupServiceSuite) TestReplaceGroup() {
	s.Run("Replaces Title And Items", func() {
		created := s.createGroup("Summer picks", "summer-sandal", "straw-hat")

		resp, err := s.groupService.ReplaceGroup(s.GetContext(), created.ID, dto.ReplaceGroupRequest{
			Title: "Hat only",
			Items: []dto.GroupItemRequest{{Handle: "straw-hat", Title: "Straw Hat"}},
		})
		s.NoError(err)
		s.Equal(created.ID, resp.ID)
		s.Equal("Hat only", resp.Title)
		s.Len(resp.Items, 1)
		s.Equal("straw-hat", resp.Items[0].Handle)
	})

	s.Run("Item IDs Are Minted Fresh", func() {
		created := s.createGroup("Summer picks", "summer-sandal")
		oldItemID := created.Items[0].ID

		resp, err := s.groupService.ReplaceGroup(s.GetContext(), created.ID, dto.ReplaceGroupRequest{
			Title: "Summer picks",
			Items: []dto.GroupItemRequest{{Handle: "summer-sandal", Title: "Summer Sandal"}},
		})
		s.NoError(err)
		s.Len(resp.Items, 1)
		s.NotEqual(oldItemID, resp.Items[0].ID)
		s.Equal("summer-sandal", resp.Items[0].Handle)
	})

	s.Run("Missing Group", func() {
		_, err := s.groupService.ReplaceGroup(s.GetContext(), "pg_missing", dto.ReplaceGroupRequest{
			Title: "Hat only",
			Items: []dto.GroupItemRequest{{Handle: "straw-hat", Title: "Straw Hat"}},
		})
		s.Error(err)
		s.True(ierr.IsNotFound(err))
	})

	s.Run("Group Of Another Shop Is Not Found", func() {
		created := s.createGroup("Summer picks", "summer-sandal")

		otherCtx := testutil.SetupContextForShop("other-shop.myshopify.com")
		_, err := s.groupService.ReplaceGroup(otherCtx, created.ID, dto.ReplaceGroupRequest{
			Title: "Hijacked",
			Items: []dto.GroupItemRequest{{Handle: "straw-hat", Title: "Straw Hat"}},
		})
		s.Error(err)
		s.True(ierr.IsNotFound(err))

		// the original group is untouched
		got, err := s.groupService.GetGroup(s.GetContext(), created.ID)
		s.NoError(err)
		s.Equal("Summer picks", got.Title)
	})

	s.Run("Invalid Replacement Is Rejected", func() {
		created := s.createGroup("Summer picks", "summer-sandal")

		_, err := s.groupService.ReplaceGroup(s.GetContext(), created.ID, dto.ReplaceGroupRequest{
			Title: "",
			Items: []dto.GroupItemRequest{{Handle: "straw-hat", Title: "Straw Hat"}},
		})
		s.Error(err)
		s.True(ierr.IsValidation(err))
	})
}

func (s *GroupServiceSuite) TestDeleteGroup() {
	s.Run("Deletes Group And Items", func() {
		created := s.createGroup("Summer picks", "summer-sandal", "straw-hat")

		err := s.groupService.DeleteGroup(s.GetContext(), created.ID)
		s.NoError(err)

		_, err = s.groupService.GetGroup(s.GetContext(), created.ID)
		s.Error(err)
		s.True(ierr.IsNotFound(err))
	})

	s.Run("Missing Group", func() {
		err := s.groupService.DeleteGroup(s.GetContext(), "pg_missing")
		s.Error(err)
		s.True(ierr.IsNotFound(err))
	})

	s.Run("Group Of Another Shop Is Not Found", func() {
		created := s.createGroup("Summer picks", "summer-sandal")

		otherCtx := testutil.SetupContextForShop("other-shop.myshopify.com")
		err := s.groupService.DeleteGroup(otherCtx, created.ID)
		s.Error(err)
		s.True(ierr.IsNotFound(err))

		_, err = s.groupService.GetGroup(s.GetContext(), created.ID)
		s.NoError(err)
	})
}

func (s *GroupServiceSuite) TestAddItem() {
	s.Run("Appends To An Existing Group", func() {
		created := s.createGroup("Summer picks", "summer-sandal")

		item, err := s.groupService.AddItem(s.GetContext(), created.ID, dto.AddItemRequest{
			Handle: "straw-hat",
			Title:  "Straw Hat",
		})
		s.NoError(err)
		s.NotEmpty(item.ID)

		got, err := s.groupService.GetGroup(s.GetContext(), created.ID)
		s.NoError(err)
		s.Len(got.Items, 2)
		s.Equal("straw-hat", got.Items[1].Handle)
	})

	s.Run("Missing Group Is A Failed Precondition", func() {
		_, err := s.groupService.AddItem(s.GetContext(), "pg_missing", dto.AddItemRequest{
			Handle: "straw-hat",
			Title:  "Straw Hat",
		})
		s.Error(err)
		s.True(ierr.IsFailedPrecondition(err))
		// the error must match exactly one sentinel so the HTTP status is stable
		s.False(ierr.IsNotFound(err))
		s.Equal(http.StatusPreconditionFailed, ierr.HTTPStatusFromErr(err))
	})

	s.Run("Missing Fields Are Rejected", func() {
		created := s.createGroup("Summer picks", "summer-sandal")

		_, err := s.groupService.AddItem(s.GetContext(), created.ID, dto.AddItemRequest{
			Handle: "straw-hat",
		})
		s.Error(err)
		s.True(ierr.IsValidation(err))
	})
}

func (s *GroupServiceSuite) TestRemoveItem() {
	s.Run("Removes An Item", func() {
		created := s.createGroup("Summer picks", "summer-sandal", "straw-hat")

		err := s.groupService.RemoveItem(s.GetContext(), created.Items[0].ID)
		s.NoError(err)

		got, err := s.groupService.GetGroup(s.GetContext(), created.ID)
		s.NoError(err)
		s.Len(got.Items, 1)
		s.Equal("straw-hat", got.Items[0].Handle)
	})

	s.Run("Removing A Missing Item Is Not An Error", func() {
		err := s.groupService.RemoveItem(s.GetContext(), "pgi_missing")
		s.NoError(err)
	})

	s.Run("Removing The Last Item Leaves An Empty Group", func() {
		created := s.createGroup("Summer picks", "summer-sandal")

		err := s.groupService.RemoveItem(s.GetContext(), created.Items[0].ID)
		s.NoError(err)

		got, err := s.groupService.GetGroup(s.GetContext(), created.ID)
		s.NoError(err)
		s.Empty(got.Items)
	})

	s.Run("Item Of Another Shop Is Left Alone", func() {
		created := s.createGroup("Summer picks", "summer-sandal")

		otherCtx := testutil.SetupContextForShop("other-shop.myshopify.com")
		err := s.groupService.RemoveItem(otherCtx, created.Items[0].ID)
		s.NoError(err)

		got, err := s.groupService.GetGroup(s.GetContext(), created.ID)
		s.NoError(err)
		s.Len(got.Items, 1)
	})
}
