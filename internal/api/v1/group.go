package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopkit/productgroups/internal/api/dto"
	ierr "github.com/shopkit/productgroups/internal/errors"
	"github.com/shopkit/productgroups/internal/logger"
	"github.com/shopkit/productgroups/internal/service"
)

type GroupHandler struct {
	service service.GroupService
	log     *logger.Logger
}

func NewGroupHandler(service service.GroupService, log *logger.Logger) *GroupHandler {
	return &GroupHandler{service: service, log: log}
}

// @Summary List product groups
// @Description List every product group of the shop, newest first
// @Tags ProductGroups
// @Accept json
// @Produce json
// @Success 200 {object} dto.ListGroupsResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /product-groups [get]
func (h *GroupHandler) ListGroups(c *gin.Context) {
	resp, err := h.service.ListGroups(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get a product group
// @Description Get a product group by ID with its items
// @Tags ProductGroups
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} dto.GroupResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /product-groups/{id} [get]
func (h *GroupHandler) GetGroup(c *gin.Context) {
	id := c.Param("id")

	resp, err := h.service.GetGroup(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Create a product group
// @Description Create a product group with its initial item list
// @Tags ProductGroups
// @Accept json
// @Produce json
// @Param group body dto.CreateGroupRequest true "Product group"
// @Success 201 {object} dto.GroupResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /product-groups [post]
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	var req dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateGroup(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Replace a product group
// @Description Replace a group's title and entire item list
// @Tags ProductGroups
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param group body dto.ReplaceGroupRequest true "Product group"
// @Success 200 {object} dto.GroupResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /product-groups/{id} [put]
func (h *GroupHandler) ReplaceGroup(c *gin.Context) {
	id := c.Param("id")

	var req dto.ReplaceGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ReplaceGroup(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete a product group
// @Description Delete a product group and all of its items
// @Tags ProductGroups
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Success 204 "No Content"
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /product-groups/{id} [delete]
func (h *GroupHandler) DeleteGroup(c *gin.Context) {
	id := c.Param("id")

	if err := h.service.DeleteGroup(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Add an item to a group
// @Description Append a single product reference to an existing group
// @Tags ProductGroups
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param item body dto.AddItemRequest true "Item"
// @Success 201 {object} dto.GroupItemResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 412 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /product-groups/{id}/items [post]
func (h *GroupHandler) AddItem(c *gin.Context) {
	groupID := c.Param("id")

	var req dto.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.AddItem(c.Request.Context(), groupID, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Remove an item
// @Description Delete a single item by its ID. Removing a missing item succeeds.
// @Tags ProductGroups
// @Accept json
// @Produce json
// @Param item_id path string true "Item ID"
// @Success 204 "No Content"
// @Failure 500 {object} ierr.ErrorResponse
// @Router /product-group-items/{item_id} [delete]
func (h *GroupHandler) RemoveItem(c *gin.Context) {
	itemID := c.Param("item_id")

	if err := h.service.RemoveItem(c.Request.Context(), itemID); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
