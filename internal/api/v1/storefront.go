package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	ierr "github.com/shopkit/productgroups/internal/errors"
	"github.com/shopkit/productgroups/internal/logger"
	"github.com/shopkit/productgroups/internal/service"
)

type StorefrontHandler struct {
	service service.StorefrontService
	log     *logger.Logger
}

func NewStorefrontHandler(service service.StorefrontService, log *logger.Logger) *StorefrontHandler {
	return &StorefrontHandler{service: service, log: log}
}

// @Summary Product groups for a storefront product page
// @Description App-proxy endpoint: groups containing the product, merged with live catalog data
// @Tags Storefront
// @Accept json
// @Produce json
// @Param shop query string true "Shop domain"
// @Param product_handle query string true "Product handle"
// @Success 200 {object} dto.StorefrontGroupsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 403 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /proxy/product-groups [get]
func (h *StorefrontHandler) GroupsForProduct(c *gin.Context) {
	productHandle := c.Query("product_handle")
	if productHandle == "" {
		c.Error(ierr.NewError("missing product_handle").
			WithHint("product_handle query parameter is required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GroupsForProduct(c.Request.Context(), productHandle)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
