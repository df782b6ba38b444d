package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/nounthanith/localbrand-frontend/internal/domain/catalog"
)

// ProductCatalog is the read side of the product catalog
type ProductCatalog interface {
	List(ctx context.Context) ([]catalog.Product, error)
	Get(ctx context.Context, id string) (*catalog.Product, error)
}

// ProductHandler serves the product listing and detail pages
type ProductHandler struct {
	BaseHandler
	catalog ProductCatalog
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(catalog ProductCatalog) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// List godoc
//
//	@Summary	List products
//	@Tags		products
//	@Produce	json
//	@Success	200	{object}	dto.Response{data=[]catalog.Product}
//	@Failure	502	{object}	dto.Response{error=dto.ErrorInfo}
//	@Router		/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.catalog.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// Get godoc
//
//	@Summary	Get product detail
//	@Tags		products
//	@Produce	json
//	@Param		id	path		string	true	"Product ID"
//	@Success	200	{object}	dto.Response{data=catalog.Product}
//	@Failure	404	{object}	dto.Response{error=dto.ErrorInfo}
//	@Router		/products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}
