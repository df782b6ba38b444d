package handler

import (
	"github.com/gin-gonic/gin"
	appcart "github.com/nounthanith/localbrand-frontend/internal/application/cart"
	"github.com/nounthanith/localbrand-frontend/internal/interfaces/http/dto"
)

// CartProvider hands out the cart of a visitor session
type CartProvider interface {
	Cart(sessionID string) *appcart.Store
}

// CartHandler exposes the session cart
type CartHandler struct {
	BaseHandler
	carts CartProvider
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(carts CartProvider) *CartHandler {
	return &CartHandler{carts: carts}
}

// View godoc
//
//	@Summary	Get the cart with resolved products and totals
//	@Tags		cart
//	@Produce	json
//	@Success	200	{object}	dto.Response{data=appcart.View}
//	@Router		/cart [get]
func (h *CartHandler) View(c *gin.Context) {
	view, err := h.store(c).View(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Badge godoc
//
//	@Summary	Get the cart badge
//	@Tags		cart
//	@Produce	json
//	@Success	200	{object}	dto.Response{data=appcart.Badge}
//	@Router		/cart/badge [get]
func (h *CartHandler) Badge(c *gin.Context) {
	badge, err := h.store(c).Badge(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, badge)
}

// AddItem godoc
//
//	@Summary	Add a product or increment its quantity
//	@Tags		cart
//	@Accept		json
//	@Produce	json
//	@Param		request	body		dto.AddCartItemRequest	true	"Product to add"
//	@Success	200		{object}	dto.Response{data=dto.CartMutationResponse}
//	@Failure	400		{object}	dto.Response{error=dto.ErrorInfo}
//	@Router		/cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	store := h.store(c)
	if err := store.AddOrIncrement(c.Request.Context(), req.ProductID, req.Quantity); err != nil {
		h.HandleError(c, err)
		return
	}
	h.respondMutation(c, store, true)
}

// UpdateItem godoc
//
//	@Summary	Set the quantity of a cart entry
//	@Description	Quantities below one and unknown products leave the cart unchanged
//	@Tags		cart
//	@Accept		json
//	@Produce	json
//	@Param		productId	path		string						true	"Product ID"
//	@Param		request		body		dto.UpdateCartItemRequest	true	"New quantity"
//	@Success	200			{object}	dto.Response{data=dto.CartMutationResponse}
//	@Router		/cart/items/{productId} [put]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req dto.UpdateCartItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	store := h.store(c)
	changed, err := store.SetQuantity(c.Request.Context(), c.Param("productId"), *req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.respondMutation(c, store, changed)
}

// RemoveItem godoc
//
//	@Summary	Remove a product from the cart
//	@Tags		cart
//	@Produce	json
//	@Param		productId	path		string	true	"Product ID"
//	@Success	200			{object}	dto.Response{data=dto.CartMutationResponse}
//	@Router		/cart/items/{productId} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	store := h.store(c)
	changed, err := store.Remove(c.Request.Context(), c.Param("productId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.respondMutation(c, store, changed)
}

// Clear godoc
//
//	@Summary	Empty the cart
//	@Tags		cart
//	@Produce	json
//	@Success	200	{object}	dto.Response{data=dto.CartMutationResponse}
//	@Router		/cart [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	store := h.store(c)
	if err := store.Clear(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.respondMutation(c, store, true)
}

func (h *CartHandler) store(c *gin.Context) *appcart.Store {
	return h.carts.Cart(getSessionID(c))
}

func (h *CartHandler) respondMutation(c *gin.Context, store *appcart.Store, changed bool) {
	badge, err := store.Badge(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.CartMutationResponse{Changed: changed, Badge: badge})
}
