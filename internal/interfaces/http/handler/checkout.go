package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/nounthanith/localbrand-frontend/internal/application/checkout"
	"github.com/nounthanith/localbrand-frontend/internal/domain/order"
	"github.com/nounthanith/localbrand-frontend/internal/interfaces/http/dto"
)

// CheckoutProvider hands out the checkout session of a visitor
type CheckoutProvider interface {
	Checkout(sessionID string) *checkout.Session
}

// CheckoutHandler serves the checkout page
type CheckoutHandler struct {
	BaseHandler
	checkouts CheckoutProvider
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkouts CheckoutProvider) *CheckoutHandler {
	return &CheckoutHandler{checkouts: checkouts}
}

// Get godoc
//
//	@Summary		Open the checkout page
//	@Description	Returns the submission state, the retained form, the order summary and the provinces
//	@Tags			checkout
//	@Produce		json
//	@Success		200	{object}	dto.Response{data=dto.CheckoutResponse}
//	@Router			/checkout [get]
func (h *CheckoutHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	session := h.checkouts.Checkout(getSessionID(c))

	snapshot := session.Open(ctx)
	summary, err := session.Summary(ctx)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.CheckoutResponse{
		Snapshot:  snapshot,
		Summary:   &summary,
		Provinces: order.Provinces,
	})
}

// Submit godoc
//
//	@Summary	Place the order
//	@Tags		checkout
//	@Accept		json
//	@Produce	json
//	@Param		request	body		dto.CheckoutRequest	true	"Shipping details"
//	@Success	200		{object}	dto.Response{data=dto.CheckoutResponse}
//	@Failure	400		{object}	dto.Response{error=dto.ErrorInfo}
//	@Failure	409		{object}	dto.Response{error=dto.ErrorInfo}
//	@Failure	422		{object}	dto.Response{error=dto.ErrorInfo}
//	@Failure	502		{object}	dto.Response{error=dto.ErrorInfo}
//	@Router		/checkout [post]
func (h *CheckoutHandler) Submit(c *gin.Context) {
	var req dto.CheckoutRequest
	if !h.BindJSON(c, &req) {
		return
	}

	session := h.checkouts.Checkout(getSessionID(c))
	if _, err := session.Submit(c.Request.Context(), req.ShippingAddress()); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.CheckoutResponse{
		Snapshot:  session.Snapshot(),
		Provinces: order.Provinces,
	})
}
