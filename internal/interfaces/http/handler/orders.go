package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nounthanith/localbrand-frontend/internal/application/orders"
	"github.com/nounthanith/localbrand-frontend/internal/interfaces/http/dto"
)

// OrdersProvider hands out the order history of a visitor
type OrdersProvider interface {
	Orders(sessionID string) *orders.History
}

// OrdersHandler serves the order history page
type OrdersHandler struct {
	BaseHandler
	histories OrdersProvider
}

// NewOrdersHandler creates a new OrdersHandler
func NewOrdersHandler(histories OrdersProvider) *OrdersHandler {
	return &OrdersHandler{histories: histories}
}

// Get godoc
//
//	@Summary		Load the order history
//	@Description	Uses the phone saved at checkout unless a phone query parameter is given.
//	@Description	Missing phone, no orders and fetch failures are reported as a condition, not an error.
//	@Tags			orders
//	@Produce		json
//	@Param			phone	query		string	false	"Phone number"
//	@Success		200		{object}	dto.Response{data=orders.Result}
//	@Router			/orders [get]
func (h *OrdersHandler) Get(c *gin.Context) {
	history := h.histories.Orders(getSessionID(c))

	if phone := strings.TrimSpace(c.Query("phone")); phone != "" {
		h.Success(c, history.LookupByPhone(c.Request.Context(), phone))
		return
	}
	h.Success(c, history.Load(c.Request.Context()))
}

// Select godoc
//
//	@Summary	Select one of the loaded orders
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		request	body		dto.SelectOrderRequest	true	"Order to select"
//	@Success	200		{object}	dto.Response{data=orders.Result}
//	@Failure	404		{object}	dto.Response{error=dto.ErrorInfo}
//	@Router		/orders/selection [put]
func (h *OrdersHandler) Select(c *gin.Context) {
	var req dto.SelectOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	history := h.histories.Orders(getSessionID(c))
	if _, err := history.Select(req.OrderID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, history.Current())
}
