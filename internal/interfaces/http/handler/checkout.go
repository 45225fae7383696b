package handler

import (
	"github.com/gin-gonic/gin"

	checkoutapp "github.com/storefront/backend/internal/application/checkout"
)

// CheckoutHandler handles the checkout API endpoint
type CheckoutHandler struct {
	BaseHandler
	checkoutService *checkoutapp.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService *checkoutapp.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// Checkout places an order from the caller's cart. Stock is reserved,
// the order is written and the cart is emptied in one transaction; any
// failure leaves all three untouched.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	var req checkoutapp.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidRequest(c, err)
		return
	}

	result, err := h.checkoutService.Checkout(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}
