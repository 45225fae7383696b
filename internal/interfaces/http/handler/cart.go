package handler

import (
	"github.com/gin-gonic/gin"

	cartapp "github.com/storefront/backend/internal/application/cart"
)

// CartHandler handles shopping cart API endpoints. Carts belong to the
// signed-in user when one is present, otherwise to the guest session.
type CartHandler struct {
	BaseHandler
	cartService *cartapp.CartService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *cartapp.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Get returns the caller's cart, creating an empty one on first touch
func (h *CartHandler) Get(c *gin.Context) {
	cart, err := h.cartService.GetOrCreate(c.Request.Context(), cartOwner(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}

// AddItem adds a product to the cart or bumps its quantity
func (h *CartHandler) AddItem(c *gin.Context) {
	var req cartapp.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidRequest(c, err)
		return
	}

	result, err := h.cartService.AddItem(c.Request.Context(), cartOwner(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// UpdateItem sets the quantity of a cart line; zero removes it
func (h *CartHandler) UpdateItem(c *gin.Context) {
	productID, ok := h.parseID(c, "product_id")
	if !ok {
		return
	}

	var req cartapp.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidRequest(c, err)
		return
	}

	result, err := h.cartService.UpdateItem(c.Request.Context(), cartOwner(c), productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RemoveItem removes a product from the cart
func (h *CartHandler) RemoveItem(c *gin.Context) {
	productID, ok := h.parseID(c, "product_id")
	if !ok {
		return
	}

	result, err := h.cartService.RemoveItem(c.Request.Context(), cartOwner(c), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Clear empties the cart
func (h *CartHandler) Clear(c *gin.Context) {
	result, err := h.cartService.Clear(c.Request.Context(), cartOwner(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
