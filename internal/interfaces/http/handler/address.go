package handler

import (
	"github.com/gin-gonic/gin"

	orderapp "github.com/storefront/backend/internal/application/order"
)

// AddressHandler handles saved shipping address API endpoints
type AddressHandler struct {
	BaseHandler
	addressService *orderapp.AddressService
}

// NewAddressHandler creates a new AddressHandler
func NewAddressHandler(addressService *orderapp.AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService}
}

// List returns the caller's saved addresses, default first
func (h *AddressHandler) List(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	addresses, err := h.addressService.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, addresses)
}

// Create saves a new address for the caller
func (h *AddressHandler) Create(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	var req orderapp.CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidRequest(c, err)
		return
	}

	address, err := h.addressService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, address)
}

// Update rewrites one of the caller's addresses
func (h *AddressHandler) Update(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	addressID, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	var req orderapp.CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidRequest(c, err)
		return
	}

	address, err := h.addressService.Update(c.Request.Context(), userID, addressID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, address)
}

// SetDefault makes an address the caller's default, clearing any prior one
func (h *AddressHandler) SetDefault(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	addressID, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	address, err := h.addressService.SetDefault(c.Request.Context(), userID, addressID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, address)
}

// Delete removes one of the caller's addresses
func (h *AddressHandler) Delete(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}
	addressID, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	if err := h.addressService.Delete(c.Request.Context(), userID, addressID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
