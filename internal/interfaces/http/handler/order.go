package handler

import (
	"github.com/gin-gonic/gin"

	orderapp "github.com/storefront/backend/internal/application/order"
)

// OrderHandler handles order API endpoints
type OrderHandler struct {
	BaseHandler
	orderService *orderapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// List returns the caller's orders, newest first
func (h *OrderHandler) List(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	var filter orderapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.InvalidRequest(c, err)
		return
	}
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PageSize == 0 {
		filter.PageSize = 20
	}

	orders, total, err := h.orderService.List(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// Get returns one of the caller's orders by order number
func (h *OrderHandler) Get(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	result, err := h.orderService.GetByOrderNumber(c.Request.Context(), userID, c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Cancel cancels a pending or processing order and restores its stock
func (h *OrderHandler) Cancel(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	var req orderapp.CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidRequest(c, err)
		return
	}

	result, err := h.orderService.Cancel(c.Request.Context(), userID, c.Param("number"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Ship marks an order as shipped with a tracking number
func (h *OrderHandler) Ship(c *gin.Context) {
	var req orderapp.ShipOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidRequest(c, err)
		return
	}

	result, err := h.orderService.Ship(c.Request.Context(), c.Param("number"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Deliver marks a shipped order as delivered
func (h *OrderHandler) Deliver(c *gin.Context) {
	result, err := h.orderService.Deliver(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
