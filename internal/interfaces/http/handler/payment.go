package handler

import (
	"io"

	"github.com/gin-gonic/gin"

	paymentapp "github.com/storefront/backend/internal/application/payment"
)

// PaymentHandler handles payment and refund API endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *paymentapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *paymentapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Initiate opens the payment for an order. Calling it twice returns the
// same payment record.
func (h *PaymentHandler) Initiate(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	var req paymentapp.InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidRequest(c, err)
		return
	}

	result, err := h.paymentService.Initiate(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// GetByOrder returns the payment for one of the caller's orders
func (h *PaymentHandler) GetByOrder(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	result, err := h.paymentService.GetByOrder(c.Request.Context(), userID, c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// History returns the caller's payments, newest first
func (h *PaymentHandler) History(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	payments, err := h.paymentService.History(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, payments)
}

// Callback receives asynchronous gateway notifications
func (h *PaymentHandler) Callback(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.BadRequest(c, "Cannot read callback payload")
		return
	}

	if err := h.paymentService.Callback(c.Request.Context(), payload); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"received": true})
}

// Complete settles a payment and flips the order's payment status
func (h *PaymentHandler) Complete(c *gin.Context) {
	var req struct {
		TransactionID string `json:"transaction_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidRequest(c, err)
		return
	}

	result, err := h.paymentService.Complete(c.Request.Context(), c.Param("payment_id"), req.TransactionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RequestRefund opens a refund against a completed payment
func (h *PaymentHandler) RequestRefund(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	var req paymentapp.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidRequest(c, err)
		return
	}

	result, err := h.paymentService.RequestRefund(c.Request.Context(), userID, c.Param("payment_id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// ListRefunds returns the refunds filed against one of the caller's payments
func (h *PaymentHandler) ListRefunds(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	refunds, err := h.paymentService.ListRefunds(c.Request.Context(), userID, c.Param("payment_id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, refunds)
}

// CompleteRefund pays out a refund and marks the payment refunded
func (h *PaymentHandler) CompleteRefund(c *gin.Context) {
	result, err := h.paymentService.CompleteRefund(c.Request.Context(), c.Param("refund_id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RejectRefund declines a pending refund request
func (h *PaymentHandler) RejectRefund(c *gin.Context) {
	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidRequest(c, err)
		return
	}

	result, err := h.paymentService.RejectRefund(c.Request.Context(), c.Param("refund_id"), req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
