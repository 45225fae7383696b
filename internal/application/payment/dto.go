package payment

import (
	"time"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/payment"
)

// InitiatePaymentRequest opens (or returns) the payment for an order
type InitiatePaymentRequest struct {
	OrderNumber string `json:"order_number" binding:"required"`
}

// RefundRequest asks for money back on a completed payment. Amount is a
// decimal string; empty means a full refund.
type RefundRequest struct {
	Amount string `json:"amount" binding:"omitempty,decimal"`
	Reason string `json:"reason" binding:"required"`
}

// RefundResponse represents a refund in API responses
type RefundResponse struct {
	RefundID    string     `json:"refund_id"`
	Amount      string     `json:"amount"`
	Reason      string     `json:"reason"`
	Status      string     `json:"status"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	PaymentID     string           `json:"payment_id"`
	OrderID       uuid.UUID        `json:"order_id"`
	Amount        string           `json:"amount"`
	Method        string           `json:"method"`
	Status        string           `json:"status"`
	TransactionID string           `json:"transaction_id,omitempty"`
	PaidAt        *time.Time       `json:"paid_at,omitempty"`
	Refunds       []RefundResponse `json:"refunds,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

// InitiatePaymentResponse is the payment plus gateway session details
type InitiatePaymentResponse struct {
	Payment        PaymentResponse `json:"payment"`
	GatewayMessage string          `json:"gateway_message,omitempty"`
	RedirectURL    string          `json:"redirect_url,omitempty"`
}

// ToRefundResponse converts a domain refund to a response DTO
func ToRefundResponse(r *payment.Refund) RefundResponse {
	return RefundResponse{
		RefundID:    r.RefundID,
		Amount:      r.Amount.StringFixed(2),
		Reason:      r.Reason,
		Status:      string(r.Status),
		ProcessedAt: r.ProcessedAt,
		CreatedAt:   r.CreatedAt,
	}
}

// ToPaymentResponse converts a domain payment to a response DTO
func ToPaymentResponse(p *payment.Payment) PaymentResponse {
	refunds := make([]RefundResponse, 0, len(p.Refunds))
	for idx := range p.Refunds {
		refunds = append(refunds, ToRefundResponse(&p.Refunds[idx]))
	}

	return PaymentResponse{
		PaymentID:     p.PaymentID,
		OrderID:       p.OrderID,
		Amount:        p.Amount.StringFixed(2),
		Method:        string(p.Method),
		Status:        string(p.Status),
		TransactionID: p.TransactionID,
		PaidAt:        p.PaidAt,
		Refunds:       refunds,
		CreatedAt:     p.CreatedAt,
	}
}

// ToPaymentResponses converts a slice of payments
func ToPaymentResponses(payments []payment.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for idx := range payments {
		out = append(out, ToPaymentResponse(&payments[idx]))
	}
	return out
}
