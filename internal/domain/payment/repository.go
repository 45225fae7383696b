package payment

import (
	"context"

	"github.com/google/uuid"
)

// PaymentRepository defines the interface for payment persistence
type PaymentRepository interface {
	// FindByID finds a payment by its internal ID with refunds preloaded
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// FindByPaymentID finds a payment by its public reference (PAY-...)
	FindByPaymentID(ctx context.Context, paymentID string) (*Payment, error)

	// FindByOrder finds the payment for an order, ErrNotFound when absent
	FindByOrder(ctx context.Context, orderID uuid.UUID) (*Payment, error)

	// FindByUser finds all payments for orders belonging to a user, newest first
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Payment, error)

	// Save creates or updates a payment together with its refunds
	Save(ctx context.Context, payment *Payment) error
}

// RefundRepository defines the interface for refund persistence
type RefundRepository interface {
	// FindByID finds a refund by its internal ID
	FindByID(ctx context.Context, id uuid.UUID) (*Refund, error)

	// FindByRefundID finds a refund by its public reference (REF-...)
	FindByRefundID(ctx context.Context, refundID string) (*Refund, error)

	// FindByPayment finds all refunds against a payment
	FindByPayment(ctx context.Context, paymentRecordID uuid.UUID) ([]Refund, error)

	// Save creates or updates a refund
	Save(ctx context.Context, refund *Refund) error
}
