package payment

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// Status represents the lifecycle of a payment record
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusRefunded   Status = "refunded"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed, StatusRefunded:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPending:
		return target == StatusProcessing || target == StatusCompleted || target == StatusFailed
	case StatusProcessing:
		return target == StatusCompleted || target == StatusFailed
	case StatusCompleted:
		return target == StatusRefunded
	case StatusFailed, StatusRefunded:
		return false // Terminal states
	}
	return false
}

// newReference builds a prefixed reference like PAY-1A2B3C4D5E with ten
// random uppercase hex characters.
func newReference(prefix string) string {
	buf := make([]byte, 5)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return fmt.Sprintf("%s-%s", prefix, strings.ToUpper(hex.EncodeToString(buf)))
}

// NewPaymentID generates a public payment reference
func NewPaymentID() string {
	return newReference("PAY")
}

// NewRefundID generates a public refund reference
func NewRefundID() string {
	return newReference("REF")
}

// Payment is the money record for exactly one order. Creation is
// idempotent per order: initiating payment again returns the existing
// record instead of creating a second one.
type Payment struct {
	shared.BaseAggregateRoot
	PaymentID     string    `gorm:"uniqueIndex"`
	OrderID       uuid.UUID `gorm:"uniqueIndex"`
	Amount        decimal.Decimal
	Method        order.PaymentMethod
	Status        Status
	TransactionID string
	FailureReason string
	PaidAt        *time.Time
	Refunds       []Refund `gorm:"foreignKey:PaymentRecordID"`
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payment_records"
}

// NewPayment creates a pending payment for an order
func NewPayment(orderID uuid.UUID, amount valueobject.Money, method order.PaymentMethod) (*Payment, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}

	return &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PaymentID:         NewPaymentID(),
		OrderID:           orderID,
		Amount:            amount.Amount(),
		Method:            method,
		Status:            StatusPending,
	}, nil
}

// MarkProcessing records that the gateway accepted the payment attempt
func (p *Payment) MarkProcessing(transactionID string) error {
	if !p.Status.CanTransitionTo(StatusProcessing) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot start processing a %s payment", p.Status))
	}
	p.Status = StatusProcessing
	p.TransactionID = transactionID
	p.UpdatedAt = time.Now()
	return nil
}

// Complete records a successful payment
func (p *Payment) Complete(transactionID string) error {
	if !p.Status.CanTransitionTo(StatusCompleted) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot complete a %s payment", p.Status))
	}
	now := time.Now()
	p.Status = StatusCompleted
	if transactionID != "" {
		p.TransactionID = transactionID
	}
	p.PaidAt = &now
	p.UpdatedAt = now
	return nil
}

// Fail records a failed payment attempt
func (p *Payment) Fail(reason string) error {
	if !p.Status.CanTransitionTo(StatusFailed) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot fail a %s payment", p.Status))
	}
	p.Status = StatusFailed
	p.FailureReason = reason
	p.UpdatedAt = time.Now()
	return nil
}

// RequestRefund creates a refund against this payment. Refunds are only
// allowed once the payment has completed.
func (p *Payment) RequestRefund(amount valueobject.Money, reason string) (*Refund, error) {
	if p.Status != StatusCompleted {
		return nil, shared.ErrInvalidRefundState
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Refund amount must be positive")
	}
	if amount.Amount().GreaterThan(p.Amount) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Refund amount cannot exceed the payment amount")
	}

	refund := &Refund{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		RefundID:          NewRefundID(),
		PaymentRecordID:   p.ID,
		Amount:            amount.Amount(),
		Reason:            reason,
		Status:            RefundStatusPending,
	}
	p.Refunds = append(p.Refunds, *refund)
	p.UpdatedAt = time.Now()
	return refund, nil
}

// MarkRefunded flips a completed payment to refunded. Called when a
// refund against it completes.
func (p *Payment) MarkRefunded() error {
	if !p.Status.CanTransitionTo(StatusRefunded) {
		return shared.ErrInvalidRefundState
	}
	p.Status = StatusRefunded
	p.UpdatedAt = time.Now()
	return nil
}

// AmountMoney returns the payment amount as Money
func (p *Payment) AmountMoney() valueobject.Money {
	return valueobject.NewMoneyINR(p.Amount)
}
