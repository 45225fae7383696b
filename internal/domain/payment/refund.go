package payment

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// RefundStatus represents the lifecycle of a refund request
type RefundStatus string

const (
	RefundStatusPending    RefundStatus = "pending"
	RefundStatusProcessing RefundStatus = "processing"
	RefundStatusCompleted  RefundStatus = "completed"
	RefundStatusRejected   RefundStatus = "rejected"
)

// IsValid checks if the status is a valid RefundStatus
func (s RefundStatus) IsValid() bool {
	switch s {
	case RefundStatusPending, RefundStatusProcessing, RefundStatusCompleted, RefundStatusRejected:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status
func (s RefundStatus) CanTransitionTo(target RefundStatus) bool {
	switch s {
	case RefundStatusPending:
		return target == RefundStatusProcessing || target == RefundStatusCompleted || target == RefundStatusRejected
	case RefundStatusProcessing:
		return target == RefundStatusCompleted || target == RefundStatusRejected
	case RefundStatusCompleted, RefundStatusRejected:
		return false // Terminal states
	}
	return false
}

// Refund is a request to return money for a completed payment. A payment
// may accumulate several refund requests.
type Refund struct {
	shared.BaseAggregateRoot
	RefundID        string    `gorm:"uniqueIndex"`
	PaymentRecordID uuid.UUID `gorm:"index"`
	Amount          decimal.Decimal
	Reason          string
	Status          RefundStatus
	ProcessedAt     *time.Time
}

// MarkProcessing moves the refund into processing
func (r *Refund) MarkProcessing() error {
	if !r.Status.CanTransitionTo(RefundStatusProcessing) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot process a %s refund", r.Status))
	}
	r.Status = RefundStatusProcessing
	r.UpdatedAt = time.Now()
	return nil
}

// Complete marks the refund as paid out
func (r *Refund) Complete() error {
	if !r.Status.CanTransitionTo(RefundStatusCompleted) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot complete a %s refund", r.Status))
	}
	now := time.Now()
	r.Status = RefundStatusCompleted
	r.ProcessedAt = &now
	r.UpdatedAt = now
	return nil
}

// Reject declines the refund request
func (r *Refund) Reject(reason string) error {
	if !r.Status.CanTransitionTo(RefundStatusRejected) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot reject a %s refund", r.Status))
	}
	if reason != "" {
		r.Reason = reason
	}
	now := time.Now()
	r.Status = RefundStatusRejected
	r.ProcessedAt = &now
	r.UpdatedAt = now
	return nil
}

// AmountMoney returns the refund amount as Money
func (r *Refund) AmountMoney() valueobject.Money {
	return valueobject.NewMoneyINR(r.Amount)
}
