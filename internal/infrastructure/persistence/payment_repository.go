package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/payment"
)

// GormPaymentRepository implements PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment by its internal ID with refunds preloaded
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	var p payment.Payment
	if err := r.db.WithContext(ctx).
		Preload("Refunds").
		First(&p, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &p, nil
}

// FindByPaymentID finds a payment by its public reference
func (r *GormPaymentRepository) FindByPaymentID(ctx context.Context, paymentID string) (*payment.Payment, error) {
	var p payment.Payment
	if err := r.db.WithContext(ctx).
		Preload("Refunds").
		First(&p, "payment_id = ?", paymentID).Error; err != nil {
		return nil, translateError(err)
	}
	return &p, nil
}

// FindByOrder finds the payment attached to an order
func (r *GormPaymentRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) (*payment.Payment, error) {
	var p payment.Payment
	if err := r.db.WithContext(ctx).
		Preload("Refunds").
		First(&p, "order_id = ?", orderID).Error; err != nil {
		return nil, translateError(err)
	}
	return &p, nil
}

// FindByUser finds the payments on a user's orders, newest first
func (r *GormPaymentRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]payment.Payment, error) {
	var payments []payment.Payment
	if err := r.db.WithContext(ctx).
		Preload("Refunds").
		Joins("JOIN orders ON orders.id = payment_records.order_id").
		Where("orders.user_id = ?", userID).
		Order("payment_records.created_at DESC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// Save creates or updates a payment together with its refunds
func (r *GormPaymentRepository) Save(ctx context.Context, p *payment.Payment) error {
	return translateError(r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(p).Error)
}

// Ensure GormPaymentRepository implements PaymentRepository
var _ payment.PaymentRepository = (*GormPaymentRepository)(nil)

// GormRefundRepository implements RefundRepository using GORM
type GormRefundRepository struct {
	db *gorm.DB
}

// NewGormRefundRepository creates a new GormRefundRepository
func NewGormRefundRepository(db *gorm.DB) *GormRefundRepository {
	return &GormRefundRepository{db: db}
}

// FindByID finds a refund by its internal ID
func (r *GormRefundRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.Refund, error) {
	var refund payment.Refund
	if err := r.db.WithContext(ctx).First(&refund, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &refund, nil
}

// FindByRefundID finds a refund by its public reference
func (r *GormRefundRepository) FindByRefundID(ctx context.Context, refundID string) (*payment.Refund, error) {
	var refund payment.Refund
	if err := r.db.WithContext(ctx).First(&refund, "refund_id = ?", refundID).Error; err != nil {
		return nil, translateError(err)
	}
	return &refund, nil
}

// FindByPayment finds the refunds filed against a payment, newest first
func (r *GormRefundRepository) FindByPayment(ctx context.Context, paymentRecordID uuid.UUID) ([]payment.Refund, error) {
	var refunds []payment.Refund
	if err := r.db.WithContext(ctx).
		Where("payment_record_id = ?", paymentRecordID).
		Order("created_at DESC").
		Find(&refunds).Error; err != nil {
		return nil, err
	}
	return refunds, nil
}

// Save creates or updates a refund
func (r *GormRefundRepository) Save(ctx context.Context, refund *payment.Refund) error {
	return translateError(r.db.WithContext(ctx).Save(refund).Error)
}

// Ensure GormRefundRepository implements RefundRepository
var _ payment.RefundRepository = (*GormRefundRepository)(nil)
