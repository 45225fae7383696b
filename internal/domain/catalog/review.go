package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// Review is a customer rating for a product. A user may review a product
// at most once; the (product, user) pair is unique.
type Review struct {
	shared.BaseAggregateRoot
	ProductID  uuid.UUID `gorm:"uniqueIndex:idx_review_product_user"`
	UserID     uuid.UUID `gorm:"uniqueIndex:idx_review_product_user"`
	Rating     int
	Title      string
	Comment    string
	IsApproved bool
}

// NewReview creates a new review awaiting moderation
func NewReview(productID, userID uuid.UUID, rating int, title, comment string) (*Review, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if rating < 1 || rating > 5 {
		return nil, shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}

	return &Review{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		UserID:            userID,
		Rating:            rating,
		Title:             title,
		Comment:           comment,
	}, nil
}

// Approve makes the review visible on the storefront
func (r *Review) Approve() {
	r.IsApproved = true
	r.UpdatedAt = time.Now()
}

// Reject hides the review
func (r *Review) Reject() {
	r.IsApproved = false
	r.UpdatedAt = time.Now()
}
