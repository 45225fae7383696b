package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// GormReviewRepository implements ReviewRepository using GORM
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// FindByID finds a review by its ID
func (r *GormReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Review, error) {
	var review catalog.Review
	if err := r.db.WithContext(ctx).First(&review, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &review, nil
}

// FindByProduct finds approved reviews for a product, newest first
func (r *GormReviewRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]catalog.Review, error) {
	var reviews []catalog.Review
	query := r.db.WithContext(ctx).
		Where("product_id = ? AND is_approved = ?", productID, true)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ReviewSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)

	if err := query.Order(orderBy + " " + orderDir).Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// FindByProductAndUser finds the review a user left on a product, if any
func (r *GormReviewRepository) FindByProductAndUser(ctx context.Context, productID, userID uuid.UUID) (*catalog.Review, error) {
	var review catalog.Review
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND user_id = ?", productID, userID).
		First(&review).Error; err != nil {
		return nil, translateError(err)
	}
	return &review, nil
}

// Save creates or updates a review
func (r *GormReviewRepository) Save(ctx context.Context, review *catalog.Review) error {
	return translateError(r.db.WithContext(ctx).Save(review).Error)
}

// Delete deletes a review
func (r *GormReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Review{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// RatingSummary returns the approved-review average and count for a product
func (r *GormReviewRepository) RatingSummary(ctx context.Context, productID uuid.UUID) (catalog.RatingSummary, error) {
	var summary struct {
		Average float64
		Count   int64
	}
	if err := r.db.WithContext(ctx).
		Model(&catalog.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("product_id = ? AND is_approved = ?", productID, true).
		Scan(&summary).Error; err != nil {
		return catalog.RatingSummary{}, err
	}
	return catalog.RatingSummary{Average: summary.Average, Count: summary.Count}, nil
}

// Ensure GormReviewRepository implements ReviewRepository
var _ catalog.ReviewRepository = (*GormReviewRepository)(nil)
