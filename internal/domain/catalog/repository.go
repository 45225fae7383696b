package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindBySlug finds a product by its slug
	FindBySlug(ctx context.Context, slug string) (*Product, error)

	// FindBySKU finds a product by its SKU
	FindBySKU(ctx context.Context, sku string) (*Product, error)

	// FindByIDs finds multiple products by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// FindAll finds all products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// FindFeatured finds available featured products
	FindFeatured(ctx context.Context, limit int) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// DecrementStock atomically decreases stock for a product, failing with
	// ErrInsufficientStock when fewer than quantity units remain. The check
	// and the write happen in a single conditional UPDATE so concurrent
	// callers cannot oversell.
	DecrementStock(ctx context.Context, productID uuid.UUID, quantity int) error

	// IncrementStock atomically adds stock back to a product
	IncrementStock(ctx context.Context, productID uuid.UUID, quantity int) error

	// IncrementViewCount bumps the view counter without rewriting the row
	IncrementViewCount(ctx context.Context, productID uuid.UUID) error
}

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByID finds a category by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindBySlug finds a category by its slug
	FindBySlug(ctx context.Context, slug string) (*Category, error)

	// FindAll finds all categories matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Category, error)

	// FindActive finds all active categories
	FindActive(ctx context.Context) ([]Category, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error

	// Delete deletes a category
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts categories matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// BrandRepository defines the interface for brand persistence
type BrandRepository interface {
	// FindByID finds a brand by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Brand, error)

	// FindBySlug finds a brand by its slug
	FindBySlug(ctx context.Context, slug string) (*Brand, error)

	// FindAll finds all brands matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Brand, error)

	// FindActive finds all active brands
	FindActive(ctx context.Context) ([]Brand, error)

	// Save creates or updates a brand
	Save(ctx context.Context, brand *Brand) error

	// Delete deletes a brand
	Delete(ctx context.Context, id uuid.UUID) error
}

// RatingSummary aggregates approved review ratings for a product
type RatingSummary struct {
	Average float64
	Count   int64
}

// ReviewRepository defines the interface for review persistence
type ReviewRepository interface {
	// FindByID finds a review by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Review, error)

	// FindByProduct finds approved reviews for a product
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]Review, error)

	// FindByProductAndUser finds the review a user left on a product, if any
	FindByProductAndUser(ctx context.Context, productID, userID uuid.UUID) (*Review, error)

	// Save creates or updates a review
	Save(ctx context.Context, review *Review) error

	// Delete deletes a review
	Delete(ctx context.Context, id uuid.UUID) error

	// RatingSummary returns the approved-review average and count for a product
	RatingSummary(ctx context.Context, productID uuid.UUID) (RatingSummary, error)
}
