package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
)

// ReviewService handles product reviews. Only buyers may review: a user
// must have a non-cancelled order containing the product, and may review
// each product once.
type ReviewService struct {
	reviewRepo  catalog.ReviewRepository
	productRepo catalog.ProductRepository
	orderRepo   order.OrderRepository
}

// NewReviewService creates a new ReviewService
func NewReviewService(
	reviewRepo catalog.ReviewRepository,
	productRepo catalog.ProductRepository,
	orderRepo order.OrderRepository,
) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

// Create files a review on a product the user has purchased
func (s *ReviewService) Create(ctx context.Context, userID uuid.UUID, productSlug string, req CreateReviewRequest) (*ReviewResponse, error) {
	product, err := s.productRepo.FindBySlug(ctx, productSlug)
	if err != nil {
		return nil, err
	}

	purchased, err := s.orderRepo.HasUserPurchasedProduct(ctx, userID, product.ID)
	if err != nil {
		return nil, err
	}
	if !purchased {
		return nil, shared.NewDomainError("NOT_PURCHASED", "Only buyers of this product can review it")
	}

	if _, err := s.reviewRepo.FindByProductAndUser(ctx, product.ID, userID); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "You have already reviewed this product")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	review, err := catalog.NewReview(product.ID, userID, req.Rating, req.Title, req.Comment)
	if err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Save(ctx, review); err != nil {
		return nil, err
	}

	response := ToReviewResponse(review)
	return &response, nil
}

// ListForProduct retrieves the approved reviews on a product
func (s *ReviewService) ListForProduct(ctx context.Context, productSlug string, page, pageSize int) ([]ReviewResponse, error) {
	product, err := s.productRepo.FindBySlug(ctx, productSlug)
	if err != nil {
		return nil, err
	}

	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}

	reviews, err := s.reviewRepo.FindByProduct(ctx, product.ID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]ReviewResponse, 0, len(reviews))
	for idx := range reviews {
		out = append(out, ToReviewResponse(&reviews[idx]))
	}
	return out, nil
}

// Approve publishes a review. Back-office only.
func (s *ReviewService) Approve(ctx context.Context, reviewID uuid.UUID) (*ReviewResponse, error) {
	review, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	review.Approve()
	if err := s.reviewRepo.Save(ctx, review); err != nil {
		return nil, err
	}
	response := ToReviewResponse(review)
	return &response, nil
}

// Reject hides a review. Back-office only.
func (s *ReviewService) Reject(ctx context.Context, reviewID uuid.UUID) (*ReviewResponse, error) {
	review, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	review.Reject()
	if err := s.reviewRepo.Save(ctx, review); err != nil {
		return nil, err
	}
	response := ToReviewResponse(review)
	return &response, nil
}
