package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// CartService handles cart operations for both signed-in users and
// anonymous sessions.
type CartService struct {
	cartRepo    cart.CartRepository
	productRepo catalog.ProductRepository
}

// NewCartService creates a new CartService
func NewCartService(cartRepo cart.CartRepository, productRepo catalog.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetOrCreate returns the owner's cart, creating an empty one on first use
func (s *CartService) GetOrCreate(ctx context.Context, owner Owner) (*CartResponse, error) {
	c, err := s.getOrCreateCart(ctx, owner)
	if err != nil {
		return nil, err
	}
	response := ToCartResponse(c)
	return &response, nil
}

// AddItem adds a product to the owner's cart. Adding a product already in
// the cart increases the line quantity; the combined quantity must be
// coverable by current stock.
func (s *CartService) AddItem(ctx context.Context, owner Owner, req AddItemRequest) (*MutationResponse, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	c, err := s.getOrCreateCart(ctx, owner)
	if err != nil {
		return nil, err
	}

	requested := req.Quantity
	if existing := c.GetItem(product.ID); existing != nil {
		requested += existing.Quantity
	}
	if !product.IsInStock(requested) {
		return nil, shared.ErrInsufficientStock
	}

	item, err := c.AddItem(product.ID, req.Quantity)
	if err != nil {
		return nil, err
	}
	item.Product = product

	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	response := ToMutationResponse(c, fmt.Sprintf("%s added to cart", product.Name))
	return &response, nil
}

// UpdateItem sets the quantity of a cart line; zero removes the line
func (s *CartService) UpdateItem(ctx context.Context, owner Owner, productID uuid.UUID, req UpdateItemRequest) (*MutationResponse, error) {
	c, err := s.findCart(ctx, owner)
	if err != nil {
		return nil, err
	}

	if req.Quantity > 0 {
		product, err := s.productRepo.FindByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		if !product.IsInStock(req.Quantity) {
			return nil, shared.ErrInsufficientStock
		}
	}

	if err := c.UpdateItemQuantity(productID, req.Quantity); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	response := ToMutationResponse(c, "Cart updated")
	return &response, nil
}

// RemoveItem removes a line from the owner's cart
func (s *CartService) RemoveItem(ctx context.Context, owner Owner, productID uuid.UUID) (*MutationResponse, error) {
	return s.UpdateItem(ctx, owner, productID, UpdateItemRequest{Quantity: 0})
}

// Clear removes every line from the owner's cart, keeping the cart itself
func (s *CartService) Clear(ctx context.Context, owner Owner) (*MutationResponse, error) {
	c, err := s.findCart(ctx, owner)
	if err != nil {
		return nil, err
	}

	c.Clear()
	if err := s.cartRepo.DeleteItems(ctx, c.ID); err != nil {
		return nil, err
	}

	response := ToMutationResponse(c, "Cart cleared")
	return &response, nil
}

func (s *CartService) findCart(ctx context.Context, owner Owner) (*cart.Cart, error) {
	if owner.IsUser() {
		return s.cartRepo.FindByUser(ctx, *owner.UserID)
	}
	if owner.SessionKey == "" {
		return nil, shared.NewDomainError("INVALID_OWNER", "A user ID or session key is required")
	}
	return s.cartRepo.FindBySession(ctx, owner.SessionKey)
}

func (s *CartService) getOrCreateCart(ctx context.Context, owner Owner) (*cart.Cart, error) {
	c, err := s.findCart(ctx, owner)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if owner.IsUser() {
		c, err = cart.NewCartForUser(*owner.UserID)
	} else {
		c, err = cart.NewCartForSession(owner.SessionKey)
	}
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
