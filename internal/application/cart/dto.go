package cart

import (
	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/cart"
)

// Owner identifies whose cart is being operated on: a signed-in user or
// an anonymous session, never both.
type Owner struct {
	UserID     *uuid.UUID
	SessionKey string
}

// IsUser reports whether the owner is a signed-in user
func (o Owner) IsUser() bool {
	return o.UserID != nil && *o.UserID != uuid.Nil
}

// AddItemRequest adds a product to the cart
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// UpdateItemRequest sets the quantity of a cart line. Zero removes the line.
type UpdateItemRequest struct {
	Quantity int `json:"quantity" binding:"min=0"`
}

// CartItemResponse represents a cart line in API responses
type CartItemResponse struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	ProductSlug string    `json:"product_slug"`
	UnitPrice   string    `json:"unit_price"`
	Quantity    int       `json:"quantity"`
	LineTotal   string    `json:"line_total"`
	InStock     bool      `json:"in_stock"`
}

// CartResponse represents a cart in API responses
type CartResponse struct {
	ID         uuid.UUID          `json:"id"`
	Items      []CartItemResponse `json:"items"`
	TotalItems int                `json:"total_items"`
	Subtotal   string             `json:"subtotal"`
	Currency   string             `json:"currency"`
}

// MutationResponse is the envelope returned by cart mutations, shaped for
// storefront widgets that update the cart badge in place.
type MutationResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	CartCount int    `json:"cart_count"`
	CartTotal string `json:"cart_total"`
}

// ToCartResponse converts a domain cart to a response DTO
func ToCartResponse(c *cart.Cart) CartResponse {
	items := make([]CartItemResponse, 0, len(c.Items))
	for idx := range c.Items {
		item := &c.Items[idx]
		resp := CartItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal().StringFixed(2),
		}
		if item.Product != nil {
			resp.ProductName = item.Product.Name
			resp.ProductSlug = item.Product.Slug
			resp.UnitPrice = item.Product.EffectivePrice().StringFixed(2)
			resp.InStock = item.Product.IsInStock(item.Quantity)
		}
		items = append(items, resp)
	}

	subtotal := c.Subtotal()
	return CartResponse{
		ID:         c.ID,
		Items:      items,
		TotalItems: c.TotalItems(),
		Subtotal:   subtotal.StringFixed(2),
		Currency:   string(subtotal.Currency()),
	}
}

// ToMutationResponse builds the cart badge envelope after a mutation
func ToMutationResponse(c *cart.Cart, message string) MutationResponse {
	return MutationResponse{
		Success:   true,
		Message:   message,
		CartCount: c.TotalItems(),
		CartTotal: c.Subtotal().StringFixed(2),
	}
}
