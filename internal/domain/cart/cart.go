package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// Cart holds a shopper's pending items. A cart belongs to exactly one
// owner: either a signed-in user (UserID set) or an anonymous session
// (SessionKey set), never both and never neither.
type Cart struct {
	shared.BaseAggregateRoot
	UserID     *uuid.UUID `gorm:"uniqueIndex"`
	SessionKey *string    `gorm:"uniqueIndex"`
	Items      []CartItem `gorm:"foreignKey:CartID"`
}

// CartItem is a line in a cart. The (cart, product) pair is unique;
// adding the same product again increases the quantity instead.
type CartItem struct {
	shared.BaseEntity
	CartID    uuid.UUID `gorm:"uniqueIndex:idx_cart_item_cart_product"`
	ProductID uuid.UUID `gorm:"uniqueIndex:idx_cart_item_cart_product"`
	Quantity  int
	Product   *catalog.Product `gorm:"foreignKey:ProductID"`
}

// NewCartForUser creates an empty cart owned by a user
func NewCartForUser(userID uuid.UUID) (*Cart, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "User ID cannot be empty")
	}
	return &Cart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            &userID,
		Items:             make([]CartItem, 0),
	}, nil
}

// NewCartForSession creates an empty cart owned by an anonymous session
func NewCartForSession(sessionKey string) (*Cart, error) {
	if sessionKey == "" {
		return nil, shared.NewDomainError("INVALID_OWNER", "Session key cannot be empty")
	}
	return &Cart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SessionKey:        &sessionKey,
		Items:             make([]CartItem, 0),
	}, nil
}

// AddItem adds a product to the cart or increases the quantity of an
// existing line. The caller is responsible for stock checks against the
// resulting quantity.
func (c *Cart) AddItem(productID uuid.UUID, quantity int) (*CartItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	for idx := range c.Items {
		if c.Items[idx].ProductID == productID {
			c.Items[idx].Quantity += quantity
			c.Items[idx].UpdatedAt = time.Now()
			c.UpdatedAt = time.Now()
			return &c.Items[idx], nil
		}
	}

	item := CartItem{
		BaseEntity: shared.NewBaseEntity(),
		CartID:     c.ID,
		ProductID:  productID,
		Quantity:   quantity,
	}
	c.Items = append(c.Items, item)
	c.UpdatedAt = time.Now()
	return &c.Items[len(c.Items)-1], nil
}

// UpdateItemQuantity sets the quantity of a line. A quantity of zero or
// less removes the line.
func (c *Cart) UpdateItemQuantity(productID uuid.UUID, quantity int) error {
	for idx := range c.Items {
		if c.Items[idx].ProductID == productID {
			if quantity <= 0 {
				c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			} else {
				c.Items[idx].Quantity = quantity
				c.Items[idx].UpdatedAt = time.Now()
			}
			c.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.ErrNotFound
}

// RemoveItem removes a line from the cart
func (c *Cart) RemoveItem(productID uuid.UUID) error {
	return c.UpdateItemQuantity(productID, 0)
}

// Clear removes every line from the cart. The cart row itself survives.
func (c *Cart) Clear() {
	c.Items = c.Items[:0]
	c.UpdatedAt = time.Now()
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// TotalItems returns the sum of all line quantities
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// Subtotal returns the sum of quantity times effective price over all
// lines. Lines without a loaded product contribute nothing; callers that
// need exact totals must load carts with products preloaded.
func (c *Cart) Subtotal() valueobject.Money {
	total := valueobject.ZeroINR()
	for _, item := range c.Items {
		total = total.MustAdd(item.LineTotal())
	}
	return total
}

// GetItem returns the line for a product, nil when absent
func (c *Cart) GetItem(productID uuid.UUID) *CartItem {
	for idx := range c.Items {
		if c.Items[idx].ProductID == productID {
			return &c.Items[idx]
		}
	}
	return nil
}

// LineTotal returns quantity times the product's effective price
func (i *CartItem) LineTotal() valueobject.Money {
	if i.Product == nil {
		return valueobject.ZeroINR()
	}
	return i.Product.EffectivePrice().MultiplyByInt(int64(i.Quantity))
}
