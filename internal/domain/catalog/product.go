package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// Product is the catalog aggregate root. Price and DiscountPrice are stored
// as plain decimals; the storefront currency is uniform (see valueobject.DefaultCurrency).
type Product struct {
	shared.BaseAggregateRoot
	Name          string
	Slug          string `gorm:"uniqueIndex"`
	SKU           string `gorm:"uniqueIndex"`
	Description   string
	CategoryID    uuid.UUID
	BrandID       *uuid.UUID
	Price         decimal.Decimal
	DiscountPrice *decimal.Decimal
	StockQuantity int
	IsAvailable   bool
	IsFeatured    bool
	ViewCount     int64
	Images        []ProductImage   `gorm:"foreignKey:ProductID"`
	Variants      []ProductVariant `gorm:"foreignKey:ProductID"`
}

// ProductImage is an additional image attached to a product
type ProductImage struct {
	shared.BaseEntity
	ProductID uuid.UUID
	URL       string
	AltText   string
	SortOrder int
}

// NewProduct creates a new product with a slug derived from the name
func NewProduct(name, sku, description string, categoryID uuid.UUID, price valueobject.Money, stockQuantity int) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "Product SKU cannot be empty")
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category ID cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}
	if stockQuantity < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock quantity cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              valueobject.Slugify(name),
		SKU:               sku,
		Description:       description,
		CategoryID:        categoryID,
		Price:             price.Amount(),
		StockQuantity:     stockQuantity,
		IsAvailable:       true,
	}, nil
}

// EffectivePrice returns the price a buyer pays right now: the discount
// price when one is set and strictly lower than the list price, the list
// price otherwise.
func (p *Product) EffectivePrice() valueobject.Money {
	if p.DiscountPrice != nil && p.DiscountPrice.LessThan(p.Price) {
		return valueobject.NewMoneyINR(*p.DiscountPrice)
	}
	return valueobject.NewMoneyINR(p.Price)
}

// DiscountPercentage returns the discount as a whole percentage of the list
// price, zero when no discount applies.
func (p *Product) DiscountPercentage() int {
	if p.DiscountPrice == nil || !p.DiscountPrice.LessThan(p.Price) || p.Price.IsZero() {
		return 0
	}
	diff := p.Price.Sub(*p.DiscountPrice)
	return int(diff.Div(p.Price).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
}

// SetDiscountPrice sets the discounted price. It must stay below the list price.
func (p *Product) SetDiscountPrice(discount valueobject.Money) error {
	if discount.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Discount price cannot be negative")
	}
	if discount.Amount().GreaterThanOrEqual(p.Price) {
		return shared.NewDomainError("INVALID_PRICE", "Discount price must be lower than the list price")
	}
	amount := discount.Amount()
	p.DiscountPrice = &amount
	p.UpdatedAt = time.Now()
	return nil
}

// ClearDiscountPrice removes the discount
func (p *Product) ClearDiscountPrice() {
	p.DiscountPrice = nil
	p.UpdatedAt = time.Now()
}

// UpdatePrice changes the list price
func (p *Product) UpdatePrice(price valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}
	p.Price = price.Amount()
	p.UpdatedAt = time.Now()
	return nil
}

// IsInStock reports whether the requested quantity can be fulfilled
func (p *Product) IsInStock(quantity int) bool {
	return p.IsAvailable && p.StockQuantity >= quantity
}

// IsOnSale reports whether a discount currently applies
func (p *Product) IsOnSale() bool {
	return p.DiscountPrice != nil && p.DiscountPrice.LessThan(p.Price)
}

// DecreaseStock reduces stock for an in-memory product. Checkout paths use
// the repository's conditional decrement instead so concurrent orders cannot
// oversell.
func (p *Product) DecreaseStock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if p.StockQuantity < quantity {
		return shared.ErrInsufficientStock
	}
	p.StockQuantity -= quantity
	p.UpdatedAt = time.Now()
	return nil
}

// IncreaseStock adds stock back, e.g. on cancellation or restock
func (p *Product) IncreaseStock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	p.StockQuantity += quantity
	p.UpdatedAt = time.Now()
	return nil
}

// RecordView bumps the product view counter
func (p *Product) RecordView() {
	p.ViewCount++
}

// MarkFeatured toggles the featured flag
func (p *Product) MarkFeatured(featured bool) {
	p.IsFeatured = featured
	p.UpdatedAt = time.Now()
}

// MarkUnavailable removes the product from sale without deleting it
func (p *Product) MarkUnavailable() {
	p.IsAvailable = false
	p.UpdatedAt = time.Now()
}

// PriceMoney returns the list price as Money
func (p *Product) PriceMoney() valueobject.Money {
	return valueobject.NewMoneyINR(p.Price)
}
