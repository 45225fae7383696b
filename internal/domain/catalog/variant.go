package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// VariantType classifies a product variant axis
type VariantType string

const (
	VariantTypeSize   VariantType = "size"
	VariantTypeColor  VariantType = "color"
	VariantTypeWeight VariantType = "weight"
	VariantTypeOther  VariantType = "other"
)

// IsValid checks if the type is a known VariantType
func (t VariantType) IsValid() bool {
	switch t {
	case VariantTypeSize, VariantTypeColor, VariantTypeWeight, VariantTypeOther:
		return true
	}
	return false
}

// ProductVariant is a sellable variation of a product, e.g. size M.
// A (product, type, value) combination is unique. PriceAdjustment is added
// to the product's effective price and may be negative.
type ProductVariant struct {
	shared.BaseEntity
	ProductID       uuid.UUID   `gorm:"uniqueIndex:idx_variant_product_type_value"`
	Type            VariantType `gorm:"uniqueIndex:idx_variant_product_type_value"`
	Value           string      `gorm:"uniqueIndex:idx_variant_product_type_value"`
	PriceAdjustment decimal.Decimal
	StockQuantity   int
	IsAvailable     bool
}

// NewProductVariant creates a new variant for a product
func NewProductVariant(productID uuid.UUID, variantType VariantType, value string, priceAdjustment decimal.Decimal, stockQuantity int) (*ProductVariant, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !variantType.IsValid() {
		return nil, shared.NewDomainError("INVALID_VARIANT_TYPE", "Unknown variant type")
	}
	if value == "" {
		return nil, shared.NewDomainError("INVALID_VARIANT_VALUE", "Variant value cannot be empty")
	}
	if stockQuantity < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock quantity cannot be negative")
	}

	return &ProductVariant{
		BaseEntity:      shared.NewBaseEntity(),
		ProductID:       productID,
		Type:            variantType,
		Value:           value,
		PriceAdjustment: priceAdjustment,
		StockQuantity:   stockQuantity,
		IsAvailable:     true,
	}, nil
}

// FinalPrice returns the product's effective price plus this variant's adjustment
func (v *ProductVariant) FinalPrice(product *Product) valueobject.Money {
	return valueobject.NewMoneyINR(product.EffectivePrice().Amount().Add(v.PriceAdjustment))
}

// MarkUnavailable removes the variant from sale
func (v *ProductVariant) MarkUnavailable() {
	v.IsAvailable = false
	v.UpdatedAt = time.Now()
}
