package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/catalog"
)

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Page     int     `form:"page"`
	PageSize int     `form:"page_size"`
	Category string  `form:"category"`
	Brand    string  `form:"brand"`
	Search   string  `form:"search"`
	Featured *bool   `form:"featured"`
	MinPrice *string `form:"min_price"`
	MaxPrice *string `form:"max_price"`
	Sort     string  `form:"sort"`
}

// CreateProductRequest creates a catalog product
type CreateProductRequest struct {
	Name          string     `json:"name" binding:"required"`
	SKU           string     `json:"sku" binding:"required"`
	Description   string     `json:"description"`
	CategoryID    uuid.UUID  `json:"category_id" binding:"required"`
	BrandID       *uuid.UUID `json:"brand_id"`
	Price         string     `json:"price" binding:"required,decimal"`
	DiscountPrice *string    `json:"discount_price" binding:"omitempty,decimal"`
	StockQuantity int        `json:"stock_quantity" binding:"min=0"`
	IsFeatured    bool       `json:"is_featured"`
}

// UpdateProductRequest updates mutable product fields
type UpdateProductRequest struct {
	Description   *string `json:"description"`
	Price         *string `json:"price" binding:"omitempty,decimal"`
	DiscountPrice *string `json:"discount_price" binding:"omitempty,decimal"`
	StockQuantity *int    `json:"stock_quantity"`
	IsAvailable   *bool   `json:"is_available"`
	IsFeatured    *bool   `json:"is_featured"`
}

// CreateVariantRequest adds a variant to a product
type CreateVariantRequest struct {
	Type            catalog.VariantType `json:"type" binding:"required"`
	Value           string              `json:"value" binding:"required"`
	PriceAdjustment string              `json:"price_adjustment" binding:"omitempty,decimal"`
	StockQuantity   int                 `json:"stock_quantity" binding:"min=0"`
}

// CreateCategoryRequest creates a category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateBrandRequest creates a brand
type CreateBrandRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateReviewRequest files a review for a product
type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Title   string `json:"title"`
	Comment string `json:"comment"`
}

// VariantResponse represents a product variant in API responses
type VariantResponse struct {
	ID              uuid.UUID `json:"id"`
	Type            string    `json:"type"`
	Value           string    `json:"value"`
	PriceAdjustment string    `json:"price_adjustment"`
	FinalPrice      string    `json:"final_price"`
	StockQuantity   int       `json:"stock_quantity"`
	IsAvailable     bool      `json:"is_available"`
}

// ProductResponse represents a full product in API responses
type ProductResponse struct {
	ID                 uuid.UUID         `json:"id"`
	Name               string            `json:"name"`
	Slug               string            `json:"slug"`
	SKU                string            `json:"sku"`
	Description        string            `json:"description"`
	CategoryID         uuid.UUID         `json:"category_id"`
	BrandID            *uuid.UUID        `json:"brand_id,omitempty"`
	Price              string            `json:"price"`
	DiscountPrice      *string           `json:"discount_price,omitempty"`
	EffectivePrice     string            `json:"effective_price"`
	DiscountPercentage int               `json:"discount_percentage"`
	Currency           string            `json:"currency"`
	StockQuantity      int               `json:"stock_quantity"`
	IsAvailable        bool              `json:"is_available"`
	IsFeatured         bool              `json:"is_featured"`
	IsOnSale           bool              `json:"is_on_sale"`
	ViewCount          int64             `json:"view_count"`
	RatingAverage      float64           `json:"rating_average"`
	RatingCount        int64             `json:"rating_count"`
	Variants           []VariantResponse `json:"variants,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
}

// ProductListItemResponse is the condensed product shape for list views
type ProductListItemResponse struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Slug               string    `json:"slug"`
	Price              string    `json:"price"`
	EffectivePrice     string    `json:"effective_price"`
	DiscountPercentage int       `json:"discount_percentage"`
	IsOnSale           bool      `json:"is_on_sale"`
	IsFeatured         bool      `json:"is_featured"`
	InStock            bool      `json:"in_stock"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
}

// BrandResponse represents a brand in API responses
type BrandResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
}

// ReviewResponse represents a review in API responses
type ReviewResponse struct {
	ID         uuid.UUID `json:"id"`
	ProductID  uuid.UUID `json:"product_id"`
	Rating     int       `json:"rating"`
	Title      string    `json:"title,omitempty"`
	Comment    string    `json:"comment,omitempty"`
	IsApproved bool      `json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToProductResponse converts a domain product to a full response DTO
func ToProductResponse(p *catalog.Product, rating catalog.RatingSummary) ProductResponse {
	var discountPrice *string
	if p.DiscountPrice != nil {
		s := p.DiscountPrice.StringFixed(2)
		discountPrice = &s
	}

	variants := make([]VariantResponse, 0, len(p.Variants))
	for idx := range p.Variants {
		v := &p.Variants[idx]
		variants = append(variants, VariantResponse{
			ID:              v.ID,
			Type:            string(v.Type),
			Value:           v.Value,
			PriceAdjustment: v.PriceAdjustment.StringFixed(2),
			FinalPrice:      v.FinalPrice(p).StringFixed(2),
			StockQuantity:   v.StockQuantity,
			IsAvailable:     v.IsAvailable,
		})
	}

	effective := p.EffectivePrice()
	return ProductResponse{
		ID:                 p.ID,
		Name:               p.Name,
		Slug:               p.Slug,
		SKU:                p.SKU,
		Description:        p.Description,
		CategoryID:         p.CategoryID,
		BrandID:            p.BrandID,
		Price:              p.Price.StringFixed(2),
		DiscountPrice:      discountPrice,
		EffectivePrice:     effective.StringFixed(2),
		DiscountPercentage: p.DiscountPercentage(),
		Currency:           string(effective.Currency()),
		StockQuantity:      p.StockQuantity,
		IsAvailable:        p.IsAvailable,
		IsFeatured:         p.IsFeatured,
		IsOnSale:           p.IsOnSale(),
		ViewCount:          p.ViewCount,
		RatingAverage:      rating.Average,
		RatingCount:        rating.Count,
		Variants:           variants,
		CreatedAt:          p.CreatedAt,
	}
}

// ToProductListItemResponses converts domain products to condensed list DTOs
func ToProductListItemResponses(products []catalog.Product) []ProductListItemResponse {
	out := make([]ProductListItemResponse, 0, len(products))
	for idx := range products {
		p := &products[idx]
		out = append(out, ProductListItemResponse{
			ID:                 p.ID,
			Name:               p.Name,
			Slug:               p.Slug,
			Price:              p.Price.StringFixed(2),
			EffectivePrice:     p.EffectivePrice().StringFixed(2),
			DiscountPercentage: p.DiscountPercentage(),
			IsOnSale:           p.IsOnSale(),
			IsFeatured:         p.IsFeatured,
			InStock:            p.IsInStock(1),
		})
	}
	return out
}

// ToCategoryResponse converts a domain category to a response DTO
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		IsActive:    c.IsActive,
	}
}

// ToBrandResponse converts a domain brand to a response DTO
func ToBrandResponse(b *catalog.Brand) BrandResponse {
	return BrandResponse{
		ID:          b.ID,
		Name:        b.Name,
		Slug:        b.Slug,
		Description: b.Description,
		IsActive:    b.IsActive,
	}
}

// ToReviewResponse converts a domain review to a response DTO
func ToReviewResponse(r *catalog.Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID,
		ProductID:  r.ProductID,
		Rating:     r.Rating,
		Title:      r.Title,
		Comment:    r.Comment,
		IsApproved: r.IsApproved,
		CreatedAt:  r.CreatedAt,
	}
}

// parsePrice parses a decimal string supplied in a request
func parsePrice(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
