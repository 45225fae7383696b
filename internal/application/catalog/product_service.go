package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// ProductService handles catalog browsing and product management
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	brandRepo    catalog.BrandRepository
	reviewRepo   catalog.ReviewRepository
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	brandRepo catalog.BrandRepository,
	reviewRepo catalog.ReviewRepository,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
		reviewRepo:   reviewRepo,
	}
}

// List retrieves products matching the storefront filters
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductListItemResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}

	switch filter.Sort {
	case "price_asc":
		domainFilter.OrderBy, domainFilter.OrderDir = "price", "asc"
	case "price_desc":
		domainFilter.OrderBy, domainFilter.OrderDir = "price", "desc"
	case "popular":
		domainFilter.OrderBy, domainFilter.OrderDir = "view_count", "desc"
	default:
		domainFilter.OrderBy, domainFilter.OrderDir = "created_at", "desc"
	}

	if filter.Category != "" {
		category, err := s.categoryRepo.FindBySlug(ctx, filter.Category)
		if err != nil {
			return nil, 0, err
		}
		domainFilter.Filters["category_id"] = category.ID
	}
	if filter.Brand != "" {
		brand, err := s.brandRepo.FindBySlug(ctx, filter.Brand)
		if err != nil {
			return nil, 0, err
		}
		domainFilter.Filters["brand_id"] = brand.ID
	}
	if filter.Featured != nil {
		domainFilter.Filters["is_featured"] = *filter.Featured
	}
	if filter.MinPrice != nil {
		min, err := parsePrice(*filter.MinPrice)
		if err != nil {
			return nil, 0, shared.NewDomainError("INVALID_INPUT", "min_price is not a valid decimal")
		}
		domainFilter.Filters["min_price"] = min
	}
	if filter.MaxPrice != nil {
		max, err := parsePrice(*filter.MaxPrice)
		if err != nil {
			return nil, 0, shared.NewDomainError("INVALID_INPUT", "max_price is not a valid decimal")
		}
		domainFilter.Filters["max_price"] = max
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToProductListItemResponses(products), total, nil
}

// GetBySlug retrieves a product detail page and records the view
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	// Best effort: a missed view bump never fails the detail page
	if err := s.productRepo.IncrementViewCount(ctx, product.ID); err == nil {
		product.ViewCount++
	}

	rating, err := s.reviewRepo.RatingSummary(ctx, product.ID)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product, rating)
	return &response, nil
}

// GetFeatured retrieves the featured product strip
func (s *ProductService) GetFeatured(ctx context.Context, limit int) ([]ProductListItemResponse, error) {
	if limit <= 0 {
		limit = 8
	}
	products, err := s.productRepo.FindFeatured(ctx, limit)
	if err != nil {
		return nil, err
	}
	return ToProductListItemResponses(products), nil
}

// Create adds a product to the catalog
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	if _, err := s.categoryRepo.FindByID(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	price, err := parsePrice(req.Price)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price is not a valid decimal")
	}

	product, err := catalog.NewProduct(req.Name, req.SKU, req.Description, req.CategoryID, valueobject.NewMoneyINR(price), req.StockQuantity)
	if err != nil {
		return nil, err
	}

	if req.BrandID != nil {
		if _, err := s.brandRepo.FindByID(ctx, *req.BrandID); err != nil {
			return nil, err
		}
		product.BrandID = req.BrandID
	}
	if req.DiscountPrice != nil {
		discount, err := parsePrice(*req.DiscountPrice)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_PRICE", "Discount price is not a valid decimal")
		}
		if err := product.SetDiscountPrice(valueobject.NewMoneyINR(discount)); err != nil {
			return nil, err
		}
	}
	if req.IsFeatured {
		product.MarkFeatured(true)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product, catalog.RatingSummary{})
	return &response, nil
}

// Update changes mutable product fields
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		price, err := parsePrice(*req.Price)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_PRICE", "Price is not a valid decimal")
		}
		if err := product.UpdatePrice(valueobject.NewMoneyINR(price)); err != nil {
			return nil, err
		}
	}
	if req.DiscountPrice != nil {
		if *req.DiscountPrice == "" {
			product.ClearDiscountPrice()
		} else {
			discount, err := parsePrice(*req.DiscountPrice)
			if err != nil {
				return nil, shared.NewDomainError("INVALID_PRICE", "Discount price is not a valid decimal")
			}
			if err := product.SetDiscountPrice(valueobject.NewMoneyINR(discount)); err != nil {
				return nil, err
			}
		}
	}
	if req.StockQuantity != nil {
		if *req.StockQuantity < 0 {
			return nil, shared.NewDomainError("INVALID_STOCK", "Stock quantity cannot be negative")
		}
		product.StockQuantity = *req.StockQuantity
	}
	if req.IsAvailable != nil {
		product.IsAvailable = *req.IsAvailable
	}
	if req.IsFeatured != nil {
		product.MarkFeatured(*req.IsFeatured)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	rating, err := s.reviewRepo.RatingSummary(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product, rating)
	return &response, nil
}

// AddVariant attaches a variant to a product
func (s *ProductService) AddVariant(ctx context.Context, productID uuid.UUID, req CreateVariantRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	adjustment := decimal.Zero
	if req.PriceAdjustment != "" {
		if adjustment, err = parsePrice(req.PriceAdjustment); err != nil {
			return nil, shared.NewDomainError("INVALID_PRICE", "Price adjustment is not a valid decimal")
		}
	}

	variant, err := catalog.NewProductVariant(product.ID, req.Type, req.Value, adjustment, req.StockQuantity)
	if err != nil {
		return nil, err
	}
	product.Variants = append(product.Variants, *variant)

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	rating, err := s.reviewRepo.RatingSummary(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product, rating)
	return &response, nil
}

// ListCategories retrieves active categories
func (s *ProductService) ListCategories(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CategoryResponse, 0, len(categories))
	for idx := range categories {
		out = append(out, ToCategoryResponse(&categories[idx]))
	}
	return out, nil
}

// CreateCategory adds a category
func (s *ProductService) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	category, err := catalog.NewCategory(req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	response := ToCategoryResponse(category)
	return &response, nil
}

// ListBrands retrieves active brands
func (s *ProductService) ListBrands(ctx context.Context) ([]BrandResponse, error) {
	brands, err := s.brandRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]BrandResponse, 0, len(brands))
	for idx := range brands {
		out = append(out, ToBrandResponse(&brands[idx]))
	}
	return out, nil
}

// CreateBrand adds a brand
func (s *ProductService) CreateBrand(ctx context.Context, req CreateBrandRequest) (*BrandResponse, error) {
	brand, err := catalog.NewBrand(req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.brandRepo.Save(ctx, brand); err != nil {
		return nil, err
	}
	response := ToBrandResponse(brand)
	return &response, nil
}
