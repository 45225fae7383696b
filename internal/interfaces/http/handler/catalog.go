package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/storefront/backend/internal/application/catalog"
)

// CatalogHandler handles category and brand API endpoints
type CatalogHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(productService *catalogapp.ProductService) *CatalogHandler {
	return &CatalogHandler{productService: productService}
}

// ListCategories returns the active categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.productService.ListCategories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, categories)
}

// CreateCategory adds a category
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req catalogapp.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidRequest(c, err)
		return
	}

	category, err := h.productService.CreateCategory(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, category)
}

// ListBrands returns the active brands
func (h *CatalogHandler) ListBrands(c *gin.Context) {
	brands, err := h.productService.ListBrands(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, brands)
}

// CreateBrand adds a brand
func (h *CatalogHandler) CreateBrand(c *gin.Context) {
	var req catalogapp.CreateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidRequest(c, err)
		return
	}

	brand, err := h.productService.CreateBrand(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, brand)
}
