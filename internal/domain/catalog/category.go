package catalog

import (
	"strings"
	"time"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// Category groups products for browsing and filtering
type Category struct {
	shared.BaseAggregateRoot
	Name        string
	Slug        string `gorm:"uniqueIndex"`
	Description string
	IsActive    bool
}

// NewCategory creates a new category with a slug derived from the name
func NewCategory(name, description string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}

	return &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              valueobject.Slugify(name),
		Description:       description,
		IsActive:          true,
	}, nil
}

// Rename changes the category name and regenerates the slug
func (c *Category) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	c.Name = name
	c.Slug = valueobject.Slugify(name)
	c.UpdatedAt = time.Now()
	return nil
}

// Deactivate hides the category from the storefront
func (c *Category) Deactivate() {
	c.IsActive = false
	c.UpdatedAt = time.Now()
}

// Activate makes the category visible on the storefront
func (c *Category) Activate() {
	c.IsActive = true
	c.UpdatedAt = time.Now()
}
