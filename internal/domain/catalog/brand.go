package catalog

import (
	"strings"
	"time"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// Brand is a product manufacturer or label
type Brand struct {
	shared.BaseAggregateRoot
	Name        string
	Slug        string `gorm:"uniqueIndex"`
	Description string
	IsActive    bool
}

// NewBrand creates a new brand with a slug derived from the name
func NewBrand(name, description string) (*Brand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Brand name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Brand name cannot exceed 100 characters")
	}

	return &Brand{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              valueobject.Slugify(name),
		Description:       description,
		IsActive:          true,
	}, nil
}

// Deactivate hides the brand from the storefront
func (b *Brand) Deactivate() {
	b.IsActive = false
	b.UpdatedAt = time.Now()
}
