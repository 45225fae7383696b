package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order by its ID with items preloaded
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByOrderNumber finds an order by its public order number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)

	// FindByUser finds orders belonging to a user, newest first
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Order, error)

	// CountByUser counts orders belonging to a user
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// Save creates or updates an order together with its items
	Save(ctx context.Context, order *Order) error

	// ExistsByOrderNumber checks whether an order number is already taken
	ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error)

	// HasUserPurchasedProduct checks whether any non-cancelled order of the
	// user contains the product
	HasUserPurchasedProduct(ctx context.Context, userID, productID uuid.UUID) (bool, error)
}

// ShippingAddressRepository defines the interface for saved address persistence
type ShippingAddressRepository interface {
	// FindByID finds an address by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*ShippingAddress, error)

	// FindByUser finds all addresses saved by a user, default first
	FindByUser(ctx context.Context, userID uuid.UUID) ([]ShippingAddress, error)

	// FindDefaultByUser finds the user's default address, ErrNotFound when absent
	FindDefaultByUser(ctx context.Context, userID uuid.UUID) (*ShippingAddress, error)

	// Save creates or updates an address
	Save(ctx context.Context, address *ShippingAddress) error

	// ClearDefault clears the default flag on every address of a user
	ClearDefault(ctx context.Context, userID uuid.UUID) error

	// Delete deletes an address
	Delete(ctx context.Context, id uuid.UUID) error
}
