package cart

import (
	"context"

	"github.com/google/uuid"
)

// CartRepository defines the interface for cart persistence
type CartRepository interface {
	// FindByID finds a cart by its ID with items and products preloaded
	FindByID(ctx context.Context, id uuid.UUID) (*Cart, error)

	// FindByUser finds the cart owned by a user, ErrNotFound when absent
	FindByUser(ctx context.Context, userID uuid.UUID) (*Cart, error)

	// FindBySession finds the cart owned by a session, ErrNotFound when absent
	FindBySession(ctx context.Context, sessionKey string) (*Cart, error)

	// Save creates or updates a cart together with its items. Lines removed
	// from the aggregate are deleted from storage.
	Save(ctx context.Context, cart *Cart) error

	// DeleteItems removes all lines from a cart, keeping the cart row
	DeleteItems(ctx context.Context, cartID uuid.UUID) error

	// Delete deletes a cart and its items
	Delete(ctx context.Context, id uuid.UUID) error
}
