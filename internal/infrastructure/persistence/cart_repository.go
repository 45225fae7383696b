package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/cart"
)

// GormCartRepository implements CartRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindByID finds a cart by its ID with items and products preloaded
func (r *GormCartRepository) FindByID(ctx context.Context, id uuid.UUID) (*cart.Cart, error) {
	var c cart.Cart
	if err := r.db.WithContext(ctx).
		Preload("Items.Product").
		First(&c, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &c, nil
}

// FindByUser finds the cart owned by a user
func (r *GormCartRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	var c cart.Cart
	if err := r.db.WithContext(ctx).
		Preload("Items.Product").
		First(&c, "user_id = ?", userID).Error; err != nil {
		return nil, translateError(err)
	}
	return &c, nil
}

// FindBySession finds the cart owned by an anonymous session
func (r *GormCartRepository) FindBySession(ctx context.Context, sessionKey string) (*cart.Cart, error) {
	var c cart.Cart
	if err := r.db.WithContext(ctx).
		Preload("Items.Product").
		First(&c, "session_key = ?", sessionKey).Error; err != nil {
		return nil, translateError(err)
	}
	return &c, nil
}

// Save creates or updates a cart together with its items. Lines removed
// from the aggregate are deleted so storage matches the in-memory state.
func (r *GormCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		keep := make([]uuid.UUID, 0, len(c.Items))
		for idx := range c.Items {
			keep = append(keep, c.Items[idx].ID)
		}

		query := tx.Where("cart_id = ?", c.ID)
		if len(keep) > 0 {
			query = query.Where("id NOT IN ?", keep)
		}
		if err := query.Delete(&cart.CartItem{}).Error; err != nil {
			return err
		}

		return translateError(tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(c).Error)
	})
}

// DeleteItems removes all lines from a cart, keeping the cart row
func (r *GormCartRepository) DeleteItems(ctx context.Context, cartID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&cart.CartItem{}).Error
}

// Delete deletes a cart and its items
func (r *GormCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", id).Delete(&cart.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&cart.Cart{}, "id = ?", id).Error
	})
}

// Ensure GormCartRepository implements CartRepository
var _ cart.CartRepository = (*GormCartRepository)(nil)
