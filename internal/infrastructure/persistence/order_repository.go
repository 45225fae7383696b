package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID with items preloaded
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&o, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &o, nil
}

// FindByOrderNumber finds an order by its public order number
func (r *GormOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&o, "order_number = ?", orderNumber).Error; err != nil {
		return nil, translateError(err)
	}
	return &o, nil
}

// FindByUser finds orders belonging to a user, newest first
func (r *GormOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	var orders []order.Order
	query := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID)

	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, OrderSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)

	if err := query.Order(orderBy + " " + orderDir).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// CountByUser counts orders belonging to a user
func (r *GormOrderRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an order together with its items
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return translateError(r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(o).Error)
}

// ExistsByOrderNumber checks whether an order number is already taken
func (r *GormOrderRepository) ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Where("order_number = ?", orderNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// HasUserPurchasedProduct checks whether any non-cancelled order of the
// user contains the product
func (r *GormOrderRepository) HasUserPurchasedProduct(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&order.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ? AND orders.status <> ? AND order_items.product_id = ?",
			userID, order.StatusCancelled, productID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormOrderRepository implements OrderRepository
var _ order.OrderRepository = (*GormOrderRepository)(nil)

// GormShippingAddressRepository implements ShippingAddressRepository using GORM
type GormShippingAddressRepository struct {
	db *gorm.DB
}

// NewGormShippingAddressRepository creates a new GormShippingAddressRepository
func NewGormShippingAddressRepository(db *gorm.DB) *GormShippingAddressRepository {
	return &GormShippingAddressRepository{db: db}
}

// FindByID finds an address by its ID
func (r *GormShippingAddressRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.ShippingAddress, error) {
	var address order.ShippingAddress
	if err := r.db.WithContext(ctx).First(&address, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &address, nil
}

// FindByUser finds all addresses saved by a user, default first
func (r *GormShippingAddressRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]order.ShippingAddress, error) {
	var addresses []order.ShippingAddress
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, created_at DESC").
		Find(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}

// FindDefaultByUser finds the user's default address
func (r *GormShippingAddressRepository) FindDefaultByUser(ctx context.Context, userID uuid.UUID) (*order.ShippingAddress, error) {
	var address order.ShippingAddress
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_default = ?", userID, true).
		First(&address).Error; err != nil {
		return nil, translateError(err)
	}
	return &address, nil
}

// Save creates or updates an address
func (r *GormShippingAddressRepository) Save(ctx context.Context, address *order.ShippingAddress) error {
	return translateError(r.db.WithContext(ctx).Save(address).Error)
}

// ClearDefault clears the default flag on every address of a user
func (r *GormShippingAddressRepository) ClearDefault(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&order.ShippingAddress{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error
}

// Delete deletes an address
func (r *GormShippingAddressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&order.ShippingAddress{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormShippingAddressRepository implements ShippingAddressRepository
var _ order.ShippingAddressRepository = (*GormShippingAddressRepository)(nil)
