package order_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	orderapp "github.com/storefront/backend/internal/application/order"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/payment"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/storefront/backend/internal/infrastructure/persistence"
)

type orderEnv struct {
	db      *gorm.DB
	service *orderapp.OrderService
}

func newOrderEnv(t *testing.T) *orderEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&catalog.Category{},
		&catalog.Product{},
		&catalog.ProductImage{},
		&catalog.ProductVariant{},
		&cart.Cart{},
		&cart.CartItem{},
		&order.Order{},
		&order.OrderItem{},
		&order.ShippingAddress{},
		&payment.Payment{},
		&payment.Refund{},
	))

	scope := persistence.NewGormTransactionScope(db)
	return &orderEnv{
		db:      db,
		service: orderapp.NewOrderService(persistence.NewGormOrderRepository(db), scope),
	}
}

// seedOrder persists a product and an order holding qty units of it,
// with the product's stock already reduced as checkout would leave it.
func (e *orderEnv) seedOrder(t *testing.T, userID uuid.UUID, stock, qty int) (*catalog.Product, *order.Order) {
	t.Helper()
	ctx := context.Background()

	category, err := catalog.NewCategory("Stationery "+uuid.NewString()[:8], "")
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormCategoryRepository(e.db).Save(ctx, category))

	productRepo := persistence.NewGormProductRepository(e.db)
	p, err := catalog.NewProduct("Sketchbook "+uuid.NewString()[:8], "SKBK-"+uuid.NewString()[:8], "", category.ID, valueobject.NewMoneyINRFromFloat(200), stock)
	require.NoError(t, err)
	require.NoError(t, productRepo.Save(ctx, p))

	o, err := order.NewOrder(order.NewOrderNumber(time.Now()), userID, order.PaymentMethodCard, order.ShippingDetails{
		FullName:     "Asha Rao",
		Phone:        "9876543210",
		AddressLine1: "12 MG Road",
		City:         "Bengaluru",
		State:        "Karnataka",
		PostalCode:   "560001",
		Country:      "India",
	}, "")
	require.NoError(t, err)
	require.NoError(t, o.AddItem(p.ID, p.Name, p.SKU, valueobject.NewMoneyINRFromFloat(200), qty))
	require.NoError(t, o.CalculateTotals(decimal.NewFromInt(500), decimal.NewFromInt(50)))
	require.NoError(t, persistence.NewGormOrderRepository(e.db).Save(ctx, o))
	require.NoError(t, productRepo.DecrementStock(ctx, p.ID, qty))

	return p, o
}

func (e *orderEnv) productStock(t *testing.T, productID uuid.UUID) int {
	t.Helper()
	p, err := persistence.NewGormProductRepository(e.db).FindByID(context.Background(), productID)
	require.NoError(t, err)
	return p.StockQuantity
}

func TestOrderService_Cancel_RestoresStock(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()
	userID := uuid.New()

	p, o := env.seedOrder(t, userID, 5, 2)
	require.Equal(t, 3, env.productStock(t, p.ID))

	resp, err := env.service.Cancel(ctx, userID, o.OrderNumber, orderapp.CancelOrderRequest{Reason: "ordered by mistake"})
	require.NoError(t, err)

	assert.Equal(t, string(order.StatusCancelled), resp.Status)
	assert.Equal(t, 5, env.productStock(t, p.ID))

	// A second cancellation must not restore the units again
	_, err = env.service.Cancel(ctx, userID, o.OrderNumber, orderapp.CancelOrderRequest{Reason: "again"})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
	assert.Equal(t, 5, env.productStock(t, p.ID))
}

func TestOrderService_Cancel_OtherUsersOrderLooksMissing(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()

	p, o := env.seedOrder(t, uuid.New(), 5, 1)

	_, err := env.service.Cancel(ctx, uuid.New(), o.OrderNumber, orderapp.CancelOrderRequest{Reason: "not mine"})
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Equal(t, 4, env.productStock(t, p.ID))
}

func TestOrderService_ShipAndDeliver(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()
	userID := uuid.New()

	_, o := env.seedOrder(t, userID, 5, 1)

	// A pending order cannot be shipped before it starts processing
	_, err := env.service.Ship(ctx, o.OrderNumber, orderapp.ShipOrderRequest{TrackingNumber: "TRK123"})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)

	require.NoError(t, o.MarkProcessing())
	require.NoError(t, persistence.NewGormOrderRepository(env.db).Save(ctx, o))

	shipped, err := env.service.Ship(ctx, o.OrderNumber, orderapp.ShipOrderRequest{TrackingNumber: "TRK123"})
	require.NoError(t, err)
	assert.Equal(t, string(order.StatusShipped), shipped.Status)
	assert.Equal(t, "TRK123", shipped.TrackingNumber)

	// Shipped orders can no longer be cancelled
	_, err = env.service.Cancel(ctx, userID, o.OrderNumber, orderapp.CancelOrderRequest{Reason: "too late"})
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)

	delivered, err := env.service.Deliver(ctx, o.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, string(order.StatusDelivered), delivered.Status)
}

func TestOrderService_ListAndGet(t *testing.T) {
	env := newOrderEnv(t)
	ctx := context.Background()
	userID := uuid.New()

	_, first := env.seedOrder(t, userID, 5, 1)
	_, second := env.seedOrder(t, userID, 5, 1)
	env.seedOrder(t, uuid.New(), 5, 1) // someone else's order

	items, total, err := env.service.List(ctx, userID, orderapp.OrderListFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, items, 2)

	got, err := env.service.GetByOrderNumber(ctx, userID, first.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, first.OrderNumber, got.OrderNumber)

	_, err = env.service.GetByOrderNumber(ctx, uuid.New(), second.OrderNumber)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
