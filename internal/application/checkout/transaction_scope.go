package checkout

import (
	"context"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/payment"
)

// TransactionScope provides transactional access to the repositories that
// participate in checkout and cancellation. All repository operations
// performed inside Execute share one database transaction and commit or
// roll back together.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to checkout repositories
// scoped to the current transaction.
type TransactionalRepositories interface {
	// Atomic runs fn inside a savepoint on the current transaction. If fn
	// fails, only the savepoint is rolled back and the surrounding
	// transaction stays usable. Postgres aborts a transaction on the first
	// statement error, so any write that is allowed to fail and be retried
	// must go through Atomic.
	Atomic(ctx context.Context, fn func(repos TransactionalRepositories) error) error
	// CartRepo returns the cart repository scoped to the current transaction
	CartRepo() cart.CartRepository
	// ProductRepo returns the product repository scoped to the current transaction
	ProductRepo() catalog.ProductRepository
	// OrderRepo returns the order repository scoped to the current transaction
	OrderRepo() order.OrderRepository
	// AddressRepo returns the shipping address repository scoped to the current transaction
	AddressRepo() order.ShippingAddressRepository
	// PaymentRepo returns the payment repository scoped to the current transaction
	PaymentRepo() payment.PaymentRepository
}
