package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/payment"
	"github.com/storefront/backend/internal/domain/shared"
)

// orderNumberAttempts bounds retries when a freshly generated order
// number collides with an existing one.
const orderNumberAttempts = 5

// Pricing carries the checkout pricing rules loaded from configuration
type Pricing struct {
	FreeShippingAbove decimal.Decimal
	FlatShippingFee   decimal.Decimal
}

// DefaultPricing returns the standard storefront pricing rules
func DefaultPricing() Pricing {
	return Pricing{
		FreeShippingAbove: decimal.NewFromInt(500),
		FlatShippingFee:   decimal.NewFromInt(50),
	}
}

// CheckoutService turns a cart into an order. The whole operation runs in
// one database transaction: order creation, item snapshots, stock
// decrements, optional address save and cart emptying either all happen
// or none do.
type CheckoutService struct {
	scope   TransactionScope
	pricing Pricing
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(scope TransactionScope, pricing Pricing) *CheckoutService {
	return &CheckoutService{
		scope:   scope,
		pricing: pricing,
	}
}

// Checkout places an order from the user's cart
func (s *CheckoutService) Checkout(ctx context.Context, userID uuid.UUID, req CheckoutRequest) (*CheckoutResponse, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Checkout requires a signed-in user")
	}
	if !req.PaymentMethod.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}
	if req.SavedAddressID == nil && req.Address == nil {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "A delivery address is required")
	}

	var response CheckoutResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		c, err := repos.CartRepo().FindByUser(ctx, userID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.ErrEmptyCart
			}
			return err
		}
		if c.IsEmpty() {
			return shared.ErrEmptyCart
		}

		shipping, err := s.resolveShipping(ctx, repos, userID, req)
		if err != nil {
			return err
		}

		products, err := s.loadProducts(ctx, repos, c)
		if err != nil {
			return err
		}

		placed, err := s.placeOrder(ctx, repos, userID, req, shipping, c, products)
		if err != nil {
			return err
		}

		// Atomic conditional decrement per line. A line that cannot be
		// covered fails the whole transaction, so concurrent checkouts
		// never oversell the last units.
		for _, item := range c.Items {
			if err := repos.ProductRepo().DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		if req.SaveAddress && req.Address != nil {
			if err := s.saveAddress(ctx, repos, userID, *req.Address, req.SetDefault); err != nil {
				return err
			}
		}

		if err := repos.CartRepo().DeleteItems(ctx, c.ID); err != nil {
			return err
		}

		// Cash on delivery needs no gateway round trip: the order moves
		// straight to processing with a pending payment record.
		if req.PaymentMethod == order.PaymentMethodCOD {
			pay, err := payment.NewPayment(placed.ID, placed.TotalMoney(), order.PaymentMethodCOD)
			if err != nil {
				return err
			}
			if err := repos.PaymentRepo().Save(ctx, pay); err != nil {
				return err
			}
			if err := placed.MarkProcessing(); err != nil {
				return err
			}
			if err := repos.OrderRepo().Save(ctx, placed); err != nil {
				return err
			}
		}

		response = ToCheckoutResponse(placed)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// placeOrder creates the order with item snapshots and persists it,
// regenerating the order number on the rare unique collision. The save
// runs inside a savepoint: without it, the unique violation from a
// collision would abort the surrounding Postgres transaction and every
// retry after the first would fail regardless of the new number.
func (s *CheckoutService) placeOrder(
	ctx context.Context,
	repos TransactionalRepositories,
	userID uuid.UUID,
	req CheckoutRequest,
	shipping order.ShippingDetails,
	c *cart.Cart,
	products map[uuid.UUID]*catalog.Product,
) (*order.Order, error) {
	var lastErr error
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		o, err := order.NewOrder(order.NewOrderNumber(time.Now()), userID, req.PaymentMethod, shipping, req.OrderNotes)
		if err != nil {
			return nil, err
		}

		for _, item := range c.Items {
			product, ok := products[item.ProductID]
			if !ok {
				return nil, shared.ErrNotFound
			}
			if !product.IsAvailable {
				return nil, shared.ErrInsufficientStock
			}
			if err := o.AddItem(product.ID, product.Name, product.SKU, product.EffectivePrice(), item.Quantity); err != nil {
				return nil, err
			}
		}

		if err := o.CalculateTotals(s.pricing.FreeShippingAbove, s.pricing.FlatShippingFee); err != nil {
			return nil, err
		}

		taken, err := repos.OrderRepo().ExistsByOrderNumber(ctx, o.OrderNumber)
		if err != nil {
			return nil, err
		}
		if taken {
			lastErr = shared.ErrAlreadyExists
			continue
		}

		// The pre-check above does not see numbers claimed by concurrent
		// uncommitted checkouts, so the unique index is still the final
		// arbiter. The savepoint keeps a losing insert from poisoning the
		// rest of the checkout transaction.
		err = repos.Atomic(ctx, func(atomic TransactionalRepositories) error {
			return atomic.OrderRepo().Save(ctx, o)
		})
		if err != nil {
			if errors.Is(err, shared.ErrAlreadyExists) {
				lastErr = err
				continue
			}
			return nil, err
		}
		return o, nil
	}
	return nil, lastErr
}

func (s *CheckoutService) resolveShipping(ctx context.Context, repos TransactionalRepositories, userID uuid.UUID, req CheckoutRequest) (order.ShippingDetails, error) {
	if req.SavedAddressID != nil {
		addr, err := repos.AddressRepo().FindByID(ctx, *req.SavedAddressID)
		if err != nil {
			return order.ShippingDetails{}, err
		}
		if addr.UserID != userID {
			return order.ShippingDetails{}, shared.ErrForbidden
		}
		return addr.Details(), nil
	}
	details := req.Address.ToDetails()
	if err := details.Validate(); err != nil {
		return order.ShippingDetails{}, err
	}
	return details, nil
}

func (s *CheckoutService) saveAddress(ctx context.Context, repos TransactionalRepositories, userID uuid.UUID, input ShippingAddressInput, setDefault bool) error {
	addr, err := order.NewShippingAddress(userID, input.ToDetails(), setDefault)
	if err != nil {
		return err
	}
	if setDefault {
		if err := repos.AddressRepo().ClearDefault(ctx, userID); err != nil {
			return err
		}
	}
	return repos.AddressRepo().Save(ctx, addr)
}

func (s *CheckoutService) loadProducts(ctx context.Context, repos TransactionalRepositories, c *cart.Cart) (map[uuid.UUID]*catalog.Product, error) {
	ids := make([]uuid.UUID, 0, len(c.Items))
	for _, item := range c.Items {
		ids = append(ids, item.ProductID)
	}
	found, err := repos.ProductRepo().FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	products := make(map[uuid.UUID]*catalog.Product, len(found))
	for idx := range found {
		products[found[idx].ID] = &found[idx]
	}
	return products, nil
}
