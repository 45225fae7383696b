package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/application/checkout"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
)

// OrderService handles order tracking and lifecycle operations after
// checkout has placed the order.
type OrderService struct {
	orderRepo order.OrderRepository
	scope     checkout.TransactionScope
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo order.OrderRepository, scope checkout.TransactionScope) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		scope:     scope,
	}
}

// List retrieves the caller's orders, newest first
func (s *OrderService) List(ctx context.Context, userID uuid.UUID, filter OrderListFilter) ([]OrderListItemResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]interface{}),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	orders, err := s.orderRepo.FindByUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.orderRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	return ToOrderListItemResponses(orders), total, nil
}

// GetByOrderNumber retrieves one of the caller's orders by its public number
func (s *OrderService) GetByOrderNumber(ctx context.Context, userID uuid.UUID, orderNumber string) (*OrderResponse, error) {
	o, err := s.findOwned(ctx, userID, orderNumber)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// Cancel cancels one of the caller's orders. The status change and the
// stock restoration for every line happen in the same transaction, so a
// cancelled order always puts its units back exactly once.
func (s *OrderService) Cancel(ctx context.Context, userID uuid.UUID, orderNumber string, req CancelOrderRequest) (*OrderResponse, error) {
	var response OrderResponse
	err := s.scope.Execute(ctx, func(repos checkout.TransactionalRepositories) error {
		o, err := repos.OrderRepo().FindByOrderNumber(ctx, orderNumber)
		if err != nil {
			return err
		}
		if o.UserID != userID {
			return shared.ErrNotFound
		}

		if err := o.Cancel(req.Reason); err != nil {
			return err
		}

		for _, item := range o.Items {
			if err := repos.ProductRepo().IncrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		if err := repos.OrderRepo().Save(ctx, o); err != nil {
			return err
		}

		response = ToOrderResponse(o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// Ship marks an order shipped with its tracking number. Fulfillment
// endpoints are not owner-scoped; they serve the back office.
func (s *OrderService) Ship(ctx context.Context, orderNumber string, req ShipOrderRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if err := o.Ship(req.TrackingNumber); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// Deliver marks an order delivered
func (s *OrderService) Deliver(ctx context.Context, orderNumber string) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if err := o.Deliver(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}
	response := ToOrderResponse(o)
	return &response, nil
}

func (s *OrderService) findOwned(ctx context.Context, userID uuid.UUID, orderNumber string) (*order.Order, error) {
	o, err := s.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	// Orders of other users are indistinguishable from missing ones
	if o.UserID != userID {
		return nil, shared.ErrNotFound
	}
	return o, nil
}
