package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/application/checkout"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
)

// AddressService manages a user's saved delivery addresses
type AddressService struct {
	addressRepo order.ShippingAddressRepository
	scope       checkout.TransactionScope
}

// NewAddressService creates a new AddressService
func NewAddressService(addressRepo order.ShippingAddressRepository, scope checkout.TransactionScope) *AddressService {
	return &AddressService{
		addressRepo: addressRepo,
		scope:       scope,
	}
}

// List retrieves the caller's saved addresses, default first
func (s *AddressService) List(ctx context.Context, userID uuid.UUID) ([]AddressResponse, error) {
	addresses, err := s.addressRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]AddressResponse, 0, len(addresses))
	for idx := range addresses {
		out = append(out, ToAddressResponse(&addresses[idx]))
	}
	return out, nil
}

// Create saves a new address. Marking it default clears the previous
// default in the same transaction.
func (s *AddressService) Create(ctx context.Context, userID uuid.UUID, req CreateAddressRequest) (*AddressResponse, error) {
	addr, err := order.NewShippingAddress(userID, req.ToDetails(), req.IsDefault)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos checkout.TransactionalRepositories) error {
		if req.IsDefault {
			if err := repos.AddressRepo().ClearDefault(ctx, userID); err != nil {
				return err
			}
		}
		return repos.AddressRepo().Save(ctx, addr)
	})
	if err != nil {
		return nil, err
	}

	response := ToAddressResponse(addr)
	return &response, nil
}

// Update replaces the fields of one of the caller's addresses
func (s *AddressService) Update(ctx context.Context, userID, addressID uuid.UUID, req CreateAddressRequest) (*AddressResponse, error) {
	var response AddressResponse
	err := s.scope.Execute(ctx, func(repos checkout.TransactionalRepositories) error {
		addr, err := s.findOwned(ctx, repos.AddressRepo(), userID, addressID)
		if err != nil {
			return err
		}
		if err := addr.Update(req.ToDetails()); err != nil {
			return err
		}
		if req.IsDefault && !addr.IsDefault {
			if err := repos.AddressRepo().ClearDefault(ctx, userID); err != nil {
				return err
			}
			addr.IsDefault = true
		}
		if err := repos.AddressRepo().Save(ctx, addr); err != nil {
			return err
		}
		response = ToAddressResponse(addr)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// SetDefault makes one address the default, clearing all others
func (s *AddressService) SetDefault(ctx context.Context, userID, addressID uuid.UUID) (*AddressResponse, error) {
	var response AddressResponse
	err := s.scope.Execute(ctx, func(repos checkout.TransactionalRepositories) error {
		addr, err := s.findOwned(ctx, repos.AddressRepo(), userID, addressID)
		if err != nil {
			return err
		}
		if err := repos.AddressRepo().ClearDefault(ctx, userID); err != nil {
			return err
		}
		addr.IsDefault = true
		if err := repos.AddressRepo().Save(ctx, addr); err != nil {
			return err
		}
		response = ToAddressResponse(addr)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// Delete removes one of the caller's addresses
func (s *AddressService) Delete(ctx context.Context, userID, addressID uuid.UUID) error {
	addr, err := s.findOwned(ctx, s.addressRepo, userID, addressID)
	if err != nil {
		return err
	}
	return s.addressRepo.Delete(ctx, addr.ID)
}

func (s *AddressService) findOwned(ctx context.Context, repo order.ShippingAddressRepository, userID, addressID uuid.UUID) (*order.ShippingAddress, error) {
	addr, err := repo.FindByID(ctx, addressID)
	if err != nil {
		return nil, err
	}
	if addr.UserID != userID {
		return nil, shared.ErrNotFound
	}
	return addr, nil
}
