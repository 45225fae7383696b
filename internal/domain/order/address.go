package order

import (
	"time"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// ShippingAddress is a saved delivery address belonging to a user. At
// most one address per user carries IsDefault; setting a new default
// clears the previous one in the same transaction.
type ShippingAddress struct {
	shared.BaseAggregateRoot
	UserID       uuid.UUID `gorm:"index"`
	FullName     string
	Phone        string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	PostalCode   string
	Country      string
	IsDefault    bool
}

// NewShippingAddress creates a saved address for a user
func NewShippingAddress(userID uuid.UUID, details ShippingDetails, isDefault bool) (*ShippingAddress, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if err := details.Validate(); err != nil {
		return nil, err
	}

	country := details.Country
	if country == "" {
		country = "India"
	}

	return &ShippingAddress{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		FullName:          details.FullName,
		Phone:             details.Phone,
		AddressLine1:      details.AddressLine1,
		AddressLine2:      details.AddressLine2,
		City:              details.City,
		State:             details.State,
		PostalCode:        details.PostalCode,
		Country:           country,
		IsDefault:         isDefault,
	}, nil
}

// Update replaces the delivery fields
func (a *ShippingAddress) Update(details ShippingDetails) error {
	if err := details.Validate(); err != nil {
		return err
	}
	a.FullName = details.FullName
	a.Phone = details.Phone
	a.AddressLine1 = details.AddressLine1
	a.AddressLine2 = details.AddressLine2
	a.City = details.City
	a.State = details.State
	a.PostalCode = details.PostalCode
	if details.Country != "" {
		a.Country = details.Country
	}
	a.UpdatedAt = time.Now()
	return nil
}

// Details returns the address as order shipping details
func (a *ShippingAddress) Details() ShippingDetails {
	return ShippingDetails{
		FullName:     a.FullName,
		Phone:        a.Phone,
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		City:         a.City,
		State:        a.State,
		PostalCode:   a.PostalCode,
		Country:      a.Country,
	}
}
