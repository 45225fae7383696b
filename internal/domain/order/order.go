package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// Status represents the fulfillment status of an order
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPending:
		return target == StatusProcessing || target == StatusCancelled
	case StatusProcessing:
		return target == StatusShipped || target == StatusCancelled
	case StatusShipped:
		return target == StatusDelivered
	case StatusDelivered, StatusCancelled:
		return false // Terminal states
	}
	return false
}

// PaymentMethod is how the buyer pays for an order
type PaymentMethod string

const (
	PaymentMethodCOD        PaymentMethod = "cod"
	PaymentMethodCard       PaymentMethod = "card"
	PaymentMethodUPI        PaymentMethod = "upi"
	PaymentMethodNetBanking PaymentMethod = "netbanking"
)

// IsValid checks if the method is a known PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCOD, PaymentMethodCard, PaymentMethodUPI, PaymentMethodNetBanking:
		return true
	}
	return false
}

// PaymentStatus tracks whether an order has been paid
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// OrderItem is an immutable snapshot of a purchased line. Price captures
// the effective price at the moment of checkout; later catalog price
// changes do not touch it.
type OrderItem struct {
	shared.BaseEntity
	OrderID     uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	ProductSKU  string
	Price       decimal.Decimal
	Quantity    int
}

// LineTotal returns price times quantity
func (i *OrderItem) LineTotal() valueobject.Money {
	return valueobject.NewMoneyINR(i.Price.Mul(decimal.NewFromInt(int64(i.Quantity))))
}

// ShippingDetails are the delivery fields embedded into an order at
// checkout. They are copied from (or alongside) a ShippingAddress so the
// order stays a self-contained snapshot.
type ShippingDetails struct {
	FullName     string
	Phone        string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	PostalCode   string
	Country      string
}

// Validate checks the required delivery fields
func (d ShippingDetails) Validate() error {
	if d.FullName == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "Recipient name is required")
	}
	if d.Phone == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "Phone number is required")
	}
	if d.AddressLine1 == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "Address line is required")
	}
	if d.City == "" || d.State == "" || d.PostalCode == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "City, state and postal code are required")
	}
	return nil
}

// Order is the order aggregate root: an immutable purchase snapshot plus
// a fulfillment state machine.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber    string `gorm:"uniqueIndex"`
	UserID         uuid.UUID
	Items          []OrderItem `gorm:"foreignKey:OrderID"`
	Subtotal       decimal.Decimal
	ShippingCost   decimal.Decimal
	Tax            decimal.Decimal
	Total          decimal.Decimal
	Status         Status
	PaymentMethod  PaymentMethod
	PaymentStatus  PaymentStatus
	Shipping       ShippingDetails `gorm:"embedded;embeddedPrefix:shipping_"`
	OrderNotes     string
	TrackingNumber string
	CancelReason   string
	DeliveredAt    *time.Time
	CancelledAt    *time.Time
}

// NewOrder creates a pending order with no items yet
func NewOrder(orderNumber string, userID uuid.UUID, method PaymentMethod, shipping ShippingDetails, notes string) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}
	if err := shipping.Validate(); err != nil {
		return nil, err
	}

	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		UserID:            userID,
		Items:             make([]OrderItem, 0),
		Subtotal:          decimal.Zero,
		ShippingCost:      decimal.Zero,
		Tax:               decimal.Zero,
		Total:             decimal.Zero,
		Status:            StatusPending,
		PaymentMethod:     method,
		PaymentStatus:     PaymentStatusPending,
		Shipping:          shipping,
		OrderNotes:        notes,
	}, nil
}

// AddItem appends a purchased line. Only valid before totals are finalized
// and the order is persisted.
func (o *Order) AddItem(productID uuid.UUID, productName, productSKU string, price valueobject.Money, quantity int) error {
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	o.Items = append(o.Items, OrderItem{
		BaseEntity:  shared.NewBaseEntity(),
		OrderID:     o.ID,
		ProductID:   productID,
		ProductName: productName,
		ProductSKU:  productSKU,
		Price:       price.Amount(),
		Quantity:    quantity,
	})
	return nil
}

// CalculateTotals derives subtotal, shipping, tax and total from the
// items. Shipping is waived once the subtotal reaches freeShippingAbove,
// otherwise the flat fee applies. Tax is zero.
func (o *Order) CalculateTotals(freeShippingAbove, flatShippingFee decimal.Decimal) error {
	if len(o.Items) == 0 {
		return shared.ErrEmptyCart
	}

	subtotal := decimal.Zero
	for _, item := range o.Items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	shipping := flatShippingFee
	if subtotal.GreaterThanOrEqual(freeShippingAbove) {
		shipping = decimal.Zero
	}

	o.Subtotal = subtotal
	o.ShippingCost = shipping
	o.Tax = decimal.Zero
	o.Total = subtotal.Add(shipping).Add(o.Tax)
	return nil
}

// MarkProcessing moves a pending order into processing
func (o *Order) MarkProcessing() error {
	if !o.Status.CanTransitionTo(StatusProcessing) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot process order in %s status", o.Status))
	}
	o.Status = StatusProcessing
	o.UpdatedAt = time.Now()
	return nil
}

// Ship marks the order shipped and records the tracking number
func (o *Order) Ship(trackingNumber string) error {
	if !o.Status.CanTransitionTo(StatusShipped) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot ship order in %s status", o.Status))
	}
	o.Status = StatusShipped
	o.TrackingNumber = trackingNumber
	o.UpdatedAt = time.Now()
	return nil
}

// Deliver marks the order delivered
func (o *Order) Deliver() error {
	if !o.Status.CanTransitionTo(StatusDelivered) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot deliver order in %s status", o.Status))
	}
	now := time.Now()
	o.Status = StatusDelivered
	o.DeliveredAt = &now
	o.UpdatedAt = now
	return nil
}

// Cancel cancels the order. Stock restoration is handled by the caller in
// the same transaction as this status change.
func (o *Order) Cancel(reason string) error {
	if !o.Status.CanTransitionTo(StatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}
	now := time.Now()
	o.Status = StatusCancelled
	o.CancelReason = reason
	o.CancelledAt = &now
	o.UpdatedAt = now
	return nil
}

// CanBeCancelled reports whether cancellation is still legal
func (o *Order) CanBeCancelled() bool {
	return o.Status.CanTransitionTo(StatusCancelled)
}

// MarkPaymentCompleted records a successful payment
func (o *Order) MarkPaymentCompleted() {
	o.PaymentStatus = PaymentStatusCompleted
	o.UpdatedAt = time.Now()
}

// MarkPaymentFailed records a failed payment
func (o *Order) MarkPaymentFailed() {
	o.PaymentStatus = PaymentStatusFailed
	o.UpdatedAt = time.Now()
}

// IsCancelled returns true if the order is cancelled
func (o *Order) IsCancelled() bool {
	return o.Status == StatusCancelled
}

// IsTerminal returns true when no further transitions are possible
func (o *Order) IsTerminal() bool {
	return o.Status == StatusDelivered || o.Status == StatusCancelled
}

// TotalMoney returns the grand total as Money
func (o *Order) TotalMoney() valueobject.Money {
	return valueobject.NewMoneyINR(o.Total)
}

// ItemCount returns the number of lines in the order
func (o *Order) ItemCount() int {
	return len(o.Items)
}
