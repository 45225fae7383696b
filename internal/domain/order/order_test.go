package order

import (
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// Test helpers
func testShipping() ShippingDetails {
	return ShippingDetails{
		FullName:     "Asha Rao",
		Phone:        "9876543210",
		AddressLine1: "12 MG Road",
		City:         "Bengaluru",
		State:        "Karnataka",
		PostalCode:   "560001",
		Country:      "India",
	}
}

func createTestOrder(t *testing.T) *Order {
	o, err := NewOrder(NewOrderNumber(time.Now()), uuid.New(), PaymentMethodCOD, testShipping(), "")
	require.NoError(t, err)
	return o
}

func addTestItem(t *testing.T, o *Order, name string, price float64, quantity int) {
	err := o.AddItem(uuid.New(), name, "SKU-"+name, valueobject.NewMoneyINRFromFloat(price), quantity)
	require.NoError(t, err)
}

// ============================================
// Status Tests
// ============================================

func TestStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  Status
		isValid bool
	}{
		{StatusPending, true},
		{StatusProcessing, true},
		{StatusShipped, true},
		{StatusDelivered, true},
		{StatusCancelled, true},
		{Status("unknown"), false},
		{Status(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from     Status
		to       Status
		canTrans bool
	}{
		// From pending
		{StatusPending, StatusProcessing, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusShipped, false},
		{StatusPending, StatusDelivered, false},
		// From processing
		{StatusProcessing, StatusShipped, true},
		{StatusProcessing, StatusCancelled, true},
		{StatusProcessing, StatusDelivered, false},
		{StatusProcessing, StatusPending, false},
		// From shipped
		{StatusShipped, StatusDelivered, true},
		{StatusShipped, StatusCancelled, false},
		{StatusShipped, StatusPending, false},
		// Terminal states
		{StatusDelivered, StatusCancelled, false},
		{StatusDelivered, StatusPending, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusProcessing, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.canTrans, tt.from.CanTransitionTo(tt.to))
		})
	}
}

// ============================================
// Order Number Tests
// ============================================

func TestNewOrderNumber_Format(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^ORD-20260314-[A-Z0-9]{6}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		num := NewOrderNumber(now)
		assert.Regexp(t, pattern, num)
		seen[num] = true
	}
	// 100 draws from a 36^6 space should not all collide
	assert.Greater(t, len(seen), 1)
}

// ============================================
// Order Tests
// ============================================

func TestNewOrder_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*string, *uuid.UUID, *PaymentMethod, *ShippingDetails)
		wantErr bool
	}{
		{"valid", func(n *string, u *uuid.UUID, m *PaymentMethod, s *ShippingDetails) {}, false},
		{"empty order number", func(n *string, u *uuid.UUID, m *PaymentMethod, s *ShippingDetails) { *n = "" }, true},
		{"nil user", func(n *string, u *uuid.UUID, m *PaymentMethod, s *ShippingDetails) { *u = uuid.Nil }, true},
		{"bad method", func(n *string, u *uuid.UUID, m *PaymentMethod, s *ShippingDetails) { *m = "paypal" }, true},
		{"missing name", func(n *string, u *uuid.UUID, m *PaymentMethod, s *ShippingDetails) { s.FullName = "" }, true},
		{"missing city", func(n *string, u *uuid.UUID, m *PaymentMethod, s *ShippingDetails) { s.City = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			num := NewOrderNumber(time.Now())
			user := uuid.New()
			method := PaymentMethodCard
			shipping := testShipping()
			tt.mutate(&num, &user, &method, &shipping)

			_, err := NewOrder(num, user, method, shipping, "")
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOrder_CalculateTotals_FreeShippingAtThreshold(t *testing.T) {
	o := createTestOrder(t)
	// Two units priced at 300 each: subtotal exactly at the threshold
	addTestItem(t, o, "kettle", 300, 2)

	require.NoError(t, o.CalculateTotals(decimal.NewFromInt(500), decimal.NewFromInt(50)))

	assert.True(t, o.Subtotal.Equal(decimal.NewFromInt(600)))
	assert.True(t, o.ShippingCost.IsZero())
	assert.True(t, o.Tax.IsZero())
	assert.True(t, o.Total.Equal(decimal.NewFromInt(600)))
}

func TestOrder_CalculateTotals_FlatFeeBelowThreshold(t *testing.T) {
	o := createTestOrder(t)
	addTestItem(t, o, "mug", 120, 3)

	require.NoError(t, o.CalculateTotals(decimal.NewFromInt(500), decimal.NewFromInt(50)))

	assert.True(t, o.Subtotal.Equal(decimal.NewFromInt(360)))
	assert.True(t, o.ShippingCost.Equal(decimal.NewFromInt(50)))
	assert.True(t, o.Total.Equal(decimal.NewFromInt(410)))
}

func TestOrder_CalculateTotals_EmptyOrder(t *testing.T) {
	o := createTestOrder(t)
	err := o.CalculateTotals(decimal.NewFromInt(500), decimal.NewFromInt(50))
	assert.ErrorIs(t, err, shared.ErrEmptyCart)
}

func TestOrder_ItemSnapshotIndependentOfQuantityMath(t *testing.T) {
	o := createTestOrder(t)
	addTestItem(t, o, "lamp", 199.50, 2)

	item := o.Items[0]
	assert.True(t, item.LineTotal().Amount().Equal(decimal.NewFromFloat(399.0)))
	assert.Equal(t, "lamp", item.ProductName)
}

func TestOrder_Lifecycle(t *testing.T) {
	o := createTestOrder(t)
	addTestItem(t, o, "chair", 250, 1)
	require.NoError(t, o.CalculateTotals(decimal.NewFromInt(500), decimal.NewFromInt(50)))

	require.NoError(t, o.MarkProcessing())
	assert.Equal(t, StatusProcessing, o.Status)

	require.NoError(t, o.Ship("TRK-123"))
	assert.Equal(t, StatusShipped, o.Status)
	assert.Equal(t, "TRK-123", o.TrackingNumber)

	require.NoError(t, o.Deliver())
	assert.Equal(t, StatusDelivered, o.Status)
	assert.NotNil(t, o.DeliveredAt)
}

func TestOrder_CancelFromPendingAndProcessing(t *testing.T) {
	o := createTestOrder(t)
	require.NoError(t, o.Cancel("changed my mind"))
	assert.Equal(t, StatusCancelled, o.Status)
	assert.Equal(t, "changed my mind", o.CancelReason)
	assert.NotNil(t, o.CancelledAt)

	o2 := createTestOrder(t)
	require.NoError(t, o2.MarkProcessing())
	assert.NoError(t, o2.Cancel("late delivery"))
}

func TestOrder_CancelShippedFails(t *testing.T) {
	o := createTestOrder(t)
	require.NoError(t, o.MarkProcessing())
	require.NoError(t, o.Ship("TRK-9"))

	err := o.Cancel("too late")
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
	assert.False(t, o.IsCancelled())
}

func TestOrder_CancelTwiceFails(t *testing.T) {
	o := createTestOrder(t)
	require.NoError(t, o.Cancel("first"))
	assert.Error(t, o.Cancel("second"))
}

func TestOrder_PaymentStatusFlags(t *testing.T) {
	o := createTestOrder(t)
	assert.Equal(t, PaymentStatusPending, o.PaymentStatus)

	o.MarkPaymentCompleted()
	assert.Equal(t, PaymentStatusCompleted, o.PaymentStatus)

	o.MarkPaymentFailed()
	assert.Equal(t, PaymentStatusFailed, o.PaymentStatus)
}
