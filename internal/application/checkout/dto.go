package checkout

import (
	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/order"
)

// ShippingAddressInput is a delivery address supplied inline at checkout
type ShippingAddressInput struct {
	FullName     string `json:"full_name" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	AddressLine1 string `json:"address_line1" binding:"required"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city" binding:"required"`
	State        string `json:"state" binding:"required"`
	PostalCode   string `json:"postal_code" binding:"required"`
	Country      string `json:"country"`
}

// ToDetails converts the input into domain shipping details
func (a ShippingAddressInput) ToDetails() order.ShippingDetails {
	return order.ShippingDetails{
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

// CheckoutRequest places an order from the caller's cart. The delivery
// address comes either from a saved address (SavedAddressID) or inline
// (Address); inline addresses may additionally be saved for next time.
type CheckoutRequest struct {
	PaymentMethod  order.PaymentMethod   `json:"payment_method" binding:"required"`
	SavedAddressID *uuid.UUID            `json:"saved_address_id"`
	Address        *ShippingAddressInput `json:"address"`
	SaveAddress    bool                  `json:"save_address"`
	SetDefault     bool                  `json:"set_default"`
	OrderNotes     string                `json:"order_notes"`
}

// CheckoutItemResponse is a purchased line in the checkout response
type CheckoutItemResponse struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Price       string    `json:"price"`
	Quantity    int       `json:"quantity"`
	LineTotal   string    `json:"line_total"`
}

// CheckoutResponse summarizes the order placed at checkout
type CheckoutResponse struct {
	OrderID       uuid.UUID              `json:"order_id"`
	OrderNumber   string                 `json:"order_number"`
	Status        string                 `json:"status"`
	PaymentMethod string                 `json:"payment_method"`
	PaymentStatus string                 `json:"payment_status"`
	Items         []CheckoutItemResponse `json:"items"`
	Subtotal      string                 `json:"subtotal"`
	ShippingCost  string                 `json:"shipping_cost"`
	Tax           string                 `json:"tax"`
	Total         string                 `json:"total"`
	Currency      string                 `json:"currency"`
}

// ToCheckoutResponse converts a placed order to a response DTO
func ToCheckoutResponse(o *order.Order) CheckoutResponse {
	items := make([]CheckoutItemResponse, 0, len(o.Items))
	for idx := range o.Items {
		item := &o.Items[idx]
		items = append(items, CheckoutItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Price:       item.Price.StringFixed(2),
			Quantity:    item.Quantity,
			LineTotal:   item.LineTotal().StringFixed(2),
		})
	}

	return CheckoutResponse{
		OrderID:       o.ID,
		OrderNumber:   o.OrderNumber,
		Status:        string(o.Status),
		PaymentMethod: string(o.PaymentMethod),
		PaymentStatus: string(o.PaymentStatus),
		Items:         items,
		Subtotal:      o.Subtotal.StringFixed(2),
		ShippingCost:  o.ShippingCost.StringFixed(2),
		Tax:           o.Tax.StringFixed(2),
		Total:         o.Total.StringFixed(2),
		Currency:      string(o.TotalMoney().Currency()),
	}
}
