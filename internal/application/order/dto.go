package order

import (
	"time"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/order"
)

// OrderListFilter represents filter options for the order list
type OrderListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Status   string `form:"status"`
}

// OrderItemResponse represents a purchased line in API responses
type OrderItemResponse struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	ProductSKU  string    `json:"product_sku"`
	Price       string    `json:"price"`
	Quantity    int       `json:"quantity"`
	LineTotal   string    `json:"line_total"`
}

// ShippingResponse represents the delivery snapshot of an order
type ShippingResponse struct {
	FullName     string `json:"full_name"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
}

// OrderResponse represents a full order in API responses
type OrderResponse struct {
	ID             uuid.UUID           `json:"id"`
	OrderNumber    string              `json:"order_number"`
	Status         string              `json:"status"`
	PaymentMethod  string              `json:"payment_method"`
	PaymentStatus  string              `json:"payment_status"`
	Items          []OrderItemResponse `json:"items"`
	Subtotal       string              `json:"subtotal"`
	ShippingCost   string              `json:"shipping_cost"`
	Tax            string              `json:"tax"`
	Total          string              `json:"total"`
	Shipping       ShippingResponse    `json:"shipping"`
	OrderNotes     string              `json:"order_notes,omitempty"`
	TrackingNumber string              `json:"tracking_number,omitempty"`
	CancelReason   string              `json:"cancel_reason,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	DeliveredAt    *time.Time          `json:"delivered_at,omitempty"`
	CancelledAt    *time.Time          `json:"cancelled_at,omitempty"`
}

// OrderListItemResponse is the condensed order shape for list views
type OrderListItemResponse struct {
	ID          uuid.UUID `json:"id"`
	OrderNumber string    `json:"order_number"`
	Status      string    `json:"status"`
	Total       string    `json:"total"`
	ItemCount   int       `json:"item_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// CancelOrderRequest cancels an order
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ShipOrderRequest marks an order shipped
type ShipOrderRequest struct {
	TrackingNumber string `json:"tracking_number" binding:"required"`
}

// CreateAddressRequest creates or replaces a saved address
type CreateAddressRequest struct {
	FullName     string `json:"full_name" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	AddressLine1 string `json:"address_line1" binding:"required"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city" binding:"required"`
	State        string `json:"state" binding:"required"`
	PostalCode   string `json:"postal_code" binding:"required"`
	Country      string `json:"country"`
	IsDefault    bool   `json:"is_default"`
}

// ToDetails converts the request into domain shipping details
func (r CreateAddressRequest) ToDetails() order.ShippingDetails {
	return order.ShippingDetails{
		FullName:     r.FullName,
		Phone:        r.Phone,
		AddressLine1: r.AddressLine1,
		AddressLine2: r.AddressLine2,
		City:         r.City,
		State:        r.State,
		PostalCode:   r.PostalCode,
		Country:      r.Country,
	}
}

// AddressResponse represents a saved address in API responses
type AddressResponse struct {
	ID           uuid.UUID `json:"id"`
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone"`
	AddressLine1 string    `json:"address_line1"`
	AddressLine2 string    `json:"address_line2,omitempty"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	PostalCode   string    `json:"postal_code"`
	Country      string    `json:"country"`
	IsDefault    bool      `json:"is_default"`
}

// ToOrderResponse converts a domain order to a response DTO
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for idx := range o.Items {
		item := &o.Items[idx]
		items = append(items, OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			ProductSKU:  item.ProductSKU,
			Price:       item.Price.StringFixed(2),
			Quantity:    item.Quantity,
			LineTotal:   item.LineTotal().StringFixed(2),
		})
	}

	return OrderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		Status:        string(o.Status),
		PaymentMethod: string(o.PaymentMethod),
		PaymentStatus: string(o.PaymentStatus),
		Items:         items,
		Subtotal:      o.Subtotal.StringFixed(2),
		ShippingCost:  o.ShippingCost.StringFixed(2),
		Tax:           o.Tax.StringFixed(2),
		Total:         o.Total.StringFixed(2),
		Shipping: ShippingResponse{
			FullName:     o.Shipping.FullName,
			Phone:        o.Shipping.Phone,
			AddressLine1: o.Shipping.AddressLine1,
			AddressLine2: o.Shipping.AddressLine2,
			City:         o.Shipping.City,
			State:        o.Shipping.State,
			PostalCode:   o.Shipping.PostalCode,
			Country:      o.Shipping.Country,
		},
		OrderNotes:     o.OrderNotes,
		TrackingNumber: o.TrackingNumber,
		CancelReason:   o.CancelReason,
		CreatedAt:      o.CreatedAt,
		DeliveredAt:    o.DeliveredAt,
		CancelledAt:    o.CancelledAt,
	}
}

// ToOrderListItemResponses converts domain orders to condensed list DTOs
func ToOrderListItemResponses(orders []order.Order) []OrderListItemResponse {
	out := make([]OrderListItemResponse, 0, len(orders))
	for idx := range orders {
		o := &orders[idx]
		out = append(out, OrderListItemResponse{
			ID:          o.ID,
			OrderNumber: o.OrderNumber,
			Status:      string(o.Status),
			Total:       o.Total.StringFixed(2),
			ItemCount:   o.ItemCount(),
			CreatedAt:   o.CreatedAt,
		})
	}
	return out
}

// ToAddressResponse converts a saved address to a response DTO
func ToAddressResponse(a *order.ShippingAddress) AddressResponse {
	return AddressResponse{
		ID:           a.ID,
		FullName:     a.FullName,
		Phone:        a.Phone,
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		City:         a.City,
		State:        a.State,
		PostalCode:   a.PostalCode,
		Country:      a.Country,
		IsDefault:    a.IsDefault,
	}
}
