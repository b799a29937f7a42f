package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order represents a customer order.
type Order struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	OrderNumber     string          `json:"orderNumber" db:"order_number"`
	CustomerName    string          `json:"customerName" db:"customer_name"`
	CustomerPhone   string          `json:"customerPhone" db:"customer_phone"`
	CustomerAddress string          `json:"customerAddress" db:"customer_address"`
	Notes           *string         `json:"notes" db:"notes"`
	TotalAmount     decimal.Decimal `json:"totalAmount" db:"total_amount"`
	Status          OrderStatus     `json:"status" db:"status"`
	POSessionID     *uuid.UUID      `json:"poSessionId,omitempty" db:"po_session_id"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" db:"updated_at"`
}

// OrderItem represents a line of an order: a fixed quantity of one product at
// a price snapshot. Price and subtotal are captured at checkout and never
// follow the live product price.
type OrderItem struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	OrderID   uuid.UUID       `json:"-" db:"order_id"`
	ProductID uuid.UUID       `json:"productId" db:"product_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	Price     decimal.Decimal `json:"price" db:"price"`
	Subtotal  decimal.Decimal `json:"subtotal" db:"subtotal"`
}

// OrderRequest represents the request payload for creating an order.
type OrderRequest struct {
	CustomerName    string             `json:"customerName"`
	CustomerPhone   string             `json:"customerPhone"`
	CustomerAddress string             `json:"customerAddress"`
	Notes           *string            `json:"notes,omitempty"`
	Items           []OrderItemRequest `json:"items"`
	POSessionID     *uuid.UUID         `json:"poSessionId,omitempty"`
}

// OrderItemRequest represents a single item in an order request. Price is the
// unit price the customer saw at cart time; it is validated against the
// catalogue before the order is accepted.
type OrderItemRequest struct {
	ProductID uuid.UUID       `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// UpdateOrderStatusRequest represents the payload for an order status change.
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status"`
	Notes  *string     `json:"notes,omitempty"`
}

// OrderItemDetail is an order item joined with product display fields.
type OrderItemDetail struct {
	ID              uuid.UUID       `json:"id"`
	ProductID       uuid.UUID       `json:"productId"`
	ProductName     string          `json:"productName"`
	ProductImage    string          `json:"productImage"`
	ProductCategory string          `json:"productCategory"`
	Quantity        int             `json:"quantity"`
	Price           decimal.Decimal `json:"price"`
	Subtotal        decimal.Decimal `json:"subtotal"`
}

// OrderResponse is the full order view returned to admins and to the
// storefront after checkout.
type OrderResponse struct {
	ID              uuid.UUID         `json:"id"`
	OrderNumber     string            `json:"orderNumber"`
	CustomerName    string            `json:"customerName"`
	CustomerPhone   string            `json:"customerPhone"`
	CustomerAddress string            `json:"customerAddress"`
	Notes           *string           `json:"notes"`
	TotalAmount     decimal.Decimal   `json:"totalAmount"`
	Status          OrderStatus       `json:"status"`
	POSession       *SessionSummary   `json:"poSession"`
	Items           []OrderItemDetail `json:"items"`
	WhatsAppURL     string            `json:"whatsappUrl,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// TrackingItem is a reduced order line for the public tracking view.
type TrackingItem struct {
	ID          uuid.UUID       `json:"id"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// TrackingResponse is the public order view. Customer phone and address are
// deliberately omitted.
type TrackingResponse struct {
	ID           uuid.UUID       `json:"id"`
	OrderNumber  string          `json:"orderNumber"`
	CustomerName string          `json:"customerName"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	Status       OrderStatus     `json:"status"`
	Items        []TrackingItem  `json:"items"`
	POSession    *SessionSummary `json:"poSession"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}
