package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusSucceeded  OrderStatus = "succeeded"
	OrderStatusFailed     OrderStatus = "failed"
)

type OrderItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
}

// Order is a snapshot of the cart taken at checkout submission. Everything
// except Status and FailureReason is immutable once created.
type Order struct {
	ID            uuid.UUID   `json:"id"`
	CustomerID    uuid.UUID   `json:"customer_id"`
	CartID        uuid.UUID   `json:"cart_id"`
	Items         []OrderItem `json:"items"`
	Subtotal      float64     `json:"subtotal"`
	Shipping      float64     `json:"shipping"`
	Tax           float64     `json:"tax"`
	Total         float64     `json:"total"`
	Status        OrderStatus `json:"status"`
	FailureReason string      `json:"failure_reason,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// CheckoutRequest carries the card form as entered; card fields are
// normalized before they reach the payment processor.
type CheckoutRequest struct {
	NameOnCard string `json:"name_on_card" validate:"omitempty,max=100"`
	CardNumber string `json:"card_number" validate:"omitempty,max=25"`
	ExpiryDate string `json:"expiry_date" validate:"omitempty,max=7"`
	CVC        string `json:"cvc" validate:"omitempty,numeric,min=3,max=4"`
}

type OrderStatusResponse struct {
	ID     uuid.UUID   `json:"id"`
	Status OrderStatus `json:"status"`
}

type OrderHistoryResponse struct {
	Orders []Order `json:"orders"`
	Total  int     `json:"total"`
}
