package models

import (
	"time"

	"github.com/google/uuid"
)

type CartItem struct {
	ProductID  uuid.UUID `json:"product_id"`
	Name       string    `json:"name"`
	UnitPrice  float64   `json:"unit_price"`
	Quantity   int       `json:"quantity"`
	TotalPrice float64   `json:"total_price"`
}

type Cart struct {
	ID        uuid.UUID           `json:"id"`
	UserID    uuid.UUID           `json:"user_id"`
	Items     map[string]CartItem `json:"items"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// CartTotals holds derived amounts; they are never stored on the cart.
type CartTotals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

type CartResponse struct {
	Cart   *Cart      `json:"cart"`
	Totals CartTotals `json:"totals"`
}

type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"omitempty,min=1"`
}

const (
	QuantityActionSet       = "set"
	QuantityActionIncrement = "increment"
	QuantityActionDecrement = "decrement"
)

// UpdateQuantityRequest adjusts one cart line. A decrement at quantity 1
// removes the line; an explicit set below 1 is rejected.
type UpdateQuantityRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Action    string    `json:"action" validate:"required,oneof=set increment decrement"`
	Quantity  int       `json:"quantity" validate:"required_if=Action set"`
}
