package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marketloop/backend/internal/domain/trade"
)

// CreateOrderRequest carries the input for creating an order.
// TotalPrice is the client-computed total, re-validated against the live
// product price.
type CreateOrderRequest struct {
	ProductID       uuid.UUID
	Quantity        int64
	TotalPrice      decimal.Decimal
	ShippingAddress string
}

// UpdateOrderRequest carries a partial update of non-status order fields
type UpdateOrderRequest struct {
	ShippingAddress *string
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID              string    `json:"id"`
	BuyerID         string    `json:"buyer_id"`
	SellerID        string    `json:"seller_id"`
	ProductID       string    `json:"product_id"`
	Quantity        int64     `json:"quantity"`
	TotalPrice      string    `json:"total_price"`
	Status          string    `json:"status"`
	ShippingAddress string    `json:"shipping_address,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func toOrderResponse(o *trade.Order) OrderResponse {
	return OrderResponse{
		ID:              o.ID.String(),
		BuyerID:         o.BuyerID.String(),
		SellerID:        o.SellerID.String(),
		ProductID:       o.ProductID.String(),
		Quantity:        o.Quantity,
		TotalPrice:      o.TotalPrice.StringFixed(2),
		Status:          o.Status.String(),
		ShippingAddress: o.ShippingAddress,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func toOrderResponses(orders []trade.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i := range orders {
		out[i] = toOrderResponse(&orders[i])
	}
	return out
}
