package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/ordering"
)

// OrderLineRequest is one requested product line
type OrderLineRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1,max=32767"`
}

// PlaceOrderRequest places an order either from a cart or from explicit lines.
// When CartID is set, Items must be empty.
type PlaceOrderRequest struct {
	CustomerID uuid.UUID          `json:"customer_id" binding:"required"`
	CartID     *uuid.UUID         `json:"cart_id"`
	Items      []OrderLineRequest `json:"items" binding:"omitempty,dive"`
}

// UpdatePaymentStatusRequest changes an order's payment status
type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required,oneof=P C F"`
}

// OrderListFilter is the query string of the order list
type OrderListFilter struct {
	CustomerID    *uuid.UUID `form:"customer_id"`
	PaymentStatus string     `form:"payment_status" binding:"omitempty,oneof=P C F"`
	Page          int        `form:"page" binding:"omitempty,min=1"`
	PageSize      int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// OrderItemResponse is an order line
type OrderItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	ProductID    uuid.UUID       `json:"product_id"`
	ProductTitle string          `json:"product_title"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalPrice   decimal.Decimal `json:"total_price"`
}

// OrderResponse is an order with its items inline
type OrderResponse struct {
	ID                 uuid.UUID           `json:"id"`
	CustomerID         uuid.UUID           `json:"customer_id"`
	PlacedAt           time.Time           `json:"placed_at"`
	PaymentStatus      string              `json:"payment_status"`
	PaymentStatusLabel string              `json:"payment_status_label"`
	Items              []OrderItemResponse `json:"items"`
	TotalPrice         decimal.Decimal     `json:"total_price"`
}

// ToOrderResponse converts an order
func ToOrderResponse(o *ordering.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			ID:           it.ID,
			ProductID:    it.ProductID,
			ProductTitle: it.ProductTitle,
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice,
			TotalPrice:   it.Total(),
		})
	}
	return OrderResponse{
		ID:                 o.ID,
		CustomerID:         o.CustomerID,
		PlacedAt:           o.PlacedAt,
		PaymentStatus:      string(o.PaymentStatus),
		PaymentStatusLabel: o.PaymentStatus.Label(),
		Items:              items,
		TotalPrice:         o.Total(),
	}
}

// AddCartItemRequest adds a product to a cart
type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1,max=32767"`
}

// UpdateCartItemRequest sets the quantity of a cart line
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1,max=32767"`
}

// CartProductSummary is the product shown on a cart line
type CartProductSummary struct {
	ID        uuid.UUID       `json:"id"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CartItemResponse is a cart line with its total
type CartItemResponse struct {
	ID         uuid.UUID          `json:"id"`
	Product    CartProductSummary `json:"product"`
	Quantity   int                `json:"quantity"`
	TotalPrice decimal.Decimal    `json:"total_price"`
}

// CartResponse is a cart with line totals and the cart total
type CartResponse struct {
	ID         uuid.UUID          `json:"id"`
	CreatedAt  time.Time          `json:"created_at"`
	Items      []CartItemResponse `json:"items"`
	TotalPrice decimal.Decimal    `json:"total_price"`
}

// ToCartItemResponse converts a cart line
func ToCartItemResponse(it ordering.CartItem) CartItemResponse {
	return CartItemResponse{
		ID: it.ID,
		Product: CartProductSummary{
			ID:        it.ProductID,
			Title:     it.ProductTitle,
			UnitPrice: it.UnitPrice,
		},
		Quantity:   it.Quantity,
		TotalPrice: it.Total(),
	}
}

// ToCartResponse converts a cart
func ToCartResponse(c *ordering.Cart) CartResponse {
	items := make([]CartItemResponse, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, ToCartItemResponse(it))
	}
	return CartResponse{ID: c.ID, CreatedAt: c.CreatedAt, Items: items, TotalPrice: c.Total()}
}
