package ordering

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// OrderQuery selects orders, newest first by default
type OrderQuery struct {
	shared.PageRequest
	CustomerID    *uuid.UUID
	PaymentStatus PaymentStatus
}

// OrderRepository persists orders and their items
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindAll(ctx context.Context, q OrderQuery) ([]Order, int64, error)
	// Place locks every referenced product against deletion, prices the lines from
	// the locked rows and inserts the order. When sourceCartID is set the cart is
	// deleted in the same transaction.
	Place(ctx context.Context, customerID uuid.UUID, lines []OrderLine, sourceCartID *uuid.UUID) (*Order, error)
	UpdatePaymentStatus(ctx context.Context, order *Order) error
}

// CartRepository persists carts
type CartRepository interface {
	Create(ctx context.Context, cart *Cart) error
	// FindByID loads the cart with its items and their product summaries
	FindByID(ctx context.Context, id uuid.UUID) (*Cart, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// AddItem inserts the item or increases the quantity of the existing line
	AddItem(ctx context.Context, item *CartItem) (*CartItem, error)
	UpdateItemQuantity(ctx context.Context, cartID, itemID uuid.UUID, quantity int) (*CartItem, error)
	RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) error
}
