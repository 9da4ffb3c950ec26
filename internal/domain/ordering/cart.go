package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// Cart is an anonymous shopping cart identified by an unguessable UUID
type Cart struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Items     []CartItem
}

// CartItem is a product in a cart. A product appears at most once per cart.
type CartItem struct {
	ID           uuid.UUID
	CartID       uuid.UUID
	ProductID    uuid.UUID
	ProductTitle string
	UnitPrice    decimal.Decimal
	Quantity     int
}

// NewCart creates an empty cart
func NewCart() *Cart {
	return &Cart{ID: uuid.New(), CreatedAt: time.Now()}
}

// NewCartItem validates and creates a cart item
func NewCartItem(cartID, productID uuid.UUID, quantity int) (*CartItem, error) {
	if err := ValidateCartQuantity(quantity); err != nil {
		return nil, err
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product is required")
	}
	return &CartItem{ID: uuid.New(), CartID: cartID, ProductID: productID, Quantity: quantity}, nil
}

// ValidateCartQuantity checks a cart line quantity
func ValidateCartQuantity(quantity int) error {
	if quantity < 1 || quantity > MaxLineQuantity {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be between 1 and 32767")
	}
	return nil
}

// Total returns quantity times unit price
func (i CartItem) Total() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Total sums the item totals
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Total())
	}
	return total
}

// Lines converts the cart into order lines
func (c *Cart) Lines() []OrderLine {
	lines := make([]OrderLine, 0, len(c.Items))
	for _, item := range c.Items {
		lines = append(lines, OrderLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return lines
}
