package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// PaymentStatus tracks whether an order has been paid
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "P"
	PaymentStatusComplete PaymentStatus = "C"
	PaymentStatusFailed   PaymentStatus = "F"
)

// IsValid checks if the status is a known PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusComplete, PaymentStatusFailed:
		return true
	}
	return false
}

// Label returns the human-readable name
func (s PaymentStatus) Label() string {
	switch s {
	case PaymentStatusPending:
		return "Pending"
	case PaymentStatusComplete:
		return "Complete"
	case PaymentStatusFailed:
		return "Failed"
	}
	return string(s)
}

// CanTransitionTo checks if the status can move to target.
// Complete is terminal; a failed payment may be retried.
func (s PaymentStatus) CanTransitionTo(target PaymentStatus) bool {
	switch s {
	case PaymentStatusPending:
		return target == PaymentStatusComplete || target == PaymentStatusFailed
	case PaymentStatusFailed:
		return target == PaymentStatusPending || target == PaymentStatusComplete
	}
	return false
}

// OrderLine is a requested product and quantity, before pricing
type OrderLine struct {
	ProductID uuid.UUID
	Quantity  int
}

// OrderItem is a priced line of a placed order. UnitPrice is captured at placement.
type OrderItem struct {
	ID           uuid.UUID
	OrderID      uuid.UUID
	ProductID    uuid.UUID
	ProductTitle string
	Quantity     int
	UnitPrice    decimal.Decimal
}

// Total returns quantity times unit price
func (i OrderItem) Total() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is a customer's purchase
type Order struct {
	shared.BaseAggregateRoot
	CustomerID    uuid.UUID
	PlacedAt      time.Time
	PaymentStatus PaymentStatus
	Items         []OrderItem
}

// MergeLines validates the requested lines and folds duplicates of the same product
// into one line. Input order of first appearance is kept.
func MergeLines(lines []OrderLine) ([]OrderLine, error) {
	if len(lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "An order needs at least one item")
	}
	index := make(map[uuid.UUID]int, len(lines))
	merged := make([]OrderLine, 0, len(lines))
	for _, l := range lines {
		if l.ProductID == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "Product is required")
		}
		if l.Quantity < 1 || l.Quantity > MaxLineQuantity {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be between 1 and 32767")
		}
		if i, ok := index[l.ProductID]; ok {
			merged[i].Quantity += l.Quantity
			if merged[i].Quantity > MaxLineQuantity {
				return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be between 1 and 32767")
			}
			continue
		}
		index[l.ProductID] = len(merged)
		merged = append(merged, l)
	}
	return merged, nil
}

// PricedProduct is the locked product state an order is priced from
type PricedProduct struct {
	ID        uuid.UUID
	Title     string
	UnitPrice decimal.Decimal
}

// NewOrder creates a pending order. Every line must have a matching entry in products.
func NewOrder(customerID uuid.UUID, lines []OrderLine, products map[uuid.UUID]PricedProduct) (*Order, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer is required")
	}
	merged, err := MergeLines(lines)
	if err != nil {
		return nil, err
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		PaymentStatus:     PaymentStatusPending,
	}
	o.PlacedAt = o.CreatedAt
	for _, l := range merged {
		p, ok := products[l.ProductID]
		if !ok {
			return nil, shared.NewDomainError(shared.CodeNotFound, "Product not found: "+l.ProductID.String())
		}
		o.Items = append(o.Items, OrderItem{
			ID:           uuid.New(),
			OrderID:      o.ID,
			ProductID:    p.ID,
			ProductTitle: p.Title,
			Quantity:     l.Quantity,
			UnitPrice:    p.UnitPrice,
		})
	}
	o.AddDomainEvent(NewOrderPlacedEvent(o))
	return o, nil
}

// Total sums the item totals
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Total())
	}
	return total
}

// UpdatePaymentStatus moves the order to a new payment status
func (o *Order) UpdatePaymentStatus(status PaymentStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_STATUS", "Unknown payment status")
	}
	if o.PaymentStatus == status {
		return nil
	}
	if !o.PaymentStatus.CanTransitionTo(status) {
		return shared.NewDomainError(shared.CodeInvalidState, "Cannot change payment status from "+o.PaymentStatus.Label()+" to "+status.Label())
	}
	o.PaymentStatus = status
	o.Touch()
	o.IncrementVersion()
	return nil
}

// MaxLineQuantity matches the smallint quantity column
const MaxLineQuantity = 32767
