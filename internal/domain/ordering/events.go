package ordering

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

const (
	AggregateTypeOrder = "Order"

	EventTypeOrderPlaced = "OrderPlaced"
)

// OrderPlacedItem is an order line as carried on the OrderPlaced event
type OrderPlacedItem struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderPlacedEvent is published when an order is placed
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	OrderID    uuid.UUID         `json:"order_id"`
	CustomerID uuid.UUID         `json:"customer_id"`
	Items      []OrderPlacedItem `json:"items"`
	Total      decimal.Decimal   `json:"total"`
}

// NewOrderPlacedEvent creates a new OrderPlacedEvent
func NewOrderPlacedEvent(o *Order) *OrderPlacedEvent {
	items := make([]OrderPlacedItem, 0, len(o.Items))
	for _, i := range o.Items {
		items = append(items, OrderPlacedItem{ProductID: i.ProductID, Quantity: i.Quantity, UnitPrice: i.UnitPrice})
	}
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		CustomerID:      o.CustomerID,
		Items:           items,
		Total:           o.Total(),
	}
}
