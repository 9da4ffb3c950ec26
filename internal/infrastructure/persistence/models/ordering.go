package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/ordering"
)

// OrderModel is the persistence model for the Order aggregate
type OrderModel struct {
	AggregateModel
	CustomerID    uuid.UUID              `gorm:"type:uuid;not null;index"`
	PlacedAt      time.Time              `gorm:"not null;index"`
	PaymentStatus ordering.PaymentStatus `gorm:"type:varchar(1);not null;default:'P'"`
	Items         []OrderItemModel       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	Customer *CustomerModel `gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order
func (m *OrderModel) ToDomain() *ordering.Order {
	o := &ordering.Order{
		BaseAggregateRoot: m.Root(),
		CustomerID:        m.CustomerID,
		PlacedAt:          m.PlacedAt,
		PaymentStatus:     m.PaymentStatus,
		Items:             make([]ordering.OrderItem, 0, len(m.Items)),
	}
	for i := range m.Items {
		o.Items = append(o.Items, m.Items[i].ToDomain())
	}
	return o
}

// OrderModelFromDomain creates a new persistence model from a domain Order, items included
func OrderModelFromDomain(o *ordering.Order) *OrderModel {
	m := &OrderModel{
		CustomerID:    o.CustomerID,
		PlacedAt:      o.PlacedAt,
		PaymentStatus: o.PaymentStatus,
		Items:         make([]OrderItemModel, 0, len(o.Items)),
	}
	m.SetRoot(o.BaseAggregateRoot)
	for i := range o.Items {
		m.Items = append(m.Items, OrderItemModelFromDomain(o.Items[i]))
	}
	return m
}

// OrderItemModel is the persistence model for order lines.
// ProductTitle is read through a join and never written.
type OrderItemModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity     int             `gorm:"type:smallint;not null"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(6,2);not null"`
	ProductTitle string          `gorm:"->;-:migration"`

	Product *ProductModel `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain OrderItem
func (m *OrderItemModel) ToDomain() ordering.OrderItem {
	return ordering.OrderItem{
		ID:           m.ID,
		OrderID:      m.OrderID,
		ProductID:    m.ProductID,
		ProductTitle: m.ProductTitle,
		Quantity:     m.Quantity,
		UnitPrice:    m.UnitPrice,
	}
}

// OrderItemModelFromDomain creates a new persistence model from a domain OrderItem
func OrderItemModelFromDomain(i ordering.OrderItem) OrderItemModel {
	return OrderItemModel{
		ID:        i.ID,
		OrderID:   i.OrderID,
		ProductID: i.ProductID,
		Quantity:  i.Quantity,
		UnitPrice: i.UnitPrice,
	}
}

// CartModel is the persistence model for carts
type CartModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time       `gorm:"not null"`
	Items     []CartItemModel `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (CartModel) TableName() string {
	return "carts"
}

// CartItemModel is the persistence model for cart lines.
// ProductTitle and UnitPrice are read through a join with products.
type CartItemModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CartID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_cart_product,priority:1"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_cart_product,priority:2"`
	Quantity     int             `gorm:"type:smallint;not null"`
	ProductTitle string          `gorm:"->;-:migration"`
	UnitPrice    decimal.Decimal `gorm:"->;-:migration"`

	Product *ProductModel `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (CartItemModel) TableName() string {
	return "cart_items"
}

// ToDomain converts the persistence model to a domain CartItem
func (m *CartItemModel) ToDomain() ordering.CartItem {
	return ordering.CartItem{
		ID:           m.ID,
		CartID:       m.CartID,
		ProductID:    m.ProductID,
		ProductTitle: m.ProductTitle,
		UnitPrice:    m.UnitPrice,
		Quantity:     m.Quantity,
	}
}
