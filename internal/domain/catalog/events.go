package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeProduct    = "Product"
	AggregateTypeCollection = "Collection"
)

// Event type constants
const (
	EventTypeProductCreated    = "ProductCreated"
	EventTypeProductUpdated    = "ProductUpdated"
	EventTypeProductDeleted    = "ProductDeleted"
	EventTypeInventoryCleared  = "InventoryCleared"
	EventTypeCollectionCreated = "CollectionCreated"
	EventTypeCollectionDeleted = "CollectionDeleted"
)

// ProductCreatedEvent is published when a new product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID    uuid.UUID       `json:"product_id"`
	Title        string          `json:"title"`
	Slug         string          `json:"slug"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	CollectionID uuid.UUID       `json:"collection_id"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(p *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, p.ID),
		ProductID:       p.ID,
		Title:           p.Title,
		Slug:            p.Slug,
		UnitPrice:       p.UnitPrice,
		CollectionID:    p.CollectionID,
	}
}

// ProductUpdatedEvent is published when a product changes
type ProductUpdatedEvent struct {
	shared.BaseDomainEvent
	ProductID    uuid.UUID       `json:"product_id"`
	Title        string          `json:"title"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Inventory    int             `json:"inventory"`
	CollectionID uuid.UUID       `json:"collection_id"`
}

// NewProductUpdatedEvent creates a new ProductUpdatedEvent
func NewProductUpdatedEvent(p *Product) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductUpdated, AggregateTypeProduct, p.ID),
		ProductID:       p.ID,
		Title:           p.Title,
		UnitPrice:       p.UnitPrice,
		Inventory:       p.Inventory,
		CollectionID:    p.CollectionID,
	}
}

// ProductDeletedEvent is published when a product passes the deletion guard and is removed.
// ImageKeys lists the object storage keys that are now orphaned.
type ProductDeletedEvent struct {
	shared.BaseDomainEvent
	ProductID    uuid.UUID `json:"product_id"`
	Title        string    `json:"title"`
	CollectionID uuid.UUID `json:"collection_id"`
	ImageKeys    []string  `json:"image_keys,omitempty"`
}

// NewProductDeletedEvent creates a new ProductDeletedEvent
func NewProductDeletedEvent(p *Product, imageKeys []string) *ProductDeletedEvent {
	return &ProductDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductDeleted, AggregateTypeProduct, p.ID),
		ProductID:       p.ID,
		Title:           p.Title,
		CollectionID:    p.CollectionID,
		ImageKeys:       imageKeys,
	}
}

// InventoryClearedEvent is published by the clear_inventory bulk action
type InventoryClearedEvent struct {
	shared.BaseDomainEvent
	ProductIDs []uuid.UUID `json:"product_ids"`
	Updated    int64       `json:"updated"`
}

// NewInventoryClearedEvent creates a new InventoryClearedEvent. The aggregate id is nil
// because the action spans several products.
func NewInventoryClearedEvent(ids []uuid.UUID, updated int64) *InventoryClearedEvent {
	return &InventoryClearedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInventoryCleared, AggregateTypeProduct, uuid.Nil),
		ProductIDs:      ids,
		Updated:         updated,
	}
}

// CollectionCreatedEvent is published when a collection is created
type CollectionCreatedEvent struct {
	shared.BaseDomainEvent
	CollectionID uuid.UUID `json:"collection_id"`
	Title        string    `json:"title"`
}

// NewCollectionCreatedEvent creates a new CollectionCreatedEvent
func NewCollectionCreatedEvent(c *Collection) *CollectionCreatedEvent {
	return &CollectionCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCollectionCreated, AggregateTypeCollection, c.ID),
		CollectionID:    c.ID,
		Title:           c.Title,
	}
}

// CollectionDeletedEvent is published when an empty collection is removed
type CollectionDeletedEvent struct {
	shared.BaseDomainEvent
	CollectionID uuid.UUID `json:"collection_id"`
	Title        string    `json:"title"`
}

// NewCollectionDeletedEvent creates a new CollectionDeletedEvent
func NewCollectionDeletedEvent(c *Collection) *CollectionDeletedEvent {
	return &CollectionDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCollectionDeleted, AggregateTypeCollection, c.ID),
		CollectionID:    c.ID,
		Title:           c.Title,
	}
}
