package event

import (
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/ordering"
)

// RegisterAllEvents registers every storefront event so the outbox processor can decode it
func RegisterAllEvents(serializer *EventSerializer) {
	// Catalog
	serializer.Register(catalog.EventTypeProductCreated, &catalog.ProductCreatedEvent{})
	serializer.Register(catalog.EventTypeProductUpdated, &catalog.ProductUpdatedEvent{})
	serializer.Register(catalog.EventTypeProductDeleted, &catalog.ProductDeletedEvent{})
	serializer.Register(catalog.EventTypeInventoryCleared, &catalog.InventoryClearedEvent{})
	serializer.Register(catalog.EventTypeCollectionCreated, &catalog.CollectionCreatedEvent{})
	serializer.Register(catalog.EventTypeCollectionDeleted, &catalog.CollectionDeletedEvent{})

	// Ordering
	serializer.Register(ordering.EventTypeOrderPlaced, &ordering.OrderPlacedEvent{})
}
