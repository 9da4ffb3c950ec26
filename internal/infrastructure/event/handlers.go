package event

import (
	"context"
	"errors"
	"fmt"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// AuditLogHandler writes one structured log line per domain event
type AuditLogHandler struct {
	logger *zap.Logger
}

// NewAuditLogHandler creates an audit handler that logs under the "audit" name
func NewAuditLogHandler(l *zap.Logger) *AuditLogHandler {
	return &AuditLogHandler{logger: l.Named("audit")}
}

// EventTypes returns nil so every event is audited
func (h *AuditLogHandler) EventTypes() []string {
	return nil
}

// Handle logs the event envelope
func (h *AuditLogHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	logger.Ctx(ctx, h.logger).Info("Domain event",
		zap.String("event_id", event.EventID().String()),
		zap.String("event_type", event.EventType()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.Time("occurred_at", event.OccurredAt()),
	)
	return nil
}

// ObjectDeleter removes stored objects by key
type ObjectDeleter interface {
	DeleteObject(ctx context.Context, storageKey string) error
}

// ProductImageCleanupHandler deletes the image objects of a deleted product from object storage
type ProductImageCleanupHandler struct {
	storage ObjectDeleter
	logger  *zap.Logger
}

// NewProductImageCleanupHandler creates a new cleanup handler
func NewProductImageCleanupHandler(storage ObjectDeleter, l *zap.Logger) *ProductImageCleanupHandler {
	return &ProductImageCleanupHandler{storage: storage, logger: l}
}

// EventTypes returns the ProductDeleted type
func (h *ProductImageCleanupHandler) EventTypes() []string {
	return []string{catalog.EventTypeProductDeleted}
}

// Handle deletes every key carried by the event. Failed keys are reported together;
// deleting an already missing object succeeds, so a retry repeats the whole set.
func (h *ProductImageCleanupHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	deleted, ok := event.(*catalog.ProductDeletedEvent)
	if !ok {
		return fmt.Errorf("unexpected event %T for %s", event, catalog.EventTypeProductDeleted)
	}

	var errs []error
	for _, key := range deleted.ImageKeys {
		if err := h.storage.DeleteObject(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("delete %s: %w", key, err))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	if len(deleted.ImageKeys) > 0 {
		h.logger.Info("Product images removed",
			zap.String("product_id", deleted.ProductID.String()),
			zap.Int("count", len(deleted.ImageKeys)),
		)
	}
	return nil
}

var (
	_ shared.EventHandler = (*AuditLogHandler)(nil)
	_ shared.EventHandler = (*ProductImageCleanupHandler)(nil)
)
