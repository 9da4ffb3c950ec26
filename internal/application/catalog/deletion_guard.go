package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Entities reported on catalog_deletions_total
const (
	EntityProduct    = "product"
	EntityCollection = "collection"
)

// DeletionGuard is the only entry point for deleting products and collections.
// A product with order items or a collection with products is never deleted;
// the caller gets a DELETE_REJECTED domain error instead. Rejections are final
// and are not retried.
type DeletionGuard struct {
	products    catalog.ProductRepository
	collections catalog.CollectionRepository
	metrics     *telemetry.StoreMetrics
	logger      *zap.Logger
}

// NewDeletionGuard creates a DeletionGuard
func NewDeletionGuard(
	products catalog.ProductRepository,
	collections catalog.CollectionRepository,
	logger *zap.Logger,
) *DeletionGuard {
	return &DeletionGuard{
		products:    products,
		collections: collections,
		logger:      logger,
	}
}

// SetMetrics enables outcome counting
func (g *DeletionGuard) SetMetrics(m *telemetry.StoreMetrics) {
	g.metrics = m
}

// DeleteProduct deletes the product unless an order item references it
func (g *DeletionGuard) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return g.finish(ctx, EntityProduct, id, g.products.DeleteIfUnreferenced(ctx, id))
}

// DeleteCollection deletes the collection unless a product belongs to it
func (g *DeletionGuard) DeleteCollection(ctx context.Context, id uuid.UUID) error {
	return g.finish(ctx, EntityCollection, id, g.collections.DeleteIfUnreferenced(ctx, id))
}

// CheckProduct reports, without deleting, whether the product could be deleted now.
// The answer can change before a later DeleteProduct.
func (g *DeletionGuard) CheckProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := g.products.FindByID(ctx, id); err != nil {
		return err
	}
	refs, err := g.products.CountOrderItems(ctx, id)
	if err != nil {
		return fmt.Errorf("count order items of product %s: %w", id, err)
	}
	return catalog.CheckProductDeletable(refs)
}

// CheckCollection reports, without deleting, whether the collection could be deleted now
func (g *DeletionGuard) CheckCollection(ctx context.Context, id uuid.UUID) error {
	if _, err := g.collections.FindByID(ctx, id); err != nil {
		return err
	}
	refs, err := g.collections.CountProducts(ctx, id)
	if err != nil {
		return fmt.Errorf("count products of collection %s: %w", id, err)
	}
	return catalog.CheckCollectionDeletable(refs)
}

func (g *DeletionGuard) finish(ctx context.Context, entity string, id uuid.UUID, err error) error {
	fields := []zap.Field{zap.String("entity", entity), zap.String("id", id.String())}

	switch {
	case err == nil:
		g.metrics.RecordDeletion(ctx, entity, telemetry.OutcomeDeleted)
		g.logger.Info("Catalog entity deleted", fields...)
		return nil
	case shared.IsDeletionRejected(err):
		g.metrics.RecordDeletion(ctx, entity, telemetry.OutcomeRejected)
		g.logger.Warn("Deletion rejected", append(fields, zap.String("reason", err.Error()))...)
		return err
	case errors.Is(err, shared.ErrNotFound):
		g.metrics.RecordDeletion(ctx, entity, telemetry.OutcomeNotFound)
		return err
	default:
		g.metrics.RecordDeletion(ctx, entity, telemetry.OutcomeError)
		g.logger.Error("Deletion failed", append(fields, zap.Error(err))...)
		return fmt.Errorf("delete %s %s: %w", entity, id, err)
	}
}
