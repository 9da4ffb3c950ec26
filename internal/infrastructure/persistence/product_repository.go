package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/tagging"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const productViewColumns = "products.*, collections.title AS collection_title"

var errCollectionMissing = shared.NewDomainError(shared.CodeInvalidInput, "Collection does not exist")

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db          *gorm.DB
	outboxSaver shared.OutboxEventSaver // optional, for transactional outbox pattern
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// SetOutboxEventSaver sets the outbox event saver for transactional event publishing
func (r *GormProductRepository) SetOutboxEventSaver(saver shared.OutboxEventSaver) {
	r.outboxSaver = saver
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindViewByID finds a product together with its collection title
func (r *GormProductRepository) FindViewByID(ctx context.Context, id uuid.UUID) (*catalog.ProductView, error) {
	var rows []models.ProductViewRow
	if err := r.viewQuery(ctx).Where("products.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, shared.ErrNotFound
	}
	view := rows[0].ToDomain()
	return &view, nil
}

// FindViews lists products matching q and the total number of matches
func (r *GormProductRepository) FindViews(ctx context.Context, q catalog.ProductQuery) ([]catalog.ProductView, int64, error) {
	var total int64
	if err := r.applyQuery(r.db.WithContext(ctx).Model(&models.ProductModel{}), q).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ProductViewRow
	query := r.applyQuery(r.viewQuery(ctx), q).
		Order(orderClause("products", q.OrderBy, q.OrderDir, ProductSortFields, "title")).
		Order("products.id")
	if err := paginate(query, q.PageRequest).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	views := make([]catalog.ProductView, len(rows))
	for i := range rows {
		views[i] = rows[i].ToDomain()
	}
	return views, total, nil
}

func (r *GormProductRepository) viewQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Select(productViewColumns).
		Joins("JOIN collections ON collections.id = products.collection_id")
}

func (r *GormProductRepository) applyQuery(db *gorm.DB, q catalog.ProductQuery) *gorm.DB {
	if q.Search != "" {
		db = db.Where("LOWER(products.title) LIKE ?"+likeEscape, likeContains(q.Search))
	}
	if q.CollectionID != nil {
		db = db.Where("products.collection_id = ?", *q.CollectionID)
	}
	if q.LowInventory {
		db = db.Where("products.inventory < ?", catalog.LowInventoryThreshold)
	}
	if q.UpdatedSince != nil {
		db = db.Where("products.last_update >= ?", *q.UpdatedSince)
	}
	return db
}

// ExistsBySlug checks whether another product already uses slug
func (r *GormProductRepository) ExistsBySlug(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ProductModel{}).
		Where("slug = ? AND id <> ?", slug, excludeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a product and records its pending events in the outbox.
//
// The target collection row is locked FOR SHARE first, so a concurrent
// DeleteIfUnreferenced on that collection waits for this transaction and then
// counts the product.
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	events := product.GetDomainEvents()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var collection models.CollectionModel
		if err := tx.Clauses(clause.Locking{Strength: "SHARE"}).
			Select("id").
			Take(&collection, "id = ?", product.CollectionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errCollectionMissing
			}
			return err
		}
		if err := tx.Save(models.ProductModelFromDomain(product)).Error; err != nil {
			if isForeignKeyViolation(err) {
				return errCollectionMissing
			}
			return err
		}
		if err := saveEvents(ctx, r.outboxSaver, tx, events); err != nil {
			return fmt.Errorf("failed to save events to outbox: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	product.ClearDomainEvents()
	return nil
}

// ClearInventory zeroes the inventory of the given products
func (r *GormProductRepository) ClearInventory(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var updated int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.ProductModel{}).
			Where("id IN ?", ids).
			Updates(map[string]any{"inventory": 0, "last_update": time.Now()})
		if result.Error != nil {
			return result.Error
		}
		updated = result.RowsAffected
		if updated == 0 {
			return nil
		}
		return saveEvents(ctx, r.outboxSaver, tx, []shared.DomainEvent{catalog.NewInventoryClearedEvent(ids, updated)})
	})
	return updated, err
}

// CountOrderItems counts order items referencing the product
func (r *GormProductRepository) CountOrderItems(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.OrderItemModel{}).
		Where("product_id = ?", productID).
		Count(&count).Error
	return count, err
}

// DeleteIfUnreferenced deletes the product unless an order item references it.
//
// The product row is locked FOR UPDATE before counting, and order placement
// takes FOR SHARE on the same row, so a concurrent order either commits before
// the count sees it or waits until the delete has committed and then finds no
// product. The RESTRICT foreign key on order_items backs this up.
func (r *GormProductRepository) DeleteIfUnreferenced(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.ProductModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		var refs int64
		if err := tx.Model(&models.OrderItemModel{}).Where("product_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if err := catalog.CheckProductDeletable(refs); err != nil {
			return err
		}

		var imageKeys []string
		if err := tx.Model(&models.ProductImageModel{}).
			Where("product_id = ?", id).
			Order("created_at").
			Pluck("storage_key", &imageKeys).Error; err != nil {
			return err
		}

		if err := tx.Where("content_type = ? AND object_id = ?", tagging.ContentTypeProduct, id).
			Delete(&models.TaggedItemModel{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.CollectionModel{}).
			Where("featured_product_id = ?", id).
			Update("featured_product_id", nil).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.ProductModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}

		event := catalog.NewProductDeletedEvent(model.ToDomain(), imageKeys)
		return saveEvents(ctx, r.outboxSaver, tx, []shared.DomainEvent{event})
	})
	if isForeignKeyViolation(err) {
		return catalog.ErrProductInOrders
	}
	return err
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)
