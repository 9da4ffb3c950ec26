package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const collectionViewColumns = "collections.*, " +
	"(SELECT COUNT(*) FROM products WHERE products.collection_id = collections.id) AS products_count"

// GormCollectionRepository implements catalog.CollectionRepository using GORM
type GormCollectionRepository struct {
	db          *gorm.DB
	outboxSaver shared.OutboxEventSaver
}

// NewGormCollectionRepository creates a new GormCollectionRepository
func NewGormCollectionRepository(db *gorm.DB) *GormCollectionRepository {
	return &GormCollectionRepository{db: db}
}

// SetOutboxEventSaver sets the outbox event saver for transactional event publishing
func (r *GormCollectionRepository) SetOutboxEventSaver(saver shared.OutboxEventSaver) {
	r.outboxSaver = saver
}

// FindByID finds a collection by its ID
func (r *GormCollectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Collection, error) {
	var model models.CollectionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindViewByID finds a collection with its product count
func (r *GormCollectionRepository) FindViewByID(ctx context.Context, id uuid.UUID) (*catalog.CollectionView, error) {
	var rows []models.CollectionViewRow
	if err := r.viewQuery(ctx).Where("collections.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, shared.ErrNotFound
	}
	view := rows[0].ToDomain()
	return &view, nil
}

// FindViews lists collections matching q with their product counts
func (r *GormCollectionRepository) FindViews(ctx context.Context, q catalog.CollectionQuery) ([]catalog.CollectionView, int64, error) {
	var total int64
	if err := r.applyQuery(r.db.WithContext(ctx).Model(&models.CollectionModel{}), q).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.CollectionViewRow
	query := r.applyQuery(r.viewQuery(ctx), q).
		Order(orderClause("collections", q.OrderBy, q.OrderDir, CollectionSortFields, "title")).
		Order("collections.id")
	if err := paginate(query, q.PageRequest).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	views := make([]catalog.CollectionView, len(rows))
	for i := range rows {
		views[i] = rows[i].ToDomain()
	}
	return views, total, nil
}

func (r *GormCollectionRepository) viewQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.CollectionModel{}).Select(collectionViewColumns)
}

func (r *GormCollectionRepository) applyQuery(db *gorm.DB, q catalog.CollectionQuery) *gorm.DB {
	if q.Search != "" {
		db = db.Where("LOWER(collections.title) LIKE ?"+likeEscape, likeContains(q.Search))
	}
	return db
}

// Save creates or updates a collection and records its pending events in the outbox
func (r *GormCollectionRepository) Save(ctx context.Context, collection *catalog.Collection) error {
	events := collection.GetDomainEvents()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(models.CollectionModelFromDomain(collection)).Error; err != nil {
			if isForeignKeyViolation(err) {
				return shared.NewDomainError(shared.CodeInvalidInput, "Featured product does not exist")
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
	collection.ClearDomainEvents()
	return nil
}

// CountProducts counts products belonging to the collection
func (r *GormCollectionRepository) CountProducts(ctx context.Context, collectionID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ProductModel{}).
		Where("collection_id = ?", collectionID).
		Count(&count).Error
	return count, err
}

// DeleteIfUnreferenced deletes the collection unless a product belongs to it.
// The collection row is locked for the duration of the check.
func (r *GormCollectionRepository) DeleteIfUnreferenced(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.CollectionModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		var refs int64
		if err := tx.Model(&models.ProductModel{}).Where("collection_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if err := catalog.CheckCollectionDeletable(refs); err != nil {
			return err
		}

		result := tx.Delete(&models.CollectionModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}

		event := catalog.NewCollectionDeletedEvent(model.ToDomain())
		return saveEvents(ctx, r.outboxSaver, tx, []shared.DomainEvent{event})
	})
	if isForeignKeyViolation(err) {
		return catalog.ErrCollectionHasProducts
	}
	return err
}

var _ catalog.CollectionRepository = (*GormCollectionRepository)(nil)
