package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormReviewRepository implements catalog.ReviewRepository using GORM.
// Reviews are always addressed through their product.
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// FindByID finds a review of the given product
func (r *GormReviewRepository) FindByID(ctx context.Context, productID, id uuid.UUID) (*catalog.Review, error) {
	var model models.ReviewModel
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND id = ?", productID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProduct lists the reviews of a product
func (r *GormReviewRepository) FindByProduct(ctx context.Context, q catalog.ReviewQuery) ([]catalog.Review, int64, error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.ReviewModel{}).Where("product_id = ?", q.ProductID)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ReviewModel
	query := base().
		Order(orderClause("reviews", q.OrderBy, q.OrderDir, ReviewSortFields, "date")).
		Order("reviews.id")
	if err := paginate(query, q.PageRequest).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	reviews := make([]catalog.Review, len(rows))
	for i := range rows {
		reviews[i] = *rows[i].ToDomain()
	}
	return reviews, total, nil
}

// Save creates or updates a review
func (r *GormReviewRepository) Save(ctx context.Context, review *catalog.Review) error {
	if err := r.db.WithContext(ctx).Save(models.ReviewModelFromDomain(review)).Error; err != nil {
		if isForeignKeyViolation(err) {
			return shared.ErrNotFound
		}
		return err
	}
	return nil
}

// Delete removes a review of the given product
func (r *GormReviewRepository) Delete(ctx context.Context, productID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("product_id = ? AND id = ?", productID, id).
		Delete(&models.ReviewModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ catalog.ReviewRepository = (*GormReviewRepository)(nil)
