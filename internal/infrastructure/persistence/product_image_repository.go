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

// GormProductImageRepository implements catalog.ProductImageRepository using GORM
type GormProductImageRepository struct {
	db *gorm.DB
}

// NewGormProductImageRepository creates a new GormProductImageRepository
func NewGormProductImageRepository(db *gorm.DB) *GormProductImageRepository {
	return &GormProductImageRepository{db: db}
}

// FindByID finds an image of the given product
func (r *GormProductImageRepository) FindByID(ctx context.Context, productID, id uuid.UUID) (*catalog.ProductImage, error) {
	var model models.ProductImageModel
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

// FindByProduct lists the images of a product in upload order
func (r *GormProductImageRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.ProductImage, error) {
	var rows []models.ProductImageModel
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at, id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	images := make([]catalog.ProductImage, len(rows))
	for i := range rows {
		images[i] = *rows[i].ToDomain()
	}
	return images, nil
}

// Save creates or updates image metadata
func (r *GormProductImageRepository) Save(ctx context.Context, image *catalog.ProductImage) error {
	if err := r.db.WithContext(ctx).Save(models.ProductImageModelFromDomain(image)).Error; err != nil {
		if isForeignKeyViolation(err) {
			return shared.ErrNotFound
		}
		return err
	}
	return nil
}

// Delete removes image metadata
func (r *GormProductImageRepository) Delete(ctx context.Context, productID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("product_id = ? AND id = ?", productID, id).
		Delete(&models.ProductImageModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ catalog.ProductImageRepository = (*GormProductImageRepository)(nil)
