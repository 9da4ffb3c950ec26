package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/tagging"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTagRepository implements tagging.Repository using GORM
type GormTagRepository struct {
	db *gorm.DB
}

// NewGormTagRepository creates a new GormTagRepository
func NewGormTagRepository(db *gorm.DB) *GormTagRepository {
	return &GormTagRepository{db: db}
}

// FindByID finds a tag by ID
func (r *GormTagRepository) FindByID(ctx context.Context, id uuid.UUID) (*tagging.Tag, error) {
	var model models.TagModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists tags whose label starts with q.Search
func (r *GormTagRepository) FindAll(ctx context.Context, q tagging.Query) ([]tagging.Tag, int64, error) {
	base := func() *gorm.DB {
		db := r.db.WithContext(ctx).Model(&models.TagModel{})
		if q.Search != "" {
			db = db.Where("LOWER(label) LIKE ?"+likeEscape, likePrefix(q.Search))
		}
		return db
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.TagModel
	query := base().Order(orderClause("tags", q.OrderBy, q.OrderDir, TagSortFields, "label")).Order("tags.id")
	if err := paginate(query, q.PageRequest).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toTags(rows), total, nil
}

// Save creates or updates a tag
func (r *GormTagRepository) Save(ctx context.Context, tag *tagging.Tag) error {
	return r.db.WithContext(ctx).Save(models.TagModelFromDomain(tag)).Error
}

// FindForObject lists the tags attached to an object, by label
func (r *GormTagRepository) FindForObject(ctx context.Context, contentType tagging.ContentType, objectID uuid.UUID) ([]tagging.Tag, error) {
	var rows []models.TagModel
	if err := r.db.WithContext(ctx).
		Model(&models.TagModel{}).
		Joins("JOIN tagged_items ON tagged_items.tag_id = tags.id").
		Where("tagged_items.content_type = ? AND tagged_items.object_id = ?", contentType, objectID).
		Order("tags.label").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toTags(rows), nil
}

// Attach links a tag to an object. An existing link is left untouched.
func (r *GormTagRepository) Attach(ctx context.Context, item *tagging.TaggedItem) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tag_id"}, {Name: "content_type"}, {Name: "object_id"}},
			DoNothing: true,
		}).
		Create(models.TaggedItemModelFromDomain(item)).Error
	if isForeignKeyViolation(err) {
		return shared.ErrNotFound
	}
	return err
}

// Detach removes the link between a tag and an object
func (r *GormTagRepository) Detach(ctx context.Context, tagID uuid.UUID, contentType tagging.ContentType, objectID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("tag_id = ? AND content_type = ? AND object_id = ?", tagID, contentType, objectID).
		Delete(&models.TaggedItemModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toTags(rows []models.TagModel) []tagging.Tag {
	tags := make([]tagging.Tag, len(rows))
	for i := range rows {
		tags[i] = *rows[i].ToDomain()
	}
	return tags
}

var _ tagging.Repository = (*GormTagRepository)(nil)
