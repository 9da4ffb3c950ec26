package models

import (
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/tagging"
)

// TagModel is the persistence model for tags
type TagModel struct {
	BaseModel
	Label string `gorm:"type:varchar(255);not null"`
}

// TableName returns the table name for GORM
func (TagModel) TableName() string {
	return "tags"
}

// ToDomain converts the persistence model to a domain Tag
func (m *TagModel) ToDomain() *tagging.Tag {
	return &tagging.Tag{BaseEntity: m.Entity(), Label: m.Label}
}

// TagModelFromDomain creates a new persistence model from a domain Tag
func TagModelFromDomain(t *tagging.Tag) *TagModel {
	m := &TagModel{Label: t.Label}
	m.SetEntity(t.BaseEntity)
	return m
}

// TaggedItemModel links a tag to an object. There is no foreign key on ObjectID;
// product deletion removes its links explicitly.
type TaggedItemModel struct {
	ID          uuid.UUID           `gorm:"type:uuid;primaryKey"`
	TagID       uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_tagged_items_link,priority:1"`
	ContentType tagging.ContentType `gorm:"type:varchar(100);not null;uniqueIndex:idx_tagged_items_link,priority:2;index:idx_tagged_items_object,priority:1"`
	ObjectID    uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_tagged_items_link,priority:3;index:idx_tagged_items_object,priority:2"`

	Tag *TagModel `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (TaggedItemModel) TableName() string {
	return "tagged_items"
}

// TaggedItemModelFromDomain creates a new persistence model from a domain TaggedItem
func TaggedItemModelFromDomain(i *tagging.TaggedItem) *TaggedItemModel {
	return &TaggedItemModel{
		ID:          i.ID,
		TagID:       i.TagID,
		ContentType: i.ContentType,
		ObjectID:    i.ObjectID,
	}
}
