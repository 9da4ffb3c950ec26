// Package tagging attaches free-form labels to any storefront object.
package tagging

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// ContentType names the kind of object a tag is attached to
type ContentType string

const ContentTypeProduct ContentType = "product"

// IsValid checks if the content type is taggable
func (c ContentType) IsValid() bool {
	return c == ContentTypeProduct
}

// Tag is a label
type Tag struct {
	shared.BaseEntity
	Label string
}

// NewTag creates a tag
func NewTag(label string) (*Tag, error) {
	label = strings.TrimSpace(label)
	if label == "" || len(label) > 255 {
		return nil, shared.NewDomainError("INVALID_LABEL", "Label must be between 1 and 255 characters")
	}
	return &Tag{BaseEntity: shared.NewBaseEntity(), Label: label}, nil
}

// TaggedItem links a tag to an object identified by content type and id
type TaggedItem struct {
	ID          uuid.UUID
	TagID       uuid.UUID
	ContentType ContentType
	ObjectID    uuid.UUID
}

// NewTaggedItem creates a link
func NewTaggedItem(tagID uuid.UUID, contentType ContentType, objectID uuid.UUID) (*TaggedItem, error) {
	if !contentType.IsValid() {
		return nil, shared.NewDomainError("INVALID_CONTENT_TYPE", "Objects of this type cannot be tagged")
	}
	if tagID == uuid.Nil || objectID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Tag and object are required")
	}
	return &TaggedItem{ID: uuid.New(), TagID: tagID, ContentType: contentType, ObjectID: objectID}, nil
}

// Query selects tags by label prefix
type Query struct {
	shared.PageRequest
	Search string
}

// Repository persists tags and their links
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Tag, error)
	FindAll(ctx context.Context, q Query) ([]Tag, int64, error)
	Save(ctx context.Context, tag *Tag) error
	// FindForObject lists the tags attached to an object
	FindForObject(ctx context.Context, contentType ContentType, objectID uuid.UUID) ([]Tag, error)
	// Attach links the tag to the object; attaching twice is a no-op
	Attach(ctx context.Context, item *TaggedItem) error
	Detach(ctx context.Context, tagID uuid.UUID, contentType ContentType, objectID uuid.UUID) error
}
