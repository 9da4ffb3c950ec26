package catalog

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Collection groups products for browsing. Every product belongs to exactly one.
type Collection struct {
	shared.BaseAggregateRoot
	Title             string
	FeaturedProductID *uuid.UUID
}

// CollectionView is a collection annotated with the number of products in it
type CollectionView struct {
	Collection
	ProductsCount int64
}

// NewCollection creates a new collection
func NewCollection(title string) (*Collection, error) {
	title = strings.TrimSpace(title)
	if err := validateTitle(title); err != nil {
		return nil, err
	}

	c := &Collection{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             title,
	}
	c.AddDomainEvent(NewCollectionCreatedEvent(c))
	return c, nil
}

// Update replaces the title and featured product
func (c *Collection) Update(title string, featuredProductID *uuid.UUID) error {
	title = strings.TrimSpace(title)
	if err := validateTitle(title); err != nil {
		return err
	}
	c.Title = title
	c.FeaturedProductID = featuredProductID
	c.Touch()
	c.IncrementVersion()
	return nil
}

func validateTitle(title string) error {
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 255 characters")
	}
	return nil
}
