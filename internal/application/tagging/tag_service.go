// Package tagging implements tag management and product tagging.
package tagging

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/tagging"
)

// TagRequest creates a tag
type TagRequest struct {
	Label string `json:"label" binding:"required,min=1,max=255"`
}

// AttachTagRequest links an existing tag to a product
type AttachTagRequest struct {
	TagID uuid.UUID `json:"tag_id" binding:"required"`
}

// TagListFilter is the query string of the tag list
type TagListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// TagResponse is a tag
type TagResponse struct {
	ID    uuid.UUID `json:"id"`
	Label string    `json:"label"`
}

func toTagResponse(t tagging.Tag) TagResponse {
	return TagResponse{ID: t.ID, Label: t.Label}
}

// Service manages tags and their links to products
type Service struct {
	tags     tagging.Repository
	products catalog.ProductRepository
	limits   shared.PageLimits
}

// NewService creates a tagging Service
func NewService(tags tagging.Repository, products catalog.ProductRepository) *Service {
	return &Service{tags: tags, products: products, limits: shared.DefaultPageLimits}
}

// List returns a page of tags ordered by label
func (s *Service) List(ctx context.Context, filter TagListFilter) (shared.Paginated[TagResponse], error) {
	q := tagging.Query{
		PageRequest: s.limits.Apply(shared.PageRequest{Page: filter.Page, PageSize: filter.PageSize, OrderBy: "label"}),
		Search:      filter.Search,
	}
	tags, total, err := s.tags.FindAll(ctx, q)
	if err != nil {
		return shared.Paginated[TagResponse]{}, err
	}
	items := make([]TagResponse, 0, len(tags))
	for _, t := range tags {
		items = append(items, toTagResponse(t))
	}
	return shared.NewPaginated(items, total, q.Page, q.PageSize), nil
}

// Create stores a new tag
func (s *Service) Create(ctx context.Context, req TagRequest) (*TagResponse, error) {
	tag, err := tagging.NewTag(req.Label)
	if err != nil {
		return nil, err
	}
	if err := s.tags.Save(ctx, tag); err != nil {
		return nil, err
	}
	resp := toTagResponse(*tag)
	return &resp, nil
}

// ListForProduct returns the tags attached to a product
func (s *Service) ListForProduct(ctx context.Context, productID uuid.UUID) ([]TagResponse, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	tags, err := s.tags.FindForObject(ctx, tagging.ContentTypeProduct, productID)
	if err != nil {
		return nil, err
	}
	out := make([]TagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, toTagResponse(t))
	}
	return out, nil
}

// AttachToProduct links a tag to a product. Attaching twice has no effect.
func (s *Service) AttachToProduct(ctx context.Context, productID uuid.UUID, req AttachTagRequest) (*TagResponse, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	tag, err := s.tags.FindByID(ctx, req.TagID)
	if err != nil {
		return nil, err
	}
	item, err := tagging.NewTaggedItem(tag.ID, tagging.ContentTypeProduct, productID)
	if err != nil {
		return nil, err
	}
	if err := s.tags.Attach(ctx, item); err != nil {
		return nil, err
	}
	resp := toTagResponse(*tag)
	return &resp, nil
}

// DetachFromProduct removes a tag link from a product
func (s *Service) DetachFromProduct(ctx context.Context, productID, tagID uuid.UUID) error {
	return s.tags.Detach(ctx, tagID, tagging.ContentTypeProduct, productID)
}
