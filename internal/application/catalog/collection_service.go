package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// CollectionService handles collection reads and upserts
type CollectionService struct {
	collections catalog.CollectionRepository
	products    catalog.ProductRepository
	limits      shared.PageLimits
}

// NewCollectionService creates a CollectionService
func NewCollectionService(collections catalog.CollectionRepository, products catalog.ProductRepository) *CollectionService {
	return &CollectionService{collections: collections, products: products, limits: shared.DefaultPageLimits}
}

// SetPageLimits overrides the default list page sizes
func (s *CollectionService) SetPageLimits(l shared.PageLimits) {
	s.limits = l
}

// List returns a page of collections with product counts
func (s *CollectionService) List(ctx context.Context, filter CollectionListFilter) (shared.Paginated[CollectionResponse], error) {
	q := catalog.CollectionQuery{
		PageRequest: s.limits.Apply(pageRequest(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir)),
		Search:      filter.Search,
	}
	views, total, err := s.collections.FindViews(ctx, q)
	if err != nil {
		return shared.Paginated[CollectionResponse]{}, err
	}
	items := make([]CollectionResponse, 0, len(views))
	for _, v := range views {
		items = append(items, ToCollectionResponse(v))
	}
	return shared.NewPaginated(items, total, q.Page, q.PageSize), nil
}

// Get returns one collection
func (s *CollectionService) Get(ctx context.Context, id uuid.UUID) (*CollectionResponse, error) {
	v, err := s.collections.FindViewByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCollectionResponse(*v)
	return &resp, nil
}

// Create stores a new collection. A featured product can only be set once the
// collection exists, so it is ignored here unless it already exists.
func (s *CollectionService) Create(ctx context.Context, req CollectionRequest) (*CollectionResponse, error) {
	collection, err := catalog.NewCollection(req.Title)
	if err != nil {
		return nil, err
	}
	if req.FeaturedProductID != nil {
		if err := s.requireProduct(ctx, *req.FeaturedProductID); err != nil {
			return nil, err
		}
		if err := collection.Update(collection.Title, req.FeaturedProductID); err != nil {
			return nil, err
		}
	}
	if err := s.collections.Save(ctx, collection); err != nil {
		return nil, err
	}
	return s.Get(ctx, collection.ID)
}

// Update changes the title and featured product
func (s *CollectionService) Update(ctx context.Context, id uuid.UUID, req CollectionRequest) (*CollectionResponse, error) {
	collection, err := s.collections.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.FeaturedProductID != nil {
		if err := s.requireProduct(ctx, *req.FeaturedProductID); err != nil {
			return nil, err
		}
	}
	if err := collection.Update(req.Title, req.FeaturedProductID); err != nil {
		return nil, err
	}
	if err := s.collections.Save(ctx, collection); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *CollectionService) requireProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.products.FindByID(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_FEATURED_PRODUCT", "Featured product does not exist")
		}
		return err
	}
	return nil
}
