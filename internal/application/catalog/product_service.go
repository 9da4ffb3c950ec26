package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

var errSlugTaken = shared.NewDomainError(shared.CodeAlreadyExists, "Product with this slug already exists")

// ProductService handles product reads and upserts. Deletion goes through DeletionGuard.
type ProductService struct {
	products    catalog.ProductRepository
	collections catalog.CollectionRepository
	taxRate     decimal.Decimal
	limits      shared.PageLimits
}

// NewProductService creates a ProductService that prices tax at taxRate
func NewProductService(
	products catalog.ProductRepository,
	collections catalog.CollectionRepository,
	taxRate decimal.Decimal,
) *ProductService {
	return &ProductService{
		products:    products,
		collections: collections,
		taxRate:     taxRate,
		limits:      shared.DefaultPageLimits,
	}
}

// SetPageLimits overrides the default list page sizes
func (s *ProductService) SetPageLimits(l shared.PageLimits) {
	s.limits = l
}

// List returns a page of products
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) (shared.Paginated[ProductResponse], error) {
	q := catalog.ProductQuery{
		PageRequest:  s.limits.Apply(pageRequest(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir)),
		Search:       filter.Search,
		CollectionID: filter.CollectionID,
		LowInventory: filter.LowInventory,
		UpdatedSince: filter.UpdatedSince,
	}
	views, total, err := s.products.FindViews(ctx, q)
	if err != nil {
		return shared.Paginated[ProductResponse]{}, err
	}
	items := make([]ProductResponse, 0, len(views))
	for _, v := range views {
		items = append(items, ToProductResponse(v, s.taxRate))
	}
	return shared.NewPaginated(items, total, q.Page, q.PageSize), nil
}

// Get returns one product
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	return s.view(ctx, id)
}

// Create validates and stores a new product
func (s *ProductService) Create(ctx context.Context, req ProductRequest) (*ProductResponse, error) {
	if err := s.requireCollection(ctx, req.CollectionID); err != nil {
		return nil, err
	}
	product, err := catalog.NewProduct(req.toInput())
	if err != nil {
		return nil, err
	}
	if err := s.requireUniqueSlug(ctx, product); err != nil {
		return nil, err
	}
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	return s.view(ctx, product.ID)
}

// Update replaces every editable field of a product
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req ProductRequest) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.CollectionID != product.CollectionID {
		if err := s.requireCollection(ctx, req.CollectionID); err != nil {
			return nil, err
		}
	}
	if err := product.Update(req.toInput()); err != nil {
		return nil, err
	}
	if err := s.requireUniqueSlug(ctx, product); err != nil {
		return nil, err
	}
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	return s.view(ctx, id)
}

// UpdateUnitPrice changes only the unit price
func (s *ProductService) UpdateUnitPrice(ctx context.Context, id uuid.UUID, req UpdateUnitPriceRequest) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := product.SetUnitPrice(req.UnitPrice); err != nil {
		return nil, err
	}
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	return s.view(ctx, id)
}

// ClearInventory sets the inventory of the selected products to zero
func (s *ProductService) ClearInventory(ctx context.Context, req ClearInventoryRequest) (*ClearInventoryResponse, error) {
	updated, err := s.products.ClearInventory(ctx, req.IDs)
	if err != nil {
		return nil, err
	}
	return &ClearInventoryResponse{Updated: updated, Message: clearInventoryMessage(updated)}, nil
}

func (s *ProductService) view(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	v, err := s.products.FindViewByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(*v, s.taxRate)
	return &resp, nil
}

func (s *ProductService) requireCollection(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return nil
	}
	if _, err := s.collections.FindByID(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_COLLECTION", "Collection does not exist")
		}
		return err
	}
	return nil
}

func (s *ProductService) requireUniqueSlug(ctx context.Context, p *catalog.Product) error {
	taken, err := s.products.ExistsBySlug(ctx, p.Slug, p.ID)
	if err != nil {
		return err
	}
	if taken {
		return errSlugTaken
	}
	return nil
}
