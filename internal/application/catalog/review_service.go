package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// ReviewService manages the reviews nested under a product
type ReviewService struct {
	reviews  catalog.ReviewRepository
	products catalog.ProductRepository
	limits   shared.PageLimits
}

// NewReviewService creates a ReviewService
func NewReviewService(reviews catalog.ReviewRepository, products catalog.ProductRepository) *ReviewService {
	return &ReviewService{reviews: reviews, products: products, limits: shared.DefaultPageLimits}
}

// List returns a page of a product's reviews, newest first
func (s *ReviewService) List(ctx context.Context, productID uuid.UUID, page, pageSize int) (shared.Paginated[ReviewResponse], error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return shared.Paginated[ReviewResponse]{}, err
	}
	q := catalog.ReviewQuery{
		PageRequest: s.limits.Apply(pageRequest(page, pageSize, "date", shared.SortDesc)),
		ProductID:   productID,
	}
	reviews, total, err := s.reviews.FindByProduct(ctx, q)
	if err != nil {
		return shared.Paginated[ReviewResponse]{}, err
	}
	items := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		items = append(items, ToReviewResponse(r))
	}
	return shared.NewPaginated(items, total, q.Page, q.PageSize), nil
}

// Get returns one review of the product
func (s *ReviewService) Get(ctx context.Context, productID, id uuid.UUID) (*ReviewResponse, error) {
	r, err := s.reviews.FindByID(ctx, productID, id)
	if err != nil {
		return nil, err
	}
	resp := ToReviewResponse(*r)
	return &resp, nil
}

// Create adds a review to the product
func (s *ReviewService) Create(ctx context.Context, productID uuid.UUID, req ReviewRequest) (*ReviewResponse, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	review, err := catalog.NewReview(productID, req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.reviews.Save(ctx, review); err != nil {
		return nil, err
	}
	resp := ToReviewResponse(*review)
	return &resp, nil
}

// Delete removes a review
func (s *ReviewService) Delete(ctx context.Context, productID, id uuid.UUID) error {
	return s.reviews.Delete(ctx, productID, id)
}
