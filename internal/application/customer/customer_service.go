// Package customer implements the customer use cases.
package customer

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/shared"
)

var errEmailTaken = shared.NewDomainError(shared.CodeAlreadyExists, "Customer with this email already exists")

// Service handles customer operations
type Service struct {
	customers customer.Repository
	limits    shared.PageLimits
}

// NewService creates a customer Service
func NewService(customers customer.Repository) *Service {
	return &Service{customers: customers, limits: shared.DefaultPageLimits}
}

// SetPageLimits overrides the default list page sizes
func (s *Service) SetPageLimits(l shared.PageLimits) {
	s.limits = l
}

// List returns a page of customers ordered by name unless another order is requested
func (s *Service) List(ctx context.Context, filter ListFilter) (shared.Paginated[CustomerResponse], error) {
	q := customer.Query{
		PageRequest: s.limits.Apply(shared.PageRequest{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  filter.OrderBy,
			OrderDir: filter.OrderDir,
		}),
		Search:     filter.Search,
		Membership: customer.Membership(filter.Membership),
	}
	views, total, err := s.customers.FindViews(ctx, q)
	if err != nil {
		return shared.Paginated[CustomerResponse]{}, err
	}
	items := make([]CustomerResponse, 0, len(views))
	for _, v := range views {
		items = append(items, ToCustomerViewResponse(v))
	}
	return shared.NewPaginated(items, total, q.Page, q.PageSize), nil
}

// Get returns one customer
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	c, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(c)
	return &resp, nil
}

// Create registers a customer. Email addresses are unique.
func (s *Service) Create(ctx context.Context, req CustomerRequest) (*CustomerResponse, error) {
	c, err := customer.NewCustomer(req.toInput())
	if err != nil {
		return nil, err
	}
	if err := s.requireUniqueEmail(ctx, c); err != nil {
		return nil, err
	}
	if err := s.customers.Save(ctx, c); err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(c)
	return &resp, nil
}

// Update replaces the customer's fields
func (s *Service) Update(ctx context.Context, id uuid.UUID, req CustomerRequest) (*CustomerResponse, error) {
	c, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.Update(req.toInput()); err != nil {
		return nil, err
	}
	if err := s.requireUniqueEmail(ctx, c); err != nil {
		return nil, err
	}
	if err := s.customers.Save(ctx, c); err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(c)
	return &resp, nil
}

// UpdateMembership changes only the membership tier
func (s *Service) UpdateMembership(ctx context.Context, id uuid.UUID, req UpdateMembershipRequest) (*CustomerResponse, error) {
	c, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.SetMembership(customer.Membership(req.Membership)); err != nil {
		return nil, err
	}
	if err := s.customers.Save(ctx, c); err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(c)
	return &resp, nil
}

func (s *Service) requireUniqueEmail(ctx context.Context, c *customer.Customer) error {
	taken, err := s.customers.ExistsByEmail(ctx, c.Email, c.ID)
	if err != nil {
		return err
	}
	if taken {
		return errEmailTaken
	}
	return nil
}
