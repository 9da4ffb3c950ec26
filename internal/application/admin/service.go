package admin

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	customerapp "github.com/storefront/backend/internal/application/customer"
	orderingapp "github.com/storefront/backend/internal/application/ordering"
	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ProductRow is a product changelist row
type ProductRow struct {
	ID              uuid.UUID       `json:"id"`
	Title           string          `json:"title"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	InventoryStatus string          `json:"inventory_status"`
	CollectionTitle string          `json:"collection_title"`
}

// CollectionRow is a collection changelist row
type CollectionRow struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	ProductsCount int64     `json:"products_count"`
}

// CustomerRow is a customer changelist row
type CustomerRow struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Membership  string    `json:"membership"`
	OrdersCount int64     `json:"orders_count"`
}

// OrderRow is an order changelist row
type OrderRow struct {
	ID       uuid.UUID `json:"id"`
	PlacedAt time.Time `json:"placed_at"`
	Customer string    `json:"customer"`
}

// Changelist is one page of an entity's changelist with its config
type Changelist[T any] struct {
	Config EntityConfig `json:"config"`
	shared.Paginated[T]
}

// Service builds changelists and runs admin actions on top of the store services
type Service struct {
	products     *catalogapp.ProductService
	collections  *catalogapp.CollectionService
	customers    *customerapp.Service
	orders       *orderingapp.OrderService
	customerRepo customer.Repository
	logger       *zap.Logger
}

// NewService creates an admin Service
func NewService(
	products *catalogapp.ProductService,
	collections *catalogapp.CollectionService,
	customers *customerapp.Service,
	orders *orderingapp.OrderService,
	customerRepo customer.Repository,
	logger *zap.Logger,
) *Service {
	return &Service{
		products:     products,
		collections:  collections,
		customers:    customers,
		orders:       orders,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// Products returns the product changelist
func (s *Service) Products(ctx context.Context, filter catalogapp.ProductListFilter) (*Changelist[ProductRow], error) {
	page, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	rows := make([]ProductRow, 0, len(page.Items))
	for _, p := range page.Items {
		rows = append(rows, ProductRow{
			ID:              p.ID,
			Title:           p.Title,
			UnitPrice:       p.UnitPrice,
			InventoryStatus: p.InventoryStatus,
			CollectionTitle: p.CollectionTitle,
		})
	}
	return changelist(EntityProducts, rows, page.Total, page.Page, page.PageSize), nil
}

// Collections returns the collection changelist
func (s *Service) Collections(ctx context.Context, filter catalogapp.CollectionListFilter) (*Changelist[CollectionRow], error) {
	page, err := s.collections.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	rows := make([]CollectionRow, 0, len(page.Items))
	for _, c := range page.Items {
		rows = append(rows, CollectionRow{ID: c.ID, Title: c.Title, ProductsCount: c.ProductsCount})
	}
	return changelist(EntityCollections, rows, page.Total, page.Page, page.PageSize), nil
}

// Customers returns the customer changelist, ordered by first then last name by default
func (s *Service) Customers(ctx context.Context, filter customerapp.ListFilter) (*Changelist[CustomerRow], error) {
	page, err := s.customers.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	rows := make([]CustomerRow, 0, len(page.Items))
	for _, c := range page.Items {
		row := CustomerRow{ID: c.ID, FirstName: c.FirstName, LastName: c.LastName, Membership: c.Membership}
		if c.OrdersCount != nil {
			row.OrdersCount = *c.OrdersCount
		}
		rows = append(rows, row)
	}
	return changelist(EntityCustomers, rows, page.Total, page.Page, page.PageSize), nil
}

// Orders returns the order changelist, newest first
func (s *Service) Orders(ctx context.Context, filter orderingapp.OrderListFilter) (*Changelist[OrderRow], error) {
	page, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string)
	rows := make([]OrderRow, 0, len(page.Items))
	for _, o := range page.Items {
		name, ok := names[o.CustomerID]
		if !ok {
			name, err = s.customerName(ctx, o.CustomerID)
			if err != nil {
				return nil, err
			}
			names[o.CustomerID] = name
		}
		rows = append(rows, OrderRow{ID: o.ID, PlacedAt: o.PlacedAt, Customer: name})
	}
	return changelist(EntityOrders, rows, page.Total, page.Page, page.PageSize), nil
}

func (s *Service) customerName(ctx context.Context, id uuid.UUID) (string, error) {
	c, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return id.String(), nil
		}
		return "", err
	}
	return c.FullName(), nil
}

// ClearInventory runs the clear_inventory action on the selected products
func (s *Service) ClearInventory(ctx context.Context, req catalogapp.ClearInventoryRequest) (*catalogapp.ClearInventoryResponse, error) {
	result, err := s.products.ClearInventory(ctx, req)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Admin action executed",
		zap.String("action", ActionClearInventory),
		zap.Int("selected", len(req.IDs)),
		zap.Int64("updated", result.Updated),
	)
	return result, nil
}

// EditProduct applies the list-editable product fields
func (s *Service) EditProduct(ctx context.Context, id uuid.UUID, req catalogapp.UpdateUnitPriceRequest) (*ProductRow, error) {
	p, err := s.products.UpdateUnitPrice(ctx, id, req)
	if err != nil {
		return nil, err
	}
	return &ProductRow{
		ID:              p.ID,
		Title:           p.Title,
		UnitPrice:       p.UnitPrice,
		InventoryStatus: p.InventoryStatus,
		CollectionTitle: p.CollectionTitle,
	}, nil
}

// EditCustomer applies the list-editable customer fields
func (s *Service) EditCustomer(ctx context.Context, id uuid.UUID, req customerapp.UpdateMembershipRequest) (*customerapp.CustomerResponse, error) {
	return s.customers.UpdateMembership(ctx, id, req)
}

func changelist[T any](entity string, rows []T, total int64, page, pageSize int) *Changelist[T] {
	return &Changelist[T]{
		Config:    entityConfigs[entity],
		Paginated: shared.NewPaginated(rows, total, page, pageSize),
	}
}
