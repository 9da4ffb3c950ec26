package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/ordering"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const orderItemColumns = "order_items.*, products.title AS product_title"

// GormOrderRepository implements ordering.OrderRepository using GORM
type GormOrderRepository struct {
	db          *gorm.DB
	outboxSaver shared.OutboxEventSaver
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// SetOutboxEventSaver sets the outbox event saver for transactional event publishing
func (r *GormOrderRepository) SetOutboxEventSaver(saver shared.OutboxEventSaver) {
	r.outboxSaver = saver
}

// FindByID finds an order with its items
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadItems(r.db.WithContext(ctx), []*models.OrderModel{&model}); err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists orders matching q, newest first unless q says otherwise
func (r *GormOrderRepository) FindAll(ctx context.Context, q ordering.OrderQuery) ([]ordering.Order, int64, error) {
	base := func() *gorm.DB {
		db := r.db.WithContext(ctx).Model(&models.OrderModel{})
		if q.CustomerID != nil {
			db = db.Where("customer_id = ?", *q.CustomerID)
		}
		if q.PaymentStatus != "" {
			db = db.Where("payment_status = ?", q.PaymentStatus)
		}
		return db
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	dir := q.OrderDir
	if q.OrderBy == "" {
		dir = shared.SortDesc
	}
	var rows []models.OrderModel
	query := base().Order(orderClause("orders", q.OrderBy, dir, OrderSortFields, "placed_at")).Order("orders.id")
	if err := paginate(query, q.PageRequest).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	ptrs := make([]*models.OrderModel, len(rows))
	for i := range rows {
		ptrs[i] = &rows[i]
	}
	if err := r.loadItems(r.db.WithContext(ctx), ptrs); err != nil {
		return nil, 0, err
	}

	orders := make([]ordering.Order, len(rows))
	for i := range rows {
		orders[i] = *rows[i].ToDomain()
	}
	return orders, total, nil
}

func (r *GormOrderRepository) loadItems(db *gorm.DB, orders []*models.OrderModel) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(orders))
	byID := make(map[uuid.UUID]*models.OrderModel, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		byID[o.ID] = o
		o.Items = nil
	}

	var items []models.OrderItemModel
	if err := db.Model(&models.OrderItemModel{}).
		Select(orderItemColumns).
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("order_items.order_id IN ?", ids).
		Order("order_items.id").
		Scan(&items).Error; err != nil {
		return err
	}
	for _, item := range items {
		if o, ok := byID[item.OrderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	return nil
}

// Place creates an order in one transaction.
//
// Every referenced product row is locked FOR SHARE before pricing, which blocks
// a concurrent guarded delete of the same product until this transaction ends.
// Rows are locked in id order so two placements never deadlock on each other.
func (r *GormOrderRepository) Place(ctx context.Context, customerID uuid.UUID, lines []ordering.OrderLine, sourceCartID *uuid.UUID) (*ordering.Order, error) {
	merged, err := ordering.MergeLines(lines)
	if err != nil {
		return nil, err
	}

	var order *ordering.Order
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var customers int64
		if err := tx.Model(&models.CustomerModel{}).Where("id = ?", customerID).Count(&customers).Error; err != nil {
			return err
		}
		if customers == 0 {
			return shared.NewDomainError(shared.CodeNotFound, "Customer not found")
		}

		ids := make([]uuid.UUID, len(merged))
		for i, l := range merged {
			ids[i] = l.ProductID
		}
		var products []models.ProductModel
		if err := tx.Clauses(clause.Locking{Strength: "SHARE"}).
			Where("id IN ?", ids).
			Order("id").
			Find(&products).Error; err != nil {
			return err
		}
		priced := make(map[uuid.UUID]ordering.PricedProduct, len(products))
		for _, p := range products {
			priced[p.ID] = ordering.PricedProduct{ID: p.ID, Title: p.Title, UnitPrice: p.UnitPrice}
		}

		o, err := ordering.NewOrder(customerID, merged, priced)
		if err != nil {
			return err
		}
		if err := tx.Create(models.OrderModelFromDomain(o)).Error; err != nil {
			if isForeignKeyViolation(err) {
				return shared.NewDomainError(shared.CodeNotFound, "A product in the order no longer exists")
			}
			return err
		}

		if sourceCartID != nil {
			if err := tx.Delete(&models.CartModel{}, "id = ?", *sourceCartID).Error; err != nil {
				return err
			}
		}

		if err := saveEvents(ctx, r.outboxSaver, tx, o.GetDomainEvents()); err != nil {
			return fmt.Errorf("failed to save events to outbox: %w", err)
		}
		o.ClearDomainEvents()
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// UpdatePaymentStatus persists a payment status change. The stored version must
// be the one the order was loaded with.
func (r *GormOrderRepository) UpdatePaymentStatus(ctx context.Context, order *ordering.Order) error {
	result := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Where("id = ? AND version = ?", order.ID, order.Version-1).
		Updates(map[string]any{
			"payment_status": order.PaymentStatus,
			"version":        order.Version,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

var _ ordering.OrderRepository = (*GormOrderRepository)(nil)
