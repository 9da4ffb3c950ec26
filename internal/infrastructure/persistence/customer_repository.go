package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

const customerViewColumns = "customers.*, " +
	"(SELECT COUNT(*) FROM orders WHERE orders.customer_id = customers.id) AS orders_count"

var errEmailTaken = shared.NewDomainError(shared.CodeAlreadyExists, "A customer with this email already exists")

// GormCustomerRepository implements customer.Repository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by its ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	var model models.CustomerModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindViews lists customers matching q with their order counts
func (r *GormCustomerRepository) FindViews(ctx context.Context, q customer.Query) ([]customer.CustomerView, int64, error) {
	var total int64
	if err := r.applyQuery(r.db.WithContext(ctx).Model(&models.CustomerModel{}), q).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.CustomerViewRow
	query := r.applyQuery(r.db.WithContext(ctx).Model(&models.CustomerModel{}).Select(customerViewColumns), q).
		Order(orderClause("customers", q.OrderBy, q.OrderDir, CustomerSortFields, "first_name")).
		Order("customers.last_name").
		Order("customers.id")
	if err := paginate(query, q.PageRequest).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	views := make([]customer.CustomerView, len(rows))
	for i := range rows {
		views[i] = rows[i].ToDomain()
	}
	return views, total, nil
}

func (r *GormCustomerRepository) applyQuery(db *gorm.DB, q customer.Query) *gorm.DB {
	if q.Search != "" {
		pattern := likePrefix(q.Search)
		db = db.Where("(LOWER(customers.first_name) LIKE ?"+likeEscape+" OR LOWER(customers.last_name) LIKE ?"+likeEscape+")", pattern, pattern)
	}
	if q.Membership != "" {
		db = db.Where("customers.membership = ?", q.Membership)
	}
	return db
}

// ExistsByEmail checks whether another customer already uses email
func (r *GormCustomerRepository) ExistsByEmail(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.CustomerModel{}).
		Where("LOWER(email) = ? AND id <> ?", strings.ToLower(email), excludeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a customer
func (r *GormCustomerRepository) Save(ctx context.Context, c *customer.Customer) error {
	if err := r.db.WithContext(ctx).Save(models.CustomerModelFromDomain(c)).Error; err != nil {
		if isUniqueViolation(err) {
			return errEmailTaken
		}
		return err
	}
	return nil
}

var _ customer.Repository = (*GormCustomerRepository)(nil)
