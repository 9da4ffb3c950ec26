package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/ordering"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const cartItemColumns = "cart_items.*, products.title AS product_title, products.unit_price AS unit_price"

var errCartProductMissing = shared.NewDomainError(shared.CodeInvalidInput, "No product with the given ID was found.")

// GormCartRepository implements ordering.CartRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// Create inserts an empty cart
func (r *GormCartRepository) Create(ctx context.Context, cart *ordering.Cart) error {
	return r.db.WithContext(ctx).Create(&models.CartModel{ID: cart.ID, CreatedAt: cart.CreatedAt}).Error
}

// FindByID loads a cart and its items
func (r *GormCartRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Cart, error) {
	var model models.CartModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	var items []models.CartItemModel
	if err := r.itemQuery(r.db.WithContext(ctx)).
		Where("cart_items.cart_id = ?", id).
		Order("products.title, cart_items.id").
		Scan(&items).Error; err != nil {
		return nil, err
	}

	cart := &ordering.Cart{ID: model.ID, CreatedAt: model.CreatedAt, Items: make([]ordering.CartItem, len(items))}
	for i := range items {
		cart.Items[i] = items[i].ToDomain()
	}
	return cart, nil
}

// Delete removes a cart; its items go with it
func (r *GormCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CartModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// AddItem inserts item, or adds its quantity to the line already holding the product
func (r *GormCartRepository) AddItem(ctx context.Context, item *ordering.CartItem) (*ordering.CartItem, error) {
	var saved *ordering.CartItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireRow(tx, &models.CartModel{}, item.CartID, shared.ErrNotFound); err != nil {
			return err
		}
		if err := requireRow(tx, &models.ProductModel{}, item.ProductID, errCartProductMissing); err != nil {
			return err
		}

		model := &models.CartItemModel{
			ID:        item.ID,
			CartID:    item.CartID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity": gorm.Expr("cart_items.quantity + excluded.quantity"),
			}),
		}).Create(model).Error; err != nil {
			return err
		}

		found, err := r.findItem(tx, "cart_items.cart_id = ? AND cart_items.product_id = ?", item.CartID, item.ProductID)
		if err != nil {
			return err
		}
		if err := ordering.ValidateCartQuantity(found.Quantity); err != nil {
			return err
		}
		saved = found
		return nil
	})
	return saved, err
}

// UpdateItemQuantity sets the quantity of a cart line
func (r *GormCartRepository) UpdateItemQuantity(ctx context.Context, cartID, itemID uuid.UUID, quantity int) (*ordering.CartItem, error) {
	if err := ordering.ValidateCartQuantity(quantity); err != nil {
		return nil, err
	}
	result := r.db.WithContext(ctx).Model(&models.CartItemModel{}).
		Where("cart_id = ? AND id = ?", cartID, itemID).
		Update("quantity", quantity)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, shared.ErrNotFound
	}
	return r.findItem(r.db.WithContext(ctx), "cart_items.cart_id = ? AND cart_items.id = ?", cartID, itemID)
}

// RemoveItem deletes a cart line
func (r *GormCartRepository) RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("cart_id = ? AND id = ?", cartID, itemID).
		Delete(&models.CartItemModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormCartRepository) itemQuery(db *gorm.DB) *gorm.DB {
	return db.Model(&models.CartItemModel{}).
		Select(cartItemColumns).
		Joins("JOIN products ON products.id = cart_items.product_id")
}

func (r *GormCartRepository) findItem(db *gorm.DB, cond string, args ...any) (*ordering.CartItem, error) {
	var rows []models.CartItemModel
	if err := r.itemQuery(db).Where(cond, args...).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, shared.ErrNotFound
	}
	item := rows[0].ToDomain()
	return &item, nil
}

// requireRow returns missing unless a row of model with the given id exists
func requireRow(db *gorm.DB, model any, id uuid.UUID, missing error) error {
	var count int64
	if err := db.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return missing
	}
	return nil
}

var _ ordering.CartRepository = (*GormCartRepository)(nil)
