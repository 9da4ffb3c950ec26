package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
)

// CollectionModel is the persistence model for the Collection aggregate
type CollectionModel struct {
	AggregateModel
	Title             string     `gorm:"type:varchar(255);not null"`
	FeaturedProductID *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (CollectionModel) TableName() string {
	return "collections"
}

// ToDomain converts the persistence model to a domain Collection
func (m *CollectionModel) ToDomain() *catalog.Collection {
	return &catalog.Collection{
		BaseAggregateRoot: m.Root(),
		Title:             m.Title,
		FeaturedProductID: m.FeaturedProductID,
	}
}

// FromDomain populates the persistence model from a domain Collection
func (m *CollectionModel) FromDomain(c *catalog.Collection) {
	m.SetRoot(c.BaseAggregateRoot)
	m.Title = c.Title
	m.FeaturedProductID = c.FeaturedProductID
}

// CollectionModelFromDomain creates a new persistence model from a domain Collection
func CollectionModelFromDomain(c *catalog.Collection) *CollectionModel {
	m := &CollectionModel{}
	m.FromDomain(c)
	return m
}

// CollectionViewRow is the scan target for collection list queries
type CollectionViewRow struct {
	CollectionModel
	ProductsCount int64
}

// ToDomain converts the row to a domain CollectionView
func (r *CollectionViewRow) ToDomain() catalog.CollectionView {
	return catalog.CollectionView{
		Collection:    *r.CollectionModel.ToDomain(),
		ProductsCount: r.ProductsCount,
	}
}

// ProductModel is the persistence model for the Product aggregate
type ProductModel struct {
	AggregateModel
	Title        string          `gorm:"type:varchar(255);not null"`
	Slug         string          `gorm:"type:varchar(255);not null;index"`
	Description  string          `gorm:"type:text"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(6,2);not null"`
	Inventory    int             `gorm:"not null;default:0"`
	LastUpdate   time.Time       `gorm:"not null"`
	CollectionID uuid.UUID       `gorm:"type:uuid;not null;index"`

	Collection *CollectionModel `gorm:"foreignKey:CollectionID;constraint:OnDelete:RESTRICT"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseAggregateRoot: m.Root(),
		Title:             m.Title,
		Slug:              m.Slug,
		Description:       m.Description,
		UnitPrice:         m.UnitPrice,
		Inventory:         m.Inventory,
		LastUpdate:        m.LastUpdate,
		CollectionID:      m.CollectionID,
	}
}

// FromDomain populates the persistence model from a domain Product
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.SetRoot(p.BaseAggregateRoot)
	m.Title = p.Title
	m.Slug = p.Slug
	m.Description = p.Description
	m.UnitPrice = p.UnitPrice
	m.Inventory = p.Inventory
	m.LastUpdate = p.LastUpdate
	m.CollectionID = p.CollectionID
}

// ProductModelFromDomain creates a new persistence model from a domain Product
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

// ProductViewRow is the scan target for product queries joined with their collection
type ProductViewRow struct {
	ProductModel
	CollectionTitle string
}

// ToDomain converts the row to a domain ProductView
func (r *ProductViewRow) ToDomain() catalog.ProductView {
	return catalog.ProductView{
		Product:         *r.ProductModel.ToDomain(),
		CollectionTitle: r.CollectionTitle,
	}
}

// ReviewModel is the persistence model for product reviews
type ReviewModel struct {
	BaseModel
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text;not null"`
	Date        time.Time `gorm:"type:date;not null"`

	Product *ProductModel `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ReviewModel) TableName() string {
	return "reviews"
}

// ToDomain converts the persistence model to a domain Review
func (m *ReviewModel) ToDomain() *catalog.Review {
	return &catalog.Review{
		BaseEntity:  m.Entity(),
		ProductID:   m.ProductID,
		Name:        m.Name,
		Description: m.Description,
		Date:        m.Date,
	}
}

// ReviewModelFromDomain creates a new persistence model from a domain Review
func ReviewModelFromDomain(r *catalog.Review) *ReviewModel {
	m := &ReviewModel{
		ProductID:   r.ProductID,
		Name:        r.Name,
		Description: r.Description,
		Date:        r.Date,
	}
	m.SetEntity(r.BaseEntity)
	return m
}

// ProductImageModel is the persistence model for product image metadata
type ProductImageModel struct {
	BaseModel
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index"`
	StorageKey  string    `gorm:"type:varchar(512);not null;uniqueIndex"`
	FileName    string    `gorm:"type:varchar(255);not null"`
	ContentType string    `gorm:"type:varchar(100);not null"`

	Product *ProductModel `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ProductImageModel) TableName() string {
	return "product_images"
}

// ToDomain converts the persistence model to a domain ProductImage
func (m *ProductImageModel) ToDomain() *catalog.ProductImage {
	return &catalog.ProductImage{
		BaseEntity:  m.Entity(),
		ProductID:   m.ProductID,
		StorageKey:  m.StorageKey,
		FileName:    m.FileName,
		ContentType: m.ContentType,
	}
}

// ProductImageModelFromDomain creates a new persistence model from a domain ProductImage
func ProductImageModelFromDomain(img *catalog.ProductImage) *ProductImageModel {
	m := &ProductImageModel{
		ProductID:   img.ProductID,
		StorageKey:  img.StorageKey,
		FileName:    img.FileName,
		ContentType: img.ContentType,
	}
	m.SetEntity(img.BaseEntity)
	return m
}
