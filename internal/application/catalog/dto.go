package catalog

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// ProductRequest creates or fully replaces a product
type ProductRequest struct {
	Title        string          `json:"title" binding:"required,min=1,max=255"`
	Slug         string          `json:"slug" binding:"omitempty,max=255,slug"`
	Description  string          `json:"description"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Inventory    int             `json:"inventory" binding:"gte=0"`
	CollectionID uuid.UUID       `json:"collection_id" binding:"required"`
}

func (r ProductRequest) toInput() catalog.ProductInput {
	return catalog.ProductInput{
		Title:        r.Title,
		Slug:         r.Slug,
		Description:  r.Description,
		UnitPrice:    r.UnitPrice,
		Inventory:    r.Inventory,
		CollectionID: r.CollectionID,
	}
}

// UpdateUnitPriceRequest is the list-editable partial update of a product
type UpdateUnitPriceRequest struct {
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// ClearInventoryRequest selects products for the clear_inventory bulk action
type ClearInventoryRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required,min=1,max=500"`
}

// ClearInventoryResponse reports the bulk action result
type ClearInventoryResponse struct {
	Updated int64  `json:"updated"`
	Message string `json:"message"`
}

// ProductListFilter is the query string of the product list
type ProductListFilter struct {
	Search       string     `form:"search"`
	CollectionID *uuid.UUID `form:"collection_id"`
	LowInventory bool       `form:"low_inventory"`
	UpdatedSince *time.Time `form:"updated_since" time_format:"2006-01-02T15:04:05Z07:00"`
	Page         int        `form:"page" binding:"omitempty,min=1"`
	PageSize     int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy      string     `form:"order_by" binding:"omitempty,oneof=title unit_price last_update"`
	OrderDir     string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ProductResponse is a product with its derived fields
type ProductResponse struct {
	ID              uuid.UUID       `json:"id"`
	Title           string          `json:"title"`
	Slug            string          `json:"slug"`
	Description     string          `json:"description"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	PriceWithTax    decimal.Decimal `json:"price_with_tax"`
	Inventory       int             `json:"inventory"`
	InventoryStatus string          `json:"inventory_status"`
	LastUpdate      time.Time       `json:"last_update"`
	CollectionID    uuid.UUID       `json:"collection_id"`
	CollectionTitle string          `json:"collection_title,omitempty"`
}

// ToProductResponse converts a product view, pricing tax at taxRate
func ToProductResponse(v catalog.ProductView, taxRate decimal.Decimal) ProductResponse {
	return ProductResponse{
		ID:              v.ID,
		Title:           v.Title,
		Slug:            v.Slug,
		Description:     v.Description,
		UnitPrice:       v.UnitPrice,
		PriceWithTax:    v.PriceWithTax(taxRate),
		Inventory:       v.Inventory,
		InventoryStatus: string(v.InventoryStatus()),
		LastUpdate:      v.LastUpdate,
		CollectionID:    v.CollectionID,
		CollectionTitle: v.CollectionTitle,
	}
}

// CollectionRequest creates or updates a collection
type CollectionRequest struct {
	Title             string     `json:"title" binding:"required,min=1,max=255"`
	FeaturedProductID *uuid.UUID `json:"featured_product_id"`
}

// CollectionListFilter is the query string of the collection list
type CollectionListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by" binding:"omitempty,oneof=title products_count"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CollectionResponse is a collection annotated with its product count
type CollectionResponse struct {
	ID                uuid.UUID  `json:"id"`
	Title             string     `json:"title"`
	FeaturedProductID *uuid.UUID `json:"featured_product_id"`
	ProductsCount     int64      `json:"products_count"`
}

// ToCollectionResponse converts a collection view
func ToCollectionResponse(v catalog.CollectionView) CollectionResponse {
	return CollectionResponse{
		ID:                v.ID,
		Title:             v.Title,
		FeaturedProductID: v.FeaturedProductID,
		ProductsCount:     v.ProductsCount,
	}
}

// ReviewRequest creates a review
type ReviewRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=255"`
	Description string `json:"description" binding:"required"`
}

// ReviewResponse is a product review
type ReviewResponse struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
}

// ToReviewResponse converts a review
func ToReviewResponse(r catalog.Review) ReviewResponse {
	return ReviewResponse{
		ID:          r.ID,
		ProductID:   r.ProductID,
		Name:        r.Name,
		Description: r.Description,
		Date:        r.Date.Format(time.DateOnly),
	}
}

// ImageUploadRequest asks for an upload URL for a new product image
type ImageUploadRequest struct {
	FileName    string `json:"file_name" binding:"required,min=1,max=255"`
	ContentType string `json:"content_type" binding:"required"`
}

// ImageResponse is product image metadata with a download URL
type ImageResponse struct {
	ID          uuid.UUID     `json:"id"`
	ProductID   uuid.UUID     `json:"product_id"`
	FileName    string        `json:"file_name"`
	ContentType string        `json:"content_type"`
	Download    *PresignedURL `json:"download,omitempty"`
}

// ImageUploadResponse pairs the created image with the URL to PUT its bytes to
type ImageUploadResponse struct {
	Image  ImageResponse `json:"image"`
	Upload PresignedURL  `json:"upload"`
}

func toImageResponse(img catalog.ProductImage) ImageResponse {
	return ImageResponse{
		ID:          img.ID,
		ProductID:   img.ProductID,
		FileName:    img.FileName,
		ContentType: img.ContentType,
	}
}

func clearInventoryMessage(updated int64) string {
	return fmt.Sprintf("%d products were successfully updated.", updated)
}

func pageRequest(page, pageSize int, orderBy, orderDir string) shared.PageRequest {
	return shared.PageRequest{Page: page, PageSize: pageSize, OrderBy: orderBy, OrderDir: orderDir}
}
