package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

const (
	// MaxTitleLength bounds product and collection titles
	MaxTitleLength = 255
	// LowInventoryThreshold is the stock level below which inventory is reported as Low
	LowInventoryThreshold = 10
)

// InventoryStatus is the admin-facing stock indicator
type InventoryStatus string

const (
	InventoryStatusLow InventoryStatus = "Low"
	InventoryStatusOK  InventoryStatus = "OK"
)

var (
	minUnitPrice = decimal.NewFromInt(1)
	maxUnitPrice = decimal.RequireFromString("9999.99")
)

// Product is a sellable catalog item
type Product struct {
	shared.BaseAggregateRoot
	Title        string
	Slug         string
	Description  string
	UnitPrice    decimal.Decimal
	Inventory    int
	LastUpdate   time.Time
	CollectionID uuid.UUID
}

// ProductView is a product joined with its collection title
type ProductView struct {
	Product
	CollectionTitle string
}

// ProductInput holds the writable product fields
type ProductInput struct {
	Title        string
	Slug         string
	Description  string
	UnitPrice    decimal.Decimal
	Inventory    int
	CollectionID uuid.UUID
}

// NewProduct creates a new product. An empty slug is prepopulated from the title.
func NewProduct(in ProductInput) (*Product, error) {
	p := &Product{BaseAggregateRoot: shared.NewBaseAggregateRoot()}
	if err := p.apply(in); err != nil {
		return nil, err
	}
	p.AddDomainEvent(NewProductCreatedEvent(p))
	return p, nil
}

// Update replaces all writable fields
func (p *Product) Update(in ProductInput) error {
	if err := p.apply(in); err != nil {
		return err
	}
	p.IncrementVersion()
	p.AddDomainEvent(NewProductUpdatedEvent(p))
	return nil
}

// SetUnitPrice changes only the price
func (p *Product) SetUnitPrice(price decimal.Decimal) error {
	if err := validateUnitPrice(price); err != nil {
		return err
	}
	p.UnitPrice = price
	p.markUpdated()
	p.IncrementVersion()
	p.AddDomainEvent(NewProductUpdatedEvent(p))
	return nil
}

// InventoryStatus reports Low when stock is under LowInventoryThreshold
func (p *Product) InventoryStatus() InventoryStatus {
	return InventoryStatusFor(p.Inventory)
}

// PriceWithTax returns the unit price with the given tax rate applied, rounded to cents
func (p *Product) PriceWithTax(rate decimal.Decimal) decimal.Decimal {
	return p.UnitPrice.Mul(decimal.NewFromInt(1).Add(rate)).Round(2)
}

// InventoryStatusFor maps a stock level to its status
func InventoryStatusFor(inventory int) InventoryStatus {
	if inventory < LowInventoryThreshold {
		return InventoryStatusLow
	}
	return InventoryStatusOK
}

func (p *Product) apply(in ProductInput) error {
	title := strings.TrimSpace(in.Title)
	if err := validateTitle(title); err != nil {
		return err
	}
	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = Slugify(title)
	}
	if !IsValidSlug(slug) {
		return shared.NewDomainError("INVALID_SLUG", "Slug may only contain lowercase letters, digits, hyphens and underscores")
	}
	if err := validateUnitPrice(in.UnitPrice); err != nil {
		return err
	}
	if in.Inventory < 0 {
		return shared.NewDomainError("INVALID_INVENTORY", "Inventory cannot be negative")
	}
	if in.CollectionID == uuid.Nil {
		return shared.NewDomainError("INVALID_COLLECTION", "Collection is required")
	}

	p.Title = title
	p.Slug = slug
	p.Description = in.Description
	p.UnitPrice = in.UnitPrice
	p.Inventory = in.Inventory
	p.CollectionID = in.CollectionID
	p.markUpdated()
	return nil
}

func (p *Product) markUpdated() {
	p.Touch()
	p.LastUpdate = p.UpdatedAt
}

func validateUnitPrice(price decimal.Decimal) error {
	if price.LessThan(minUnitPrice) {
		return shared.NewDomainError("INVALID_PRICE", "Unit price must be at least 1")
	}
	if price.GreaterThan(maxUnitPrice) {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot exceed 9999.99")
	}
	if !price.Equal(price.Round(2)) {
		return shared.NewDomainError("INVALID_PRICE", "Unit price allows at most 2 decimal places")
	}
	return nil
}
