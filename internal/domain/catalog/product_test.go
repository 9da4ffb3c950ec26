package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProductInput() ProductInput {
	return ProductInput{
		Title:        "Coffee Beans - Dark Roast",
		Description:  "Whole beans",
		UnitPrice:    decimal.RequireFromString("12.50"),
		Inventory:    40,
		CollectionID: uuid.New(),
	}
}

func TestNewProduct(t *testing.T) {
	t.Run("prepopulates slug from title", func(t *testing.T) {
		p, err := NewProduct(validProductInput())
		require.NoError(t, err)
		assert.Equal(t, "coffee-beans-dark-roast", p.Slug)
		assert.False(t, p.LastUpdate.IsZero())
		require.Len(t, p.GetDomainEvents(), 1)
		assert.Equal(t, EventTypeProductCreated, p.GetDomainEvents()[0].EventType())
	})

	t.Run("keeps explicit slug", func(t *testing.T) {
		in := validProductInput()
		in.Slug = "dark_roast"
		p, err := NewProduct(in)
		require.NoError(t, err)
		assert.Equal(t, "dark_roast", p.Slug)
	})

	tests := []struct {
		name   string
		mutate func(*ProductInput)
		code   string
	}{
		{"empty title", func(in *ProductInput) { in.Title = "  " }, "INVALID_TITLE"},
		{"invalid slug", func(in *ProductInput) { in.Slug = "Not A Slug" }, "INVALID_SLUG"},
		{"price below one", func(in *ProductInput) { in.UnitPrice = decimal.RequireFromString("0.99") }, "INVALID_PRICE"},
		{"price too large", func(in *ProductInput) { in.UnitPrice = decimal.NewFromInt(10000) }, "INVALID_PRICE"},
		{"price with three decimals", func(in *ProductInput) { in.UnitPrice = decimal.RequireFromString("1.005") }, "INVALID_PRICE"},
		{"negative inventory", func(in *ProductInput) { in.Inventory = -1 }, "INVALID_INVENTORY"},
		{"missing collection", func(in *ProductInput) { in.CollectionID = uuid.Nil }, "INVALID_COLLECTION"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validProductInput()
			tt.mutate(&in)
			_, err := NewProduct(in)
			var de *shared.DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.code, de.Code)
		})
	}
}

func TestProduct_InventoryStatus(t *testing.T) {
	p, err := NewProduct(validProductInput())
	require.NoError(t, err)

	p.Inventory = 9
	assert.Equal(t, InventoryStatusLow, p.InventoryStatus())
	p.Inventory = 10
	assert.Equal(t, InventoryStatusOK, p.InventoryStatus())
}

func TestProduct_PriceWithTax(t *testing.T) {
	p, err := NewProduct(validProductInput())
	require.NoError(t, err)

	got := p.PriceWithTax(decimal.RequireFromString("0.1"))
	assert.True(t, decimal.RequireFromString("13.75").Equal(got), got.String())
}

func TestProduct_SetUnitPrice(t *testing.T) {
	p, err := NewProduct(validProductInput())
	require.NoError(t, err)
	p.ClearDomainEvents()

	require.NoError(t, p.SetUnitPrice(decimal.NewFromInt(20)))
	assert.Equal(t, 2, p.GetVersion())
	assert.Len(t, p.GetDomainEvents(), 1)

	assert.Error(t, p.SetUnitPrice(decimal.Zero))
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello World":        "hello-world",
		"  Crème Brûlée  ":   "creme-brulee",
		"Tea & Biscuits!":    "tea-biscuits",
		"multi---dash -- ok": "multi-dash-ok",
		"under_score kept":   "under_score-kept",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestCheckDeletable(t *testing.T) {
	assert.NoError(t, CheckProductDeletable(0))
	err := CheckProductDeletable(1)
	assert.True(t, shared.IsDeletionRejected(err))
	assert.Equal(t, "Product cannot be delete because it is associated with order item", err.Error())

	assert.NoError(t, CheckCollectionDeletable(0))
	err = CheckCollectionDeletable(3)
	assert.True(t, shared.IsDeletionRejected(err))
	assert.Equal(t, "Collection cannot be deleted because one or more products are associated with it.", err.Error())
}

func TestNewCollection(t *testing.T) {
	c, err := NewCollection(" Beverages ")
	require.NoError(t, err)
	assert.Equal(t, "Beverages", c.Title)
	assert.Len(t, c.GetDomainEvents(), 1)

	_, err = NewCollection("")
	assert.Error(t, err)
}

func TestNewProductImage(t *testing.T) {
	productID := uuid.New()
	img, err := NewProductImage(productID, "Front.JPG", "image/jpeg")
	require.NoError(t, err)
	assert.Contains(t, img.StorageKey, "products/"+productID.String()+"/")
	assert.Contains(t, img.StorageKey, ".jpg")

	_, err = NewProductImage(productID, "doc.pdf", "application/pdf")
	assert.Error(t, err)
}
