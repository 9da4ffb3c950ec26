package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductCreateAndGet(t *testing.T) {
	f := newStoreFixture(t)
	collID := f.collection(t, "Beverages")
	r := f.router(0)

	w := doRequest(r, http.MethodPost, "/store/products", map[string]any{
		"title":         "Green Tea",
		"unit_price":    "10.00",
		"inventory":     3,
		"collection_id": collID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID           uuid.UUID       `json:"id"`
		Slug         string          `json:"slug"`
		PriceWithTax decimal.Decimal `json:"price_with_tax"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &created))
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "green-tea", created.Slug)
	assert.True(t, created.PriceWithTax.Equal(decimal.NewFromInt(11)), created.PriceWithTax.String())

	w = doRequest(r, http.MethodGet, "/store/products/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got struct {
		CollectionTitle string `json:"collection_title"`
		InventoryStatus string `json:"inventory_status"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &got))
	assert.Equal(t, "Beverages", got.CollectionTitle)
	assert.Equal(t, "Low", got.InventoryStatus)
}

func TestProductCreateValidation(t *testing.T) {
	f := newStoreFixture(t)
	r := f.router(0)

	tests := []struct {
		name     string
		body     any
		wantCode string
	}{
		{"missing title", map[string]any{"unit_price": "10", "collection_id": uuid.New()}, "VALIDATION_ERROR"},
		{"malformed slug", map[string]any{"title": "x", "slug": "Not A Slug!", "unit_price": "10", "collection_id": uuid.New()}, "VALIDATION_ERROR"},
		{"negative inventory", map[string]any{"title": "x", "unit_price": "10", "inventory": -1, "collection_id": uuid.New()}, "VALIDATION_ERROR"},
		{"unknown collection", map[string]any{"title": "x", "unit_price": "10", "collection_id": uuid.New()}, "INVALID_COLLECTION"},
		{"price below minimum", map[string]any{"title": "x", "unit_price": "0.50", "collection_id": f.collection(t, "C")}, "INVALID_PRICE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, http.MethodPost, "/store/products", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			env := decodeEnvelope(t, w)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
		})
	}
}

func TestProductList(t *testing.T) {
	f := newStoreFixture(t)
	collID := f.collection(t, "Beverages")
	f.product(t, collID, "Tea")
	f.product(t, collID, "Coffee")
	r := f.router(0)

	w := doRequest(r, http.MethodGet, "/store/products?search=tea", nil)
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Meta)
	assert.Equal(t, int64(1), env.Meta.Total)

	w = doRequest(r, http.MethodGet, "/store/products?order_by=price", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductUpdateUnitPrice(t *testing.T) {
	f := newStoreFixture(t)
	id := f.product(t, f.collection(t, "Beverages"), "Tea")
	r := f.router(0)

	w := doRequest(r, http.MethodPatch, "/store/products/"+id.String(), map[string]any{"unit_price": "25.50"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var got struct {
		UnitPrice decimal.Decimal `json:"unit_price"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &got))
	assert.True(t, got.UnitPrice.Equal(decimal.RequireFromString("25.50")), got.UnitPrice.String())
}

func TestAdminChangelist(t *testing.T) {
	f := newStoreFixture(t)
	collID := f.collection(t, "Beverages")
	prodID := f.product(t, collID, "Tea")
	r := f.router(0)

	t.Run("entities", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/admin", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var names []string
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &names))
		assert.Equal(t, []string{"collections", "customers", "orders", "products"}, names)
	})

	t.Run("collections changelist", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/admin/collections", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var got struct {
			Config struct {
				ListDisplay []string `json:"list_display"`
			} `json:"config"`
			Items []struct {
				Title         string `json:"title"`
				ProductsCount int64  `json:"products_count"`
			} `json:"items"`
		}
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &got))
		assert.Equal(t, []string{"title", "products_count"}, got.Config.ListDisplay)
		require.Len(t, got.Items, 1)
		assert.Equal(t, int64(1), got.Items[0].ProductsCount)
	})

	t.Run("config", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/admin/products/config", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var cfg struct {
			ListPerPage int      `json:"list_per_page"`
			Actions     []string `json:"actions"`
		}
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &cfg))
		assert.Equal(t, 10, cfg.ListPerPage)
		assert.Equal(t, []string{"clear_inventory"}, cfg.Actions)
	})

	t.Run("unknown entity", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, doRequest(r, http.MethodGet, "/admin/suppliers", nil).Code)
		assert.Equal(t, http.StatusNotFound, doRequest(r, http.MethodGet, "/admin/suppliers/config", nil).Code)
	})

	t.Run("clear inventory", func(t *testing.T) {
		w := doRequest(r, http.MethodPost, "/admin/products/actions/clear_inventory", map[string]any{
			"ids": []uuid.UUID{prodID},
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var got struct {
			Updated int64 `json:"updated"`
		}
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &got))
		assert.Equal(t, int64(1), got.Updated)
	})
}
