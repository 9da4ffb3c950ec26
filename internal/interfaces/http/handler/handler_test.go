package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/application/admin"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	customerapp "github.com/storefront/backend/internal/application/customer"
	orderingapp "github.com/storefront/backend/internal/application/ordering"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// storeFixture wires the real catalog, customer and ordering services over an
// in-memory sqlite database.
type storeFixture struct {
	products    *catalogapp.ProductService
	collections *catalogapp.CollectionService
	customers   *customerapp.Service
	orders      *orderingapp.OrderService
	guard       *catalogapp.DeletionGuard
	admin       *admin.Service
}

func newStoreFixture(t *testing.T) *storeFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.AllModels()...))

	productRepo := persistence.NewGormProductRepository(db)
	collectionRepo := persistence.NewGormCollectionRepository(db)
	customerRepo := persistence.NewGormCustomerRepository(db)
	orderRepo := persistence.NewGormOrderRepository(db)
	cartRepo := persistence.NewGormCartRepository(db)
	log := zap.NewNop()

	f := &storeFixture{
		products:    catalogapp.NewProductService(productRepo, collectionRepo, decimal.RequireFromString("0.1")),
		collections: catalogapp.NewCollectionService(collectionRepo, productRepo),
		customers:   customerapp.NewService(customerRepo),
		orders:      orderingapp.NewOrderService(orderRepo, cartRepo, log),
		guard:       catalogapp.NewDeletionGuard(productRepo, collectionRepo, log),
	}
	f.admin = admin.NewService(f.products, f.collections, f.customers, f.orders, customerRepo, log)
	return f
}

func (f *storeFixture) collection(t *testing.T, title string) uuid.UUID {
	t.Helper()
	c, err := f.collections.Create(context.Background(), catalogapp.CollectionRequest{Title: title})
	require.NoError(t, err)
	return c.ID
}

func (f *storeFixture) product(t *testing.T, collectionID uuid.UUID, title string) uuid.UUID {
	t.Helper()
	p, err := f.products.Create(context.Background(), catalogapp.ProductRequest{
		Title:        title,
		UnitPrice:    decimal.RequireFromString("10.00"),
		Inventory:    5,
		CollectionID: collectionID,
	})
	require.NoError(t, err)
	return p.ID
}

func (f *storeFixture) order(t *testing.T, productID uuid.UUID) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	cust, err := f.customers.Create(ctx, customerapp.CustomerRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     uuid.NewString() + "@example.com",
	})
	require.NoError(t, err)
	o, err := f.orders.Place(ctx, orderingapp.PlaceOrderRequest{
		CustomerID: cust.ID,
		Items:      []orderingapp.OrderLineRequest{{ProductID: productID, Quantity: 1}},
	})
	require.NoError(t, err)
	return o.ID
}

func (f *storeFixture) router(deleteRejectedStatus int) *gin.Engine {
	products := NewProductHandler(f.products, f.guard, deleteRejectedStatus)
	collections := NewCollectionHandler(f.collections, f.guard, deleteRejectedStatus)
	adminHandler := NewAdminHandler(f.admin)

	r := gin.New()
	store := r.Group("/store")
	store.GET("/products", products.List)
	store.GET("/products/:product_id", products.Get)
	store.POST("/products", products.Create)
	store.PUT("/products/:product_id", products.Update)
	store.PATCH("/products/:product_id", products.UpdateUnitPrice)
	store.DELETE("/products/:product_id", products.Delete)
	store.GET("/collections", collections.List)
	store.GET("/collections/:id", collections.Get)
	store.POST("/collections", collections.Create)
	store.DELETE("/collections/:id", collections.Delete)

	r.GET("/admin", adminHandler.Entities)
	r.GET("/admin/:entity", adminHandler.Changelist)
	r.GET("/admin/:entity/config", adminHandler.Config)
	r.POST("/admin/products/actions/clear_inventory", adminHandler.ClearInventory)
	return r
}

func doRequest(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta *struct {
		Total    int64 `json:"total"`
		Page     int   `json:"page"`
		PageSize int   `json:"page_size"`
	} `json:"meta"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}
