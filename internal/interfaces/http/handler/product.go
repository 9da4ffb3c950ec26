package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
)

// ProductHandler handles product endpoints of the store API
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
	guard          *catalogapp.DeletionGuard
}

// NewProductHandler creates a ProductHandler. deleteRejectedStatus is the status of a
// refused delete; 0 selects 405.
func NewProductHandler(productService *catalogapp.ProductService, guard *catalogapp.DeletionGuard, deleteRejectedStatus int) *ProductHandler {
	return &ProductHandler{
		BaseHandler:    BaseHandler{deleteRejectedStatus: deleteRejectedStatus},
		productService: productService,
		guard:          guard,
	}
}

// List godoc
// @ID           listProducts
// @Summary      List products
// @Description  Paginated product list with search, collection, low inventory and updated_since filters
// @Tags         products
// @Produce      json
// @Param        search query string false "Title contains"
// @Param        collection_id query string false "Collection ID" format(uuid)
// @Param        low_inventory query bool false "Only products with inventory below 10"
// @Param        updated_since query string false "RFC 3339 timestamp"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(10) maximum(100)
// @Param        order_by query string false "Sort field" Enums(title, unit_price, last_update)
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /store/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var filter catalogapp.ProductListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	page, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(&h.BaseHandler, c, page)
}

// Get godoc
// @ID           getProduct
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        product_id path string true "Product ID" format(uuid)
// @Success      200 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /store/products/{product_id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c, "product_id")
	if !ok {
		return
	}

	product, err := h.productService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Create godoc
// @ID           createProduct
// @Summary      Create a product
// @Description  Creates a product; the slug is derived from the title when empty
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.ProductRequest true "Product"
// @Success      201 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /store/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.ProductRequest
	if !h.bindJSON(c, &req) {
		return
	}

	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// Update godoc
// @ID           updateProduct
// @Summary      Replace a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        product_id path string true "Product ID" format(uuid)
// @Param        request body catalogapp.ProductRequest true "Product"
// @Success      200 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /store/products/{product_id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "product_id")
	if !ok {
		return
	}
	var req catalogapp.ProductRequest
	if !h.bindJSON(c, &req) {
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// UpdateUnitPrice godoc
// @ID           updateProductUnitPrice
// @Summary      Change a product's unit price
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        product_id path string true "Product ID" format(uuid)
// @Param        request body catalogapp.UpdateUnitPriceRequest true "New unit price"
// @Success      200 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /store/products/{product_id} [patch]
func (h *ProductHandler) UpdateUnitPrice(c *gin.Context) {
	id, ok := h.parseID(c, "product_id")
	if !ok {
		return
	}
	var req catalogapp.UpdateUnitPriceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	product, err := h.productService.UpdateUnitPrice(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Delete godoc
// @ID           deleteProduct
// @Summary      Delete a product
// @Description  Deletes a product unless an order item references it. A refused delete
// @Description  answers {"error": message} with 405 (or the configured status).
// @Tags         products
// @Param        product_id path string true "Product ID" format(uuid)
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      405 {object} DeleteRejectedResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /store/products/{product_id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "product_id")
	if !ok {
		return
	}

	if err := h.guard.DeleteProduct(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
