package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/application/admin"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	customerapp "github.com/storefront/backend/internal/application/customer"
	orderingapp "github.com/storefront/backend/internal/application/ordering"
)

// AdminHandler serves the staff changelists and admin actions
type AdminHandler struct {
	BaseHandler
	adminService *admin.Service
}

// NewAdminHandler creates an AdminHandler
func NewAdminHandler(adminService *admin.Service) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// Entities godoc
// @ID           listAdminEntities
// @Summary      List the entities that have a changelist
// @Tags         admin
// @Produce      json
// @Success      200 {object} APIResponse[[]string]
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin [get]
func (h *AdminHandler) Entities(c *gin.Context) {
	h.Success(c, admin.Entities())
}

// Config godoc
// @ID           getAdminEntityConfig
// @Summary      Get the changelist config of an entity
// @Tags         admin
// @Produce      json
// @Param        entity path string true "Entity" Enums(products, collections, customers, orders)
// @Success      200 {object} APIResponse[admin.EntityConfig]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/{entity}/config [get]
func (h *AdminHandler) Config(c *gin.Context) {
	cfg, err := admin.ConfigFor(c.Param("entity"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cfg)
}

// Changelist godoc
// @ID           getAdminChangelist
// @Summary      Get one page of an entity's changelist
// @Description  Rows carry only the columns named by the entity's list_display. The query
// @Description  string accepts the same filters as the matching store list.
// @Tags         admin
// @Produce      json
// @Param        entity path string true "Entity" Enums(products, collections, customers, orders)
// @Success      200 {object} APIResponse[admin.Changelist[admin.ProductRow]]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/{entity} [get]
func (h *AdminHandler) Changelist(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		result any
		err    error
	)
	switch entity := c.Param("entity"); entity {
	case admin.EntityProducts:
		var filter catalogapp.ProductListFilter
		if !h.bindQuery(c, &filter) {
			return
		}
		result, err = h.adminService.Products(ctx, filter)
	case admin.EntityCollections:
		var filter catalogapp.CollectionListFilter
		if !h.bindQuery(c, &filter) {
			return
		}
		result, err = h.adminService.Collections(ctx, filter)
	case admin.EntityCustomers:
		var filter customerapp.ListFilter
		if !h.bindQuery(c, &filter) {
			return
		}
		result, err = h.adminService.Customers(ctx, filter)
	case admin.EntityOrders:
		var filter orderingapp.OrderListFilter
		if !h.bindQuery(c, &filter) {
			return
		}
		result, err = h.adminService.Orders(ctx, filter)
	default:
		_, err = admin.ConfigFor(entity)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ClearInventory godoc
// @ID           adminClearInventory
// @Summary      Run the clear_inventory action
// @Description  Sets inventory to 0 on the selected products
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.ClearInventoryRequest true "Selected products"
// @Success      200 {object} APIResponse[catalogapp.ClearInventoryResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/products/actions/clear_inventory [post]
func (h *AdminHandler) ClearInventory(c *gin.Context) {
	var req catalogapp.ClearInventoryRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.adminService.ClearInventory(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// EditProduct godoc
// @ID           adminEditProduct
// @Summary      Edit the list-editable fields of a product
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        request body catalogapp.UpdateUnitPriceRequest true "Unit price"
// @Success      200 {object} APIResponse[admin.ProductRow]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/products/{id} [patch]
func (h *AdminHandler) EditProduct(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req catalogapp.UpdateUnitPriceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	row, err := h.adminService.EditProduct(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, row)
}

// EditCustomer godoc
// @ID           adminEditCustomer
// @Summary      Edit the list-editable fields of a customer
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id path string true "Customer ID" format(uuid)
// @Param        request body customerapp.UpdateMembershipRequest true "Membership"
// @Success      200 {object} APIResponse[customerapp.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/customers/{id} [patch]
func (h *AdminHandler) EditCustomer(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req customerapp.UpdateMembershipRequest
	if !h.bindJSON(c, &req) {
		return
	}

	customer, err := h.adminService.EditCustomer(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}
