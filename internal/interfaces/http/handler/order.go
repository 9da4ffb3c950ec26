package handler

import (
	"github.com/gin-gonic/gin"
	orderingapp "github.com/storefront/backend/internal/application/ordering"
)

// OrderHandler handles order endpoints of the store API
type OrderHandler struct {
	BaseHandler
	orderService *orderingapp.OrderService
}

// NewOrderHandler creates an OrderHandler
func NewOrderHandler(orderService *orderingapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// List godoc
// @ID           listOrders
// @Summary      List orders
// @Description  Newest first, optionally filtered by customer and payment status
// @Tags         orders
// @Produce      json
// @Param        customer_id query string false "Customer ID" format(uuid)
// @Param        payment_status query string false "Payment status" Enums(P, C, F)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(10) maximum(100)
// @Success      200 {object} APIResponse[[]orderingapp.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /store/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var filter orderingapp.OrderListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	page, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(&h.BaseHandler, c, page)
}

// Get godoc
// @ID           getOrder
// @Summary      Get an order with its items
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} APIResponse[orderingapp.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /store/orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Place godoc
// @ID           placeOrder
// @Summary      Place an order
// @Description  Places an order from a cart (which is then deleted) or from explicit items
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body orderingapp.PlaceOrderRequest true "Order"
// @Success      201 {object} APIResponse[orderingapp.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /store/orders [post]
func (h *OrderHandler) Place(c *gin.Context) {
	var req orderingapp.PlaceOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.Place(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// UpdatePaymentStatus godoc
// @ID           updateOrderPaymentStatus
// @Summary      Change an order's payment status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Param        request body orderingapp.UpdatePaymentStatusRequest true "Payment status"
// @Success      200 {object} APIResponse[orderingapp.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /store/orders/{id} [patch]
func (h *OrderHandler) UpdatePaymentStatus(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req orderingapp.UpdatePaymentStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}

	order, err := h.orderService.UpdatePaymentStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}
