package handler

import (
	"github.com/gin-gonic/gin"
	orderingapp "github.com/storefront/backend/internal/application/ordering"
)

// CartHandler handles anonymous shopping carts
type CartHandler struct {
	BaseHandler
	cartService *orderingapp.CartService
}

// NewCartHandler creates a CartHandler
func NewCartHandler(cartService *orderingapp.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Create godoc
// @ID           createCart
// @Summary      Create an empty cart
// @Tags         carts
// @Produce      json
// @Success      201 {object} APIResponse[orderingapp.CartResponse]
// @Router       /store/carts [post]
func (h *CartHandler) Create(c *gin.Context) {
	cart, err := h.cartService.Create(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, cart)
}

// Get godoc
// @ID           getCart
// @Summary      Get a cart with line and cart totals
// @Tags         carts
// @Produce      json
// @Param        id path string true "Cart ID" format(uuid)
// @Success      200 {object} APIResponse[orderingapp.CartResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /store/carts/{id} [get]
func (h *CartHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	cart, err := h.cartService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// Delete godoc
// @ID           deleteCart
// @Summary      Delete a cart
// @Tags         carts
// @Param        id path string true "Cart ID" format(uuid)
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /store/carts/{id} [delete]
func (h *CartHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	if err := h.cartService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AddItem godoc
// @ID           addCartItem
// @Summary      Add a product to a cart
// @Description  Adding a product already in the cart increases its quantity
// @Tags         carts
// @Accept       json
// @Produce      json
// @Param        id path string true "Cart ID" format(uuid)
// @Param        request body orderingapp.AddCartItemRequest true "Item"
// @Success      201 {object} APIResponse[orderingapp.CartItemResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /store/carts/{id}/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	cartID, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req orderingapp.AddCartItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	item, err := h.cartService.AddItem(c.Request.Context(), cartID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// UpdateItem godoc
// @ID           updateCartItem
// @Summary      Change the quantity of a cart item
// @Tags         carts
// @Accept       json
// @Produce      json
// @Param        id path string true "Cart ID" format(uuid)
// @Param        item_id path string true "Item ID" format(uuid)
// @Param        request body orderingapp.UpdateCartItemRequest true "Quantity"
// @Success      200 {object} APIResponse[orderingapp.CartItemResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /store/carts/{id}/items/{item_id} [patch]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	cartID, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	itemID, ok := h.parseID(c, "item_id")
	if !ok {
		return
	}
	var req orderingapp.UpdateCartItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	item, err := h.cartService.UpdateItem(c.Request.Context(), cartID, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// RemoveItem godoc
// @ID           removeCartItem
// @Summary      Remove an item from a cart
// @Tags         carts
// @Param        id path string true "Cart ID" format(uuid)
// @Param        item_id path string true "Item ID" format(uuid)
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /store/carts/{id}/items/{item_id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	cartID, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	itemID, ok := h.parseID(c, "item_id")
	if !ok {
		return
	}

	if err := h.cartService.RemoveItem(c.Request.Context(), cartID, itemID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
