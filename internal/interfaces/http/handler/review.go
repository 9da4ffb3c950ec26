package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
)

// ReviewHandler handles the reviews nested under a product
type ReviewHandler struct {
	BaseHandler
	reviewService *catalogapp.ReviewService
}

// NewReviewHandler creates a ReviewHandler
func NewReviewHandler(reviewService *catalogapp.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

type pageQuery struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// List godoc
// @ID           listProductReviews
// @Summary      List reviews of a product
// @Tags         reviews
// @Produce      json
// @Param        product_id path string true "Product ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(10) maximum(100)
// @Success      200 {object} APIResponse[[]catalogapp.ReviewResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /store/products/{product_id}/reviews [get]
func (h *ReviewHandler) List(c *gin.Context) {
	productID, ok := h.parseID(c, "product_id")
	if !ok {
		return
	}
	var q pageQuery
	if !h.bindQuery(c, &q) {
		return
	}

	page, err := h.reviewService.List(c.Request.Context(), productID, q.Page, q.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(&h.BaseHandler, c, page)
}

// Get godoc
// @ID           getProductReview
// @Summary      Get a review
// @Tags         reviews
// @Produce      json
// @Param        product_id path string true "Product ID" format(uuid)
// @Param        id path string true "Review ID" format(uuid)
// @Success      200 {object} APIResponse[catalogapp.ReviewResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /store/products/{product_id}/reviews/{id} [get]
func (h *ReviewHandler) Get(c *gin.Context) {
	productID, ok := h.parseID(c, "product_id")
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	review, err := h.reviewService.Get(c.Request.Context(), productID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, review)
}

// Create godoc
// @ID           createProductReview
// @Summary      Review a product
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        product_id path string true "Product ID" format(uuid)
// @Param        request body catalogapp.ReviewRequest true "Review"
// @Success      201 {object} APIResponse[catalogapp.ReviewResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /store/products/{product_id}/reviews [post]
func (h *ReviewHandler) Create(c *gin.Context) {
	productID, ok := h.parseID(c, "product_id")
	if !ok {
		return
	}
	var req catalogapp.ReviewRequest
	if !h.bindJSON(c, &req) {
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, review)
}

// Delete godoc
// @ID           deleteProductReview
// @Summary      Delete a review
// @Tags         reviews
// @Param        product_id path string true "Product ID" format(uuid)
// @Param        id path string true "Review ID" format(uuid)
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /store/products/{product_id}/reviews/{id} [delete]
func (h *ReviewHandler) Delete(c *gin.Context) {
	productID, ok := h.parseID(c, "product_id")
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), productID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
