package handler

import (
	"github.com/gin-gonic/gin"
	taggingapp "github.com/storefront/backend/internal/application/tagging"
)

// TagHandler handles tags and their links to products
type TagHandler struct {
	BaseHandler
	tagService *taggingapp.Service
}

// NewTagHandler creates a TagHandler
func NewTagHandler(tagService *taggingapp.Service) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// List godoc
// @ID           listTags
// @Summary      List tags
// @Tags         tags
// @Produce      json
// @Param        search query string false "Label contains"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(10) maximum(100)
// @Success      200 {object} APIResponse[[]taggingapp.TagResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /store/tags [get]
func (h *TagHandler) List(c *gin.Context) {
	var filter taggingapp.TagListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	page, err := h.tagService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(&h.BaseHandler, c, page)
}

// Create godoc
// @ID           createTag
// @Summary      Create a tag
// @Tags         tags
// @Accept       json
// @Produce      json
// @Param        request body taggingapp.TagRequest true "Tag"
// @Success      201 {object} APIResponse[taggingapp.TagResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /store/tags [post]
func (h *TagHandler) Create(c *gin.Context) {
	var req taggingapp.TagRequest
	if !h.bindJSON(c, &req) {
		return
	}

	tag, err := h.tagService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tag)
}

// ListForProduct godoc
// @ID           listProductTags
// @Summary      List the tags of a product
// @Tags         tags
// @Produce      json
// @Param        product_id path string true "Product ID" format(uuid)
// @Success      200 {object} APIResponse[[]taggingapp.TagResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /store/products/{product_id}/tags [get]
func (h *TagHandler) ListForProduct(c *gin.Context) {
	productID, ok := h.parseID(c, "product_id")
	if !ok {
		return
	}

	tags, err := h.tagService.ListForProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tags)
}

// Attach godoc
// @ID           attachProductTag
// @Summary      Tag a product
// @Tags         tags
// @Accept       json
// @Produce      json
// @Param        product_id path string true "Product ID" format(uuid)
// @Param        request body taggingapp.AttachTagRequest true "Tag to attach"
// @Success      201 {object} APIResponse[taggingapp.TagResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /store/products/{product_id}/tags [post]
func (h *TagHandler) Attach(c *gin.Context) {
	productID, ok := h.parseID(c, "product_id")
	if !ok {
		return
	}
	var req taggingapp.AttachTagRequest
	if !h.bindJSON(c, &req) {
		return
	}

	tag, err := h.tagService.AttachToProduct(c.Request.Context(), productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tag)
}

// Detach godoc
// @ID           detachProductTag
// @Summary      Remove a tag from a product
// @Tags         tags
// @Param        product_id path string true "Product ID" format(uuid)
// @Param        tag_id path string true "Tag ID" format(uuid)
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /store/products/{product_id}/tags/{tag_id} [delete]
func (h *TagHandler) Detach(c *gin.Context) {
	productID, ok := h.parseID(c, "product_id")
	if !ok {
		return
	}
	tagID, ok := h.parseID(c, "tag_id")
	if !ok {
		return
	}

	if err := h.tagService.DetachFromProduct(c.Request.Context(), productID, tagID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
