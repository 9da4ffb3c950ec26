package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
)

// ImageHandler handles product images. Bytes go straight to object storage through
// presigned URLs; the API only tracks metadata.
type ImageHandler struct {
	BaseHandler
	imageService *catalogapp.ImageService
}

// NewImageHandler creates an ImageHandler
func NewImageHandler(imageService *catalogapp.ImageService) *ImageHandler {
	return &ImageHandler{imageService: imageService}
}

// RequestUpload godoc
// @ID           requestProductImageUpload
// @Summary      Request an image upload URL
// @Description  Records the image and returns a presigned PUT URL for its bytes
// @Tags         images
// @Accept       json
// @Produce      json
// @Param        product_id path string true "Product ID" format(uuid)
// @Param        request body catalogapp.ImageUploadRequest true "Image metadata"
// @Success      201 {object} APIResponse[catalogapp.ImageUploadResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /store/products/{product_id}/images [post]
func (h *ImageHandler) RequestUpload(c *gin.Context) {
	productID, ok := h.parseID(c, "product_id")
	if !ok {
		return
	}
	var req catalogapp.ImageUploadRequest
	if !h.bindJSON(c, &req) {
		return
	}

	upload, err := h.imageService.RequestUpload(c.Request.Context(), productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, upload)
}

// List godoc
// @ID           listProductImages
// @Summary      List images of a product
// @Tags         images
// @Produce      json
// @Param        product_id path string true "Product ID" format(uuid)
// @Success      200 {object} APIResponse[[]catalogapp.ImageResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /store/products/{product_id}/images [get]
func (h *ImageHandler) List(c *gin.Context) {
	productID, ok := h.parseID(c, "product_id")
	if !ok {
		return
	}

	images, err := h.imageService.List(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, images)
}

// Delete godoc
// @ID           deleteProductImage
// @Summary      Delete an image
// @Tags         images
// @Param        product_id path string true "Product ID" format(uuid)
// @Param        id path string true "Image ID" format(uuid)
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /store/products/{product_id}/images/{id} [delete]
func (h *ImageHandler) Delete(c *gin.Context) {
	productID, ok := h.parseID(c, "product_id")
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	if err := h.imageService.Delete(c.Request.Context(), productID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
