package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
)

// CollectionHandler handles collection endpoints of the store API
type CollectionHandler struct {
	BaseHandler
	collectionService *catalogapp.CollectionService
	guard             *catalogapp.DeletionGuard
}

// NewCollectionHandler creates a CollectionHandler. deleteRejectedStatus is the status
// of a refused delete; 0 selects 405.
func NewCollectionHandler(collectionService *catalogapp.CollectionService, guard *catalogapp.DeletionGuard, deleteRejectedStatus int) *CollectionHandler {
	return &CollectionHandler{
		BaseHandler:       BaseHandler{deleteRejectedStatus: deleteRejectedStatus},
		collectionService: collectionService,
		guard:             guard,
	}
}

// List godoc
// @ID           listCollections
// @Summary      List collections
// @Description  Paginated collections annotated with products_count
// @Tags         collections
// @Produce      json
// @Param        search query string false "Title contains"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Items per page" default(10) maximum(100)
// @Param        order_by query string false "Sort field" Enums(title, products_count)
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]catalogapp.CollectionResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /store/collections [get]
func (h *CollectionHandler) List(c *gin.Context) {
	var filter catalogapp.CollectionListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	page, err := h.collectionService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(&h.BaseHandler, c, page)
}

// Get godoc
// @ID           getCollection
// @Summary      Get a collection
// @Tags         collections
// @Produce      json
// @Param        id path string true "Collection ID" format(uuid)
// @Success      200 {object} APIResponse[catalogapp.CollectionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /store/collections/{id} [get]
func (h *CollectionHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	collection, err := h.collectionService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, collection)
}

// Create godoc
// @ID           createCollection
// @Summary      Create a collection
// @Tags         collections
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CollectionRequest true "Collection"
// @Success      201 {object} APIResponse[catalogapp.CollectionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /store/collections [post]
func (h *CollectionHandler) Create(c *gin.Context) {
	var req catalogapp.CollectionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	collection, err := h.collectionService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, collection)
}

// Update godoc
// @ID           updateCollection
// @Summary      Update a collection
// @Tags         collections
// @Accept       json
// @Produce      json
// @Param        id path string true "Collection ID" format(uuid)
// @Param        request body catalogapp.CollectionRequest true "Collection"
// @Success      200 {object} APIResponse[catalogapp.CollectionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /store/collections/{id} [put]
func (h *CollectionHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req catalogapp.CollectionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	collection, err := h.collectionService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, collection)
}

// Delete godoc
// @ID           deleteCollection
// @Summary      Delete a collection
// @Description  Deletes a collection that holds no products. A refused delete answers
// @Description  {"error": message} with 405 (or the configured status).
// @Tags         collections
// @Param        id path string true "Collection ID" format(uuid)
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      405 {object} DeleteRejectedResponse
// @Security     BearerAuth
// @Router       /store/collections/{id} [delete]
func (h *CollectionHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	if err := h.guard.DeleteCollection(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
