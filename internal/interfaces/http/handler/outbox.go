package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/application/event"
)

// OutboxHandler lets staff inspect undelivered catalog events and requeue them
type OutboxHandler struct {
	BaseHandler
	outbox *event.OutboxService
}

// NewOutboxHandler creates a new outbox handler
func NewOutboxHandler(outbox *event.OutboxService) *OutboxHandler {
	return &OutboxHandler{outbox: outbox}
}

// GetStats godoc
// @ID           outboxStats
// @Summary      Count outbox entries per delivery status
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[event.OutboxStatsDTO]
// @Security     BearerAuth
// @Router       /system/outbox/stats [get]
func (h *OutboxHandler) GetStats(c *gin.Context) {
	stats, err := h.outbox.GetStats(c.Request.Context())
	h.respond(c, stats, err)
}

// GetDeadLetterEntries godoc
// @ID           outboxDeadList
// @Summary      Events that exhausted their delivery attempts
// @Tags         system
// @Produce      json
// @Param        page      query int false "Page"      default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]event.OutboxEntryDTO]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /system/outbox/dead [get]
func (h *OutboxHandler) GetDeadLetterEntries(c *gin.Context) {
	var filter event.OutboxFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	page, err := h.outbox.GetDeadLetterEntries(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(&h.BaseHandler, c, page)
}

// RetryAllDeadEntries godoc
// @ID           outboxDeadRetryAll
// @Summary      Requeue every dead event
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[event.RetryAllResult]
// @Security     BearerAuth
// @Router       /system/outbox/dead/retry-all [post]
func (h *OutboxHandler) RetryAllDeadEntries(c *gin.Context) {
	result, err := h.outbox.RetryAllDeadEntries(c.Request.Context())
	h.respond(c, result, err)
}

// GetEntry godoc
// @ID           outboxEntry
// @Summary      Show one outbox entry
// @Tags         system
// @Produce      json
// @Param        id path string true "Entry ID" format(uuid)
// @Success      200 {object} APIResponse[event.OutboxEntryDTO]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /system/outbox/{id} [get]
func (h *OutboxHandler) GetEntry(c *gin.Context) {
	h.onEntry(c, h.outbox.GetEntry)
}

// RetryDeadEntry godoc
// @ID           outboxEntryRetry
// @Summary      Requeue one dead event
// @Description  Only entries in the dead state can be requeued; others answer 422.
// @Tags         system
// @Produce      json
// @Param        id path string true "Entry ID" format(uuid)
// @Success      200 {object} APIResponse[event.OutboxEntryDTO]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /system/outbox/{id}/retry [post]
func (h *OutboxHandler) RetryDeadEntry(c *gin.Context) {
	h.onEntry(c, h.outbox.RetryDeadEntry)
}

func (h *OutboxHandler) onEntry(c *gin.Context, op func(context.Context, uuid.UUID) (*event.OutboxEntryDTO, error)) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	entry, err := op(c.Request.Context(), id)
	h.respond(c, entry, err)
}

func (h *OutboxHandler) respond(c *gin.Context, data any, err error) {
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, data)
}
