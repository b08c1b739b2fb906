package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	pos "github.com/pos/backend/internal/application/pos"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/interfaces/http/dto"
	"github.com/pos/backend/internal/interfaces/http/middleware"
)

// HoldHandler handles suspended cart endpoints
type HoldHandler struct {
	BaseHandler
	holdService *pos.HoldService
}

// NewHoldHandler creates a new HoldHandler
func NewHoldHandler(holdService *pos.HoldService) *HoldHandler {
	return &HoldHandler{
		holdService: holdService,
	}
}

// Hold parks a cart so the register is free for the next customer
// POST /api/pos/holds
func (h *HoldHandler) Hold(c *gin.Context) {
	var req pos.HoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.holdService.Hold(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// List returns the holds parked at a store, oldest first
// GET /api/pos/holds?store_id=...
func (h *HoldHandler) List(c *gin.Context) {
	var query storeScopedQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	listReq := dto.DefaultListRequest()
	_ = c.ShouldBindQuery(&listReq)

	filter := shared.Filter{
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
		Search:   listReq.Search,
	}

	holds, err := h.holdService.List(c.Request.Context(), query.storeID(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, holds)
}

// holdPathParams binds the hold ID from the path
type holdPathParams struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// Resume takes a hold off the shelf and removes it. A hold resumes at
// most once; the loser of a race gets a 404.
// POST /api/pos/holds/:id/resume?store_id=...
func (h *HoldHandler) Resume(c *gin.Context) {
	var params holdPathParams
	if err := c.ShouldBindUri(&params); err != nil {
		h.BadRequest(c, "Invalid hold ID")
		return
	}
	var query storeScopedQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	holdID, _ := uuid.Parse(params.ID)
	resp, err := h.holdService.Resume(c.Request.Context(), query.storeID(), holdID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Discard drops a hold without resuming it
// DELETE /api/pos/holds/:id?store_id=...
func (h *HoldHandler) Discard(c *gin.Context) {
	var params holdPathParams
	if err := c.ShouldBindUri(&params); err != nil {
		h.BadRequest(c, "Invalid hold ID")
		return
	}
	var query storeScopedQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	holdID, _ := uuid.Parse(params.ID)
	if err := h.holdService.Discard(c.Request.Context(), query.storeID(), holdID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
