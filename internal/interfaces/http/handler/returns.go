package handler

import (
	"github.com/gin-gonic/gin"
	pos "github.com/pos/backend/internal/application/pos"
	"github.com/pos/backend/internal/interfaces/http/middleware"
)

// ReturnHandler handles return settlement endpoints
type ReturnHandler struct {
	BaseHandler
	returnService *pos.ReturnSettlementService
}

// NewReturnHandler creates a new ReturnHandler
func NewReturnHandler(returnService *pos.ReturnSettlementService) *ReturnHandler {
	return &ReturnHandler{
		returnService: returnService,
	}
}

// Settle validates and commits a customer return against a settled
// sale. The whole return settles atomically; a rejected item rejects
// the request with nothing recorded.
// POST /api/pos/returns
func (h *ReturnHandler) Settle(c *gin.Context) {
	var req pos.CreateReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.returnService.Settle(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}
