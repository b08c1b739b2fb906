package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	pos "github.com/pos/backend/internal/application/pos"
	"github.com/pos/backend/internal/interfaces/http/middleware"
)

// SaleHandler handles checkout settlement endpoints
type SaleHandler struct {
	BaseHandler
	saleService *pos.SaleSettlementService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(saleService *pos.SaleSettlementService) *SaleHandler {
	return &SaleHandler{
		saleService: saleService,
	}
}

// Settle settles a checkout: the sale is recorded and its cost of goods
// sold is drawn from the ledger in one transaction.
// POST /api/pos/sales
func (h *SaleHandler) Settle(c *gin.Context) {
	var req pos.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.saleService.Settle(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// storeScopedQuery binds the store scoping every list endpoint requires
type storeScopedQuery struct {
	StoreID string `form:"store_id" binding:"required,uuid"`
}

func (q storeScopedQuery) storeID() uuid.UUID {
	id, _ := uuid.Parse(q.StoreID)
	return id
}
