package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	pos "github.com/pos/backend/internal/application/pos"
	"github.com/pos/backend/internal/interfaces/http/middleware"
)

// InventoryHandler handles stock receipt and inventory read endpoints
type InventoryHandler struct {
	BaseHandler
	inventoryService *pos.InventoryService
	backfillService  *pos.BackfillService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService *pos.InventoryService, backfillService *pos.BackfillService) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
		backfillService:  backfillService,
	}
}

// Receive records a stock receipt as a new purchase-cost layer
// POST /api/pos/inventory/receipts
func (h *InventoryHandler) Receive(c *gin.Context) {
	var req pos.ReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.inventoryService.Receive(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// inventoryPathParams binds the store-product pair from the path
type inventoryPathParams struct {
	StoreID   string `uri:"store_id" binding:"required,uuid"`
	ProductID string `uri:"product_id" binding:"required,uuid"`
}

// Get returns the materialized inventory aggregates for a
// store-product pair
// GET /api/pos/inventory/:store_id/:product_id
func (h *InventoryHandler) Get(c *gin.Context) {
	var params inventoryPathParams
	if err := c.ShouldBindUri(&params); err != nil {
		h.BadRequest(c, "Invalid store or product ID")
		return
	}

	storeID, _ := uuid.Parse(params.StoreID)
	productID, _ := uuid.Parse(params.ProductID)

	resp, err := h.inventoryService.Get(c.Request.Context(), storeID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Backfill seeds cost layers from inventory records that predate the
// ledger. Safe to re-run; converted records are skipped.
// POST /api/pos/admin/backfill
func (h *InventoryHandler) Backfill(c *gin.Context) {
	report, err := h.backfillService.Run(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}
