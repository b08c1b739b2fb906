package pos

import (
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/inventory"
	"github.com/pos/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
)

// ---- Sale settlement ----

// SaleLineRequest is one product position on a checkout
type SaleLineRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
}

// CreateSaleRequest settles a checkout against the cost ledger
type CreateSaleRequest struct {
	StoreID  uuid.UUID         `json:"store_id" binding:"required"`
	Currency string            `json:"currency"`
	Lines    []SaleLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ConsumptionPartResponse is one layer draw on a settled sale line
type ConsumptionPartResponse struct {
	LayerID  uuid.UUID       `json:"layer_id"`
	Quantity decimal.Decimal `json:"quantity"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

// SaleLineResponse is one settled sale line with its COGS breakdown
type SaleLineResponse struct {
	ID                uuid.UUID                 `json:"id"`
	ProductID         uuid.UUID                 `json:"product_id"`
	Quantity          decimal.Decimal           `json:"quantity"`
	UnitPrice         decimal.Decimal           `json:"unit_price"`
	LineAmount        decimal.Decimal           `json:"line_amount"`
	COGSAmount        decimal.Decimal           `json:"cogs_amount"`
	Shortfall         bool                      `json:"shortfall"`
	ShortfallQuantity decimal.Decimal           `json:"shortfall_quantity"`
	Consumptions      []ConsumptionPartResponse `json:"consumptions"`
}

// SaleResponse is the settled sale
type SaleResponse struct {
	ID          uuid.UUID          `json:"id"`
	StoreID     uuid.UUID          `json:"store_id"`
	SaleNumber  string             `json:"sale_number"`
	Currency    string             `json:"currency"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	TotalCOGS   decimal.Decimal    `json:"total_cogs"`
	Shortfall   bool               `json:"shortfall"`
	Lines       []SaleLineResponse `json:"lines"`
	CreatedAt   time.Time          `json:"created_at"`
}

// ToSaleResponse maps a sale aggregate to its response
func ToSaleResponse(sale *sales.Sale) SaleResponse {
	lines := make([]SaleLineResponse, 0, len(sale.Lines))
	for _, line := range sale.Lines {
		consumptions := make([]ConsumptionPartResponse, 0, len(line.Consumptions))
		for _, c := range line.Consumptions {
			consumptions = append(consumptions, ConsumptionPartResponse{
				LayerID:  c.CostLayerID,
				Quantity: c.Quantity,
				UnitCost: c.UnitCost,
			})
		}
		lines = append(lines, SaleLineResponse{
			ID:                line.ID,
			ProductID:         line.ProductID,
			Quantity:          line.Quantity,
			UnitPrice:         line.UnitPrice,
			LineAmount:        line.LineAmount,
			COGSAmount:        line.COGSAmount,
			Shortfall:         line.Shortfall,
			ShortfallQuantity: line.ShortfallQuantity,
			Consumptions:      consumptions,
		})
	}
	return SaleResponse{
		ID:          sale.ID,
		StoreID:     sale.StoreID,
		SaleNumber:  sale.SaleNumber,
		Currency:    string(sale.Currency),
		TotalAmount: sale.TotalAmount,
		TotalCOGS:   sale.TotalCOGS,
		Shortfall:   sale.Shortfall,
		Lines:       lines,
		CreatedAt:   sale.CreatedAt,
	}
}

// ---- Return settlement ----

// ReturnItemRequest is one returned position
type ReturnItemRequest struct {
	ProductID     uuid.UUID       `json:"product_id" binding:"required"`
	SaleLineID    *uuid.UUID      `json:"sale_line_id"`
	Quantity      decimal.Decimal `json:"quantity" binding:"required"`
	RestockAction string          `json:"restock_action" binding:"required,oneof=RESTOCK DISCARD"`
	RefundType    string          `json:"refund_type" binding:"required,oneof=FULL PARTIAL"`
	RefundAmount  decimal.Decimal `json:"refund_amount"`
	Currency      string          `json:"currency"`
}

// CreateReturnRequest settles a customer return against a sale
type CreateReturnRequest struct {
	StoreID uuid.UUID           `json:"store_id" binding:"required"`
	SaleID  uuid.UUID           `json:"sale_id" binding:"required"`
	Items   []ReturnItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ReturnItemResponse is one settled return item
type ReturnItemResponse struct {
	ProductID     uuid.UUID       `json:"product_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	RestockAction string          `json:"restock_action"`
	RefundType    string          `json:"refund_type"`
	RefundAmount  decimal.Decimal `json:"refund_amount"`
	Currency      string          `json:"currency"`
}

// ReturnResponse is the committed return. RefundType summarizes the
// items: the shared type when uniform, MIXED otherwise.
type ReturnResponse struct {
	ID          uuid.UUID            `json:"id"`
	SaleID      uuid.UUID            `json:"sale_id"`
	Status      string               `json:"status"`
	Currency    string               `json:"currency"`
	RefundType  string               `json:"refund_type"`
	TotalRefund decimal.Decimal      `json:"total_refund"`
	Items       []ReturnItemResponse `json:"items"`
	CreatedAt   time.Time            `json:"created_at"`
}

// ToReturnResponse maps a return aggregate to its response
func ToReturnResponse(r *sales.Return) ReturnResponse {
	items := make([]ReturnItemResponse, 0, len(r.Items))
	refundType := ""
	for _, item := range r.Items {
		items = append(items, ReturnItemResponse{
			ProductID:     item.ProductID,
			Quantity:      item.Quantity,
			RestockAction: string(item.RestockAction),
			RefundType:    string(item.RefundType),
			RefundAmount:  item.RefundAmount,
			Currency:      string(item.Currency),
		})
		switch refundType {
		case "":
			refundType = string(item.RefundType)
		case string(item.RefundType):
		default:
			refundType = "MIXED"
		}
	}
	return ReturnResponse{
		ID:          r.ID,
		SaleID:      r.SaleID,
		Status:      r.Status.String(),
		Currency:    string(r.Currency),
		RefundType:  refundType,
		TotalRefund: r.TotalRefund,
		Items:       items,
		CreatedAt:   r.CreatedAt,
	}
}

// ---- Stock receipts / inventory reads ----

// ReceiptRequest records a stock receipt as a new PURCHASE layer.
// Currency falls back to the service default when blank.
type ReceiptRequest struct {
	StoreID   uuid.UUID       `json:"store_id" binding:"required"`
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitCost  decimal.Decimal `json:"unit_cost" binding:"required"`
	Currency  string          `json:"currency"`
	Notes     string          `json:"notes"`
}

// InventoryResponse returns the materialized aggregates for a
// store-product pair. Layers are internal bookkeeping and never leave
// the engine.
type InventoryResponse struct {
	StoreID        uuid.UUID       `json:"store_id"`
	ProductID      uuid.UUID       `json:"product_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	AvgCost        decimal.Decimal `json:"avg_cost"`
	TotalCostValue decimal.Decimal `json:"total_cost_value"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ToInventoryResponse maps an inventory record to its response
func ToInventoryResponse(record *inventory.InventoryRecord) InventoryResponse {
	return InventoryResponse{
		StoreID:        record.StoreID,
		ProductID:      record.ProductID,
		Quantity:       record.Quantity,
		AvgCost:        record.AvgCost,
		TotalCostValue: record.TotalCostValue,
		UpdatedAt:      record.UpdatedAt,
	}
}

// ---- Held transactions ----

// HeldItemRequest is one cart position to park
type HeldItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
}

// HoldRequest parks a cart
type HoldRequest struct {
	StoreID           uuid.UUID         `json:"store_id" binding:"required"`
	CashierID         uuid.UUID         `json:"cashier_id"`
	Label             string            `json:"label"`
	Currency          string            `json:"currency"`
	PaymentDraft      string            `json:"payment_draft"`
	LoyaltyRedemption string            `json:"loyalty_redemption"`
	Items             []HeldItemRequest `json:"items" binding:"required,min=1,dive"`
}

// HeldItemResponse is one parked cart position
type HeldItemResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// HoldResponse is a suspended transaction
type HoldResponse struct {
	ID                uuid.UUID          `json:"id"`
	StoreID           uuid.UUID          `json:"store_id"`
	CashierID         uuid.UUID          `json:"cashier_id"`
	Label             string             `json:"label"`
	Currency          string             `json:"currency"`
	PaymentDraft      string             `json:"payment_draft,omitempty"`
	LoyaltyRedemption string             `json:"loyalty_redemption,omitempty"`
	TotalAmount       decimal.Decimal    `json:"total_amount"`
	Items             []HeldItemResponse `json:"items"`
	CreatedAt         time.Time          `json:"created_at"`
}

// ToHoldResponse maps a held transaction to its response
func ToHoldResponse(held *sales.HeldTransaction) HoldResponse {
	items := make([]HeldItemResponse, 0, len(held.Items))
	for _, item := range held.Items {
		items = append(items, HeldItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return HoldResponse{
		ID:                held.ID,
		StoreID:           held.StoreID,
		CashierID:         held.CashierID,
		Label:             held.Label,
		Currency:          string(held.Currency),
		PaymentDraft:      held.PaymentDraft,
		LoyaltyRedemption: held.LoyaltyRedemption,
		TotalAmount:       held.TotalAmount(),
		Items:             items,
		CreatedAt:         held.CreatedAt,
	}
}

// ---- Backfill ----

// BackfillReport summarizes one backfill run
type BackfillReport struct {
	Inspected int `json:"inspected"`
	Created   int `json:"created"`
	Skipped   int `json:"skipped"`
}
