package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// InventoryRecord is the materialized stock aggregate for one product
// at one store. It caches what the cost-layer ledger already knows:
// on-hand quantity, weighted average cost and total cost value.
//
// The record is never updated independently. Every mutation of the
// product's layers recomputes it through Recalculate inside the same
// transaction, so at quiescence Quantity equals the sum of remaining
// layer quantities. Legacy rows created before the ledger existed are
// the exception until the backfill has run.
type InventoryRecord struct {
	shared.StoreAggregateRoot
	ProductID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_inventory_records_store_product,priority:2"`
	Quantity       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	AvgCost        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalCostValue decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (InventoryRecord) TableName() string {
	return "inventory_records"
}

// NewInventoryRecord creates an empty record for a store-product pair
func NewInventoryRecord(storeID, productID uuid.UUID) (*InventoryRecord, error) {
	if storeID == uuid.Nil {
		return nil, shared.NewValidationError("store ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("product ID cannot be empty")
	}

	return &InventoryRecord{
		StoreAggregateRoot: shared.NewStoreAggregateRoot(storeID),
		ProductID:          productID,
		Quantity:           decimal.Zero,
		AvgCost:            decimal.Zero,
		TotalCostValue:     decimal.Zero,
	}, nil
}

// LayerView is the slice of a cost layer the record needs to recompute
// itself: remaining quantity and unit cost.
type LayerView struct {
	Quantity decimal.Decimal
	UnitCost decimal.Decimal
}

// Recalculate recomputes the record from the remaining layers.
//
// When nothing remains, AvgCost keeps its previous value: the product
// is expected to be replenished and the last known cost is the best
// estimate until then. TotalCostValue always follows the quantity to
// zero.
func (r *InventoryRecord) Recalculate(layers []LayerView) {
	totalQty := decimal.Zero
	totalValue := decimal.Zero
	for _, layer := range layers {
		totalQty = totalQty.Add(layer.Quantity)
		totalValue = totalValue.Add(layer.Quantity.Mul(layer.UnitCost))
	}

	oldQty := r.Quantity

	if totalQty.IsPositive() {
		r.Quantity = totalQty
		r.AvgCost = totalValue.Div(totalQty).Round(valueobject.LedgerScale)
		r.TotalCostValue = totalValue
	} else {
		r.Quantity = decimal.Zero
		r.TotalCostValue = decimal.Zero
	}

	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewInventoryRecalculatedEvent(r, valueobject.MustNewQuantity(oldQty)))
}

// HasStock returns true if the record carries on-hand quantity
func (r *InventoryRecord) HasStock() bool {
	return r.Quantity.IsPositive()
}

// DeriveLegacyUnitCost derives a unit cost for a record that predates
// the ledger: the stored average cost when present, otherwise the total
// value spread over the quantity. Returns zero when neither yields a
// positive cost; such records are skipped by the backfill.
func (r *InventoryRecord) DeriveLegacyUnitCost() decimal.Decimal {
	if r.AvgCost.IsPositive() {
		return r.AvgCost
	}
	if r.Quantity.IsPositive() && r.TotalCostValue.IsPositive() {
		return r.TotalCostValue.Div(r.Quantity).Round(valueobject.LedgerScale)
	}
	return decimal.Zero
}
