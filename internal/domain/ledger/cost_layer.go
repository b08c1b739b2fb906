package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// LayerSource identifies how a cost layer entered the ledger
type LayerSource string

const (
	// SourcePurchase marks layers created by stock receipts
	SourcePurchase LayerSource = "PURCHASE"
	// SourceReturnRestock marks layers created by restocked returns
	SourceReturnRestock LayerSource = "RETURN_RESTOCK"
	// SourceBackfillLegacy marks layers synthesized from legacy aggregates
	SourceBackfillLegacy LayerSource = "BACKFILL_LEGACY"
)

// IsValid returns true for a known layer source
func (s LayerSource) IsValid() bool {
	switch s {
	case SourcePurchase, SourceReturnRestock, SourceBackfillLegacy:
		return true
	}
	return false
}

// CostLayer represents one receipt of stock at a specific unit cost.
// Layers are append-only: once created, only QuantityRemaining ever
// changes, and exhausted layers are retained for audit rather than
// deleted. CreatedAt defines the consumption order.
type CostLayer struct {
	shared.StoreAggregateRoot
	ProductID         uuid.UUID       `gorm:"type:uuid;not null;index:idx_cost_layers_store_product,priority:2"`
	QuantityRemaining decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UnitCost          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Source            LayerSource     `gorm:"type:varchar(32);not null"`
	Notes             string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CostLayer) TableName() string {
	return "cost_layers"
}

// NewCostLayer creates a new cost layer. Quantity and unit cost must be
// strictly positive; the unit cost is rounded to the ledger scale.
func NewCostLayer(
	storeID, productID uuid.UUID,
	quantity decimal.Decimal,
	unitCost valueobject.Money,
	source LayerSource,
	notes string,
) (*CostLayer, error) {
	if storeID == uuid.Nil {
		return nil, shared.NewValidationError("store ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("layer quantity must be positive, got %s", quantity)
	}
	if unitCost.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("layer unit cost must be positive, got %s", unitCost.Amount())
	}
	if !source.IsValid() {
		return nil, shared.NewValidationError("unknown layer source %q", source)
	}

	layer := &CostLayer{
		StoreAggregateRoot: shared.NewStoreAggregateRoot(storeID),
		ProductID:          productID,
		QuantityRemaining:  quantity,
		UnitCost:           unitCost.RoundLedger().Amount(),
		Source:             source,
		Notes:              notes,
	}

	layer.AddDomainEvent(NewCostLayerCreatedEvent(layer, valueobject.MustNewQuantity(quantity)))

	return layer, nil
}

// Consume draws up to the requested quantity from the layer and returns
// the quantity actually taken (less than requested when the layer holds
// less than was asked for).
func (l *CostLayer) Consume(requested decimal.Decimal) decimal.Decimal {
	if requested.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	taken := decimal.Min(requested, l.QuantityRemaining)
	l.QuantityRemaining = l.QuantityRemaining.Sub(taken)
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	return taken
}

// IsExhausted returns true if the layer has no quantity left
func (l *CostLayer) IsExhausted() bool {
	return !l.QuantityRemaining.IsPositive()
}

// TotalValue returns the remaining quantity valued at the layer's unit cost
func (l *CostLayer) TotalValue() decimal.Decimal {
	return l.QuantityRemaining.Mul(l.UnitCost)
}
