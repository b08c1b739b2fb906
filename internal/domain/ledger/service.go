package ledger

import (
	"sort"

	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Service implements the cost-layer arithmetic: FIFO consumption for
// sales and proportional restock splits for returns. It operates on
// layers the caller has already loaded and locked; persistence is the
// application layer's concern.
type Service struct{}

// NewService creates a new ledger domain service
func NewService() *Service {
	return &Service{}
}

// ConsumeFIFO draws the requested quantity from the given layers,
// oldest first. Layers are mutated in place; the returned consumption
// lists one part per layer touched, in draw order.
//
// When the layers cannot cover the full quantity the remainder is
// priced at the newest consumed layer's cost, or at fallbackAvgCost
// when no layer was consumed at all, and the consumption is flagged.
// A shortfall never blocks the draw.
func (s *Service) ConsumeFIFO(
	layers []*CostLayer,
	quantity decimal.Decimal,
	fallbackAvgCost decimal.Decimal,
) (*Consumption, error) {
	remaining, err := valueobject.NewQuantity(quantity)
	if err != nil || remaining.IsZero() {
		return nil, shared.NewValidationError("consumption quantity must be positive, got %s", quantity)
	}

	// Repositories return layers in consumption order already; sorting
	// here keeps the service correct for callers that do not.
	sorted := make([]*CostLayer, len(layers))
	copy(sorted, layers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	parts := make([]ConsumptionPart, 0, len(sorted))

	for _, layer := range sorted {
		if !remaining.IsPositive() {
			break
		}
		if layer.IsExhausted() {
			continue
		}

		taken := layer.Consume(remaining.Amount())
		if taken.IsZero() {
			continue
		}

		parts = append(parts, ConsumptionPart{
			LayerID:  layer.ID,
			Quantity: taken,
			UnitCost: layer.UnitCost,
		})
		remaining = remaining.SubtractClamped(valueobject.MustNewQuantity(taken))
	}

	consumption := &Consumption{Parts: parts}

	if remaining.IsPositive() {
		consumption.Shortfall = true
		consumption.ShortfallQuantity = remaining.Amount()
		if len(parts) > 0 {
			consumption.ShortfallUnitCost = parts[len(parts)-1].UnitCost
		} else {
			consumption.ShortfallUnitCost = fallbackAvgCost
		}
	}

	return consumption, nil
}

// SplitRestock distributes a return quantity across the original
// consumption parts in proportion to how much each layer contributed.
// Each slice is rounded to the ledger scale and the final part absorbs
// the rounding remainder so the split sums to returnQty exactly.
// Zero-quantity slices are dropped.
func (s *Service) SplitRestock(parts []ConsumptionPart, returnQty decimal.Decimal) ([]RestockPart, error) {
	if qty, err := valueobject.NewQuantity(returnQty); err != nil || qty.IsZero() {
		return nil, shared.NewValidationError("restock quantity must be positive, got %s", returnQty)
	}
	if len(parts) == 0 {
		return nil, shared.NewValidationError("no consumption parts to restock against")
	}

	totalConsumed := decimal.Zero
	for _, p := range parts {
		totalConsumed = totalConsumed.Add(p.Quantity)
	}
	if !totalConsumed.IsPositive() {
		return nil, shared.NewValidationError("consumption parts carry no quantity")
	}

	result := make([]RestockPart, 0, len(parts))
	allocated := decimal.Zero

	for i, p := range parts {
		var share decimal.Decimal
		if i == len(parts)-1 {
			share = returnQty.Sub(allocated)
		} else {
			share = returnQty.Mul(p.Quantity).Div(totalConsumed).Round(valueobject.LedgerScale)
		}
		allocated = allocated.Add(share)

		if !share.IsPositive() {
			continue
		}
		result = append(result, RestockPart{
			LayerID:  p.LayerID,
			Quantity: share,
			UnitCost: p.UnitCost,
		})
	}

	return result, nil
}

// WeightedAverageCost computes the weighted average unit cost across
// the remaining quantity of the given layers. The boolean is false when
// no quantity remains, in which case callers keep their previous value.
func (s *Service) WeightedAverageCost(layers []*CostLayer) (decimal.Decimal, bool) {
	totalQty := decimal.Zero
	totalValue := decimal.Zero
	for _, layer := range layers {
		totalQty = totalQty.Add(layer.QuantityRemaining)
		totalValue = totalValue.Add(layer.TotalValue())
	}
	if !totalQty.IsPositive() {
		return decimal.Zero, false
	}
	return totalValue.Div(totalQty).Round(valueobject.LedgerScale), true
}
