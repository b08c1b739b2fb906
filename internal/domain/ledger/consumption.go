package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ConsumptionPart records a draw against a single cost layer. Parts are
// persisted with the sale line so a later return can restore stock at
// its original cost basis.
type ConsumptionPart struct {
	LayerID  uuid.UUID
	Quantity decimal.Decimal
	UnitCost decimal.Decimal
}

// Cost returns the part's quantity valued at its unit cost
func (p ConsumptionPart) Cost() decimal.Decimal {
	return p.Quantity.Mul(p.UnitCost)
}

// Consumption is the outcome of a FIFO draw against a product's layers.
// When the layers could not cover the full quantity, the uncovered
// remainder is carried as a priced shortfall rather than a failure.
type Consumption struct {
	Parts             []ConsumptionPart
	ShortfallQuantity decimal.Decimal
	ShortfallUnitCost decimal.Decimal
	Shortfall         bool
}

// CoveredQuantity returns the quantity drawn from real layers
func (c *Consumption) CoveredQuantity() decimal.Decimal {
	total := decimal.Zero
	for _, p := range c.Parts {
		total = total.Add(p.Quantity)
	}
	return total
}

// TotalQuantity returns the covered quantity plus any shortfall.
// This always equals the quantity that was requested.
func (c *Consumption) TotalQuantity() decimal.Decimal {
	return c.CoveredQuantity().Add(c.ShortfallQuantity)
}

// TotalCost returns the cost of goods sold for the whole draw,
// including the estimated cost of the shortfall portion.
func (c *Consumption) TotalCost() decimal.Decimal {
	total := decimal.Zero
	for _, p := range c.Parts {
		total = total.Add(p.Cost())
	}
	return total.Add(c.ShortfallQuantity.Mul(c.ShortfallUnitCost))
}

// UnitCost returns the average unit cost of the draw, zero when nothing
// was consumed.
func (c *Consumption) UnitCost() decimal.Decimal {
	qty := c.TotalQuantity()
	if qty.IsZero() {
		return decimal.Zero
	}
	return c.TotalCost().Div(qty)
}

// RestockPart describes one slice of a return restock: the quantity to
// recreate as a RETURN_RESTOCK layer and the unit cost it carries.
type RestockPart struct {
	LayerID  uuid.UUID
	Quantity decimal.Decimal
	UnitCost decimal.Decimal
}
