package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// SaleStatus represents the status of a sale
type SaleStatus string

const (
	// SaleStatusCompleted marks a settled sale. Sales are written at the
	// moment of checkout, so this is the only status they are born with.
	SaleStatusCompleted SaleStatus = "COMPLETED"
)

// SaleLineConsumption records a draw against one cost layer, persisted
// with the sale line. Returns use these rows to restore stock at its
// original cost basis.
type SaleLineConsumption struct {
	shared.BaseEntity
	SaleLineID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	CostLayerID uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitCost    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (SaleLineConsumption) TableName() string {
	return "sale_line_consumptions"
}

// SaleLine represents one product position on a sale
type SaleLine struct {
	shared.BaseEntity
	SaleID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID         uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	LineAmount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	COGSAmount        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ReturnedQuantity  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Shortfall         bool            `gorm:"not null;default:false"`
	ShortfallQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`

	Consumptions []SaleLineConsumption `gorm:"foreignKey:SaleLineID;references:ID"`
}

// TableName returns the table name for GORM
func (SaleLine) TableName() string {
	return "sale_lines"
}

// ReturnableQuantity returns the quantity still eligible for return
func (l *SaleLine) ReturnableQuantity() decimal.Decimal {
	return l.Quantity.Sub(l.ReturnedQuantity)
}

// RecordReturn adds to the line's cumulative returned quantity.
// Rejects a return that would exceed the quantity sold.
func (l *SaleLine) RecordReturn(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewValidationError("return quantity must be positive, got %s", quantity)
	}
	if quantity.GreaterThan(l.ReturnableQuantity()) {
		return shared.NewValidationError(
			"return quantity %s exceeds remaining returnable quantity %s",
			quantity, l.ReturnableQuantity())
	}

	l.ReturnedQuantity = l.ReturnedQuantity.Add(quantity)
	l.UpdatedAt = time.Now()

	return nil
}

// ApplyCosting records the settled cost of goods sold on the line,
// including the layer-level breakdown and any uncovered shortfall
func (l *SaleLine) ApplyCosting(
	consumptions []SaleLineConsumption,
	cogsAmount decimal.Decimal,
	shortfallQuantity decimal.Decimal,
) {
	l.Consumptions = consumptions
	l.COGSAmount = cogsAmount
	l.ShortfallQuantity = shortfallQuantity
	l.Shortfall = shortfallQuantity.IsPositive()
	l.UpdatedAt = time.Now()
}

// GetUnitPriceMoney returns the unit price as Money in the sale's currency
func (l *SaleLine) GetUnitPriceMoney(currency valueobject.Currency) valueobject.Money {
	m, _ := valueobject.NewMoney(l.UnitPrice, currency)
	return m
}

// Sale represents a settled checkout: the lines sold, what the customer
// paid, and the cost of goods the ledger attributed to each line.
type Sale struct {
	shared.StoreAggregateRoot
	SaleNumber  string               `gorm:"type:varchar(50);not null;index"`
	Status      SaleStatus           `gorm:"type:varchar(20);not null"`
	Currency    valueobject.Currency `gorm:"type:varchar(3);not null"`
	TotalAmount decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	TotalCOGS   decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	Shortfall   bool                 `gorm:"not null;default:false"`

	Lines []SaleLine `gorm:"foreignKey:SaleID;references:ID"`
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// NewSale creates a new sale for a store
func NewSale(storeID uuid.UUID, saleNumber string, currency valueobject.Currency) (*Sale, error) {
	if storeID == uuid.Nil {
		return nil, shared.NewValidationError("store ID cannot be empty")
	}
	if saleNumber == "" {
		return nil, shared.NewValidationError("sale number cannot be empty")
	}
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}

	return &Sale{
		StoreAggregateRoot: shared.NewStoreAggregateRoot(storeID),
		SaleNumber:         saleNumber,
		Status:             SaleStatusCompleted,
		Currency:           currency,
		TotalAmount:        decimal.Zero,
		TotalCOGS:          decimal.Zero,
		Lines:              make([]SaleLine, 0),
	}, nil
}

// AddLine adds a product position to the sale
func (s *Sale) AddLine(productID uuid.UUID, quantity decimal.Decimal, unitPrice valueobject.Money) (*SaleLine, error) {
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("line quantity must be positive, got %s", quantity)
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewValidationError("unit price cannot be negative")
	}
	if unitPrice.Currency() != s.Currency {
		return nil, shared.NewValidationError(
			"line currency %s does not match sale currency %s",
			unitPrice.Currency(), s.Currency)
	}

	line := SaleLine{
		BaseEntity:       shared.NewBaseEntity(),
		SaleID:           s.ID,
		ProductID:        productID,
		Quantity:         quantity,
		UnitPrice:        unitPrice.Amount(),
		LineAmount:       quantity.Mul(unitPrice.Amount()),
		ReturnedQuantity: decimal.Zero,
	}

	s.Lines = append(s.Lines, line)
	s.recalculateTotals()
	s.UpdatedAt = time.Now()

	return &s.Lines[len(s.Lines)-1], nil
}

// MarkSettled finalizes the sale after all lines carry their costing
// and emits the settlement event
func (s *Sale) MarkSettled() error {
	if len(s.Lines) == 0 {
		return shared.NewValidationError("sale must carry at least one line")
	}

	s.recalculateTotals()
	s.UpdatedAt = time.Now()
	s.AddDomainEvent(NewSaleSettledEvent(s))

	return nil
}

// GetLine returns a line by its ID, nil when absent
func (s *Sale) GetLine(lineID uuid.UUID) *SaleLine {
	for idx := range s.Lines {
		if s.Lines[idx].ID == lineID {
			return &s.Lines[idx]
		}
	}
	return nil
}

// GetTotalAmountMoney returns the sale total as Money
func (s *Sale) GetTotalAmountMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(s.TotalAmount, s.Currency)
	return m
}

func (s *Sale) recalculateTotals() {
	totalAmount := decimal.Zero
	totalCOGS := decimal.Zero
	shortfall := false
	for _, line := range s.Lines {
		totalAmount = totalAmount.Add(line.LineAmount)
		totalCOGS = totalCOGS.Add(line.COGSAmount)
		shortfall = shortfall || line.Shortfall
	}
	s.TotalAmount = totalAmount
	s.TotalCOGS = totalCOGS
	s.Shortfall = shortfall
}
