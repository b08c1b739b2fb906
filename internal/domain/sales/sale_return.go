package sales

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// RestockAction determines what happens to returned goods
type RestockAction string

const (
	// RestockActionRestock puts the goods back into sellable stock
	RestockActionRestock RestockAction = "RESTOCK"
	// RestockActionDiscard writes the goods off; no stock comes back
	RestockActionDiscard RestockAction = "DISCARD"
)

// IsValid returns true for a known restock action
func (a RestockAction) IsValid() bool {
	return a == RestockActionRestock || a == RestockActionDiscard
}

// RefundType determines how the refund amount is derived
type RefundType string

const (
	// RefundTypeFull refunds quantity times the original unit price
	RefundTypeFull RefundType = "FULL"
	// RefundTypePartial refunds a caller-supplied amount
	RefundTypePartial RefundType = "PARTIAL"
)

// IsValid returns true for a known refund type
func (t RefundType) IsValid() bool {
	return t == RefundTypeFull || t == RefundTypePartial
}

// ReturnStatus represents the lifecycle of a return
type ReturnStatus string

const (
	ReturnStatusDraft     ReturnStatus = "DRAFT"
	ReturnStatusValidated ReturnStatus = "VALIDATED"
	ReturnStatusCommitted ReturnStatus = "COMMITTED"
)

// String returns the string representation of ReturnStatus
func (s ReturnStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target.
// COMMITTED is terminal; there is no post-commit cancel.
func (s ReturnStatus) CanTransitionTo(target ReturnStatus) bool {
	switch s {
	case ReturnStatusDraft:
		return target == ReturnStatusValidated
	case ReturnStatusValidated:
		return target == ReturnStatusCommitted
	case ReturnStatusCommitted:
		return false
	}
	return false
}

// ReturnItem represents one returned product position
type ReturnItem struct {
	shared.BaseEntity
	ReturnID      uuid.UUID            `gorm:"type:uuid;not null;index"`
	SaleLineID    uuid.UUID            `gorm:"type:uuid;not null"`
	ProductID     uuid.UUID            `gorm:"type:uuid;not null"`
	Quantity      decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	RestockAction RestockAction        `gorm:"type:varchar(16);not null"`
	RefundType    RefundType           `gorm:"type:varchar(16);not null"`
	RefundAmount  decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	Currency      valueobject.Currency `gorm:"type:varchar(3);not null"`
}

// TableName returns the table name for GORM
func (ReturnItem) TableName() string {
	return "return_items"
}

// GetRefundAmountMoney returns the item refund as Money
func (i *ReturnItem) GetRefundAmountMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(i.RefundAmount, i.Currency)
	return m
}

// Return represents a customer return against a settled sale.
// It moves DRAFT -> VALIDATED -> COMMITTED; every check happens before
// the first mutation, and a committed return is final.
type Return struct {
	shared.StoreAggregateRoot
	SaleID      uuid.UUID            `gorm:"type:uuid;not null;index"`
	Status      ReturnStatus         `gorm:"type:varchar(20);not null"`
	Currency    valueobject.Currency `gorm:"type:varchar(3);not null"`
	TotalRefund decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	ValidatedAt *time.Time
	CommittedAt *time.Time

	Items []ReturnItem `gorm:"foreignKey:ReturnID;references:ID"`
}

// TableName returns the table name for GORM
func (Return) TableName() string {
	return "returns"
}

// NewReturn creates a draft return against a sale. The currency is
// inherited from the sale; return items never carry their own.
func NewReturn(storeID, saleID uuid.UUID, currency valueobject.Currency) (*Return, error) {
	if storeID == uuid.Nil {
		return nil, shared.NewValidationError("store ID cannot be empty")
	}
	if saleID == uuid.Nil {
		return nil, shared.NewValidationError("sale ID cannot be empty")
	}
	if currency == "" {
		return nil, shared.NewValidationError("return currency cannot be empty")
	}

	r := &Return{
		StoreAggregateRoot: shared.NewStoreAggregateRoot(storeID),
		SaleID:             saleID,
		Status:             ReturnStatusDraft,
		Currency:           currency,
		TotalRefund:        decimal.Zero,
		Items:              make([]ReturnItem, 0),
	}

	r.AddDomainEvent(NewReturnCreatedEvent(r))

	return r, nil
}

// AddItem adds a returned position against one of the sale's lines.
// Only allowed while the return is a draft.
//
// The refund follows the refund type: FULL is quantity times the line's
// original unit price; PARTIAL takes the caller-supplied amount, which
// must be positive and no more than the line's original amount.
func (r *Return) AddItem(
	line *SaleLine,
	quantity decimal.Decimal,
	action RestockAction,
	refundType RefundType,
	partialRefund decimal.Decimal,
) (*ReturnItem, error) {
	if r.Status != ReturnStatusDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-draft return")
	}
	if line == nil {
		return nil, shared.NewValidationError("sale line cannot be nil")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("return quantity must be positive, got %s", quantity)
	}
	if !action.IsValid() {
		return nil, shared.NewValidationError("unknown restock action %q", action)
	}
	if !refundType.IsValid() {
		return nil, shared.NewValidationError("unknown refund type %q", refundType)
	}

	// Cumulative check: everything already returned on the line plus
	// what this return is asking for must stay within the quantity sold.
	pending := decimal.Zero
	for _, item := range r.Items {
		if item.SaleLineID == line.ID {
			pending = pending.Add(item.Quantity)
		}
	}
	if quantity.Add(pending).GreaterThan(line.ReturnableQuantity()) {
		return nil, shared.NewValidationError(
			"cumulative return quantity exceeds quantity sold on line %s", line.ID)
	}

	var refund decimal.Decimal
	switch refundType {
	case RefundTypeFull:
		refund = quantity.Mul(line.UnitPrice)
	case RefundTypePartial:
		if partialRefund.LessThanOrEqual(decimal.Zero) {
			return nil, shared.NewValidationError("partial refund amount must be positive")
		}
		if partialRefund.GreaterThan(line.LineAmount) {
			return nil, shared.NewValidationError(
				"partial refund %s exceeds original line amount %s",
				partialRefund, line.LineAmount)
		}
		refund = partialRefund
	}

	item := ReturnItem{
		BaseEntity:    shared.NewBaseEntity(),
		ReturnID:      r.ID,
		SaleLineID:    line.ID,
		ProductID:     line.ProductID,
		Quantity:      quantity,
		RestockAction: action,
		RefundType:    refundType,
		RefundAmount:  refund,
		Currency:      r.Currency,
	}

	r.Items = append(r.Items, item)
	r.recalculateTotalRefund()
	r.UpdatedAt = time.Now()

	return &r.Items[len(r.Items)-1], nil
}

// Validate transitions the return from DRAFT to VALIDATED once every
// item has passed its checks
func (r *Return) Validate() error {
	if !r.Status.CanTransitionTo(ReturnStatusValidated) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot validate return in %s status", r.Status))
	}
	if len(r.Items) == 0 {
		return shared.NewValidationError("return must carry at least one item")
	}

	now := time.Now()
	r.Status = ReturnStatusValidated
	r.ValidatedAt = &now
	r.UpdatedAt = now

	r.AddDomainEvent(NewReturnValidatedEvent(r))

	return nil
}

// Commit transitions the return from VALIDATED to COMMITTED. Called
// inside the transaction that applies the stock and refund effects;
// a committed return cannot be undone.
func (r *Return) Commit() error {
	if !r.Status.CanTransitionTo(ReturnStatusCommitted) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot commit return in %s status", r.Status))
	}

	now := time.Now()
	r.Status = ReturnStatusCommitted
	r.CommittedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewReturnCommittedEvent(r))

	return nil
}

// IsCommitted returns true once the return has been applied
func (r *Return) IsCommitted() bool {
	return r.Status == ReturnStatusCommitted
}

// GetTotalRefundMoney returns the total refund as Money
func (r *Return) GetTotalRefundMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(r.TotalRefund, r.Currency)
	return m
}

func (r *Return) recalculateTotalRefund() {
	total := decimal.Zero
	for _, item := range r.Items {
		total = total.Add(item.RefundAmount)
	}
	r.TotalRefund = total
}
