package sales

import (
	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// HeldItem is one cart position inside a suspended transaction
type HeldItem struct {
	shared.BaseEntity
	HeldTransactionID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID         uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (HeldItem) TableName() string {
	return "held_transaction_items"
}

// HeldTransaction is a suspended cart: a checkout parked mid-flight so
// the register can serve the next customer. The cart, the payment draft
// and any loyalty redemption state ride along so resuming restores the
// exact position.
//
// A hold is consumed exactly once: resume deletes the row inside the
// same transaction that returns it, and discard deletes it explicitly.
type HeldTransaction struct {
	shared.StoreAggregateRoot
	Label             string               `gorm:"type:varchar(100)"`
	CashierID         uuid.UUID            `gorm:"type:uuid"`
	Currency          valueobject.Currency `gorm:"type:varchar(3);not null"`
	PaymentDraft      string               `gorm:"type:jsonb"`
	LoyaltyRedemption string               `gorm:"type:jsonb"`

	Items []HeldItem `gorm:"foreignKey:HeldTransactionID;references:ID"`
}

// TableName returns the table name for GORM
func (HeldTransaction) TableName() string {
	return "held_transactions"
}

// NewHeldTransaction suspends a cart for a store
func NewHeldTransaction(
	storeID, cashierID uuid.UUID,
	label string,
	currency valueobject.Currency,
	paymentDraft, loyaltyRedemption string,
) (*HeldTransaction, error) {
	if storeID == uuid.Nil {
		return nil, shared.NewValidationError("store ID cannot be empty")
	}
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}

	return &HeldTransaction{
		StoreAggregateRoot: shared.NewStoreAggregateRoot(storeID),
		Label:              label,
		CashierID:          cashierID,
		Currency:           currency,
		PaymentDraft:       paymentDraft,
		LoyaltyRedemption:  loyaltyRedemption,
		Items:              make([]HeldItem, 0),
	}, nil
}

// AddItem parks a cart position on the hold
func (h *HeldTransaction) AddItem(productID uuid.UUID, quantity, unitPrice decimal.Decimal) error {
	if productID == uuid.Nil {
		return shared.NewValidationError("product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewValidationError("held quantity must be positive, got %s", quantity)
	}
	if unitPrice.IsNegative() {
		return shared.NewValidationError("unit price cannot be negative")
	}

	h.Items = append(h.Items, HeldItem{
		BaseEntity:        shared.NewBaseEntity(),
		HeldTransactionID: h.ID,
		ProductID:         productID,
		Quantity:          quantity,
		UnitPrice:         unitPrice,
	})

	return nil
}

// IsEmpty returns true when the hold carries no cart positions
func (h *HeldTransaction) IsEmpty() bool {
	return len(h.Items) == 0
}

// TotalAmount returns the cart value at the held prices
func (h *HeldTransaction) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, item := range h.Items {
		total = total.Add(item.Quantity.Mul(item.UnitPrice))
	}
	return total
}
