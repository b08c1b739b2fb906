package sales

import (
	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constants
const (
	AggregateTypeSale   = "Sale"
	AggregateTypeReturn = "Return"
)

// Event type constants
const (
	EventTypeSaleSettled     = "SaleSettled"
	EventTypeReturnCreated   = "ReturnCreated"
	EventTypeReturnValidated = "ReturnValidated"
	EventTypeReturnCommitted = "ReturnCommitted"
)

// SaleSettledEvent is raised when a sale has been settled against the
// cost ledger
type SaleSettledEvent struct {
	shared.BaseDomainEvent
	SaleID      uuid.UUID       `json:"sale_id"`
	SaleNumber  string          `json:"sale_number"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	TotalCOGS   decimal.Decimal `json:"total_cogs"`
	Shortfall   bool            `json:"shortfall"`
}

// NewSaleSettledEvent creates a new SaleSettledEvent
func NewSaleSettledEvent(sale *Sale) *SaleSettledEvent {
	return &SaleSettledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleSettled, AggregateTypeSale, sale.ID, sale.StoreID),
		SaleID:          sale.ID,
		SaleNumber:      sale.SaleNumber,
		TotalAmount:     sale.TotalAmount,
		TotalCOGS:       sale.TotalCOGS,
		Shortfall:       sale.Shortfall,
	}
}

// EventType returns the event type name
func (e *SaleSettledEvent) EventType() string {
	return EventTypeSaleSettled
}

// ReturnCreatedEvent is raised when a draft return is opened
type ReturnCreatedEvent struct {
	shared.BaseDomainEvent
	ReturnID uuid.UUID `json:"return_id"`
	SaleID   uuid.UUID `json:"sale_id"`
}

// NewReturnCreatedEvent creates a new ReturnCreatedEvent
func NewReturnCreatedEvent(r *Return) *ReturnCreatedEvent {
	return &ReturnCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReturnCreated, AggregateTypeReturn, r.ID, r.StoreID),
		ReturnID:        r.ID,
		SaleID:          r.SaleID,
	}
}

// EventType returns the event type name
func (e *ReturnCreatedEvent) EventType() string {
	return EventTypeReturnCreated
}

// ReturnValidatedEvent is raised when a return passes validation
type ReturnValidatedEvent struct {
	shared.BaseDomainEvent
	ReturnID    uuid.UUID       `json:"return_id"`
	SaleID      uuid.UUID       `json:"sale_id"`
	TotalRefund decimal.Decimal `json:"total_refund"`
}

// NewReturnValidatedEvent creates a new ReturnValidatedEvent
func NewReturnValidatedEvent(r *Return) *ReturnValidatedEvent {
	return &ReturnValidatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReturnValidated, AggregateTypeReturn, r.ID, r.StoreID),
		ReturnID:        r.ID,
		SaleID:          r.SaleID,
		TotalRefund:     r.TotalRefund,
	}
}

// EventType returns the event type name
func (e *ReturnValidatedEvent) EventType() string {
	return EventTypeReturnValidated
}

// ReturnCommittedEvent is raised when a return's stock and refund
// effects have been applied
type ReturnCommittedEvent struct {
	shared.BaseDomainEvent
	ReturnID    uuid.UUID       `json:"return_id"`
	SaleID      uuid.UUID       `json:"sale_id"`
	TotalRefund decimal.Decimal `json:"total_refund"`
	ItemCount   int             `json:"item_count"`
}

// NewReturnCommittedEvent creates a new ReturnCommittedEvent
func NewReturnCommittedEvent(r *Return) *ReturnCommittedEvent {
	return &ReturnCommittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReturnCommitted, AggregateTypeReturn, r.ID, r.StoreID),
		ReturnID:        r.ID,
		SaleID:          r.SaleID,
		TotalRefund:     r.TotalRefund,
		ItemCount:       len(r.Items),
	}
}

// EventType returns the event type name
func (e *ReturnCommittedEvent) EventType() string {
	return EventTypeReturnCommitted
}
