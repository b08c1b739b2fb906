package inventory

import (
	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeInventoryRecord = "InventoryRecord"

// Event type constants
const (
	EventTypeInventoryRecalculated = "InventoryRecalculated"
)

// InventoryRecalculatedEvent is raised when a record is recomputed
// from its remaining cost layers
type InventoryRecalculatedEvent struct {
	shared.BaseDomainEvent
	RecordID    uuid.UUID            `json:"record_id"`
	ProductID   uuid.UUID            `json:"product_id"`
	OldQuantity valueobject.Quantity `json:"old_quantity"`
	NewQuantity valueobject.Quantity `json:"new_quantity"`
	AvgCost     decimal.Decimal      `json:"avg_cost"`
}

// NewInventoryRecalculatedEvent creates a new InventoryRecalculatedEvent
func NewInventoryRecalculatedEvent(record *InventoryRecord, oldQuantity valueobject.Quantity) *InventoryRecalculatedEvent {
	return &InventoryRecalculatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInventoryRecalculated, AggregateTypeInventoryRecord, record.ID, record.StoreID),
		RecordID:        record.ID,
		ProductID:       record.ProductID,
		OldQuantity:     oldQuantity,
		NewQuantity:     valueobject.MustNewQuantity(record.Quantity),
		AvgCost:         record.AvgCost,
	}
}

// EventType returns the event type name
func (e *InventoryRecalculatedEvent) EventType() string {
	return EventTypeInventoryRecalculated
}
