package ledger

import (
	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeCostLayer = "CostLayer"

// Event type constants
const (
	EventTypeCostLayerCreated = "CostLayerCreated"
)

// CostLayerCreatedEvent is raised when a new layer enters the ledger
type CostLayerCreatedEvent struct {
	shared.BaseDomainEvent
	LayerID   uuid.UUID            `json:"layer_id"`
	ProductID uuid.UUID            `json:"product_id"`
	Quantity  valueobject.Quantity `json:"quantity"`
	UnitCost  decimal.Decimal      `json:"unit_cost"`
	Source    LayerSource          `json:"source"`
}

// NewCostLayerCreatedEvent creates a new CostLayerCreatedEvent
func NewCostLayerCreatedEvent(layer *CostLayer, quantity valueobject.Quantity) *CostLayerCreatedEvent {
	return &CostLayerCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCostLayerCreated, AggregateTypeCostLayer, layer.ID, layer.StoreID),
		LayerID:         layer.ID,
		ProductID:       layer.ProductID,
		Quantity:        quantity,
		UnitCost:        layer.UnitCost,
		Source:          layer.Source,
	}
}

// EventType returns the event type name
func (e *CostLayerCreatedEvent) EventType() string {
	return EventTypeCostLayerCreated
}
