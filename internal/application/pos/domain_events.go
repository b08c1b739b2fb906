package pos

import (
	"github.com/pos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// drainDomainEvents logs the events an aggregate collected during a
// committed transaction and clears them. The engine runs as a single
// bounded context with no broker attached, so the log line is where
// the events land.
func drainDomainEvents(logger *zap.Logger, roots ...shared.AggregateRoot) {
	for _, root := range roots {
		for _, event := range root.GetDomainEvents() {
			logger.Info("domain event",
				zap.String("event_id", event.EventID().String()),
				zap.String("event_type", event.EventType()),
				zap.String("aggregate_type", event.AggregateType()),
				zap.String("aggregate_id", event.AggregateID().String()),
				zap.String("store_id", event.StoreID().String()),
			)
		}
		root.ClearDomainEvents()
	}
}
