package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
)

// InventoryRecordRepository defines the interface for inventory record
// persistence. Settlement paths lock the record row first and the
// product's layers second; that ordering is what serializes concurrent
// mutations for a store-product pair.
type InventoryRecordRepository interface {
	// Create creates a new record
	Create(ctx context.Context, record *InventoryRecord) error

	// FindByStoreAndProduct finds the record for a store-product pair
	FindByStoreAndProduct(ctx context.Context, storeID, productID uuid.UUID) (*InventoryRecord, error)

	// FindForUpdate loads the record row-locked for the current
	// transaction. Must be taken before any layer lock.
	FindForUpdate(ctx context.Context, storeID, productID uuid.UUID) (*InventoryRecord, error)

	// GetOrCreateForUpdate loads the record row-locked, creating an
	// empty one first if the pair has never been stocked
	GetOrCreateForUpdate(ctx context.Context, storeID, productID uuid.UUID) (*InventoryRecord, error)

	// Save persists the recalculated record
	Save(ctx context.Context, record *InventoryRecord) error

	// FindAllForStore lists records for a store
	FindAllForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]InventoryRecord, error)

	// FindStocked lists all records with positive quantity across every
	// store. Backfill input; not a request-serving path.
	FindStocked(ctx context.Context) ([]InventoryRecord, error)

	// CountForStore counts records for a store
	CountForStore(ctx context.Context, storeID uuid.UUID) (int64, error)
}
