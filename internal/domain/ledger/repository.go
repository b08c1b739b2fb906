package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
)

// CostLayerRepository defines the interface for cost layer persistence.
//
// The ledger is append-only: layers are created and their remaining
// quantity is decremented, but rows are never deleted. Exhausted layers
// stay behind as the audit trail of what each sale consumed.
type CostLayerRepository interface {
	// Create appends a new layer to the ledger
	Create(ctx context.Context, layer *CostLayer) error

	// CreateBatch appends multiple layers in one statement
	CreateBatch(ctx context.Context, layers []*CostLayer) error

	// FindByID finds a layer by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*CostLayer, error)

	// FindActiveForUpdate loads all layers with remaining quantity for a
	// store-product pair, row-locked for the current transaction, in
	// consumption order (created_at ASC, id ASC as tiebreaker).
	FindActiveForUpdate(ctx context.Context, storeID, productID uuid.UUID) ([]*CostLayer, error)

	// FindActive loads layers with remaining quantity without locking,
	// in consumption order. Read paths only.
	FindActive(ctx context.Context, storeID, productID uuid.UUID) ([]*CostLayer, error)

	// FindByProduct loads all layers for a store-product pair, exhausted
	// layers included, in consumption order
	FindByProduct(ctx context.Context, storeID, productID uuid.UUID, filter shared.Filter) ([]CostLayer, error)

	// UpdateQuantityRemaining persists a layer's decremented quantity
	UpdateQuantityRemaining(ctx context.Context, layer *CostLayer) error

	// HasLayers reports whether any layer (active or exhausted) exists
	// for the store-product pair. Gates the legacy backfill.
	HasLayers(ctx context.Context, storeID, productID uuid.UUID) (bool, error)

	// CountForStore counts layers for a store
	CountForStore(ctx context.Context, storeID uuid.UUID) (int64, error)
}
