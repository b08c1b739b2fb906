package sales

import (
	"context"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
)

// SaleRepository defines the interface for sale persistence
type SaleRepository interface {
	// Create persists a settled sale with its lines and consumptions
	Create(ctx context.Context, sale *Sale) error

	// FindByID loads a sale with lines and their consumptions
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)

	// FindByIDForUpdate loads a sale row-locked for the current
	// transaction. Return settlement takes this lock so concurrent
	// returns against one sale serialize on the cumulative check.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Sale, error)

	// SaveLine persists an updated sale line (returned quantity)
	SaveLine(ctx context.Context, line *SaleLine) error

	// FindAllForStore lists sales for a store
	FindAllForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]Sale, error)

	// CountForStore counts sales for a store
	CountForStore(ctx context.Context, storeID uuid.UUID) (int64, error)
}

// ReturnRepository defines the interface for return persistence
type ReturnRepository interface {
	// Create persists a return with its items
	Create(ctx context.Context, r *Return) error

	// FindByID loads a return with its items
	FindByID(ctx context.Context, id uuid.UUID) (*Return, error)

	// FindBySale lists returns recorded against a sale
	FindBySale(ctx context.Context, saleID uuid.UUID) ([]Return, error)

	// FindAllForStore lists returns for a store
	FindAllForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]Return, error)
}

// HeldTransactionRepository defines the interface for suspended carts.
// Holds live in the same SQL store as everything else so resume can
// delete-and-return in one transaction.
type HeldTransactionRepository interface {
	// Create parks a cart
	Create(ctx context.Context, held *HeldTransaction) error

	// FindByID loads a hold with its items
	FindByID(ctx context.Context, id uuid.UUID) (*HeldTransaction, error)

	// FindAllForStore lists holds for a store, oldest first
	FindAllForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]HeldTransaction, error)

	// TakeForResume loads the hold row-locked and deletes it, so a hold
	// can only ever be resumed once. Must run inside a transaction.
	TakeForResume(ctx context.Context, storeID, id uuid.UUID) (*HeldTransaction, error)

	// Delete discards a hold explicitly
	Delete(ctx context.Context, storeID, id uuid.UUID) error
}
