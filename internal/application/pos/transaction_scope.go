package pos

import (
	"context"

	"github.com/pos/backend/internal/domain/inventory"
	"github.com/pos/backend/internal/domain/ledger"
	"github.com/pos/backend/internal/domain/sales"
)

// TransactionScope provides transactional access to the POS
// repositories. Everything executed within one scope shares a single
// database transaction and commits or rolls back atomically; every
// ledger mutation, aggregate recalculation and sale/return write runs
// inside one.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories bound
// to the current transaction
type TransactionalRepositories interface {
	// Layers returns the cost layer repository
	Layers() ledger.CostLayerRepository
	// Records returns the inventory record repository
	Records() inventory.InventoryRecordRepository
	// Sales returns the sale repository
	Sales() sales.SaleRepository
	// Returns returns the return repository
	Returns() sales.ReturnRepository
	// Holds returns the held transaction repository
	Holds() sales.HeldTransactionRepository
}

// NoOpTransactionScope runs the function against fixed repositories
// without opening a real transaction. Used in tests.
type NoOpTransactionScope struct {
	layerRepo  ledger.CostLayerRepository
	recordRepo inventory.InventoryRecordRepository
	saleRepo   sales.SaleRepository
	returnRepo sales.ReturnRepository
	holdRepo   sales.HeldTransactionRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	layerRepo ledger.CostLayerRepository,
	recordRepo inventory.InventoryRecordRepository,
	saleRepo sales.SaleRepository,
	returnRepo sales.ReturnRepository,
	holdRepo sales.HeldTransactionRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		layerRepo:  layerRepo,
		recordRepo: recordRepo,
		saleRepo:   saleRepo,
		returnRepo: returnRepo,
		holdRepo:   holdRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Layers returns the cost layer repository
func (s *NoOpTransactionScope) Layers() ledger.CostLayerRepository {
	return s.layerRepo
}

// Records returns the inventory record repository
func (s *NoOpTransactionScope) Records() inventory.InventoryRecordRepository {
	return s.recordRepo
}

// Sales returns the sale repository
func (s *NoOpTransactionScope) Sales() sales.SaleRepository {
	return s.saleRepo
}

// Returns returns the return repository
func (s *NoOpTransactionScope) Returns() sales.ReturnRepository {
	return s.returnRepo
}

// Holds returns the held transaction repository
func (s *NoOpTransactionScope) Holds() sales.HeldTransactionRepository {
	return s.holdRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
