package persistence

import (
	"context"

	"github.com/pos/backend/internal/application/pos"
	"github.com/pos/backend/internal/domain/inventory"
	"github.com/pos/backend/internal/domain/ledger"
	"github.com/pos/backend/internal/domain/sales"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM
// transactions. Every settlement, receipt, backfill and hold mutation
// runs through one of these.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos pos.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides access to the repositories
// bound to the current transaction
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// Layers returns the cost layer repository scoped to the current transaction
func (r *gormTransactionalRepositories) Layers() ledger.CostLayerRepository {
	return NewGormCostLayerRepository(r.tx)
}

// Records returns the inventory record repository scoped to the current transaction
func (r *gormTransactionalRepositories) Records() inventory.InventoryRecordRepository {
	return NewGormInventoryRecordRepository(r.tx)
}

// Sales returns the sale repository scoped to the current transaction
func (r *gormTransactionalRepositories) Sales() sales.SaleRepository {
	return NewGormSaleRepository(r.tx)
}

// Returns returns the return repository scoped to the current transaction
func (r *gormTransactionalRepositories) Returns() sales.ReturnRepository {
	return NewGormReturnRepository(r.tx)
}

// Holds returns the held transaction repository scoped to the current transaction
func (r *gormTransactionalRepositories) Holds() sales.HeldTransactionRepository {
	return NewGormHeldTransactionRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ pos.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ pos.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
