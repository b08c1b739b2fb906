package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/sales"
	"github.com/pos/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormHeldTransactionRepository implements HeldTransactionRepository
// using GORM
type GormHeldTransactionRepository struct {
	db *gorm.DB
}

// NewGormHeldTransactionRepository creates a new GormHeldTransactionRepository
func NewGormHeldTransactionRepository(db *gorm.DB) *GormHeldTransactionRepository {
	return &GormHeldTransactionRepository{db: db}
}

// Create parks a cart
func (r *GormHeldTransactionRepository) Create(ctx context.Context, held *sales.HeldTransaction) error {
	return r.db.WithContext(ctx).Create(held).Error
}

// FindByID loads a hold with its items
func (r *GormHeldTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.HeldTransaction, error) {
	var held sales.HeldTransaction
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&held, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &held, nil
}

// FindAllForStore lists holds for a store, oldest first
func (r *GormHeldTransactionRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]sales.HeldTransaction, error) {
	var result []sales.HeldTransaction
	query := r.db.WithContext(ctx).Model(&sales.HeldTransaction{}).
		Preload("Items").
		Where("store_id = ?", storeID)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at ASC")
	}
	if filter.Search != "" {
		query = query.Where("label ILIKE ?", "%"+filter.Search+"%")
	}

	if err := query.Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// TakeForResume loads the hold row-locked and deletes it in the same
// transaction. Two registers racing for one hold serialize on the lock;
// the loser sees the row gone.
func (r *GormHeldTransactionRepository) TakeForResume(ctx context.Context, storeID, id uuid.UUID) (*sales.HeldTransaction, error) {
	var held sales.HeldTransaction
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&held, "id = ? AND store_id = ?", id, storeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&held, "id = ?", id).Error; err != nil {
		return nil, err
	}

	if err := r.deleteWithItems(ctx, id); err != nil {
		return nil, err
	}
	return &held, nil
}

// Delete discards a hold explicitly
func (r *GormHeldTransactionRepository) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND store_id = ?", id, storeID).
		Delete(&sales.HeldTransaction{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return r.db.WithContext(ctx).
		Where("held_transaction_id = ?", id).
		Delete(&sales.HeldItem{}).Error
}

func (r *GormHeldTransactionRepository) deleteWithItems(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("held_transaction_id = ?", id).
		Delete(&sales.HeldItem{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Delete(&sales.HeldTransaction{}, "id = ?", id).Error
}

// Ensure GormHeldTransactionRepository implements HeldTransactionRepository
var _ sales.HeldTransactionRepository = (*GormHeldTransactionRepository)(nil)
