package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/sales"
	"github.com/pos/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormReturnRepository implements ReturnRepository using GORM
type GormReturnRepository struct {
	db *gorm.DB
}

// NewGormReturnRepository creates a new GormReturnRepository
func NewGormReturnRepository(db *gorm.DB) *GormReturnRepository {
	return &GormReturnRepository{db: db}
}

// Create persists a return with its items
func (r *GormReturnRepository) Create(ctx context.Context, ret *sales.Return) error {
	return r.db.WithContext(ctx).Create(ret).Error
}

// FindByID loads a return with its items
func (r *GormReturnRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Return, error) {
	var ret sales.Return
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&ret, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ret, nil
}

// FindBySale lists returns recorded against a sale
func (r *GormReturnRepository) FindBySale(ctx context.Context, saleID uuid.UUID) ([]sales.Return, error) {
	var result []sales.Return
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("sale_id = ?", saleID).
		Order("created_at ASC").
		Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// FindAllForStore lists returns for a store
func (r *GormReturnRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]sales.Return, error) {
	var result []sales.Return
	query := r.db.WithContext(ctx).Model(&sales.Return{}).
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
		query = query.Order("created_at DESC")
	}

	if err := query.Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// Ensure GormReturnRepository implements ReturnRepository
var _ sales.ReturnRepository = (*GormReturnRepository)(nil)
