package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/ledger"
	"github.com/pos/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCostLayerRepository implements CostLayerRepository using GORM
type GormCostLayerRepository struct {
	db *gorm.DB
}

// NewGormCostLayerRepository creates a new GormCostLayerRepository
func NewGormCostLayerRepository(db *gorm.DB) *GormCostLayerRepository {
	return &GormCostLayerRepository{db: db}
}

// Create appends a new layer to the ledger
func (r *GormCostLayerRepository) Create(ctx context.Context, layer *ledger.CostLayer) error {
	return r.db.WithContext(ctx).Create(layer).Error
}

// CreateBatch appends multiple layers in one statement
func (r *GormCostLayerRepository) CreateBatch(ctx context.Context, layers []*ledger.CostLayer) error {
	if len(layers) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(layers).Error
}

// FindByID finds a layer by its ID
func (r *GormCostLayerRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.CostLayer, error) {
	var layer ledger.CostLayer
	if err := r.db.WithContext(ctx).First(&layer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &layer, nil
}

// FindActiveForUpdate loads the active layers for a store-product pair
// row-locked, in consumption order. Callers must already hold the
// inventory record lock for the pair.
func (r *GormCostLayerRepository) FindActiveForUpdate(ctx context.Context, storeID, productID uuid.UUID) ([]*ledger.CostLayer, error) {
	var layers []*ledger.CostLayer
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("store_id = ? AND product_id = ? AND quantity_remaining > 0", storeID, productID).
		Order("created_at ASC, id ASC").
		Find(&layers).Error; err != nil {
		return nil, err
	}
	return layers, nil
}

// FindActive loads the active layers without locking
func (r *GormCostLayerRepository) FindActive(ctx context.Context, storeID, productID uuid.UUID) ([]*ledger.CostLayer, error) {
	var layers []*ledger.CostLayer
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND product_id = ? AND quantity_remaining > 0", storeID, productID).
		Order("created_at ASC, id ASC").
		Find(&layers).Error; err != nil {
		return nil, err
	}
	return layers, nil
}

// FindByProduct loads all layers for a store-product pair, exhausted
// layers included
func (r *GormCostLayerRepository) FindByProduct(ctx context.Context, storeID, productID uuid.UUID, filter shared.Filter) ([]ledger.CostLayer, error) {
	var layers []ledger.CostLayer
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&ledger.CostLayer{}).
			Where("store_id = ? AND product_id = ?", storeID, productID),
		filter,
	)

	if err := query.Find(&layers).Error; err != nil {
		return nil, err
	}
	return layers, nil
}

// UpdateQuantityRemaining persists a layer's decremented quantity
func (r *GormCostLayerRepository) UpdateQuantityRemaining(ctx context.Context, layer *ledger.CostLayer) error {
	return r.db.WithContext(ctx).
		Model(&ledger.CostLayer{}).
		Where("id = ?", layer.ID).
		Updates(map[string]interface{}{
			"quantity_remaining": layer.QuantityRemaining,
			"version":            layer.Version,
			"updated_at":         layer.UpdatedAt,
		}).Error
}

// HasLayers reports whether any layer exists for the store-product pair
func (r *GormCostLayerRepository) HasLayers(ctx context.Context, storeID, productID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&ledger.CostLayer{}).
		Where("store_id = ? AND product_id = ?", storeID, productID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountForStore counts layers for a store
func (r *GormCostLayerRepository) CountForStore(ctx context.Context, storeID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&ledger.CostLayer{}).
		Where("store_id = ?", storeID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormCostLayerRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
		query = query.Order("created_at ASC, id ASC")
	}

	for key, value := range filter.Filters {
		switch key {
		case "source":
			query = query.Where("source = ?", value)
		case "active":
			if value == true {
				query = query.Where("quantity_remaining > 0")
			}
		}
	}

	return query
}

// Ensure GormCostLayerRepository implements CostLayerRepository
var _ ledger.CostLayerRepository = (*GormCostLayerRepository)(nil)
