package pos

import (
	"context"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/inventory"
	"github.com/pos/backend/internal/domain/ledger"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// InventoryService covers the layer-creating receipt path and the
// aggregate read path. Reads never expose layers; they are internal
// cost bookkeeping.
type InventoryService struct {
	scope           TransactionScope
	logger          *zap.Logger
	defaultCurrency valueobject.Currency
}

// InventoryOption customizes an InventoryService
type InventoryOption func(*InventoryService)

// WithReceiptCurrency sets the currency applied to receipts that leave
// it blank
func WithReceiptCurrency(currency valueobject.Currency) InventoryOption {
	return func(s *InventoryService) {
		if currency != "" {
			s.defaultCurrency = currency
		}
	}
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(scope TransactionScope, logger *zap.Logger, opts ...InventoryOption) *InventoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &InventoryService{
		scope:           scope,
		logger:          logger,
		defaultCurrency: valueobject.DefaultCurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Receive records a stock receipt: one new PURCHASE layer plus the
// aggregate recalculation, in one transaction
func (s *InventoryService) Receive(ctx context.Context, req ReceiptRequest) (*InventoryResponse, error) {
	if req.StoreID == uuid.Nil {
		return nil, shared.NewValidationError("store ID is required")
	}
	if req.ProductID == uuid.Nil {
		return nil, shared.NewValidationError("product ID is required")
	}

	currency := valueobject.Currency(req.Currency)
	if currency == "" {
		currency = s.defaultCurrency
	}
	unitCost, err := valueobject.NewMoney(req.UnitCost, currency)
	if err != nil {
		return nil, shared.NewValidationError("invalid unit cost: %v", err)
	}

	var (
		record *inventory.InventoryRecord
		layer  *ledger.CostLayer
	)

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		record, err = repos.Records().GetOrCreateForUpdate(ctx, req.StoreID, req.ProductID)
		if err != nil {
			return err
		}

		layer, err = ledger.NewCostLayer(req.StoreID, req.ProductID,
			req.Quantity, unitCost, ledger.SourcePurchase, req.Notes)
		if err != nil {
			return err
		}
		if err := repos.Layers().Create(ctx, layer); err != nil {
			return err
		}

		layers, err := repos.Layers().FindActiveForUpdate(ctx, req.StoreID, req.ProductID)
		if err != nil {
			return err
		}
		record.Recalculate(layerViews(layers))
		return repos.Records().Save(ctx, record)
	})
	if err != nil {
		return nil, asServiceError("receive stock", err)
	}

	drainDomainEvents(s.logger, layer, record)

	s.logger.Info("stock receipt recorded",
		zap.String("store_id", req.StoreID.String()),
		zap.String("product_id", req.ProductID.String()),
		zap.String("quantity", req.Quantity.String()),
		zap.String("currency", string(currency)),
	)

	resp := ToInventoryResponse(record)
	return &resp, nil
}

// Get returns the materialized aggregates for a store-product pair
func (s *InventoryService) Get(ctx context.Context, storeID, productID uuid.UUID) (*InventoryResponse, error) {
	if storeID == uuid.Nil {
		return nil, shared.NewValidationError("store ID is required")
	}
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("product ID is required")
	}

	var resp InventoryResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		record, err := repos.Records().FindByStoreAndProduct(ctx, storeID, productID)
		if err != nil {
			return err
		}
		resp = ToInventoryResponse(record)
		return nil
	})
	if err != nil {
		return nil, asServiceError("read inventory", err)
	}

	return &resp, nil
}
