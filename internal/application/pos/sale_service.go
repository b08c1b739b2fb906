package pos

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/inventory"
	"github.com/pos/backend/internal/domain/ledger"
	"github.com/pos/backend/internal/domain/sales"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// SaleSettlementService settles checkouts against the cost ledger:
// per line it locks the product's layers, draws them FIFO, persists the
// consumption breakdown and recalculates the inventory aggregates, all
// inside one transaction.
type SaleSettlementService struct {
	scope           TransactionScope
	ledgerSvc       *ledger.Service
	logger          *zap.Logger
	defaultCurrency valueobject.Currency
}

// SaleSettlementOption customizes a SaleSettlementService
type SaleSettlementOption func(*SaleSettlementService)

// WithDefaultCurrency sets the currency applied when a request leaves
// it blank
func WithDefaultCurrency(currency valueobject.Currency) SaleSettlementOption {
	return func(s *SaleSettlementService) {
		if currency != "" {
			s.defaultCurrency = currency
		}
	}
}

// NewSaleSettlementService creates a new SaleSettlementService
func NewSaleSettlementService(scope TransactionScope, ledgerSvc *ledger.Service, logger *zap.Logger, opts ...SaleSettlementOption) *SaleSettlementService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &SaleSettlementService{
		scope:           scope,
		ledgerSvc:       ledgerSvc,
		logger:          logger,
		defaultCurrency: valueobject.DefaultCurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Settle records a sale and computes its cost of goods sold.
//
// An oversell never fails the sale: the ledger draw flags the uncovered
// remainder and prices it at the last known cost, and the flag is
// surfaced on the line for reconciliation.
func (s *SaleSettlementService) Settle(ctx context.Context, req CreateSaleRequest) (*SaleResponse, error) {
	if req.StoreID == uuid.Nil {
		return nil, shared.NewValidationError("store ID is required")
	}
	if len(req.Lines) == 0 {
		return nil, shared.NewValidationError("sale must carry at least one line")
	}

	currency := valueobject.Currency(req.Currency)
	if currency == "" {
		currency = s.defaultCurrency
	}

	var sale *sales.Sale

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		sale, err = sales.NewSale(req.StoreID, newSaleNumber(), currency)
		if err != nil {
			return err
		}

		for _, lineReq := range req.Lines {
			price, err := valueobject.NewMoney(lineReq.UnitPrice, currency)
			if err != nil {
				return shared.NewValidationError("invalid unit price: %v", err)
			}
			line, err := sale.AddLine(lineReq.ProductID, lineReq.Quantity, price)
			if err != nil {
				return err
			}
			if err := s.settleLine(ctx, repos, sale, line); err != nil {
				return err
			}
		}

		if err := sale.MarkSettled(); err != nil {
			return err
		}
		return repos.Sales().Create(ctx, sale)
	})
	if err != nil {
		return nil, asServiceError("settle sale", err)
	}

	drainDomainEvents(s.logger, sale)

	resp := ToSaleResponse(sale)
	return &resp, nil
}

// settleLine draws one line's quantity from the ledger. The inventory
// record row is locked before the layers; that ordering serializes all
// mutations for the store-product pair.
func (s *SaleSettlementService) settleLine(
	ctx context.Context,
	repos TransactionalRepositories,
	sale *sales.Sale,
	line *sales.SaleLine,
) error {
	record, err := repos.Records().GetOrCreateForUpdate(ctx, sale.StoreID, line.ProductID)
	if err != nil {
		return err
	}

	layers, err := repos.Layers().FindActiveForUpdate(ctx, sale.StoreID, line.ProductID)
	if err != nil {
		return err
	}

	consumption, err := s.ledgerSvc.ConsumeFIFO(layers, line.Quantity, record.AvgCost)
	if err != nil {
		return err
	}

	touched := make(map[uuid.UUID]bool, len(consumption.Parts))
	consumptions := make([]sales.SaleLineConsumption, 0, len(consumption.Parts))
	for _, part := range consumption.Parts {
		touched[part.LayerID] = true
		consumptions = append(consumptions, sales.SaleLineConsumption{
			BaseEntity:  shared.NewBaseEntity(),
			SaleLineID:  line.ID,
			CostLayerID: part.LayerID,
			Quantity:    part.Quantity,
			UnitCost:    part.UnitCost,
		})
	}

	for _, layer := range layers {
		if !touched[layer.ID] {
			continue
		}
		if err := repos.Layers().UpdateQuantityRemaining(ctx, layer); err != nil {
			return err
		}
	}

	line.ApplyCosting(consumptions, consumption.TotalCost(), consumption.ShortfallQuantity)

	if consumption.Shortfall {
		s.logger.Warn("ledger shortfall on sale line",
			zap.String("code", shared.ErrCodeLedgerShortfall),
			zap.String("store_id", sale.StoreID.String()),
			zap.String("product_id", line.ProductID.String()),
			zap.String("shortfall_quantity", consumption.ShortfallQuantity.String()),
			zap.String("shortfall_unit_cost", consumption.ShortfallUnitCost.String()),
		)
	}

	record.Recalculate(layerViews(layers))
	return repos.Records().Save(ctx, record)
}

// layerViews maps mutated layers into the slices the record needs
func layerViews(layers []*ledger.CostLayer) []inventory.LayerView {
	views := make([]inventory.LayerView, 0, len(layers))
	for _, layer := range layers {
		if layer.IsExhausted() {
			continue
		}
		views = append(views, inventory.LayerView{
			Quantity: layer.QuantityRemaining,
			UnitCost: layer.UnitCost,
		})
	}
	return views
}

// newSaleNumber generates a short human-readable sale number
func newSaleNumber() string {
	return fmt.Sprintf("S-%s", strings.ToUpper(uuid.NewString()[:8]))
}

// asServiceError passes domain errors through untouched and wraps
// everything else as a retryable persistence failure
func asServiceError(op string, err error) error {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	return shared.NewPersistenceError(op, err)
}
