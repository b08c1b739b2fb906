package pos

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/ledger"
	"github.com/pos/backend/internal/domain/sales"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReturnSettlementService settles customer returns against a settled
// sale. Validation happens in full before the first mutation; once
// anything moves, the whole return commits or the transaction rolls
// back.
type ReturnSettlementService struct {
	scope     TransactionScope
	ledgerSvc *ledger.Service
	logger    *zap.Logger
}

// NewReturnSettlementService creates a new ReturnSettlementService
func NewReturnSettlementService(scope TransactionScope, ledgerSvc *ledger.Service, logger *zap.Logger) *ReturnSettlementService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReturnSettlementService{
		scope:     scope,
		ledgerSvc: ledgerSvc,
		logger:    logger,
	}
}

// Settle validates and commits a return in one transaction.
//
// RESTOCK items recreate cost layers proportionally from the sale
// line's recorded consumption, so restored stock carries its original
// cost basis. DISCARD items move no stock; their cost stays written
// off. Refunds follow the item's refund type and the sale's currency.
func (s *ReturnSettlementService) Settle(ctx context.Context, req CreateReturnRequest) (*ReturnResponse, error) {
	if req.StoreID == uuid.Nil {
		return nil, shared.NewValidationError("store ID is required")
	}
	if req.SaleID == uuid.Nil {
		return nil, shared.NewValidationError("sale ID is required")
	}
	if len(req.Items) == 0 {
		return nil, shared.NewValidationError("return must carry at least one item")
	}

	var committed *sales.Return

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		sale, err := repos.Sales().FindByIDForUpdate(ctx, req.SaleID)
		if err != nil {
			return err
		}
		if sale.StoreID != req.StoreID {
			return shared.NewValidationError("sale %s does not belong to store %s", req.SaleID, req.StoreID)
		}

		r, err := sales.NewReturn(req.StoreID, sale.ID, sale.Currency)
		if err != nil {
			return err
		}

		// Validation phase: every item is checked against the sale
		// before anything mutates.
		lines := make([]*sales.SaleLine, 0, len(req.Items))
		for _, itemReq := range req.Items {
			if itemReq.Currency != "" && valueobject.Currency(itemReq.Currency) != sale.Currency {
				return shared.NewValidationError(
					"item currency %s does not match sale currency %s",
					itemReq.Currency, sale.Currency)
			}

			line, err := matchSaleLine(sale, itemReq)
			if err != nil {
				return err
			}

			_, err = r.AddItem(line, itemReq.Quantity,
				sales.RestockAction(itemReq.RestockAction),
				sales.RefundType(itemReq.RefundType),
				itemReq.RefundAmount)
			if err != nil {
				return err
			}
			lines = append(lines, line)
		}
		if err := r.Validate(); err != nil {
			return err
		}

		// Mutation phase.
		for idx, itemReq := range req.Items {
			line := lines[idx]
			if err := line.RecordReturn(itemReq.Quantity); err != nil {
				return err
			}
			if err := repos.Sales().SaveLine(ctx, line); err != nil {
				return err
			}

			if sales.RestockAction(itemReq.RestockAction) == sales.RestockActionRestock {
				if err := s.restock(ctx, repos, r, line, itemReq.Quantity); err != nil {
					return err
				}
			}
		}

		if err := r.Commit(); err != nil {
			return err
		}
		if err := repos.Returns().Create(ctx, r); err != nil {
			return err
		}

		committed = r
		return nil
	})
	if err != nil {
		return nil, asServiceError("settle return", err)
	}

	drainDomainEvents(s.logger, committed)

	resp := ToReturnResponse(committed)
	return &resp, nil
}

// restock recreates cost layers for a returned quantity and brings the
// inventory aggregates back in line. Lock ordering matches settlement:
// record row first, then the layers.
func (s *ReturnSettlementService) restock(
	ctx context.Context,
	repos TransactionalRepositories,
	r *sales.Return,
	line *sales.SaleLine,
	quantity decimal.Decimal,
) error {
	record, err := repos.Records().GetOrCreateForUpdate(ctx, r.StoreID, line.ProductID)
	if err != nil {
		return err
	}

	notes := fmt.Sprintf("return %s against sale line %s", r.ID, line.ID)

	if len(line.Consumptions) > 0 {
		parts := make([]ledger.ConsumptionPart, 0, len(line.Consumptions))
		for _, c := range line.Consumptions {
			parts = append(parts, ledger.ConsumptionPart{
				LayerID:  c.CostLayerID,
				Quantity: c.Quantity,
				UnitCost: c.UnitCost,
			})
		}

		split, err := s.ledgerSvc.SplitRestock(parts, quantity)
		if err != nil {
			return err
		}
		for _, part := range split {
			unitCost, err := valueobject.NewMoney(part.UnitCost, r.Currency)
			if err != nil {
				return err
			}
			layer, err := ledger.NewCostLayer(r.StoreID, line.ProductID,
				part.Quantity, unitCost,
				ledger.SourceReturnRestock, notes)
			if err != nil {
				return err
			}
			if err := repos.Layers().Create(ctx, layer); err != nil {
				return err
			}
		}
	} else {
		// The line predates the ledger: restore at the current average
		// cost. When no cost can be derived the restock is skipped and
		// flagged; the backfill reconciles such rows.
		unitCost := record.DeriveLegacyUnitCost()
		if !unitCost.IsPositive() {
			s.logger.Warn("return restock skipped, no derivable cost",
				zap.String("code", shared.ErrCodeLedgerShortfall),
				zap.String("store_id", r.StoreID.String()),
				zap.String("product_id", line.ProductID.String()),
				zap.String("sale_line_id", line.ID.String()),
			)
			return nil
		}
		cost, err := valueobject.NewMoney(unitCost, r.Currency)
		if err != nil {
			return err
		}
		layer, err := ledger.NewCostLayer(r.StoreID, line.ProductID,
			quantity, cost,
			ledger.SourceReturnRestock, notes)
		if err != nil {
			return err
		}
		if err := repos.Layers().Create(ctx, layer); err != nil {
			return err
		}
	}

	layers, err := repos.Layers().FindActiveForUpdate(ctx, r.StoreID, line.ProductID)
	if err != nil {
		return err
	}
	record.Recalculate(layerViews(layers))
	return repos.Records().Save(ctx, record)
}

// matchSaleLine resolves the sale line a return item refers to, either
// by explicit line ID or by product with returnable quantity left
func matchSaleLine(sale *sales.Sale, itemReq ReturnItemRequest) (*sales.SaleLine, error) {
	if itemReq.SaleLineID != nil {
		line := sale.GetLine(*itemReq.SaleLineID)
		if line == nil {
			return nil, shared.NewValidationError("sale line %s not found on sale %s", itemReq.SaleLineID, sale.ID)
		}
		if line.ProductID != itemReq.ProductID {
			return nil, shared.NewValidationError("sale line %s does not carry product %s", itemReq.SaleLineID, itemReq.ProductID)
		}
		return line, nil
	}

	for idx := range sale.Lines {
		line := &sale.Lines[idx]
		if line.ProductID == itemReq.ProductID && line.ReturnableQuantity().IsPositive() {
			return line, nil
		}
	}
	return nil, shared.NewValidationError("sale %s has no returnable line for product %s", sale.ID, itemReq.ProductID)
}
