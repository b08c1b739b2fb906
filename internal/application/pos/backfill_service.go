package pos

import (
	"context"

	"github.com/pos/backend/internal/domain/ledger"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// BackfillService seeds the cost ledger from inventory records that
// predate it. Legacy rows carry stock with no layers behind it; the
// backfill derives a unit cost from the record's aggregates and writes
// one BACKFILL_LEGACY layer per record.
//
// The whole run is one transaction: it either converts every eligible
// record or none. Gated per record by the has-layers check, so re-runs
// are no-ops. Meant for offline invocation (cmd/backfill or the admin
// route), never a request-serving path.
type BackfillService struct {
	scope     TransactionScope
	logger    *zap.Logger
	batchSize int
	currency  valueobject.Currency
}

// BackfillOption customizes a BackfillService
type BackfillOption func(*BackfillService)

// WithBackfillBatchSize caps how many layers a single run creates.
// Records left unconverted are picked up by the next run; zero means
// no cap.
func WithBackfillBatchSize(n int) BackfillOption {
	return func(s *BackfillService) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// WithBackfillCurrency sets the currency seeded layers are priced in
func WithBackfillCurrency(currency valueobject.Currency) BackfillOption {
	return func(s *BackfillService) {
		if currency != "" {
			s.currency = currency
		}
	}
}

// NewBackfillService creates a new BackfillService
func NewBackfillService(scope TransactionScope, logger *zap.Logger, opts ...BackfillOption) *BackfillService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &BackfillService{
		scope:    scope,
		logger:   logger,
		currency: valueobject.DefaultCurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run inspects every stocked record and creates missing legacy layers.
//
// Records whose aggregates cannot yield a positive unit cost are
// skipped and counted; a zero-cost layer is never written. The created
// layer keeps the record's creation time so FIFO order puts legacy
// stock ahead of everything received since.
func (s *BackfillService) Run(ctx context.Context) (*BackfillReport, error) {
	report := &BackfillReport{}

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		records, err := repos.Records().FindStocked(ctx)
		if err != nil {
			return err
		}

		for idx := range records {
			if s.batchSize > 0 && report.Created >= s.batchSize {
				break
			}
			record := &records[idx]
			report.Inspected++

			hasLayers, err := repos.Layers().HasLayers(ctx, record.StoreID, record.ProductID)
			if err != nil {
				return err
			}
			if hasLayers {
				report.Skipped++
				continue
			}

			unitCost := record.DeriveLegacyUnitCost()
			if !unitCost.IsPositive() {
				report.Skipped++
				s.logger.Warn("backfill skipped record with no derivable cost",
					zap.String("store_id", record.StoreID.String()),
					zap.String("product_id", record.ProductID.String()),
					zap.String("quantity", record.Quantity.String()),
				)
				continue
			}

			cost, err := valueobject.NewMoney(unitCost, s.currency)
			if err != nil {
				return err
			}
			layer, err := ledger.NewCostLayer(record.StoreID, record.ProductID,
				record.Quantity, cost,
				ledger.SourceBackfillLegacy, "seeded from legacy inventory aggregates")
			if err != nil {
				return err
			}
			// Preserve FIFO order: the legacy stock was there first.
			layer.CreatedAt = record.CreatedAt

			if err := repos.Layers().Create(ctx, layer); err != nil {
				return err
			}
			report.Created++
		}

		return nil
	})
	if err != nil {
		return nil, asServiceError("backfill ledger", err)
	}

	s.logger.Info("ledger backfill finished",
		zap.Int("inspected", report.Inspected),
		zap.Int("created", report.Created),
		zap.Int("skipped", report.Skipped),
	)

	return report, nil
}
