package pos

import (
	"context"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/sales"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// HoldService manages suspended carts. Holds live in the same SQL
// store as the ledger so resume can delete-and-return in a single
// transaction, which is what makes a hold consumable exactly once.
type HoldService struct {
	scope  TransactionScope
	logger *zap.Logger
}

// NewHoldService creates a new HoldService
func NewHoldService(scope TransactionScope, logger *zap.Logger) *HoldService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HoldService{
		scope:  scope,
		logger: logger,
	}
}

// Hold parks a cart
func (s *HoldService) Hold(ctx context.Context, req HoldRequest) (*HoldResponse, error) {
	if req.StoreID == uuid.Nil {
		return nil, shared.NewValidationError("store ID is required")
	}
	if len(req.Items) == 0 {
		return nil, shared.NewValidationError("cannot hold an empty cart")
	}

	held, err := sales.NewHeldTransaction(req.StoreID, req.CashierID, req.Label,
		valueobject.Currency(req.Currency), req.PaymentDraft, req.LoyaltyRedemption)
	if err != nil {
		return nil, err
	}
	for _, item := range req.Items {
		if err := held.AddItem(item.ProductID, item.Quantity, item.UnitPrice); err != nil {
			return nil, err
		}
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		return repos.Holds().Create(ctx, held)
	})
	if err != nil {
		return nil, asServiceError("hold transaction", err)
	}

	resp := ToHoldResponse(held)
	return &resp, nil
}

// List returns the holds parked at a store, oldest first
func (s *HoldService) List(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]HoldResponse, error) {
	if storeID == uuid.Nil {
		return nil, shared.NewValidationError("store ID is required")
	}

	var holds []sales.HeldTransaction
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		holds, err = repos.Holds().FindAllForStore(ctx, storeID, filter)
		return err
	})
	if err != nil {
		return nil, asServiceError("list holds", err)
	}

	responses := make([]HoldResponse, 0, len(holds))
	for idx := range holds {
		responses = append(responses, ToHoldResponse(&holds[idx]))
	}
	return responses, nil
}

// Resume takes a hold off the shelf. The row is deleted in the same
// transaction that returns it, so two registers racing for one hold
// cannot both win.
func (s *HoldService) Resume(ctx context.Context, storeID, holdID uuid.UUID) (*HoldResponse, error) {
	if storeID == uuid.Nil {
		return nil, shared.NewValidationError("store ID is required")
	}
	if holdID == uuid.Nil {
		return nil, shared.NewValidationError("hold ID is required")
	}

	var held *sales.HeldTransaction
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		held, err = repos.Holds().TakeForResume(ctx, storeID, holdID)
		return err
	})
	if err != nil {
		return nil, asServiceError("resume hold", err)
	}

	resp := ToHoldResponse(held)
	return &resp, nil
}

// Discard removes a hold without resuming it
func (s *HoldService) Discard(ctx context.Context, storeID, holdID uuid.UUID) error {
	if storeID == uuid.Nil {
		return shared.NewValidationError("store ID is required")
	}
	if holdID == uuid.Nil {
		return shared.NewValidationError("hold ID is required")
	}

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		return repos.Holds().Delete(ctx, storeID, holdID)
	})
	if err != nil {
		return asServiceError("discard hold", err)
	}
	return nil
}
