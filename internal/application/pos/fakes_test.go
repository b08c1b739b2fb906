package pos

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/inventory"
	"github.com/pos/backend/internal/domain/ledger"
	"github.com/pos/backend/internal/domain/sales"
	"github.com/pos/backend/internal/domain/shared"
)

// In-memory repositories backing the service tests. Mutations are
// visible immediately, mirroring what row locks give the real
// repositories inside one transaction.

type storeProduct struct {
	storeID   uuid.UUID
	productID uuid.UUID
}

type fakeLayerRepo struct {
	layers []*ledger.CostLayer
}

func (f *fakeLayerRepo) Create(_ context.Context, layer *ledger.CostLayer) error {
	f.layers = append(f.layers, layer)
	return nil
}

func (f *fakeLayerRepo) CreateBatch(ctx context.Context, layers []*ledger.CostLayer) error {
	for _, layer := range layers {
		if err := f.Create(ctx, layer); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeLayerRepo) FindByID(_ context.Context, id uuid.UUID) (*ledger.CostLayer, error) {
	for _, layer := range f.layers {
		if layer.ID == id {
			return layer, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeLayerRepo) FindActiveForUpdate(_ context.Context, storeID, productID uuid.UUID) ([]*ledger.CostLayer, error) {
	result := make([]*ledger.CostLayer, 0)
	for _, layer := range f.layers {
		if layer.StoreID == storeID && layer.ProductID == productID && !layer.IsExhausted() {
			result = append(result, layer)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID.String() < result[j].ID.String()
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (f *fakeLayerRepo) FindActive(ctx context.Context, storeID, productID uuid.UUID) ([]*ledger.CostLayer, error) {
	return f.FindActiveForUpdate(ctx, storeID, productID)
}

func (f *fakeLayerRepo) FindByProduct(_ context.Context, storeID, productID uuid.UUID, _ shared.Filter) ([]ledger.CostLayer, error) {
	result := make([]ledger.CostLayer, 0)
	for _, layer := range f.layers {
		if layer.StoreID == storeID && layer.ProductID == productID {
			result = append(result, *layer)
		}
	}
	return result, nil
}

func (f *fakeLayerRepo) UpdateQuantityRemaining(_ context.Context, _ *ledger.CostLayer) error {
	// In-memory layers are mutated in place.
	return nil
}

func (f *fakeLayerRepo) HasLayers(_ context.Context, storeID, productID uuid.UUID) (bool, error) {
	for _, layer := range f.layers {
		if layer.StoreID == storeID && layer.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLayerRepo) CountForStore(_ context.Context, storeID uuid.UUID) (int64, error) {
	var count int64
	for _, layer := range f.layers {
		if layer.StoreID == storeID {
			count++
		}
	}
	return count, nil
}

type fakeRecordRepo struct {
	records map[storeProduct]*inventory.InventoryRecord
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{records: make(map[storeProduct]*inventory.InventoryRecord)}
}

func (f *fakeRecordRepo) Create(_ context.Context, record *inventory.InventoryRecord) error {
	f.records[storeProduct{record.StoreID, record.ProductID}] = record
	return nil
}

func (f *fakeRecordRepo) FindByStoreAndProduct(_ context.Context, storeID, productID uuid.UUID) (*inventory.InventoryRecord, error) {
	record, ok := f.records[storeProduct{storeID, productID}]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return record, nil
}

func (f *fakeRecordRepo) FindForUpdate(ctx context.Context, storeID, productID uuid.UUID) (*inventory.InventoryRecord, error) {
	return f.FindByStoreAndProduct(ctx, storeID, productID)
}

func (f *fakeRecordRepo) GetOrCreateForUpdate(ctx context.Context, storeID, productID uuid.UUID) (*inventory.InventoryRecord, error) {
	if record, err := f.FindByStoreAndProduct(ctx, storeID, productID); err == nil {
		return record, nil
	}
	record, err := inventory.NewInventoryRecord(storeID, productID)
	if err != nil {
		return nil, err
	}
	f.records[storeProduct{storeID, productID}] = record
	return record, nil
}

func (f *fakeRecordRepo) Save(_ context.Context, _ *inventory.InventoryRecord) error {
	return nil
}

func (f *fakeRecordRepo) FindAllForStore(_ context.Context, storeID uuid.UUID, _ shared.Filter) ([]inventory.InventoryRecord, error) {
	result := make([]inventory.InventoryRecord, 0)
	for _, record := range f.records {
		if record.StoreID == storeID {
			result = append(result, *record)
		}
	}
	return result, nil
}

func (f *fakeRecordRepo) FindStocked(_ context.Context) ([]inventory.InventoryRecord, error) {
	result := make([]inventory.InventoryRecord, 0)
	for _, record := range f.records {
		if record.HasStock() {
			result = append(result, *record)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID.String() < result[j].ID.String()
	})
	return result, nil
}

func (f *fakeRecordRepo) CountForStore(_ context.Context, storeID uuid.UUID) (int64, error) {
	var count int64
	for _, record := range f.records {
		if record.StoreID == storeID {
			count++
		}
	}
	return count, nil
}

type fakeSaleRepo struct {
	sales map[uuid.UUID]*sales.Sale
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{sales: make(map[uuid.UUID]*sales.Sale)}
}

func (f *fakeSaleRepo) Create(_ context.Context, sale *sales.Sale) error {
	f.sales[sale.ID] = sale
	return nil
}

func (f *fakeSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*sales.Sale, error) {
	sale, ok := f.sales[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return sale, nil
}

func (f *fakeSaleRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeSaleRepo) SaveLine(_ context.Context, _ *sales.SaleLine) error {
	return nil
}

func (f *fakeSaleRepo) FindAllForStore(_ context.Context, storeID uuid.UUID, _ shared.Filter) ([]sales.Sale, error) {
	result := make([]sales.Sale, 0)
	for _, sale := range f.sales {
		if sale.StoreID == storeID {
			result = append(result, *sale)
		}
	}
	return result, nil
}

func (f *fakeSaleRepo) CountForStore(_ context.Context, storeID uuid.UUID) (int64, error) {
	var count int64
	for _, sale := range f.sales {
		if sale.StoreID == storeID {
			count++
		}
	}
	return count, nil
}

type fakeReturnRepo struct {
	returns map[uuid.UUID]*sales.Return
}

func newFakeReturnRepo() *fakeReturnRepo {
	return &fakeReturnRepo{returns: make(map[uuid.UUID]*sales.Return)}
}

func (f *fakeReturnRepo) Create(_ context.Context, r *sales.Return) error {
	f.returns[r.ID] = r
	return nil
}

func (f *fakeReturnRepo) FindByID(_ context.Context, id uuid.UUID) (*sales.Return, error) {
	r, ok := f.returns[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return r, nil
}

func (f *fakeReturnRepo) FindBySale(_ context.Context, saleID uuid.UUID) ([]sales.Return, error) {
	result := make([]sales.Return, 0)
	for _, r := range f.returns {
		if r.SaleID == saleID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (f *fakeReturnRepo) FindAllForStore(_ context.Context, storeID uuid.UUID, _ shared.Filter) ([]sales.Return, error) {
	result := make([]sales.Return, 0)
	for _, r := range f.returns {
		if r.StoreID == storeID {
			result = append(result, *r)
		}
	}
	return result, nil
}

type fakeHoldRepo struct {
	holds map[uuid.UUID]*sales.HeldTransaction
}

func newFakeHoldRepo() *fakeHoldRepo {
	return &fakeHoldRepo{holds: make(map[uuid.UUID]*sales.HeldTransaction)}
}

func (f *fakeHoldRepo) Create(_ context.Context, held *sales.HeldTransaction) error {
	f.holds[held.ID] = held
	return nil
}

func (f *fakeHoldRepo) FindByID(_ context.Context, id uuid.UUID) (*sales.HeldTransaction, error) {
	held, ok := f.holds[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return held, nil
}

func (f *fakeHoldRepo) FindAllForStore(_ context.Context, storeID uuid.UUID, _ shared.Filter) ([]sales.HeldTransaction, error) {
	result := make([]sales.HeldTransaction, 0)
	for _, held := range f.holds {
		if held.StoreID == storeID {
			result = append(result, *held)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (f *fakeHoldRepo) TakeForResume(_ context.Context, storeID, id uuid.UUID) (*sales.HeldTransaction, error) {
	held, ok := f.holds[id]
	if !ok || held.StoreID != storeID {
		return nil, shared.ErrNotFound
	}
	delete(f.holds, id)
	return held, nil
}

func (f *fakeHoldRepo) Delete(_ context.Context, storeID, id uuid.UUID) error {
	held, ok := f.holds[id]
	if !ok || held.StoreID != storeID {
		return shared.ErrNotFound
	}
	delete(f.holds, id)
	return nil
}

// testEnv bundles the fakes behind a NoOpTransactionScope
type testEnv struct {
	scope   *NoOpTransactionScope
	layers  *fakeLayerRepo
	records *fakeRecordRepo
	sales   *fakeSaleRepo
	returns *fakeReturnRepo
	holds   *fakeHoldRepo
}

func newTestEnv() *testEnv {
	layers := &fakeLayerRepo{}
	records := newFakeRecordRepo()
	saleRepo := newFakeSaleRepo()
	returnRepo := newFakeReturnRepo()
	holdRepo := newFakeHoldRepo()
	return &testEnv{
		scope:   NewNoOpTransactionScope(layers, records, saleRepo, returnRepo, holdRepo),
		layers:  layers,
		records: records,
		sales:   saleRepo,
		returns: returnRepo,
		holds:   holdRepo,
	}
}
