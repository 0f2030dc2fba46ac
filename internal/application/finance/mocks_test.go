package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mfg/backend/internal/domain/finance"
	"github.com/mfg/backend/internal/domain/inventory"
	"github.com/mfg/backend/internal/domain/production"
	"github.com/mfg/backend/internal/domain/sales"
	"github.com/mfg/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

// MockCashflowRepository is a mock implementation of CashflowRepository
type MockCashflowRepository struct {
	mock.Mock
}

func (m *MockCashflowRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Cashflow, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Cashflow), args.Error(1)
}

func (m *MockCashflowRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.Cashflow, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Cashflow), args.Error(1)
}

func (m *MockCashflowRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.CashflowFilter) ([]finance.Cashflow, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]finance.Cashflow), args.Error(1)
}

func (m *MockCashflowRepository) Save(ctx context.Context, cf *finance.Cashflow) error {
	args := m.Called(ctx, cf)
	return args.Error(0)
}

func (m *MockCashflowRepository) SaveWithLock(ctx context.Context, cf *finance.Cashflow) error {
	args := m.Called(ctx, cf)
	return args.Error(0)
}

func (m *MockCashflowRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockCashflowRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.CashflowFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCashflowRepository) SumByTypeAsOf(ctx context.Context, tenantID uuid.UUID, flowType finance.CashflowType, asOf *time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, flowType, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockCashflowRepository) SumOwnerInvestment(ctx context.Context, tenantID, ownerID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, ownerID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockCashflowRepository) SumSalesRevenueInPeriod(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockCashflowRepository) SumExpensesByCategoryInPeriod(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (map[finance.CashflowCategory]decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, from, to)
	return args.Get(0).(map[finance.CashflowCategory]decimal.Decimal), args.Error(1)
}

func (m *MockCashflowRepository) SumUnpaidExpensesAsOf(ctx context.Context, tenantID uuid.UUID, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

var _ finance.CashflowRepository = (*MockCashflowRepository)(nil)

// MockOwnerRepository is a mock implementation of OwnerRepository
type MockOwnerRepository struct {
	mock.Mock
}

func (m *MockOwnerRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Owner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Owner), args.Error(1)
}

func (m *MockOwnerRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.Owner, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Owner), args.Error(1)
}

func (m *MockOwnerRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.OwnerFilter) ([]finance.Owner, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]finance.Owner), args.Error(1)
}

func (m *MockOwnerRepository) Save(ctx context.Context, owner *finance.Owner) error {
	args := m.Called(ctx, owner)
	return args.Error(0)
}

func (m *MockOwnerRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockOwnerRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.OwnerFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOwnerRepository) RecalculateTotalInvestment(ctx context.Context, tenantID, ownerID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, ownerID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

var _ finance.OwnerRepository = (*MockOwnerRepository)(nil)

// MockBudgetPlanRepository is a mock implementation of BudgetPlanRepository
type MockBudgetPlanRepository struct {
	mock.Mock
}

func (m *MockBudgetPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.BudgetPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.BudgetPlan), args.Error(1)
}

func (m *MockBudgetPlanRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.BudgetPlan, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.BudgetPlan), args.Error(1)
}

func (m *MockBudgetPlanRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.BudgetPlanFilter) ([]finance.BudgetPlan, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]finance.BudgetPlan), args.Error(1)
}

func (m *MockBudgetPlanRepository) Save(ctx context.Context, plan *finance.BudgetPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockBudgetPlanRepository) SaveWithLock(ctx context.Context, plan *finance.BudgetPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockBudgetPlanRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockBudgetPlanRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.BudgetPlanFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

var _ finance.BudgetPlanRepository = (*MockBudgetPlanRepository)(nil)

// MockZakatRecordRepository is a mock implementation of ZakatRecordRepository
type MockZakatRecordRepository struct {
	mock.Mock
}

func (m *MockZakatRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.ZakatRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.ZakatRecord), args.Error(1)
}

func (m *MockZakatRecordRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.ZakatRecord, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.ZakatRecord), args.Error(1)
}

func (m *MockZakatRecordRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.ZakatRecordFilter) ([]finance.ZakatRecord, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]finance.ZakatRecord), args.Error(1)
}

func (m *MockZakatRecordRepository) Save(ctx context.Context, record *finance.ZakatRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockZakatRecordRepository) SaveWithLock(ctx context.Context, record *finance.ZakatRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockZakatRecordRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockZakatRecordRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.ZakatRecordFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

var _ finance.ZakatRecordRepository = (*MockZakatRecordRepository)(nil)

// MockBatchRepository is a mock implementation of production.BatchRepository
type MockBatchRepository struct {
	mock.Mock
}

func (m *MockBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*production.Batch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*production.Batch), args.Error(1)
}

func (m *MockBatchRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*production.Batch, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*production.Batch), args.Error(1)
}

func (m *MockBatchRepository) FindByBatchNumber(ctx context.Context, tenantID uuid.UUID, batchNumber string) (*production.Batch, error) {
	args := m.Called(ctx, tenantID, batchNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*production.Batch), args.Error(1)
}

func (m *MockBatchRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter production.BatchFilter) ([]production.Batch, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]production.Batch), args.Error(1)
}

func (m *MockBatchRepository) FindCompletedInPeriod(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]production.Batch, error) {
	args := m.Called(ctx, tenantID, from, to)
	return args.Get(0).([]production.Batch), args.Error(1)
}

func (m *MockBatchRepository) FindRecent(ctx context.Context, tenantID uuid.UUID, limit int) ([]production.Batch, error) {
	args := m.Called(ctx, tenantID, limit)
	return args.Get(0).([]production.Batch), args.Error(1)
}

func (m *MockBatchRepository) Save(ctx context.Context, batch *production.Batch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockBatchRepository) SaveWithLock(ctx context.Context, batch *production.Batch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockBatchRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockBatchRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter production.BatchFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBatchRepository) SumCostsForTenant(ctx context.Context, tenantID uuid.UUID) (*production.CostTotals, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*production.CostTotals), args.Error(1)
}

func (m *MockBatchRepository) SumActualQuantityInPeriod(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBatchRepository) GenerateBatchNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	args := m.Called(ctx, tenantID)
	return args.String(0), args.Error(1)
}

var _ production.BatchRepository = (*MockBatchRepository)(nil)

// MockInventoryItemRepository is a mock implementation of inventory.InventoryItemRepository
type MockInventoryItemRepository struct {
	mock.Mock
}

func (m *MockInventoryItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.InventoryItem), args.Error(1)
}

func (m *MockInventoryItemRepository) FindByBatchID(ctx context.Context, tenantID, batchID uuid.UUID) (*inventory.InventoryItem, error) {
	args := m.Called(ctx, tenantID, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.InventoryItem), args.Error(1)
}

func (m *MockInventoryItemRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter inventory.InventoryFilter) ([]inventory.InventoryItem, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]inventory.InventoryItem), args.Error(1)
}

func (m *MockInventoryItemRepository) Save(ctx context.Context, item *inventory.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockInventoryItemRepository) SaveWithLock(ctx context.Context, item *inventory.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockInventoryItemRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockInventoryItemRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter inventory.InventoryFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInventoryItemRepository) SumTotalValue(ctx context.Context, tenantID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

var _ inventory.InventoryItemRepository = (*MockInventoryItemRepository)(nil)

// MockSaleRepository is a mock implementation of sales.SaleRepository
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*sales.Sale, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter sales.SaleFilter) ([]sales.Sale, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) Save(ctx context.Context, sale *sales.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) SaveWithLock(ctx context.Context, sale *sales.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockSaleRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter sales.SaleFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSaleRepository) Summarize(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (*sales.SalesSummary, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.SalesSummary), args.Error(1)
}

func (m *MockSaleRepository) SumOutstandingAsOf(ctx context.Context, tenantID uuid.UUID, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, tenantID, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockSaleRepository) GenerateSaleNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	args := m.Called(ctx, tenantID)
	return args.String(0), args.Error(1)
}

var _ sales.SaleRepository = (*MockSaleRepository)(nil)

// MockEventBus is a mock implementation of shared.EventBus
type MockEventBus struct {
	mock.Mock
}

func (m *MockEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func (m *MockEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	m.Called(handler, eventTypes)
}

func (m *MockEventBus) Unsubscribe(handler shared.EventHandler) {
	m.Called(handler)
}

func (m *MockEventBus) Start(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockEventBus) Stop(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var _ shared.EventBus = (*MockEventBus)(nil)
