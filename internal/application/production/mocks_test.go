package production

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mfg/backend/internal/domain/inventory"
	"github.com/mfg/backend/internal/domain/production"
	"github.com/mfg/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

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

// MockOverheadRateRepository is a mock implementation of production.OverheadRateRepository
type MockOverheadRateRepository struct {
	mock.Mock
}

func (m *MockOverheadRateRepository) FindByID(ctx context.Context, id uuid.UUID) (*production.OverheadRate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*production.OverheadRate), args.Error(1)
}

func (m *MockOverheadRateRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*production.OverheadRate, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*production.OverheadRate), args.Error(1)
}

func (m *MockOverheadRateRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter production.OverheadRateFilter) ([]production.OverheadRate, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]production.OverheadRate), args.Error(1)
}

func (m *MockOverheadRateRepository) FindBestEffectiveRate(ctx context.Context, tenantID uuid.UUID, stage production.LifecycleStage, at time.Time) (*production.OverheadRate, error) {
	args := m.Called(ctx, tenantID, stage, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*production.OverheadRate), args.Error(1)
}

func (m *MockOverheadRateRepository) Save(ctx context.Context, rate *production.OverheadRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockOverheadRateRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockOverheadRateRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter production.OverheadRateFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

var _ production.OverheadRateRepository = (*MockOverheadRateRepository)(nil)

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
