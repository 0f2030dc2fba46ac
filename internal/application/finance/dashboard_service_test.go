package finance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mfg/backend/internal/domain/finance"
	"github.com/mfg/backend/internal/domain/production"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_GetStats(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	batch, err := production.NewBatch(tenantID, "BTH-202608-00001", uuid.New(), "Pandan Cake",
		decimal.NewFromInt(100), production.StageGrowth)
	require.NoError(t, err)

	mockCashflows := new(MockCashflowRepository)
	mockBatches := new(MockBatchRepository)
	mockInventory := new(MockInventoryItemRepository)

	mockCashflows.On("SumByTypeAsOf", ctx, tenantID, finance.CashflowTypeOwnerInvestment, (*time.Time)(nil)).
		Return(decimal.NewFromInt(100000), nil)
	mockCashflows.On("SumByTypeAsOf", ctx, tenantID, finance.CashflowTypeExpense, (*time.Time)(nil)).
		Return(decimal.NewFromInt(25000), nil)
	mockBatches.On("SumCostsForTenant", ctx, tenantID).Return(&production.CostTotals{
		TotalCost:    decimal.NewFromInt(18000),
		MaterialCost: decimal.NewFromInt(10000),
		LaborCost:    decimal.NewFromInt(5000),
		OverheadCost: decimal.NewFromInt(3000),
	}, nil)
	mockInventory.On("SumTotalValue", ctx, tenantID).Return(decimal.NewFromInt(4000), nil)
	mockCashflows.On("SumExpensesByCategoryInPeriod", ctx, tenantID, mock.Anything, mock.Anything).
		Return(map[finance.CashflowCategory]decimal.Decimal{
			finance.CategoryMaterialPurchase: decimal.NewFromInt(10000),
			finance.CategoryLaborPayment:     decimal.NewFromInt(5000),
		}, nil)
	mockBatches.On("FindRecent", ctx, tenantID, 5).Return([]production.Batch{*batch}, nil)

	svc := NewDashboardService(mockCashflows, mockBatches, mockInventory, 5, newTestLogger())

	stats, err := svc.GetStats(ctx, tenantID)
	require.NoError(t, err)

	assert.True(t, stats.TotalCapital.Equal(decimal.NewFromInt(100000)))
	assert.True(t, stats.TotalExpenses.Equal(decimal.NewFromInt(25000)))
	assert.True(t, stats.CapitalUtilization.Equal(decimal.NewFromInt(25)))
	assert.True(t, stats.TotalProductionCost.Equal(decimal.NewFromInt(18000)))
	assert.True(t, stats.InventoryValue.Equal(decimal.NewFromInt(4000)))
	assert.Len(t, stats.RecentBatches, 1)
	assert.Equal(t, "BTH-202608-00001", stats.RecentBatches[0].BatchNumber)
	assert.True(t, stats.ExpensesByCategory["material_purchase"].Equal(decimal.NewFromInt(10000)))
}

func TestDashboardService_GetStats_NoCapital(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	mockCashflows := new(MockCashflowRepository)
	mockBatches := new(MockBatchRepository)
	mockInventory := new(MockInventoryItemRepository)

	mockCashflows.On("SumByTypeAsOf", ctx, tenantID, finance.CashflowTypeOwnerInvestment, (*time.Time)(nil)).
		Return(decimal.Zero, nil)
	mockCashflows.On("SumByTypeAsOf", ctx, tenantID, finance.CashflowTypeExpense, (*time.Time)(nil)).
		Return(decimal.NewFromInt(500), nil)
	mockBatches.On("SumCostsForTenant", ctx, tenantID).Return(&production.CostTotals{}, nil)
	mockInventory.On("SumTotalValue", ctx, tenantID).Return(decimal.Zero, nil)
	mockCashflows.On("SumExpensesByCategoryInPeriod", ctx, tenantID, mock.Anything, mock.Anything).
		Return(map[finance.CashflowCategory]decimal.Decimal{}, nil)
	mockBatches.On("FindRecent", ctx, tenantID, 5).Return([]production.Batch{}, nil)

	svc := NewDashboardService(mockCashflows, mockBatches, mockInventory, 0, newTestLogger())

	stats, err := svc.GetStats(ctx, tenantID)
	require.NoError(t, err)

	// no invested capital means utilization reports zero, not an error
	assert.True(t, stats.CapitalUtilization.IsZero())
	assert.Empty(t, stats.RecentBatches)
}
