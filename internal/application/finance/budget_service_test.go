package finance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mfg/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBudgetPlan(t *testing.T, tenantID uuid.UUID) *finance.BudgetPlan {
	t.Helper()
	plan, err := finance.NewBudgetPlan(
		tenantID,
		"Q1 production",
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		finance.BudgetFigures{
			Revenue:          decimal.NewFromInt(1000),
			DirectMaterial:   decimal.NewFromInt(250),
			DirectLabor:      decimal.NewFromInt(100),
			FixedOverhead:    decimal.NewFromInt(300),
			VariableOverhead: decimal.NewFromInt(50),
			Units:            decimal.NewFromInt(100),
		},
	)
	require.NoError(t, err)
	return plan
}

func TestBudgetService_UpdateActuals(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	plan := newTestBudgetPlan(t, tenantID)

	mockBudgets := new(MockBudgetPlanRepository)
	mockCashflows := new(MockCashflowRepository)
	mockBatches := new(MockBatchRepository)

	mockBudgets.On("FindByIDForTenant", ctx, tenantID, plan.ID).Return(plan, nil)
	mockCashflows.On("SumSalesRevenueInPeriod", ctx, tenantID, plan.PeriodStart, plan.PeriodEnd).
		Return(decimal.NewFromInt(900), nil)
	mockCashflows.On("SumExpensesByCategoryInPeriod", ctx, tenantID, plan.PeriodStart, plan.PeriodEnd).
		Return(map[finance.CashflowCategory]decimal.Decimal{
			finance.CategoryMaterialPurchase: decimal.NewFromInt(300),
			finance.CategoryLaborPayment:     decimal.NewFromInt(120),
			finance.CategoryOverheadFixed:    decimal.NewFromInt(280),
		}, nil)
	mockBatches.On("SumActualQuantityInPeriod", ctx, tenantID, plan.PeriodStart, plan.PeriodEnd).
		Return(decimal.NewFromInt(95), nil)
	mockBudgets.On("SaveWithLock", ctx, plan).Return(nil)

	svc := NewBudgetService(mockBudgets, mockCashflows, mockBatches, newTestLogger())

	report, err := svc.UpdateActuals(ctx, tenantID, plan.ID)
	require.NoError(t, err)

	// the refresh answers with the variance report, not the plan
	assert.True(t, report.Revenue.Actual.Equal(decimal.NewFromInt(900)))
	assert.True(t, report.Revenue.Variance.Equal(decimal.NewFromInt(-100)))
	assert.True(t, report.Revenue.VariancePercent.Equal(decimal.NewFromInt(-10)))
	assert.True(t, report.DirectMaterial.Actual.Equal(decimal.NewFromInt(300)))
	assert.True(t, report.DirectMaterial.Variance.Equal(decimal.NewFromInt(50)))
	assert.True(t, report.DirectLabor.Actual.Equal(decimal.NewFromInt(120)))
	assert.True(t, report.FixedOverhead.Variance.Equal(decimal.NewFromInt(-20)))
	assert.True(t, report.VariableOverhead.Actual.IsZero())
	assert.True(t, report.Units.Actual.Equal(decimal.NewFromInt(95)))
	mockBudgets.AssertExpectations(t)
}

func TestBudgetService_UpdateActuals_Idempotent(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	plan := newTestBudgetPlan(t, tenantID)

	mockBudgets := new(MockBudgetPlanRepository)
	mockCashflows := new(MockCashflowRepository)
	mockBatches := new(MockBatchRepository)

	mockBudgets.On("FindByIDForTenant", ctx, tenantID, plan.ID).Return(plan, nil)
	mockCashflows.On("SumSalesRevenueInPeriod", ctx, tenantID, plan.PeriodStart, plan.PeriodEnd).
		Return(decimal.NewFromInt(500), nil)
	mockCashflows.On("SumExpensesByCategoryInPeriod", ctx, tenantID, plan.PeriodStart, plan.PeriodEnd).
		Return(map[finance.CashflowCategory]decimal.Decimal{}, nil)
	mockBatches.On("SumActualQuantityInPeriod", ctx, tenantID, plan.PeriodStart, plan.PeriodEnd).
		Return(decimal.NewFromInt(40), nil)
	mockBudgets.On("SaveWithLock", ctx, plan).Return(nil)

	svc := NewBudgetService(mockBudgets, mockCashflows, mockBatches, newTestLogger())

	first, err := svc.UpdateActuals(ctx, tenantID, plan.ID)
	require.NoError(t, err)
	second, err := svc.UpdateActuals(ctx, tenantID, plan.ID)
	require.NoError(t, err)

	assert.True(t, first.Revenue.Actual.Equal(second.Revenue.Actual))
	assert.True(t, first.Units.Actual.Equal(second.Units.Actual))
}

func TestBudgetService_GetVariances(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	plan := newTestBudgetPlan(t, tenantID)
	plan.SetActuals(finance.BudgetFigures{
		Revenue: decimal.NewFromInt(1100),
		Units:   decimal.NewFromInt(100),
	})

	mockBudgets := new(MockBudgetPlanRepository)
	mockBudgets.On("FindByIDForTenant", ctx, tenantID, plan.ID).Return(plan, nil)

	svc := NewBudgetService(mockBudgets, new(MockCashflowRepository), new(MockBatchRepository), newTestLogger())

	report, err := svc.GetVariances(ctx, tenantID, plan.ID)
	require.NoError(t, err)

	assert.True(t, report.Revenue.Variance.Equal(decimal.NewFromInt(100)))
	assert.True(t, report.Revenue.VariancePercent.Equal(decimal.NewFromInt(10)))
	// zero budget yields zero percent, not a division error
	assert.True(t, report.DirectMaterial.VariancePercent.IsZero() || !report.DirectMaterial.Budgeted.IsZero())
}

func TestBudgetService_GetBreakEven(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	plan := newTestBudgetPlan(t, tenantID)

	mockBudgets := new(MockBudgetPlanRepository)
	mockBudgets.On("FindByIDForTenant", ctx, tenantID, plan.ID).Return(plan, nil)

	svc := NewBudgetService(mockBudgets, new(MockCashflowRepository), new(MockBatchRepository), newTestLogger())

	result, err := svc.GetBreakEven(ctx, tenantID, plan.ID)
	require.NoError(t, err)
	require.Empty(t, result.Error)

	// price 10, variable cost 4, margin 6, fixed 300 -> 50 units / 500 revenue
	assert.True(t, result.SellingPricePerUnit.Equal(decimal.NewFromInt(10)))
	assert.True(t, result.VariableCostPerUnit.Equal(decimal.NewFromInt(4)))
	assert.True(t, result.ContributionMarginPerUnit.Equal(decimal.NewFromInt(6)))
	assert.True(t, result.BreakEvenUnits.Equal(decimal.NewFromInt(50)))
	assert.True(t, result.BreakEvenRevenue.Equal(decimal.NewFromInt(500)))
	assert.True(t, result.MarginOfSafetyUnits.Equal(decimal.NewFromInt(50)))
	assert.True(t, result.MarginOfSafetyPercent.Equal(decimal.NewFromInt(50)))
}

func TestBudgetService_NotFound(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	planID := uuid.New()

	mockBudgets := new(MockBudgetPlanRepository)
	mockBudgets.On("FindByIDForTenant", ctx, tenantID, planID).Return(nil, nil)

	svc := NewBudgetService(mockBudgets, new(MockCashflowRepository), new(MockBatchRepository), newTestLogger())

	_, err := svc.GetVariances(ctx, tenantID, planID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
