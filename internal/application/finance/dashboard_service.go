package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mfg/backend/internal/domain/finance"
	"github.com/mfg/backend/internal/domain/inventory"
	"github.com/mfg/backend/internal/domain/production"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DashboardService aggregates cross-domain figures for the dashboard
type DashboardService struct {
	cashflowRepo  finance.CashflowRepository
	batchRepo     production.BatchRepository
	inventoryRepo inventory.InventoryItemRepository
	recentLimit   int
	logger        *zap.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	cashflowRepo finance.CashflowRepository,
	batchRepo production.BatchRepository,
	inventoryRepo inventory.InventoryItemRepository,
	recentLimit int,
	logger *zap.Logger,
) *DashboardService {
	if recentLimit <= 0 {
		recentLimit = 5
	}
	return &DashboardService{
		cashflowRepo:  cashflowRepo,
		batchRepo:     batchRepo,
		inventoryRepo: inventoryRepo,
		recentLimit:   recentLimit,
		logger:        logger,
	}
}

// RecentBatchSummary is a condensed batch line for the dashboard
type RecentBatchSummary struct {
	ID          uuid.UUID       `json:"id"`
	BatchNumber string          `json:"batch_number"`
	ProductName string          `json:"product_name"`
	Status      string          `json:"status"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// DashboardStatsResponse is the aggregated dashboard payload
type DashboardStatsResponse struct {
	TotalCapital        decimal.Decimal            `json:"total_capital"`
	TotalExpenses       decimal.Decimal            `json:"total_expenses"`
	CapitalUtilization  decimal.Decimal            `json:"capital_utilization_percent"`
	TotalProductionCost decimal.Decimal            `json:"total_production_cost"`
	TotalMaterialCost   decimal.Decimal            `json:"total_material_cost"`
	TotalLaborCost      decimal.Decimal            `json:"total_labor_cost"`
	TotalOverheadCost   decimal.Decimal            `json:"total_overhead_cost"`
	InventoryValue      decimal.Decimal            `json:"inventory_value"`
	ExpensesByCategory  map[string]decimal.Decimal `json:"expenses_by_category"`
	RecentBatches       []RecentBatchSummary       `json:"recent_batches"`
	GeneratedAt         time.Time                  `json:"generated_at"`
}

// GetStats assembles the dashboard figures. Capital utilization is the
// share of invested capital already spent; it is zero when no capital
// has been invested.
func (s *DashboardService) GetStats(ctx context.Context, tenantID uuid.UUID) (*DashboardStatsResponse, error) {
	now := time.Now()

	capital, err := s.cashflowRepo.SumByTypeAsOf(ctx, tenantID, finance.CashflowTypeOwnerInvestment, nil)
	if err != nil {
		return nil, err
	}
	expenses, err := s.cashflowRepo.SumByTypeAsOf(ctx, tenantID, finance.CashflowTypeExpense, nil)
	if err != nil {
		return nil, err
	}

	utilization := decimal.Zero
	if capital.IsPositive() {
		utilization = expenses.Div(capital).Mul(decimal.NewFromInt(100))
	}

	costs, err := s.batchRepo.SumCostsForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	stockValue, err := s.inventoryRepo.SumTotalValue(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	epoch := time.Time{}
	byCategory, err := s.cashflowRepo.SumExpensesByCategoryInPeriod(ctx, tenantID, epoch, now)
	if err != nil {
		return nil, err
	}
	categories := make(map[string]decimal.Decimal, len(byCategory))
	for category, sum := range byCategory {
		categories[category.String()] = sum
	}

	recent, err := s.batchRepo.FindRecent(ctx, tenantID, s.recentLimit)
	if err != nil {
		return nil, err
	}
	recentSummaries := make([]RecentBatchSummary, len(recent))
	for i, batch := range recent {
		recentSummaries[i] = RecentBatchSummary{
			ID:          batch.ID,
			BatchNumber: batch.BatchNumber,
			ProductName: batch.ProductName,
			Status:      batch.Status.String(),
			TotalCost:   batch.TotalCost,
			UpdatedAt:   batch.UpdatedAt,
		}
	}

	return &DashboardStatsResponse{
		TotalCapital:        capital,
		TotalExpenses:       expenses,
		CapitalUtilization:  utilization,
		TotalProductionCost: costs.TotalCost,
		TotalMaterialCost:   costs.MaterialCost,
		TotalLaborCost:      costs.LaborCost,
		TotalOverheadCost:   costs.OverheadCost,
		InventoryValue:      stockValue,
		ExpensesByCategory:  categories,
		RecentBatches:       recentSummaries,
		GeneratedAt:         now,
	}, nil
}
